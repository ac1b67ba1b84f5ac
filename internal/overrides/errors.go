package overrides

import "fmt"

// ErrOrderNotPermutation indicates a SetOrder call whose keys do not exactly
// match the items currently present for the group.
type ErrOrderNotPermutation struct {
	Group  GroupKey
	Reason string
}

func (e *ErrOrderNotPermutation) Error() string {
	return fmt.Sprintf("invalid bullet order for %s/%s: %s", e.Group.Section, e.Group.Group, e.Reason)
}
