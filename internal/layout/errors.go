package layout

import "fmt"

// ErrLastVisibleSection indicates a visibility toggle would hide every section.
type ErrLastVisibleSection struct {
	Section Section
}

func (e *ErrLastVisibleSection) Error() string {
	return fmt.Sprintf("cannot hide %s: at least one section must remain visible", e.Section)
}

// ErrUnknownSection indicates a section identifier outside the closed set.
type ErrUnknownSection struct {
	Section Section
}

func (e *ErrUnknownSection) Error() string {
	return fmt.Sprintf("unknown section: %s", e.Section)
}

// ErrInvalidOption indicates a formatting value outside the enumerated choices.
type ErrInvalidOption struct {
	Section Section
	Field   string
	Value   string
}

func (e *ErrInvalidOption) Error() string {
	return fmt.Sprintf("invalid option %q for %s.%s", e.Value, e.Section, e.Field)
}
