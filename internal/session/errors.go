package session

import "fmt"

// ErrNoVariation indicates a variation ID not present in the session content.
type ErrNoVariation struct {
	ID string
}

func (e *ErrNoVariation) Error() string {
	return fmt.Sprintf("variation not found: %s", e.ID)
}

// ErrNoContent indicates an operation requiring generated content before any
// generation has completed.
type ErrNoContent struct{}

func (e *ErrNoContent) Error() string {
	return "no generated content in session"
}
