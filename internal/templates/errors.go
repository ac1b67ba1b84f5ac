package templates

import "fmt"

// ErrEmptyName indicates a save attempt with a blank template name.
type ErrEmptyName struct{}

func (e *ErrEmptyName) Error() string {
	return "please enter a template name"
}

// ErrTemplateNotFound indicates an unknown template ID.
type ErrTemplateNotFound struct {
	ID string
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("template not found: %s", e.ID)
}

// ErrBuiltInImmutable indicates a delete attempt on a built-in template.
type ErrBuiltInImmutable struct {
	ID string
}

func (e *ErrBuiltInImmutable) Error() string {
	return fmt.Sprintf("built-in template %s cannot be deleted", e.ID)
}
