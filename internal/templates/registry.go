package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/layout"
	"github.com/jonathan/resume-studio/internal/store"
)

// Registry holds built-in templates and user-saved custom templates. Custom
// templates are persisted through the injected store under a fixed key and
// never expire. Not safe for concurrent use; the owning session serializes.
type Registry struct {
	builtIn []Template
	custom  []Template
	store   store.Store
}

// NewRegistry creates a registry and loads any persisted custom templates.
// A load failure starts with an empty custom list rather than failing the
// session; the error is returned so callers can log it.
func NewRegistry(ctx context.Context, st store.Store) (*Registry, error) {
	r := &Registry{builtIn: builtInTemplates(), store: st}

	data, ok, err := st.Load(ctx, store.KeyCustomTemplates)
	if err != nil {
		return r, fmt.Errorf("failed to load custom templates: %w", err)
	}
	if !ok {
		return r, nil
	}
	var custom []Template
	if err := json.Unmarshal(data, &custom); err != nil {
		return r, fmt.Errorf("failed to parse custom templates: %w", err)
	}
	// Stored templates are never trusted to be built-in.
	for i := range custom {
		custom[i].BuiltIn = false
	}
	r.custom = custom
	return r, nil
}

// ListBuiltIn returns the built-in templates.
func (r *Registry) ListBuiltIn() []Template {
	out := make([]Template, len(r.builtIn))
	copy(out, r.builtIn)
	return out
}

// ListCustom returns the user-saved templates.
func (r *Registry) ListCustom() []Template {
	out := make([]Template, len(r.custom))
	copy(out, r.custom)
	return out
}

// Get returns the template with the given ID, built-in or custom.
func (r *Registry) Get(id string) (Template, error) {
	for _, t := range r.builtIn {
		if t.ID == id {
			return t, nil
		}
	}
	for _, t := range r.custom {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, &ErrTemplateNotFound{ID: id}
}

// SaveCustom snapshots the given layout configuration as a new custom
// template. The name must not trim to empty. The custom list is persisted
// before the template is returned.
func (r *Registry) SaveCustom(ctx context.Context, name string, snap layout.Snapshot) (Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Template{}, &ErrEmptyName{}
	}

	t := Template{
		ID:       "custom-" + uuid.NewString(),
		Name:     name,
		Snapshot: snap,
	}
	r.custom = append(r.custom, t)
	if err := r.persist(ctx); err != nil {
		r.custom = r.custom[:len(r.custom)-1]
		return Template{}, err
	}
	return t, nil
}

// Delete removes a custom template. Built-ins are immutable.
func (r *Registry) Delete(ctx context.Context, id string) error {
	for _, t := range r.builtIn {
		if t.ID == id {
			return &ErrBuiltInImmutable{ID: id}
		}
	}
	for i, t := range r.custom {
		if t.ID == id {
			r.custom = append(r.custom[:i], r.custom[i+1:]...)
			return r.persist(ctx)
		}
	}
	return &ErrTemplateNotFound{ID: id}
}

func (r *Registry) persist(ctx context.Context) error {
	data, err := json.Marshal(r.custom)
	if err != nil {
		return fmt.Errorf("failed to marshal custom templates: %w", err)
	}
	if err := r.store.Save(ctx, store.KeyCustomTemplates, data); err != nil {
		return fmt.Errorf("failed to persist custom templates: %w", err)
	}
	return nil
}
