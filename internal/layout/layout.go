package layout

// Snapshot is a value copy of a layout's order, visibility and formatting.
// Templates are authored as snapshots; ApplyTemplate consumes one.
type Snapshot struct {
	Order      []Section                     `json:"order"`
	Visibility map[Section]bool              `json:"visibility"`
	Formatting map[Section]map[string]string `json:"formatting"`
}

// Origin records which template a layout came from and whether the user has
// customized it since.
type Origin struct {
	TemplateID string `json:"template_id"`
	Customized bool   `json:"customized"`
}

// Layout holds the ordered section list, per-section visibility and
// per-section formatting for one generation session. The order is always a
// permutation of the full section set; hidden sections keep their slot.
type Layout struct {
	order      []Section
	visibility map[Section]bool
	formatting map[Section]map[string]string
	origin     Origin
}

// New returns a layout with canonical order, everything visible and default
// formatting, attributed to the given template ID.
func New(templateID string) *Layout {
	l := &Layout{
		order:      AllSections(),
		visibility: make(map[Section]bool, len(sectionMetadata)),
		formatting: DefaultFormatting(),
		origin:     Origin{TemplateID: templateID},
	}
	for _, s := range l.order {
		l.visibility[s] = true
	}
	return l
}

// Order returns a copy of the current section order.
func (l *Layout) Order() []Section {
	out := make([]Section, len(l.order))
	copy(out, l.order)
	return out
}

// Visible reports whether a section is currently shown.
func (l *Layout) Visible(s Section) bool {
	return l.visibility[s]
}

// VisibleCount returns the number of visible sections.
func (l *Layout) VisibleCount() int {
	n := 0
	for _, v := range l.visibility {
		if v {
			n++
		}
	}
	return n
}

// VisibleOrder returns the visible sections in order.
func (l *Layout) VisibleOrder() []Section {
	out := make([]Section, 0, len(l.order))
	for _, s := range l.order {
		if l.visibility[s] {
			out = append(out, s)
		}
	}
	return out
}

// Formatting returns the chosen value for a section field, falling back to
// the catalog default when unset.
func (l *Layout) Formatting(s Section, field string) string {
	if m, ok := l.formatting[s]; ok {
		if v, ok := m[field]; ok {
			return v
		}
	}
	if choices, ok := AllowedValues(s, field); ok {
		return choices[0]
	}
	return ""
}

// Origin returns the layout's template attribution.
func (l *Layout) Origin() Origin {
	return l.origin
}

// Reorder moves dragged to the slot of target within the full order.
// Absent or identical identifiers make this a no-op.
func (l *Layout) Reorder(dragged, target Section) {
	moved := MoveElement(l.order, dragged, target)
	same := true
	for i := range moved {
		if moved[i] != l.order[i] {
			same = false
			break
		}
	}
	if same {
		return
	}
	l.order = moved
	l.origin.Customized = true
}

// ReorderVisible applies a drag within the visible-only list: only the
// visible subsequence is permuted, hidden entries keep their relative slots.
func (l *Layout) ReorderVisible(dragged, target Section) {
	if !l.visibility[dragged] || !l.visibility[target] {
		return
	}
	visible := l.VisibleOrder()
	moved := MoveElement(visible, dragged, target)

	changed := false
	next := make([]Section, len(l.order))
	vi := 0
	for i, s := range l.order {
		if l.visibility[s] {
			next[i] = moved[vi]
			if next[i] != s {
				changed = true
			}
			vi++
		} else {
			next[i] = s
		}
	}
	if !changed {
		return
	}
	l.order = next
	l.origin.Customized = true
}

// ToggleVisibility flips a section's visibility. Hiding the last visible
// section is rejected and the layout is left unchanged.
func (l *Layout) ToggleVisibility(s Section) error {
	if !ValidSection(s) {
		return &ErrUnknownSection{Section: s}
	}
	if l.visibility[s] && l.VisibleCount() == 1 {
		return &ErrLastVisibleSection{Section: s}
	}
	l.visibility[s] = !l.visibility[s]
	l.origin.Customized = true
	return nil
}

// SetFormatting sets a formatting field to one of its enumerated choices.
func (l *Layout) SetFormatting(s Section, field, value string) error {
	if !ValidSection(s) {
		return &ErrUnknownSection{Section: s}
	}
	if !allowedValue(s, field, value) {
		return &ErrInvalidOption{Section: s, Field: field, Value: value}
	}
	if l.formatting[s] == nil {
		l.formatting[s] = make(map[string]string)
	}
	l.formatting[s][field] = value
	l.origin.Customized = true
	return nil
}

// ApplyTemplate replaces order, visibility and formatting wholesale from the
// snapshot. The order is normalized so every section appears exactly once:
// duplicates and unknown identifiers are dropped, omitted sections are
// appended at the end. Formatting values outside the catalog are replaced by
// defaults. The layout is marked as coming from templateID, not customized.
func (l *Layout) ApplyTemplate(templateID string, snap Snapshot) {
	l.order = NormalizeOrder(snap.Order)

	visibility := make(map[Section]bool, len(l.order))
	for _, s := range l.order {
		if v, ok := snap.Visibility[s]; ok {
			visibility[s] = v
		} else {
			visibility[s] = true
		}
	}
	// The visibility invariant holds for templates too.
	anyVisible := false
	for _, v := range visibility {
		if v {
			anyVisible = true
			break
		}
	}
	if !anyVisible {
		visibility[l.order[0]] = true
	}
	l.visibility = visibility

	formatting := DefaultFormatting()
	for section, fields := range snap.Formatting {
		for field, value := range fields {
			if allowedValue(section, field, value) {
				formatting[section][field] = value
			}
		}
	}
	l.formatting = formatting
	l.origin = Origin{TemplateID: templateID}
}

// Snapshot returns a deep value copy of the layout's current configuration.
func (l *Layout) Snapshot() Snapshot {
	visibility := make(map[Section]bool, len(l.visibility))
	for k, v := range l.visibility {
		visibility[k] = v
	}
	formatting := make(map[Section]map[string]string, len(l.formatting))
	for section, fields := range l.formatting {
		m := make(map[string]string, len(fields))
		for field, value := range fields {
			m[field] = value
		}
		formatting[section] = m
	}
	return Snapshot{Order: l.Order(), Visibility: visibility, Formatting: formatting}
}

// Restore replaces the layout's state from a snapshot plus origin, used when
// rehydrating a cached session. The order is normalized the same way
// ApplyTemplate normalizes it.
func (l *Layout) Restore(snap Snapshot, origin Origin) {
	l.ApplyTemplate(origin.TemplateID, snap)
	l.origin = origin
}

// NormalizeOrder returns order with unknown sections dropped, duplicates
// removed (first occurrence wins) and missing sections appended in canonical
// order, guaranteeing an exact permutation of the section set.
func NormalizeOrder(order []Section) []Section {
	seen := make(map[Section]bool, len(sectionMetadata))
	out := make([]Section, 0, len(sectionMetadata))
	for _, s := range order {
		if !ValidSection(s) || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, s := range AllSections() {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}
