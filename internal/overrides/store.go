package overrides

// ResolvedItem is one bullet line after override resolution.
type ResolvedItem struct {
	Key  ItemKey `json:"key"`
	Text string  `json:"text"`
}

// TextOverride is the serializable form of one text override entry.
type TextOverride struct {
	Key  ItemKey `json:"key"`
	Text string  `json:"text"`
}

// OrderOverride is the serializable form of one group ordering entry.
type OrderOverride struct {
	Group GroupKey  `json:"group"`
	Keys  []ItemKey `json:"keys"`
}

// State is a serializable snapshot of the store, used for session caching.
type State struct {
	Texts  []TextOverride  `json:"texts,omitempty"`
	Orders []OrderOverride `json:"orders,omitempty"`
}

// Store holds bullet text and ordering overrides. Overrides are keyed by
// stable group identity, so they survive switching between variations of the
// same job. Not safe for concurrent use; the owning session serializes access.
type Store struct {
	texts  map[ItemKey]string
	orders map[GroupKey][]ItemKey
}

// NewStore returns an empty override store.
func NewStore() *Store {
	return &Store{
		texts:  make(map[ItemKey]string),
		orders: make(map[GroupKey][]ItemKey),
	}
}

// SetText upserts a replacement text for an item. An empty string is a valid
// override (explicit blanking), distinct from no override at all.
func (s *Store) SetText(key ItemKey, text string) {
	s.texts[key] = text
}

// ClearText removes a text override, restoring the original content.
func (s *Store) ClearText(key ItemKey) {
	delete(s.texts, key)
}

// Text returns the override for key, if any.
func (s *Store) Text(key ItemKey) (string, bool) {
	t, ok := s.texts[key]
	return t, ok
}

// SetOrder records a custom ordering for a group. The ordered keys must be an
// exact permutation of current (the item keys presently derivable for the
// group); otherwise the call is rejected and the store is unchanged.
func (s *Store) SetOrder(group GroupKey, ordered, current []ItemKey) error {
	if len(ordered) != len(current) {
		return &ErrOrderNotPermutation{Group: group, Reason: "wrong length"}
	}
	want := make(map[ItemKey]bool, len(current))
	for _, k := range current {
		want[k] = true
	}
	seen := make(map[ItemKey]bool, len(ordered))
	for _, k := range ordered {
		if seen[k] {
			return &ErrOrderNotPermutation{Group: group, Reason: "duplicate key"}
		}
		if !want[k] {
			return &ErrOrderNotPermutation{Group: group, Reason: "foreign key"}
		}
		seen[k] = true
	}
	keys := make([]ItemKey, len(ordered))
	copy(keys, ordered)
	s.orders[group] = keys
	return nil
}

// ClearOrder removes a group's custom ordering.
func (s *Store) ClearOrder(group GroupKey) {
	delete(s.orders, group)
}

// ItemKeys builds the original item keys for a group's bullet list.
func ItemKeys(group GroupKey, originalItems []string) []ItemKey {
	keys := make([]ItemKey, len(originalItems))
	for i := range originalItems {
		keys[i] = ItemKey{Section: group.Section, Group: group.Group, Index: i}
	}
	return keys
}

// ResolveItems returns the group's bullets in effective order with effective
// text. A saved ordering is applied first: keys no longer present in
// originalItems are dropped silently, and new keys absent from the saved
// order are appended in their original relative order. Text overrides are
// substituted per key. Pure with respect to store state.
func (s *Store) ResolveItems(group GroupKey, originalItems []string) []ResolvedItem {
	original := ItemKeys(group, originalItems)

	effective := original
	if saved, ok := s.orders[group]; ok {
		live := make(map[ItemKey]bool, len(original))
		for _, k := range original {
			live[k] = true
		}
		inSaved := make(map[ItemKey]bool, len(saved))
		effective = make([]ItemKey, 0, len(original))
		for _, k := range saved {
			inSaved[k] = true
			if live[k] {
				effective = append(effective, k)
			}
		}
		for _, k := range original {
			if !inSaved[k] {
				effective = append(effective, k)
			}
		}
	}

	items := make([]ResolvedItem, 0, len(effective))
	for _, k := range effective {
		text := originalItems[k.Index]
		if override, ok := s.texts[k]; ok {
			text = override
		}
		items = append(items, ResolvedItem{Key: k, Text: text})
	}
	return items
}

// ApplyBulkReplace overrides each bullet of a group with the replacement at
// the same index, used when applying an alternative AI-authored variant
// wholesale. Indexes beyond the replacement list keep their original text.
// Ordering overrides are untouched.
func (s *Store) ApplyBulkReplace(group GroupKey, originalBullets, replacementBullets []string) {
	for i := range originalBullets {
		if i >= len(replacementBullets) {
			break
		}
		key := ItemKey{Section: group.Section, Group: group.Group, Index: i}
		s.texts[key] = replacementBullets[i]
	}
}

// Snapshot returns a serializable copy of the store's state.
func (s *Store) Snapshot() State {
	st := State{}
	for k, t := range s.texts {
		st.Texts = append(st.Texts, TextOverride{Key: k, Text: t})
	}
	for g, keys := range s.orders {
		cp := make([]ItemKey, len(keys))
		copy(cp, keys)
		st.Orders = append(st.Orders, OrderOverride{Group: g, Keys: cp})
	}
	return st
}

// Restore replaces the store's state from a snapshot.
func (s *Store) Restore(st State) {
	s.texts = make(map[ItemKey]string, len(st.Texts))
	for _, t := range st.Texts {
		s.texts[t.Key] = t.Text
	}
	s.orders = make(map[GroupKey][]ItemKey, len(st.Orders))
	for _, o := range st.Orders {
		keys := make([]ItemKey, len(o.Keys))
		copy(keys, o.Keys)
		s.orders[o.Group] = keys
	}
}
