package layout

// MoveElement returns a copy of list with the element equal to from moved to
// the position currently occupied by to, preserving the relative order of all
// other elements (standard list-move-to-index semantics). The input is
// returned unchanged when from equals to or either element is absent.
//
// This is the single reorder primitive; drag-and-drop surfaces translate
// their gestures into a (from, to) pair and call this, so reordering can be
// tested without simulating pointer events.
func MoveElement[T comparable](list []T, from, to T) []T {
	if from == to {
		return list
	}

	fromIdx, toIdx := -1, -1
	for i, v := range list {
		if v == from {
			fromIdx = i
		}
		if v == to {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 {
		return list
	}

	reduced := make([]T, 0, len(list)-1)
	reduced = append(reduced, list[:fromIdx]...)
	reduced = append(reduced, list[fromIdx+1:]...)

	result := make([]T, 0, len(list))
	result = append(result, reduced[:toIdx]...)
	result = append(result, from)
	result = append(result, reduced[toIdx:]...)
	return result
}
