package derivation

// Regenerator produces an alternative presentation order for a section's
// content list given its regeneration counter. It is a named strategy so a
// live re-generation backend can replace the deterministic default without
// touching the derivation contract.
type Regenerator interface {
	// Order returns the index sequence to present a list of the given length
	// in, for the given counter value. Counter 0 must be the identity.
	Order(length, counter int) []int
}

// Rotation is the default Regenerator: a cyclic left-rotation by the counter.
// Rotating a list of length L by n yields rotate(list, n mod L), so L
// consecutive regenerations return to the original order.
type Rotation struct{}

// Order implements Regenerator.
func (Rotation) Order(length, counter int) []int {
	idx := make([]int, length)
	if length == 0 {
		return idx
	}
	shift := counter % length
	if shift < 0 {
		shift += length
	}
	for i := 0; i < length; i++ {
		idx[i] = (i + shift) % length
	}
	return idx
}

// reorder applies an index sequence to a list, pairing with Regenerator.Order.
func reorder[T any](list []T, indices []int) []T {
	out := make([]T, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(list) {
			out = append(out, list[i])
		}
	}
	return out
}
