package fractal

import "math/bits"

// mix64 decorrelates successive absorbed words, the same role the mix
// constant plays in github.com/kelindar/noise's White().
const mix64 uint64 = 0x9e3779b97f4a7c15

// absorb64 is a keyed single-word hash round, adapted from the unrolled
// xxhash64 in github.com/kelindar/noise. The seed is folded in as the
// hash's key argument rather than written as a prefix byte sequence, so a
// hash and its first absorbed word can't collide with a swapped pair.
func absorb64(v, key uint64) uint64 {
	x := (v ^ (0x1cad21f72c81017c ^ 0xdb979083e96dd4de)) + key
	x ^= bits.RotateLeft64(x, 49) ^ bits.RotateLeft64(x, 24)
	x *= 0x9fb21c651e98df25
	x ^= (x >> 35) + 4
	x *= 0x9fb21c651e98df25
	x ^= x >> 28
	return x
}

// digest keys a hash with seed and absorbs i1's components, then i2's, in
// order — swapping i1 and i2 changes the result because their components
// land at different positions in the absorption sequence.
func digest(seed int64, i1, i2 Index) uint64 {
	h := uint64(seed)
	word := uint64(0)
	for axis := 0; axis < i1.Dim; axis++ {
		h = absorb64(i1.C[axis], h+word*mix64)
		word++
	}
	for axis := 0; axis < i2.Dim; axis++ {
		h = absorb64(i2.C[axis], h+word*mix64)
		word++
	}
	return h
}
