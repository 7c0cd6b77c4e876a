package fractal

// Index is an N-dimensional lattice coordinate, N in {1, 2}, stored as a
// small fixed-size component array — Go has no array-length generics, so
// the dimension count is carried at runtime rather than monomorphized per
// N. Arithmetic on components wraps modulo 2^Width: the lattice is a
// torus.
type Index struct {
	Dim int
	C   [2]uint64
}

// NewIndex1 builds a 1-dimensional index.
func NewIndex1(x uint64) Index {
	return Index{Dim: 1, C: [2]uint64{x, 0}}
}

// NewIndex2 builds a 2-dimensional index.
func NewIndex2(x, z uint64) Index {
	return Index{Dim: 2, C: [2]uint64{x, z}}
}

func zeroIndex(dim int) Index {
	return Index{Dim: dim}
}

// Get returns the index's value on the given axis.
func (i Index) Get(axis int) uint64 {
	return i.C[axis]
}

func maxForWidth(width uint8) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// wrapAdd adds b to a modulo 2^width.
func wrapAdd(width uint8, a, b uint64) uint64 {
	if width >= 64 {
		return a + b
	}
	return (a + b) & maxForWidth(width)
}

// wrapSub subtracts b from a modulo 2^width.
func wrapSub(width uint8, a, b uint64) uint64 {
	if width >= 64 {
		return a - b
	}
	return (a - b) & maxForWidth(width)
}

// wrapMul2 doubles k modulo 2^width; a k whose top bit is set at width
// wraps to 0. At the root level this makes both coarse parents coincide at
// the origin, which is the correct torus behavior rather than a bug.
func wrapMul2(width uint8, k uint64) uint64 {
	if width >= 64 {
		return k << 1
	}
	return (k << 1) & maxForWidth(width)
}

// snapDown rounds v down to the nearest multiple of k (a power of two,
// possibly 0 after wrapping — in which case the only multiple of a
// full-period step is 0 itself).
func snapDown(k, v uint64) uint64 {
	if k == 0 {
		return 0
	}
	return v &^ (k - 1)
}

// roundCellBase computes the base of the 2^Dim-corner cell of the given
// midpoint step that contains target, relative to a current coarser base:
// for each axis, round (target − base) down to a multiple of midpoint and
// re-add base.
func roundCellBase(width uint8, dim int, base, target Index, midpoint uint64) Index {
	next := zeroIndex(dim)
	for axis := 0; axis < dim; axis++ {
		d := wrapSub(width, target.C[axis], base.C[axis])
		next.C[axis] = wrapAdd(width, base.C[axis], snapDown(midpoint, d))
	}
	return next
}

// applyCombo returns the corner of the cell based at `next` identified by
// combo, a bitmask over axes: bit k set means "+midpoint along axis k".
func applyCombo(width uint8, dim int, next Index, midpoint uint64, combo int) Index {
	c := next
	for axis := 0; axis < dim; axis++ {
		if combo&(1<<uint(axis)) != 0 {
			c.C[axis] = wrapAdd(width, c.C[axis], midpoint)
		}
	}
	return c
}

// snapDownEach applies snapDown componentwise.
func snapDownEach(dim int, idx Index, k uint64) Index {
	out := zeroIndex(dim)
	for axis := 0; axis < dim; axis++ {
		out.C[axis] = snapDown(k, idx.C[axis])
	}
	return out
}
