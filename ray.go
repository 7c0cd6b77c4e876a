package fractal

import "math"

// Ray is a unit direction, its componentwise reciprocal (precomputed for
// the slab method) and an origin — immutable after construction.
type Ray struct {
	Dir    [3]float64
	InvDir [3]float64
	Origin [3]float64
}

// NewRay normalizes direction and precomputes its reciprocal; components at
// infinity (when a direction axis is zero) are left to IEEE arithmetic.
func NewRay(direction, origin [3]float64) Ray {
	n := math.Sqrt(direction[0]*direction[0] + direction[1]*direction[1] + direction[2]*direction[2])
	d := [3]float64{direction[0] / n, direction[1] / n, direction[2] / n}
	return Ray{
		Dir:    d,
		InvDir: [3]float64{1 / d[0], 1 / d[1], 1 / d[2]},
		Origin: origin,
	}
}

func (r Ray) at(t float64) [3]float64 {
	return [3]float64{
		r.Origin[0] + t*r.Dir[0],
		r.Origin[1] + t*r.Dir[1],
		r.Origin[2] + t*r.Dir[2],
	}
}

// Entry-face identifiers in the axis order the marcher enumerates
// neighbors: -x, +x, -z, +z.
const (
	faceNegX = iota
	facePosX
	faceNegZ
	facePosZ
)

// faceMemory is an explicit 3-state FSM over how many entry faces are
// remembered: 0, 1 or 2 known faces.
type faceMemory struct {
	known [2]int
	n     int
}

// record folds a newly-entered face into memory. A no-op once two distinct
// faces are already known.
func (m *faceMemory) record(f int) {
	switch m.n {
	case 0:
		m.known[0] = f
		m.n = 1
	case 1:
		if f != m.known[0] {
			m.known[1] = f
			m.n = 2
		}
	}
}

// candidates returns the neighbor faces worth considering this step.
func (m *faceMemory) candidates() []int {
	switch m.n {
	case 0:
		return []int{faceNegX, facePosX, faceNegZ, facePosZ}
	case 1:
		f := m.known[0]
		return []int{f, cyclicFace(f, 1), cyclicFace(f, -1)}
	default:
		return []int{m.known[0], m.known[1]}
	}
}

func cyclicFace(f, delta int) int {
	return ((f+delta)%4 + 4) % 4
}

// neighborBase steps base by step along the face's axis using plain
// (non-wrapping) arithmetic, rejecting a neighbor that would fall below or
// above the lattice endpoints — the marcher walks the bounded visible
// volume, it does not wrap the way field lookups do.
func neighborBase(width uint8, base Index, step uint64, face int) (Index, bool) {
	n := base
	limit := maxForWidth(width)
	switch face {
	case faceNegX:
		if base.C[0] < step {
			return Index{}, false
		}
		n.C[0] = base.C[0] - step
	case facePosX:
		if base.C[0] > limit-step {
			return Index{}, false
		}
		n.C[0] = base.C[0] + step
	case faceNegZ:
		if base.C[1] < step {
			return Index{}, false
		}
		n.C[1] = base.C[1] - step
	case facePosZ:
		if base.C[1] > limit-step {
			return Index{}, false
		}
		n.C[1] = base.C[1] + step
	}
	return n, true
}

// unboundedY returns a copy of c with its y-range widened to the whole
// real line, used when only a cell's x/z footprint matters.
func unboundedY(c Cell) Cell {
	c.Lower[1] = math.Inf(-1)
	c.Upper[1] = math.Inf(1)
	return c
}

// grazingEpsilon shrinks a bounded-descent interval at both ends before
// intersecting it as a vertical prism, to avoid a grazing hit exactly on
// the envelope boundary.
const grazingEpsilon = 1e-6

// Intersect walks cells along the ray, using CachedBoundsFor to prune cells
// the ray cannot enter and a neighbor-face memory to continue from cell to
// cell. Returns the surface point and true on a hit, or the zero point and
// false on a miss.
func (r Ray) Intersect(f *Field, maxT float64) ([3]float64, bool) {
	limit := float64(maxForWidth(f.width))
	top := f.UpperBound(0)
	global := Cell{Lower: [3]float64{0, 0, 0}, Upper: [3]float64{limit, top, limit}}

	tEnter, _, ok := global.Intersect(r)
	if !ok {
		return [3]float64{}, false
	}
	t := math.Max(0, tEnter)

	var mem faceMemory
	for t < maxT {
		p := r.at(t)
		if p[0] < 0 || p[0] > limit || p[2] < 0 || p[2] > limit {
			return [3]float64{}, false
		}

		query := NewIndex2(uint64(math.Floor(p[0])), uint64(math.Floor(p[2])))
		terminated, lo, hi, base, step := f.CachedBoundsFor(query, p[1])

		if terminated {
			cell := around(f, base, step)
			if te, _, ok := cell.Intersect(r); ok && te > t {
				return r.at(te), true
			}
		}

		prism := around(f, base, step)
		prism.Lower[1], prism.Upper[1] = lo+grazingEpsilon, hi-grazingEpsilon

		best := math.Inf(1)
		haveBest := false
		if te, _, ok := prism.Intersect(r); ok && te > t {
			best, haveBest = te, true
		}

		for _, face := range mem.candidates() {
			nb, valid := neighborBase(f.width, base, step, face)
			if !valid {
				continue
			}
			ncell := unboundedY(around(f, nb, step))
			te, _, ok := ncell.Intersect(r)
			if !ok || te <= t || math.IsInf(te, 0) {
				continue
			}
			mem.record(face)
			if te < best {
				best, haveBest = te, true
			}
		}

		if !haveBest {
			return [3]float64{}, false
		}
		t = best
	}

	return [3]float64{}, false
}
