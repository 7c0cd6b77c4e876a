package fractal

import "math"

// Cell is an axis-aligned 3D box over a base 2D index cell, built from the
// four corner heights sampled at
// (base, base+⟨step,0⟩, base+⟨0,step⟩, base+⟨step,step⟩). Transient — built
// per marcher step, never stored.
type Cell struct {
	Lower [3]float64
	Upper [3]float64
}

// around builds the Cell for the base index b and step s, sampling the
// four corner heights via FindPoint and taking their componentwise
// min/max.
func around(f *Field, base Index, step uint64) Cell {
	x0 := base.C[0]
	z0 := base.C[1]
	x1 := wrapAdd(f.width, x0, step)
	z1 := wrapAdd(f.width, z0, step)

	h00 := f.FindPoint(NewIndex2(x0, z0))
	h10 := f.FindPoint(NewIndex2(x1, z0))
	h01 := f.FindPoint(NewIndex2(x0, z1))
	h11 := f.FindPoint(NewIndex2(x1, z1))

	ymin := math.Min(math.Min(h00, h10), math.Min(h01, h11))
	ymax := math.Max(math.Max(h00, h10), math.Max(h01, h11))

	lowerX, upperX := float64(x0), float64(x1)
	if lowerX > upperX {
		lowerX, upperX = upperX, lowerX
	}
	lowerZ, upperZ := float64(z0), float64(z1)
	if lowerZ > upperZ {
		lowerZ, upperZ = upperZ, lowerZ
	}

	return Cell{
		Lower: [3]float64{lowerX, ymin, lowerZ},
		Upper: [3]float64{upperX, ymax, upperZ},
	}
}

// Intersect performs the slab method against the axis-aligned box,
// returning the entry/exit ray parameters. The pair is only valid
// (ok == true) when tExit >= 0 and tEnter <= tExit.
func (c Cell) Intersect(r Ray) (tEnter, tExit float64, ok bool) {
	t0x := (c.Lower[0] - r.Origin[0]) * r.InvDir[0]
	t1x := (c.Upper[0] - r.Origin[0]) * r.InvDir[0]
	t0y := (c.Lower[1] - r.Origin[1]) * r.InvDir[1]
	t1y := (c.Upper[1] - r.Origin[1]) * r.InvDir[1]
	t0z := (c.Lower[2] - r.Origin[2]) * r.InvDir[2]
	t1z := (c.Upper[2] - r.Origin[2]) * r.InvDir[2]

	tEnter = max3(math.Min(t0x, t1x), math.Min(t0y, t1y), math.Min(t0z, t1z))
	tExit = min3(math.Max(t0x, t1x), math.Max(t0y, t1y), math.Max(t0z, t1z))

	if tExit < 0 || tEnter > tExit {
		return 0, 0, false
	}
	return tEnter, tExit, true
}

// Contains reports whether p lies strictly inside the box on all three
// axes.
func (c Cell) Contains(p [3]float64) bool {
	return p[0] > c.Lower[0] && p[0] < c.Upper[0] &&
		p[1] > c.Lower[1] && p[1] < c.Upper[1] &&
		p[2] > c.Lower[2] && p[2] < c.Upper[2]
}

func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
