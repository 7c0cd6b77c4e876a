package fractal

import "iter"

// Status reports whether a bulk refinement Step actually refined the
// field, or found the amplitude schedule already exhausted.
type Status int

const (
	// Continued means the step materialized a finer level.
	Continued Status = iota
	// Terminated means noise[iterations] was already negligible; the
	// field was left untouched. Not an error.
	Terminated
)

// Field is the cache of materialized Index→height samples, plus the
// operations that grow or query it.
type Field struct {
	values     map[Index]float64
	midpoint   uint64
	iterations int
	sched      *schedule
	decay      float64
	seed       int64
	dim        int
	width      uint8
	initial    float64
}

// New constructs a field with the singleton sample (0,...,0) = initial.
// dim must be 1 or 2. decay must lie in (0, 1).
func New(dim int, initial, amplitude, decay float64, seed int64, opts ...Option) *Field {
	if dim != 1 && dim != 2 {
		panic("fractal: dim must be 1 or 2")
	}
	if decay <= 0 || decay >= 1 {
		panic("fractal: decay must lie in (0, 1)")
	}
	if amplitude < 0 {
		panic("fractal: amplitude must be non-negative")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	values := make(map[Index]float64, 1)
	root := zeroIndex(dim)
	values[root] = initial

	return &Field{
		values:     values,
		midpoint:   uint64(1) << (o.width - 1),
		iterations: 0,
		sched:      buildSchedule(amplitude, decay, o.width, o.integer),
		decay:      decay,
		seed:       seed,
		dim:        dim,
		width:      o.width,
		initial:    initial,
	}
}

func (f *Field) combos() int { return 1 << uint(f.dim) }

func (f *Field) mustGet(idx Index) float64 {
	v, ok := f.values[idx]
	if !ok {
		panic("fractal: missing cached parent; refinement invariant violated")
	}
	return v
}

// Step performs bulk refinement: every index already in the cache gains
// its 2^Dim-1 midpoint neighbors at the current step, the step halves, and
// iterations advances. Returns Terminated, leaving the field untouched,
// once the amplitude schedule is exhausted.
func (f *Field) Step() Status {
	level := f.iterations
	if f.sched.exhausted(level) {
		return Terminated
	}
	amp := f.sched.amplitude(level)
	combos := f.combos()
	twice := wrapMul2(f.width, f.midpoint)

	next := make(map[Index]float64, len(f.values)*combos)
	for base, v := range f.values {
		next[base] = v
		for combo := 1; combo < combos; combo++ {
			target := applyCombo(f.width, f.dim, base, f.midpoint, combo)
			if _, exists := next[target]; exists {
				continue
			}
			second := applyCombo(f.width, f.dim, base, twice, combo)
			sv := f.mustGet(second)
			next[target] = sampleMidpoint(base, second, v, sv, amp, f.seed)
		}
	}

	f.values = next
	f.midpoint >>= 1
	f.iterations++
	return Continued
}

// lookupOrCompute returns the cached value at target, synthesizing and
// caching it from its two coarse parents when absent.
func (f *Field) lookupOrCompute(target Index, midpoint uint64, amp float64) float64 {
	if v, ok := f.values[target]; ok {
		return v
	}

	twice := wrapMul2(f.width, midpoint)
	first := snapDownEach(f.dim, target, twice)
	second := first
	for axis := 0; axis < f.dim; axis++ {
		if target.C[axis] != first.C[axis] {
			second.C[axis] = wrapAdd(f.width, first.C[axis], twice)
		}
	}

	fv := f.mustGet(first)
	sv := f.mustGet(second)
	v := sampleMidpoint(first, second, fv, sv, amp, f.seed)
	f.values[target] = v
	return v
}

// FindPoint is on-demand single-point evaluation: it descends the
// refinement tree from the root, materializing only the O(Width·2^Dim)
// corners along the way, and agrees with bulk refinement at every level a
// Step would have populated.
func (f *Field) FindPoint(target Index) float64 {
	if v, ok := f.values[target]; ok {
		return v
	}

	base := zeroIndex(f.dim)
	midpoint := uint64(1) << (f.width - 1)
	level := 0
	combos := f.combos()

	for {
		if base == target {
			return f.mustGet(base)
		}

		next := roundCellBase(f.width, f.dim, base, target, midpoint)
		amp := f.sched.amplitude(level)
		for combo := 0; combo < combos; combo++ {
			corner := applyCombo(f.width, f.dim, next, midpoint, combo)
			f.lookupOrCompute(corner, midpoint, amp)
		}
		base = next

		midpoint >>= 1
		level++
		if midpoint == 0 || f.sched.exhausted(level) {
			return f.mustGet(base)
		}
	}
}

// CachedBoundsFor is bounded descent: it walks the refinement tree from
// the root, stopping the instant targetHeight leaves the envelope of the
// current cell, and returns that cell's tight interval, base corner and
// step.
func (f *Field) CachedBoundsFor(query Index, targetHeight float64) (terminated bool, lo, hi float64, base Index, step uint64) {
	base = zeroIndex(f.dim)
	midpoint := uint64(1) << (f.width - 1)
	level := 0
	combos := f.combos()
	corners := make([]Index, combos)

	for {
		next := roundCellBase(f.width, f.dim, base, query, midpoint)
		amp := f.sched.amplitude(level)
		for combo := 0; combo < combos; combo++ {
			c := applyCombo(f.width, f.dim, next, midpoint, combo)
			f.lookupOrCompute(c, midpoint, amp)
			corners[combo] = c
		}

		minV, maxV := f.cornerMinMax(corners)
		b := f.sched.upperBound(level)
		lo, hi = minV-b, maxV+b
		step = midpoint
		base = next

		if targetHeight < lo || targetHeight > hi {
			return false, lo, hi, base, step
		}
		if f.sched.exhausted(level) {
			return true, lo, hi, base, step
		}

		midpoint >>= 1
		level++
		if midpoint == 0 {
			return true, lo, hi, base, 1
		}
	}
}

func (f *Field) cornerMinMax(corners []Index) (min, max float64) {
	min, max = f.mustGet(corners[0]), f.mustGet(corners[0])
	for _, c := range corners[1:] {
		v := f.mustGet(c)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// UpperBound returns bounds[level]: the conservative displacement envelope
// a descendant of a level-`level` cell may still accumulate.
func (f *Field) UpperBound(level int) float64 { return f.sched.upperBound(level) }

// Iterations returns the number of successful bulk refinement steps.
func (f *Field) Iterations() int { return f.iterations }

// Midpoint returns the current index-space half-step; 0 once depleted.
func (f *Field) Midpoint() uint64 { return f.midpoint }

// Decay returns the per-level amplitude decay ratio.
func (f *Field) Decay() float64 { return f.decay }

// Seed returns the keying seed.
func (f *Field) Seed() int64 { return f.seed }

// Dim returns the lattice dimension (1 or 2).
func (f *Field) Dim() int { return f.dim }

// Width returns the index bit width (32 or 64).
func (f *Field) Width() uint8 { return f.width }

// Len reports how many samples are currently materialized.
func (f *Field) Len() int { return len(f.values) }

// Snapshot returns a read-only copy of the materialized Index→height
// mapping. Key order is not specified and must not be relied upon.
func (f *Field) Snapshot() map[Index]float64 {
	out := make(map[Index]float64, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// All streams every materialized sample without copying the backing map,
// mirroring the range-over-func idiom github.com/kelindar/noise's
// sparse.go uses for its SSI1/SSI2 iterators.
func (f *Field) All() iter.Seq2[Index, float64] {
	return func(yield func(Index, float64) bool) {
		for k, v := range f.values {
			if !yield(k, v) {
				return
			}
		}
	}
}

// IntoValues consumes the field's cache, returning the backing map and
// leaving the field empty.
func (f *Field) IntoValues() map[Index]float64 {
	v := f.values
	f.values = nil
	return v
}

// Clone returns an independent field with its own copy of the cache,
// sharing the (immutable) schedule. Parallel workers clone a field rather
// than share one; independent clones seeded identically produce
// bit-identical results.
func (f *Field) Clone() *Field {
	values := make(map[Index]float64, len(f.values))
	for k, v := range f.values {
		values[k] = v
	}
	return &Field{
		values:     values,
		midpoint:   f.midpoint,
		iterations: f.iterations,
		sched:      f.sched,
		decay:      f.decay,
		seed:       f.seed,
		dim:        f.dim,
		width:      f.width,
		initial:    f.initial,
	}
}
