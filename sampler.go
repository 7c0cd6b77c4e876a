package fractal

// sampleMidpoint is a pure function of two corner indices, their two
// heights, a noise amplitude and a seed, returning a deterministic
// displaced midpoint value.
//
// The digest is reduced to a uniform float in [0, 1) the same way
// github.com/kelindar/noise's Float64 turns a hash into a [0,1) value,
// then recentered to a signed displacement in [-amp/2, amp/2). This
// differs from an integer-modulo reduction only in distribution shape, not
// in the contract required of it: uniform, keyed, deterministic in all six
// arguments.
func sampleMidpoint(i1, i2 Index, v1, v2, amp float64, seed int64) float64 {
	h := digest(seed, i1, i2)
	u := float64(h) / float64(1<<64)
	displacement := (u - 0.5) * amp
	return (v1+v2)/2 + displacement
}
