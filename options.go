package fractal

// Option configures a Field at construction time, following the same
// functional-options shape as github.com/kelindar/bench's
// bench.WithDuration/bench.WithSamples.
type Option func(*fieldOptions)

type fieldOptions struct {
	width   uint8
	integer bool
}

func defaultOptions() fieldOptions {
	return fieldOptions{width: 64}
}

// WithWidth32 narrows the index lattice to 32-bit components (the default
// is 64-bit). The width sets the maximum lattice resolution: 2^Width.
func WithWidth32() Option {
	return func(o *fieldOptions) { o.width = 32 }
}

// WithIntegerAmplitude truncates each level's amplitude to an integer
// before it decays further, an integer noise mode alongside the default
// float schedule, which keeps full precision throughout.
func WithIntegerAmplitude() Option {
	return func(o *fieldOptions) { o.integer = true }
}
