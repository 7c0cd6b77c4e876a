package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/kelindar/bench"
	"github.com/kelindar/fractal"
)

func main() {
	bench.Run(func(b *bench.B) {
		runStep(b)
		runFindPoint(b)
		runRayIntersect(b)
	}, bench.WithDuration(10*time.Millisecond), bench.WithSamples(100))
}

func runStep(b *bench.B) {
	for _, dim := range []int{1, 2} {
		name := fmt.Sprintf("step dim=%d", dim)
		b.Run(name, func(i int) {
			f := fractal.New(dim, 0, 1.0, 0.8, int64(i))
			f.Step()
		})
	}
}

func runFindPoint(b *bench.B) {
	f := fractal.New(2, 0, 1.0, 0.8, 0)
	b.Run("find-point cold", func(i int) {
		idx := fractal.NewIndex2(rand.Uint64(), rand.Uint64())
		_ = f.FindPoint(idx)
	})

	warm := fractal.New(2, 0, 1.0, 0.8, 0)
	for i := 0; i < 6; i++ {
		warm.Step()
	}
	b.Run("find-point warm", func(i int) {
		idx := fractal.NewIndex2(rand.Uint64(), rand.Uint64())
		_ = warm.FindPoint(idx)
	})
}

func runRayIntersect(b *bench.B) {
	initial := 1.0 / (1 - 0.9) / 2
	f := fractal.New(2, initial, 1.0, 0.9, 5)
	top := f.UpperBound(0)

	b.Run("ray intersect", func(i int) {
		x := float64(rand.Uint32())
		z := float64(rand.Uint32())
		r := fractal.NewRay([3]float64{0, -1, 0}, [3]float64{x, top + 1, z})
		clone := f.Clone()
		_, _ = r.Intersect(clone, top+1)
	})
}
