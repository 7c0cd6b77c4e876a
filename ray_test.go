package fractal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRayNormalizesDirection(t *testing.T) {
	r := NewRay([3]float64{3, 4, 0}, [3]float64{0, 0, 0})
	length := math.Sqrt(r.Dir[0]*r.Dir[0] + r.Dir[1]*r.Dir[1] + r.Dir[2]*r.Dir[2])
	assert.InDelta(t, 1.0, length, 1e-12)
}

func TestFaceMemoryRecordsUpToTwoDistinctFaces(t *testing.T) {
	var m faceMemory
	assert.Equal(t, 0, m.n)

	m.record(faceNegX)
	assert.Equal(t, 1, m.n)

	m.record(faceNegX) // duplicate, no new slot
	assert.Equal(t, 1, m.n)

	m.record(facePosZ)
	assert.Equal(t, 2, m.n)

	m.record(faceNegZ) // already have 2, no-op
	assert.Equal(t, 2, m.n)
	assert.ElementsMatch(t, []int{faceNegX, facePosZ}, m.known[:])
}

func TestFaceMemoryCandidatesByState(t *testing.T) {
	var m faceMemory
	assert.Len(t, m.candidates(), 4)

	m.record(faceNegX)
	assert.ElementsMatch(t, []int{faceNegX, facePosX, facePosZ}, m.candidates())

	m.record(facePosZ)
	assert.ElementsMatch(t, []int{faceNegX, facePosZ}, m.candidates())
}

func TestNeighborBaseRejectsUnderflow(t *testing.T) {
	base := NewIndex2(0, 0)
	_, ok := neighborBase(64, base, 256, faceNegX)
	assert.False(t, ok)
}

func TestNeighborBaseRejectsOverflow(t *testing.T) {
	base := NewIndex2(maxForWidth(32), 0)
	_, ok := neighborBase(32, base, 256, facePosX)
	assert.False(t, ok)
}

func TestNeighborBaseStepsWithinBounds(t *testing.T) {
	base := NewIndex2(1000, 1000)
	nb, ok := neighborBase(64, base, 256, facePosZ)
	require.True(t, ok)
	assert.Equal(t, uint64(1256), nb.C[1])
	assert.Equal(t, uint64(1000), nb.C[0])
}

// S5: ray hits near the entry point's (x, z) column.
func TestScenario5RayHitsNearOrigin(t *testing.T) {
	initial := 1.0 / (1 - 0.9) / 2
	f := New(2, initial, 1.0, 0.9, 5)
	top := f.UpperBound(0)

	origin := [3]float64{0.5, top, 0.5 + math.Pow(2, 31)}
	r := NewRay([3]float64{0, -1, 0}, origin)

	hit, ok := r.Intersect(f, top)
	require.True(t, ok, "a straight-down ray over a bounded field must find the surface")

	assert.InDelta(t, origin[0], hit[0], 1e-9, "a purely vertical ray doesn't drift in x")
	assert.InDelta(t, origin[2], hit[2], 1e-9, "a purely vertical ray doesn't drift in z")
	assert.GreaterOrEqual(t, hit[1], -f.UpperBound(0)-1e-6)
	assert.LessOrEqual(t, hit[1], 2*initial+f.UpperBound(0)+1e-6)
}

// Invariant 7: ray determinism across clones.
func TestInvariantRayDeterminism(t *testing.T) {
	initial := 1.0 / (1 - 0.9) / 2
	f := New(2, initial, 1.0, 0.9, 5)
	clone := f.Clone()
	top := f.UpperBound(0)

	origin := [3]float64{12.5, top, 44.5}
	r := NewRay([3]float64{0, -1, 0}, origin)

	a, okA := r.Intersect(f, top)
	c, okC := r.Intersect(clone, top)

	assert.Equal(t, okA, okC)
	if okA {
		assert.Equal(t, a, c)
	}
}

func TestRayIntersectMissesWhenGlobalBoxMissed(t *testing.T) {
	f := New(2, 0, 1.0, 0.9, 5)
	r := NewRay([3]float64{0, 1, 0}, [3]float64{5, f.UpperBound(0) + 100, 5})

	_, ok := r.Intersect(f, f.UpperBound(0))
	assert.False(t, ok)
}
