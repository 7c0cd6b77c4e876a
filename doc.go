// Package fractal builds a deterministic fractal-noise height field over an
// N-dimensional integer index lattice using keyed midpoint displacement
// (diamond-square), and ray-traces the resulting 2D field as a 3D terrain.
//
// A Field is seeded by a keyed hash so any index can be evaluated on demand
// via FindPoint, independent of which other indices have already been
// materialized, while an internal cache accelerates neighborhood queries
// and bulk refinement (Step). Ray walks the field surface using the bounded
// descent in CachedBoundsFor as a pruning oracle.
package fractal
