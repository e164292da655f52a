// Package noise implements seeded coherent noise functions.
//
// All generators are values built from an explicit seed; none of them keep
// global state, so two generators with the same seed always agree. They are
// safe for concurrent reads once constructed.
//
// Generators:
//   - Perlin: classic gradient noise with 1D, 2D and 3D variants and the
//     turbulence sums used by marble-like patterns
//   - Improved: Ken Perlin's improved noise over a permutation table
//   - Value: hashed lattice values with smoothstep interpolation
//   - Cellular: jittered-grid Worley noise
//   - Simplex: OpenSimplex noise
//
// Fractal sums (FBm, Ridged, PingPong) work over any Func2.
package noise
