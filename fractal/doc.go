// Package fractal renders self-similar images: escape-time sets in the
// complex plane, chaos game attractors, branching trees and L-system
// curves.
//
// Escape-time rendering splits rows across the shared worker pool. The
// tree, chaos game and L-system generators are sequential and draw through
// gg; LSystem also implements gfx.VectorFilter.
package fractal
