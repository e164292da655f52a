// Package adjust provides pointwise color transforms: channel inversion and
// extraction, thresholding, channel mixing, hue/saturation, solarization,
// color balance, posterization, histogram equalization and 4x5 color
// matrices.
//
// Every filter reads pixels independently, so all of them run row bands in
// parallel on the shared worker pool. Filters whose parameters describe an
// identity return the source image unchanged.
package adjust
