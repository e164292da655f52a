// Package gfx provides procedural and color image filters for Go.
//
// # Overview
//
// gfx is a collection of independent filters: noise generators, fractal
// renderers, color transforms, particle-system effects and tiling patterns.
// Each filter is a plain struct whose exported fields are its parameters,
// and each implements [Filter]:
//
//	src := gfx.FromImage(img)
//
//	clouds := noise.NewClouds()
//	clouds.Scale = 150
//	clouds.Seed = 42
//
//	out, err := gfx.Apply(clouds, src)
//
// # Pixels
//
// [Image] stores packed non-premultiplied ARGB pixels (0xAARRGGBB).
// Vector output (tilings, trees, flow fields) is rasterized with
// github.com/gogpu/gg through [Image.Context] and [FromContext].
//
// # Determinism
//
// Random filters carry a Seed field. A zero seed uses the process-wide
// seed ([Seed], [SetSeed], [Reseed]). Equal seeds and parameters produce
// byte-identical output.
//
// # Parameters
//
// Numeric parameters are clamped into their documented ranges before use;
// out-of-range values never fail a filter. Enumerated parameters are typed
// integers backed by [Choices], which also decode from YAML presets.
//
// # Packages
//
//   - adjust: channel, threshold, mixer, hue/saturation, balance, matrix
//   - noise: clouds, value noise, marble, organic noise
//   - fractal: complex fractals, chaos game, fractal tree, L-systems
//   - particles: flow field, spheres, lightning
//   - tiling: Penrose, Truchet, grids, stripes
//   - stylize: Kuwahara, k-means, Canny, blur, convolution
//   - preset: YAML pipelines
//
// # Concurrency
//
// Row-parallel filters share one bounded worker pool. A filter value may be
// used by one goroutine at a time; distinct values are independent.
package gfx
