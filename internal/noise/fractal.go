package noise

import "math"

// Func2 is a two-dimensional noise function with output in about [-1, 1].
type Func2 interface {
	Eval2(x, y float64) float64
}

// Fractal describes how octaves of a base function are summed.
type Fractal struct {
	Octaves    int
	Lacunarity float64
	Gain       float64

	// WeightedStrength makes each octave's amplitude depend on the value
	// of the previous one (0 disables it).
	WeightedStrength float64

	// PingPongStrength scales the input of the ping-pong fold.
	PingPongStrength float64
}

// DefaultFractal is three octaves with lacunarity 2 and gain 0.5.
func DefaultFractal() Fractal {
	return Fractal{Octaves: 3, Lacunarity: 2, Gain: 0.5, PingPongStrength: 2}
}

// bounding returns the reciprocal of the maximum possible sum so that the
// fractal output stays in the base function's range.
func (f Fractal) bounding() float64 {
	gain := math.Abs(f.Gain)
	amp := gain
	ampFractal := 1.0
	for i := 1; i < f.Octaves; i++ {
		ampFractal += amp
		amp *= gain
	}
	return 1 / ampFractal
}

// FBm sums octaves of fn.
func (f Fractal) FBm(fn Func2, x, y float64) float64 {
	sum := 0.0
	amp := f.bounding()
	for range max(f.Octaves, 1) {
		n := fn.Eval2(x, y)
		sum += n * amp
		amp *= Lerp(f.WeightedStrength, 1, min(n+1, 2)*0.5)
		x *= f.Lacunarity
		y *= f.Lacunarity
		amp *= f.Gain
	}
	return sum
}

// Ridged sums octaves of 1-2|fn|, producing sharp crests.
func (f Fractal) Ridged(fn Func2, x, y float64) float64 {
	sum := 0.0
	amp := f.bounding()
	for range max(f.Octaves, 1) {
		n := math.Abs(fn.Eval2(x, y))
		sum += (n*-2 + 1) * amp
		amp *= Lerp(f.WeightedStrength, 1, 1-n)
		x *= f.Lacunarity
		y *= f.Lacunarity
		amp *= f.Gain
	}
	return sum
}

// PingPong folds each octave back and forth across [0, 1].
func (f Fractal) PingPong(fn Func2, x, y float64) float64 {
	sum := 0.0
	amp := f.bounding()
	for range max(f.Octaves, 1) {
		n := pingPong((fn.Eval2(x, y) + 1) * f.PingPongStrength)
		sum += (n - 0.5) * 2 * amp
		amp *= Lerp(f.WeightedStrength, 1, n)
		x *= f.Lacunarity
		y *= f.Lacunarity
		amp *= f.Gain
	}
	return sum
}

func pingPong(t float64) float64 {
	t -= math.Trunc(t*0.5) * 2
	if t < 1 {
		return t
	}
	return 2 - t
}

// Warp displaces (x, y) by amplitude times two decorrelated samples of fn.
func Warp(fn Func2, x, y, amplitude, frequency float64) (float64, float64) {
	if amplitude == 0 {
		return x, y
	}
	dx := fn.Eval2(x*frequency, y*frequency)
	dy := fn.Eval2(x*frequency+31.7, y*frequency+47.3)
	return x + dx*amplitude, y + dy*amplitude
}
