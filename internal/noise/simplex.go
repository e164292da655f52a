package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Simplex wraps OpenSimplex noise. Output lies in [-1, 1].
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex returns OpenSimplex noise seeded with seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.New(seed)}
}

// Eval2 implements Func2.
func (s *Simplex) Eval2(x, y float64) float64 {
	return s.n.Eval2(x, y)
}

// Eval3 samples three-dimensional noise.
func (s *Simplex) Eval3(x, y, z float64) float64 {
	return s.n.Eval3(x, y, z)
}

// Turbulence3 sums the absolute value of octaves of Eval3, doubling the
// frequency while it does not exceed octaves.
func (s *Simplex) Turbulence3(x, y, z, octaves float64) float64 {
	t := 0.0
	for f := 1.0; f <= octaves; f *= 2 {
		t += math.Abs(s.n.Eval3(f*x, f*y, f*z)) / f
	}
	return t
}
