package noise

import (
	"math"
	"math/rand/v2"
)

// Value is hashed lattice value noise. Lattice values lie in [-1, 1] and
// are blended with smoothstep weights.
type Value struct {
	r1, r2, r3 int32
}

// NewValue derives the hash constants from seed.
func NewValue(seed int64) *Value {
	rng := rand.New(rand.NewPCG(uint64(seed), 0xA1))
	return &Value{
		r1: int32(1000 + rng.IntN(90000)),
		r2: int32(10000 + rng.IntN(900000)),
		r3: int32(100000 + rng.IntN(1000000000)),
	}
}

// Lattice returns the hashed value at an integer lattice point.
func (n *Value) Lattice(x, y int) float64 {
	h := int32(x) + int32(y)*57
	h = (h << 13) ^ h
	return 1 - float64((h*(h*h*n.r1+n.r2)+n.r3)&0x7fffffff)/1073741824.0
}

// Eval2 implements Func2.
func (n *Value) Eval2(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	ix, iy := int(fx), int(fy)
	tx, ty := SmoothStep(x-fx), SmoothStep(y-fy)

	i1 := Lerp(tx, n.Lattice(ix, iy), n.Lattice(ix+1, iy))
	i2 := Lerp(tx, n.Lattice(ix, iy+1), n.Lattice(ix+1, iy+1))
	return Lerp(ty, i1, i2)
}

// Octaves sums octaves of value noise starting at frequency and amplitude
// 1, doubling the frequency and multiplying the amplitude by persistence.
// The result is clamped to [0, 1].
func (n *Value) Octaves(x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	for range octaves {
		total += n.Eval2(x*frequency, y*frequency) * amplitude
		frequency *= 2
		amplitude *= persistence
	}
	return min(max(total, 0), 1)
}
