package noise

import (
	"math"
	"math/rand/v2"
)

const (
	tableSize = 0x100
	tableMask = 0xff
	offset    = 0x1000
)

// Perlin is classic gradient noise over random unit gradients.
type Perlin struct {
	p  [tableSize*2 + 2]int
	g1 [tableSize*2 + 2]float64
	g2 [tableSize*2 + 2][2]float64
	g3 [tableSize*2 + 2][3]float64
}

// NewPerlin builds gradient and permutation tables from seed.
func NewPerlin(seed int64) *Perlin {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x5EED))
	component := func() float64 {
		return float64(rng.IntN(2*tableSize)-tableSize) / tableSize
	}

	n := &Perlin{}
	for i := range tableSize {
		n.p[i] = i
		n.g1[i] = component()
		for {
			x, y := component(), component()
			if s := math.Hypot(x, y); s > 0 {
				n.g2[i] = [2]float64{x / s, y / s}
				break
			}
		}
		for {
			x, y, z := component(), component(), component()
			if s := math.Sqrt(x*x + y*y + z*z); s > 0 {
				n.g3[i] = [3]float64{x / s, y / s, z / s}
				break
			}
		}
	}
	for i := tableSize - 1; i >= 0; i-- {
		j := rng.IntN(tableSize)
		n.p[i], n.p[j] = n.p[j], n.p[i]
	}
	for i := range tableSize + 2 {
		n.p[tableSize+i] = n.p[i]
		n.g1[tableSize+i] = n.g1[i]
		n.g2[tableSize+i] = n.g2[i]
		n.g3[tableSize+i] = n.g3[i]
	}
	return n
}

func lattice(v float64) (b0, b1 int, r0, r1 float64) {
	t := v + offset
	it := int(t)
	b0 = it & tableMask
	b1 = (b0 + 1) & tableMask
	r0 = t - float64(it)
	r1 = r0 - 1
	return
}

// Noise1 returns one-dimensional noise in roughly [-1, 1].
func (n *Perlin) Noise1(x float64) float64 {
	bx0, bx1, rx0, rx1 := lattice(x)
	sx := SmoothStep(rx0)
	u := rx0 * n.g1[n.p[bx0]]
	v := rx1 * n.g1[n.p[bx1]]
	return 2.3 * Lerp(sx, u, v)
}

// Noise2 returns two-dimensional noise in roughly [-1, 1].
// It never returns NaN.
func (n *Perlin) Noise2(x, y float64) float64 {
	bx0, bx1, rx0, rx1 := lattice(x)
	by0, by1, ry0, ry1 := lattice(y)

	i := n.p[bx0]
	j := n.p[bx1]
	b00 := n.p[i+by0]
	b10 := n.p[j+by0]
	b01 := n.p[i+by1]
	b11 := n.p[j+by1]

	sx := SmoothStep(rx0)
	sy := SmoothStep(ry0)

	q := n.g2[b00]
	u := rx0*q[0] + ry0*q[1]
	q = n.g2[b10]
	v := rx1*q[0] + ry0*q[1]
	a := Lerp(sx, u, v)

	q = n.g2[b01]
	u = rx0*q[0] + ry1*q[1]
	q = n.g2[b11]
	v = rx1*q[0] + ry1*q[1]
	b := Lerp(sx, u, v)

	rv := 1.5 * Lerp(sy, a, b)
	if math.IsNaN(rv) {
		return 0
	}
	return rv
}

// Noise3 returns three-dimensional noise in roughly [-1, 1].
func (n *Perlin) Noise3(x, y, z float64) float64 {
	bx0, bx1, rx0, rx1 := lattice(x)
	by0, by1, ry0, ry1 := lattice(y)
	bz0, bz1, rz0, rz1 := lattice(z)

	i := n.p[bx0]
	j := n.p[bx1]
	b00 := n.p[i+by0]
	b10 := n.p[j+by0]
	b01 := n.p[i+by1]
	b11 := n.p[j+by1]

	t := SmoothStep(rx0)
	sy := SmoothStep(ry0)
	sz := SmoothStep(rz0)

	dot := func(g [3]float64, x, y, z float64) float64 {
		return x*g[0] + y*g[1] + z*g[2]
	}

	a := Lerp(t, dot(n.g3[b00+bz0], rx0, ry0, rz0), dot(n.g3[b10+bz0], rx1, ry0, rz0))
	b := Lerp(t, dot(n.g3[b01+bz0], rx0, ry1, rz0), dot(n.g3[b11+bz0], rx1, ry1, rz0))
	c := Lerp(sy, a, b)

	a = Lerp(t, dot(n.g3[b00+bz1], rx0, ry0, rz1), dot(n.g3[b10+bz1], rx1, ry0, rz1))
	b = Lerp(t, dot(n.g3[b01+bz1], rx0, ry1, rz1), dot(n.g3[b11+bz1], rx1, ry1, rz1))
	d := Lerp(sy, a, b)

	return 1.5 * Lerp(sz, c, d)
}

// Eval2 implements Func2.
func (n *Perlin) Eval2(x, y float64) float64 { return n.Noise2(x, y) }

// Turbulence2 sums the absolute value of octaves of Noise2, doubling the
// frequency while it does not exceed octaves.
func (n *Perlin) Turbulence2(x, y, octaves float64) float64 {
	t := 0.0
	for f := 1.0; f <= octaves; f *= 2 {
		t += math.Abs(n.Noise2(f*x, f*y)) / f
	}
	return t
}

// Turbulence2B is Turbulence2 without the absolute value, which gives a
// smoother, signed result.
func (n *Perlin) Turbulence2B(x, y, octaves float64) float64 {
	t := 0.0
	for f := 1.0; f <= octaves; f *= 2 {
		t += n.Noise2(f*x, f*y) / f
	}
	return t
}

// Turbulence3 is the three-dimensional version of Turbulence2.
func (n *Perlin) Turbulence3(x, y, z, octaves float64) float64 {
	t := 0.0
	for f := 1.0; f <= octaves; f *= 2 {
		t += math.Abs(n.Noise3(f*x, f*y, f*z)) / f
	}
	return t
}

// SmoothStep is the cubic Hermite curve 3t²-2t³ on [0, 1].
func SmoothStep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Fade is the quintic curve 6t⁵-15t⁴+10t³ used by improved noise.
func Fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// Lerp interpolates between a and b.
func Lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}
