package noise

import "math/rand/v2"

// Improved is Ken Perlin's improved gradient noise in two dimensions.
// Output lies in [-1, 1].
type Improved struct {
	p [512]int
}

// NewImproved shuffles the permutation table with seed.
func NewImproved(seed int64) *Improved {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x1337))
	n := &Improved{}
	for i := range 256 {
		n.p[i] = i
	}
	for i := range 256 {
		j := rng.IntN(256)
		n.p[i], n.p[j] = n.p[j], n.p[i]
	}
	for i := range 256 {
		n.p[i+256] = n.p[i]
	}
	return n
}

// Eval2 returns the noise value at (x, y). Coordinates are expected to be
// non-negative, as they are for pixel positions.
func (n *Improved) Eval2(x, y float64) float64 {
	ix, iy := int(x), int(y)
	gx, gy := ix&255, iy&255
	x -= float64(ix)
	y -= float64(iy)

	u := Fade(x)
	v := Fade(y)

	a := n.p[gx] + gy
	aa := n.p[a]
	ab := n.p[a+1]
	b := n.p[gx+1] + gy
	ba := n.p[b]
	bb := n.p[b+1]

	s := Lerp(u, grad2(n.p[aa], x, y), grad2(n.p[ba], x-1, y))
	t := Lerp(u, grad2(n.p[ab], x, y-1), grad2(n.p[bb], x-1, y-1))
	return Lerp(v, s, t)
}

func grad2(hash int, x, y float64) float64 {
	h := hash & 15
	u, v := y, x
	if h < 8 {
		u = x
	}
	if h < 4 {
		v = y
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
