package noise

import (
	"math"
)

// Distance selects the metric used by Cellular noise.
type Distance int

const (
	Euclidean Distance = iota
	EuclideanSq
	Manhattan
	Hybrid
)

// CellReturn selects what Cellular noise reports for a point.
type CellReturn int

const (
	CellValue CellReturn = iota
	Distance1
	Distance2
	Distance2Add
	Distance2Sub
	Distance2Mul
	Distance2Div
)

// Cellular is Worley noise over a jittered unit grid.
type Cellular struct {
	seed     uint64
	Distance Distance
	Return   CellReturn
	Jitter   float64
}

// NewCellular returns Euclidean F1 cellular noise with full jitter.
func NewCellular(seed int64) *Cellular {
	return &Cellular{seed: uint64(seed), Distance: Euclidean, Return: Distance1, Jitter: 1}
}

func (c *Cellular) hash(x, y int) uint64 {
	h := c.seed ^ uint64(int64(x))*0x9E3779B97F4A7C15 ^ uint64(int64(y))*0xC2B2AE3D27D4EB4F
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return h
}

func (c *Cellular) metric(dx, dy float64) float64 {
	switch c.Distance {
	case EuclideanSq:
		return dx*dx + dy*dy
	case Manhattan:
		return math.Abs(dx) + math.Abs(dy)
	case Hybrid:
		return math.Abs(dx) + math.Abs(dy) + dx*dx + dy*dy
	default:
		return math.Sqrt(dx*dx + dy*dy)
	}
}

// Eval2 returns a value in roughly [-1, 1].
func (c *Cellular) Eval2(x, y float64) float64 {
	cx, cy := int(math.Floor(x)), int(math.Floor(y))
	d1, d2 := math.MaxFloat64, math.MaxFloat64
	var closest uint64

	for j := cy - 1; j <= cy+1; j++ {
		for i := cx - 1; i <= cx+1; i++ {
			h := c.hash(i, j)
			jx := (float64(h&0xFFFF)/0xFFFF - 0.5) * c.Jitter
			jy := (float64((h>>16)&0xFFFF)/0xFFFF - 0.5) * c.Jitter
			d := c.metric(float64(i)+0.5+jx-x, float64(j)+0.5+jy-y)
			switch {
			case d < d1:
				d2 = d1
				d1 = d
				closest = h
			case d < d2:
				d2 = d
			}
		}
	}

	switch c.Return {
	case CellValue:
		return float64(closest>>32)/float64(math.MaxUint32)*2 - 1
	case Distance1:
		return d1 - 1
	case Distance2:
		return d2 - 1
	case Distance2Add:
		return (d2+d1)*0.5 - 1
	case Distance2Sub:
		return d2 - d1 - 1
	case Distance2Mul:
		return d2*d1*0.5 - 1
	case Distance2Div:
		if d2 == 0 {
			return -1
		}
		return d1/d2 - 1
	}
	return 0
}
