package fractal

import (
	"math"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
)

// ChaosColors selects which attractor point colors a plotted pixel.
type ChaosColors int

// Chaos game coloring.
const (
	// NoColors plots black points.
	NoColors ChaosColors = iota

	// LastVertex uses the color of the point just jumped towards.
	LastVertex

	// LastButOne uses the color of the previous target.
	LastButOne

	// LastButTwo uses the color of the target before that.
	LastButTwo
)

var chaosColors = gfx.Choices[ChaosColors]{"None", "Last Vertex", "Last but One", "Last but Two"}

func (c ChaosColors) String() string { return chaosColors.Name(c) }

// ParseChaosColors parses a chaos game coloring name.
func ParseChaosColors(s string) (ChaosColors, error) { return chaosColors.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ChaosColors) UnmarshalYAML(node *yaml.Node) error {
	return chaosColors.Unmarshal(node, c)
}

const (
	chaosMargin = 5
	chaosWarmup = 50
)

// ChaosGame plots the attractor of repeated jumps towards randomly chosen
// polygon vertices on a white background.
type ChaosGame struct {
	Vertices   int         `yaml:"vertices"`   // 3..10
	Fraction   float64     `yaml:"fraction"`   // jump ratio, percent 1..99
	Iterations int         `yaml:"iterations"` // thousands, 0..10000
	Colors     ChaosColors `yaml:"colors"`
	Center     bool        `yaml:"center"`    // also jump towards the center
	Midpoints  bool        `yaml:"midpoints"` // also jump towards edge midpoints
	NoRepeat   bool        `yaml:"no_repeat"` // never pick the same target twice in a row
	Polygon    bool        `yaml:"polygon"`   // outline the polygon
	Seed       int64       `yaml:"seed"`
}

// NewChaosGame returns the Sierpinski triangle game with a million jumps.
func NewChaosGame() *ChaosGame {
	return &ChaosGame{
		Vertices:   3,
		Fraction:   50,
		Iterations: 1000,
		Colors:     LastVertex,
	}
}

type attractor struct {
	x, y  float64
	color uint32
}

// attractors returns the jump targets laid out in the unit square, then
// scaled into the w x h image inside the margin.
func (f *ChaosGame) attractors(n, w, h int) []attractor {
	var pts []attractor
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	if n == 4 {
		pts = []attractor{{x: 0, y: 0}, {x: 0, y: 1}, {x: 1, y: 1}, {x: 1, y: 0}}
		minX, minY, maxX, maxY = 0, 0, 1, 1
	} else {
		for i := range n {
			a := float64(i)*2*math.Pi/float64(n) - math.Pi/2
			x, y := (1+math.Cos(a))/2, (1+math.Sin(a))/2
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
			pts = append(pts, attractor{x: x, y: y})
		}
	}
	if f.Midpoints {
		for i := range n {
			cur, prev := pts[i], pts[(i+n-1)%n]
			pts = append(pts, attractor{x: (cur.x + prev.x) / 2, y: (cur.y + prev.y) / 2})
		}
	}
	if f.Center {
		pts = append(pts, attractor{x: 0.5, y: 0.5})
	}

	hue := 0.0
	for i := range pts {
		switch {
		case f.Colors == NoColors:
			pts[i].color = uint32(gfx.Black)
		case i < n:
			pts[i].color = uint32(gfx.HSB(hue, 0.9, 0.8))
		default:
			pts[i].color = uint32(gfx.HSB(hue, 0.9, 0.4))
		}
		hue += goldenRatioConjugate
	}

	hScale := float64(w-2*chaosMargin) / (maxX - minX)
	vScale := float64(h-2*chaosMargin) / (maxY - minY)
	for i := range pts {
		pts[i].x = chaosMargin + hScale*(pts[i].x-minX)
		pts[i].y = chaosMargin + vScale*(pts[i].y-minY)
	}
	return pts
}

// goldenRatioConjugate spaces successive hues evenly around the wheel.
const goldenRatioConjugate = 0.618034

// Transform implements gfx.Filter.
func (f *ChaosGame) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := chaosColors.Check("colors", f.Colors); err != nil {
		return nil, err
	}
	w, h := src.Width, src.Height
	out := gfx.Dest(src, dst)
	out.Fill(gfx.White)

	n := lo.Clamp(f.Vertices, 3, 10)
	pts := f.attractors(n, w, h)
	factor := lo.Clamp(f.Fraction, 1, 99) / 100
	rng := gfx.NewRand(f.Seed)

	x := float64(rng.IntN(w))
	y := float64(rng.IntN(h))
	var last, last2 *attractor
	for range chaosWarmup {
		p := &pts[rng.IntN(len(pts))]
		x = x*factor + p.x*(1-factor)
		y = y*factor + p.y*(1-factor)
		last2, last = last, p
	}

	iterations := lo.Clamp(f.Iterations, 0, 10000) * 1000
	for range iterations {
		p := &pts[rng.IntN(len(pts))]
		if f.NoRepeat && p == last {
			continue
		}
		x = x*factor + p.x*(1-factor)
		y = y*factor + p.y*(1-factor)

		c := p.color
		switch f.Colors {
		case LastButOne:
			c = last.color
		case LastButTwo:
			c = last2.color
		}
		px := lo.Clamp(int(x), 0, w-1)
		py := lo.Clamp(int(y), 0, h-1)
		out.Pix[py*w+px] = c
		last2, last = last, p
	}

	if f.Polygon {
		return f.outline(src, dst, out, pts, n)
	}
	return out, nil
}

// outline draws the polygon edges over out and, when colored, a dot at
// every attractor.
func (f *ChaosGame) outline(src, dst, out *gfx.Image, pts []attractor, n int) (*gfx.Image, error) {
	dc := out.Context()
	defer dc.Close()
	dc.SetLineWidth(2)
	colored := f.Colors != NoColors
	if colored {
		dc.SetColor(gfx.Black)
	} else {
		dc.SetColor(gfx.Color(0xFFFF0000))
	}
	for i := range n {
		prev := pts[(i+n-1)%n]
		dc.DrawLine(prev.x, prev.y, pts[i].x, pts[i].y)
		if err := dc.Stroke(); err != nil {
			return nil, err
		}
	}
	if colored {
		for _, p := range pts {
			dc.DrawCircle(p.x, p.y, chaosMargin)
			dc.SetColor(gfx.Color(p.color))
			if err := dc.FillPreserve(); err != nil {
				return nil, err
			}
			dc.SetColor(gfx.Black)
			if err := dc.Stroke(); err != nil {
				return nil, err
			}
		}
	}
	return gfx.ContextResult(dc, src, dst), nil
}
