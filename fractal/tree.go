package fractal

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/shape"
)

// TreeQuality trades branch shading for speed.
type TreeQuality int

// Tree rendering qualities.
const (
	// Better shades each branch with a gradient towards the next depth.
	Better TreeQuality = iota

	// Faster paints each branch in a single color.
	Faster
)

var treeQualities = gfx.Choices[TreeQuality]{"Better", "Faster"}

func (q TreeQuality) String() string { return treeQualities.Name(q) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (q *TreeQuality) UnmarshalYAML(node *yaml.Node) error {
	return treeQualities.Unmarshal(node, q)
}

// FractalTree grows a binary tree from the bottom center of the image.
// A transparent Background draws the tree over the source.
type FractalTree struct {
	Depth      int     `yaml:"depth"`      // 1..17
	Angle      float64 `yaml:"angle"`      // branch split, degrees 1..45
	Randomness float64 `yaml:"randomness"` // percent, 0..100
	Curvedness float64 `yaml:"curvedness"` // percent, 0..50
	Gravity    float64 `yaml:"gravity"`    // -100..100
	Wind       float64 `yaml:"wind"`       // -100..100
	Zoom       float64 `yaml:"zoom"`       // percent, 10..200

	// Width scales all strokes and TrunkWidth the trunk relative to the
	// leaves, both in percent.
	Width      float64 `yaml:"width"`       // 100..300
	TrunkWidth float64 `yaml:"trunk_width"` // 100..500

	Colors     gfx.Gradient `yaml:"colors"` // leaves at 0, trunk at 1
	Background gfx.Color    `yaml:"background"`
	Quality    TreeQuality  `yaml:"quality"`
	Seed       int64        `yaml:"seed"`
}

// NewFractalTree returns a ten-level brown and green tree.
func NewFractalTree() *FractalTree {
	return &FractalTree{
		Depth:      10,
		Angle:      20,
		Randomness: 40,
		Curvedness: 10,
		Zoom:       100,
		Width:      100,
		TrunkWidth: 200,
		Colors: gfx.Gradient{
			{Offset: 0.25, Color: 0xFF8C6449},
			{Offset: 0.75, Color: 0xFF1F7D2A},
		},
		Quality: Better,
	}
}

// treeLevel holds the precomputed stroke settings of one depth.
type treeLevel struct {
	width   float64
	color   gfx.Color
	gravity float64
	wind    float64
}

type treeGrower struct {
	dc        *gg.Context
	rng       *rand.Rand
	levels    []treeLevel
	split     float64
	length    float64
	lengthDev float64
	angleDev  float64
	physics   bool
	shaded    bool
	leftFirst bool
	err       error
}

// Transform implements gfx.Filter.
func (f *FractalTree) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := treeQualities.Check("quality", f.Quality); err != nil {
		return nil, err
	}
	depth := lo.Clamp(f.Depth, 1, 17)
	zoom := lo.Clamp(f.Zoom, 10, 200)
	randomness := lo.Clamp(f.Randomness, 0, 100) / 100
	gravity := lo.Clamp(f.Gravity, -100, 100)
	wind := lo.Clamp(f.Wind, -100, 100)
	colors := f.Colors.Sorted()

	t := &treeGrower{
		rng:       gfx.NewRand(f.Seed),
		levels:    make([]treeLevel, depth+1),
		split:     lo.Clamp(f.Angle, 1, 45),
		length:    zoom / 10,
		physics:   gravity != 0 || wind != 0,
		shaded:    f.Quality == Better,
		leftFirst: true,
	}
	t.lengthDev = t.length * randomness
	t.angleDev = 10 * randomness

	base := 1.0
	if depth > 1 {
		base = math.Pow(lo.Clamp(f.TrunkWidth, 100, 500)/100, 1/float64(depth-1))
	}
	for d := 1; d <= depth; d++ {
		width := float64(d) * lo.Clamp(f.Width, 100, 300) / 100 * math.Pow(base, float64(d-1))
		strength := 0.02 / width
		t.levels[d] = treeLevel{
			width:   width * zoom / 100,
			color:   colors.At(1 - float64(d)/float64(depth)),
			gravity: strength * gravity,
			wind:    strength * wind,
		}
	}

	curve := lo.Clamp(f.Curvedness, 0, 50) / 100
	if t.rng.IntN(2) == 0 {
		curve = -curve
	}

	dc, err := shape.Canvas(src, f.Background)
	if err != nil {
		return nil, err
	}
	t.dc = dc
	defer t.dc.Close()
	t.dc.SetLineCap(gg.LineCapRound)
	t.dc.SetLineJoin(gg.LineJoinRound)

	w, h := float64(src.Width), float64(src.Height)
	t.grow(w/2, h, 270+t.angleJitter(), depth, curve)
	if t.err != nil {
		return nil, t.err
	}
	return gfx.ContextResult(t.dc, src, dst), nil
}

func (t *treeGrower) angleJitter() float64 {
	if t.angleDev == 0 {
		return 0
	}
	return -t.angleDev + t.rng.Float64()*2*t.angleDev
}

func (t *treeGrower) branchLength() float64 {
	if t.lengthDev == 0 {
		return t.length
	}
	return t.length - t.lengthDev + 2*t.lengthDev*t.rng.Float64()
}

// grow draws a branch of the given depth and recurses into both children.
// The curvature flips at every level.
func (t *treeGrower) grow(x1, y1, angle float64, depth int, curve float64) {
	if depth == 0 || t.err != nil {
		return
	}
	curve = -curve
	if t.physics {
		angle = t.bend(angle, t.levels[depth])
	}

	rad := angle * math.Pi / 180
	x2 := x1 + math.Cos(rad)*float64(depth)*t.branchLength()
	y2 := y1 + math.Sin(rad)*float64(depth)*t.branchLength()

	lvl := t.levels[depth]
	t.dc.SetLineWidth(lvl.width)
	if t.shaded && depth > 1 {
		t.dc.SetStrokeBrush(gg.NewLinearGradientBrush(x1, y1, x2, y2).
			AddColorStop(0, lvl.color.Float()).
			AddColorStop(1, t.levels[depth-1].color.Float()))
	} else {
		t.dc.SetColor(lvl.color)
	}
	t.dc.MoveTo(x1, y1)
	if curve == 0 {
		t.dc.LineTo(x2, y2)
	} else {
		// One control point on the normal of the chord, used twice.
		dx, dy := x2-x1, y2-y1
		cx := x1 + dx/2 - dy*curve
		cy := y1 + dy/2 + dx*curve
		t.dc.CubicTo(cx, cy, cx, cy, x2, y2)
	}
	if err := t.dc.Stroke(); err != nil {
		t.err = err
		return
	}

	left := angle - t.split + t.angleJitter()
	right := angle + t.split + t.angleJitter()
	t.leftFirst = !t.leftFirst
	if t.leftFirst {
		t.grow(x2, y2, left, depth-1, curve)
		t.grow(x2, y2, right, depth-1, curve)
	} else {
		t.grow(x2, y2, right, depth-1, curve)
		t.grow(x2, y2, left, depth-1, curve)
	}
}

// bend pulls the angle, in degrees, down for gravity and sideways for
// wind. Thin branches bend more.
func (t *treeGrower) bend(angle float64, lvl treeLevel) float64 {
	angle = math.Mod(angle+720, 360)
	g, w := lvl.gravity, lvl.wind
	switch {
	case angle < 90:
		angle += (90 - angle) * g
		angle -= angle / 90 * w
	case angle < 180:
		angle -= (angle - 90) * g
		angle -= (180 - angle) * w
	case angle < 270:
		angle -= (270 - angle) * g
		angle += (angle - 180) * w
	default:
		angle += (angle - 270) * g
		angle += (360 - angle) * w
	}
	return angle
}
