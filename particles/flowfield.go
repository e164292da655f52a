package particles

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/field"
	inoise "github.com/gogpu/gfx/internal/noise"
	"github.com/gogpu/gfx/internal/particle"
	"github.com/gogpu/gfx/internal/shape"
)

// Physics selects how the field acts on a particle.
type Physics int

// Field effects.
const (
	// Velocity moves the particle by the field vector directly.
	Velocity Physics = iota

	// Acceleration adds the field vector to the velocity.
	Acceleration

	// Jolt adds the field vector to the acceleration.
	Jolt
)

var physicsModes = gfx.Choices[Physics]{"Velocity", "Acceleration", "Jolt"}

func (p Physics) String() string { return physicsModes.Name(p) }

// ParsePhysics parses a physics mode name.
func ParsePhysics(s string) (Physics, error) { return physicsModes.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Physics) UnmarshalYAML(node *yaml.Node) error {
	return physicsModes.Unmarshal(node, p)
}

// flowPad is how far particles may travel outside the image before dying.
const flowPad = 100

// FlowField traces particles through a noise-driven vector field and draws
// their trails as smooth strokes. A transparent Background draws over the
// source instead.
type FlowField struct {
	Particles   int     `yaml:"particles"`    // 0..10000
	Iterations  int     `yaml:"iterations"`   // 0..5000
	Zoom        float64 `yaml:"zoom"`         // 100..10000
	Force       float64 `yaml:"force"`        // step length, 0.01..40
	MaxVelocity float64 `yaml:"max_velocity"` // 1..5000
	Variance    float64 `yaml:"variance"`     // 1..100
	Smoothness  float64 `yaml:"smoothness"`   // field resolution, percent 1..100
	Turbulence  int     `yaml:"turbulence"`   // octaves, 1..8
	Wind        float64 `yaml:"wind"`         // 0..200
	Tolerance   float64 `yaml:"tolerance"`    // minimal trail segment, 0..200
	StrokeWidth float64 `yaml:"stroke_width"` // 0.1..100
	Physics     Physics `yaml:"physics"`

	Background      gfx.Color `yaml:"background"`
	Color           gfx.Color `yaml:"color"`
	ColorRandomness float64   `yaml:"color_randomness"` // percent, 0..100
	Seed            int64     `yaml:"seed"`
}

// NewFlowField returns a thousand faint white particles on black.
func NewFlowField() *FlowField {
	return &FlowField{
		Particles:   1000,
		Iterations:  100,
		Zoom:        4000,
		Force:       3.2,
		MaxVelocity: 4000,
		Variance:    20,
		Smoothness:  75,
		Turbulence:  1,
		Tolerance:   30,
		StrokeWidth: 1,
		Physics:     Velocity,
		Background:  gfx.Black,
		Color:       0x1FFFFFFF,
	}
}

// flowParticle is one simulated point and its recorded trail.
type flowParticle struct {
	x, y   float64
	vx, vy float64
	ax, ay float64
	lastX  float64
	lastY  float64
	color  gfx.Color
	trail  []gg.Point
}

// flowModel implements particle.Model for FlowField.
type flowModel struct {
	dc        *gg.Context
	rng       *rand.Rand
	bounds    particle.Bounds
	vectors   *field.Vector
	angle     func(x, y, z float64) float64
	physics   Physics
	force     float64
	maxVel    float64
	tolerance float64
	wind      float64
	step      int
	colors    func(x, y float64) gfx.Color
	drawErr   error
}

func (m *flowModel) Init(p *flowParticle) {
	m.flush(p)
	b := m.bounds
	*p = flowParticle{
		x: b.MinX + m.rng.Float64()*(b.MaxX-b.MinX),
		y: b.MinY + m.rng.Float64()*(b.MaxY-b.MinY),
	}
	p.lastX, p.lastY = p.x, p.y
	p.color = m.colors(p.x, p.y)
	p.trail = append(p.trail[:0], gg.Pt(p.x, p.y))
}

func (m *flowModel) Update(p *flowParticle) {
	var dx, dy float64
	if m.wind == 0 {
		dx, dy = m.vectors.Nearest(p.x, p.y)
	} else {
		cell := m.vectors.Cell
		a := m.angle(math.Round(p.x/cell)*cell, math.Round(p.y/cell)*cell, float64(m.step)*m.wind)
		dy, dx = math.Sincos(a)
		dx, dy = dx*m.force, dy*m.force
	}

	pvx, pvy := p.vx, p.vy
	switch m.physics {
	case Velocity:
		p.x += dx
		p.y += dy
	case Acceleration:
		p.vx += dx
		p.vy += dy
		p.x += p.vx
		p.y += p.vy
	case Jolt:
		p.ax += dx
		p.ay += dy
		p.vx += p.ax
		p.vy += p.ay
		p.x += p.vx
		p.y += p.vy
	}
	if p.vx*p.vx+p.vy*p.vy > m.maxVel {
		p.vx, p.vy = pvx, pvy
	}
}

func (m *flowModel) Draw(p *flowParticle) {
	if math.Abs(p.x-p.lastX) > m.tolerance || math.Abs(p.y-p.lastY) > m.tolerance {
		p.trail = append(p.trail, gg.Pt(p.x, p.y))
		p.lastX, p.lastY = p.x, p.y
	}
}

func (m *flowModel) Dead(p *flowParticle) bool {
	return !m.bounds.Contains(p.x, p.y)
}

// flush strokes the particle's trail, if it has one.
func (m *flowModel) flush(p *flowParticle) {
	if len(p.trail) < 2 {
		return
	}
	m.dc.SetColor(p.color)
	smoothPath(p.trail).Replay(m.dc)
	if err := m.dc.Stroke(); err != nil && m.drawErr == nil {
		m.drawErr = err
	}
	p.trail = p.trail[:0]
}

// smoothPath connects points with quadratic curves through the midpoints
// of consecutive segments. Two points give a straight line.
func smoothPath(pts []gg.Point) *shape.Path {
	var path shape.Path
	path.MoveTo(pts[0].X, pts[0].Y)
	if len(pts) < 3 {
		path.LineTo(pts[1].X, pts[1].Y)
		return &path
	}
	for i := 1; i < len(pts)-1; i++ {
		mx := (pts[i].X + pts[i+1].X) / 2
		my := (pts[i].Y + pts[i+1].Y) / 2
		path.QuadTo(pts[i].X, pts[i].Y, mx, my)
	}
	last := pts[len(pts)-1]
	path.LineTo(last.X, last.Y)
	return &path
}

// Transform implements gfx.Filter.
func (f *FlowField) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := physicsModes.Check("physics", f.Physics); err != nil {
		return nil, err
	}
	w, h := src.Width, src.Height
	count := lo.Clamp(f.Particles, 0, 10000)
	iterations := lo.Clamp(f.Iterations, 0, 5000)
	if count == 0 || iterations == 0 {
		out := gfx.Dest(src, dst)
		if f.Background>>24 == 0 {
			out.CopyFrom(src)
		} else {
			out.Fill(f.Background)
		}
		return out, nil
	}

	dc, err := shape.Canvas(src, f.Background)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	dc.SetLineWidth(lo.Clamp(f.StrokeWidth, 0.1, 100))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	m := f.model(dc, w, h)
	sys := particle.New(count, particle.Model[flowParticle](m))
	for range iterations {
		sys.Step()
		m.step++
	}
	sys.Flush(m.flush)
	if m.drawErr != nil {
		return nil, m.drawErr
	}
	return gfx.ContextResult(dc, src, dst), nil
}

func (f *FlowField) model(dc *gg.Context, w, h int) *flowModel {
	seed := gfx.ResolveSeed(f.Seed)
	rng := gfx.NewRand(seed)
	simplex := inoise.NewSimplex(seed)

	zoom := lo.Clamp(f.Zoom, 100, 10000) * 0.1
	force := lo.Clamp(f.Force, 0.01, 40)
	maxVel := lo.Clamp(f.MaxVelocity, 1, 5000)
	spread := math.Pi * lo.Clamp(f.Variance, 1, 100) / 10
	octaves := float64(lo.Clamp(f.Turbulence, 1, 8))
	quality := lo.Clamp(f.Smoothness, 1, 100) / 99 * 400 / zoom
	theta := rng.Float64() * 2 * spread

	angle := func(x, y, z float64) float64 {
		return theta + simplex.Turbulence3(x/zoom, y/zoom, z, octaves)*spread
	}
	vectors := field.NewVector(w, h, 1/quality)
	vectors.FillAngle(func(x, y float64) (float64, float64) {
		return angle(x, y, 0), force
	})

	m := &flowModel{
		dc:        dc,
		rng:       rng,
		bounds:    particle.Padded(w, h, flowPad),
		vectors:   vectors,
		angle:     angle,
		physics:   f.Physics,
		force:     force,
		maxVel:    maxVel * maxVel / 10000,
		tolerance: lo.Clamp(f.Tolerance, 0, 200),
		wind:      lo.Clamp(f.Wind, 0, 200) / 10000,
		colors:    func(float64, float64) gfx.Color { return f.Color },
	}

	if randomness := lo.Clamp(f.ColorRandomness, 0, 100) / 100; randomness > 0 {
		palette := field.NewScalar(w, h, 1/quality)
		hues := goldenHues(rng, f.Color)
		palette.Fill(func(float64, float64) float64 { return hues() })
		base := f.Color
		m.colors = func(x, y float64) gfx.Color {
			x = lo.Clamp(x, 0, float64(w-1))
			y = lo.Clamp(y, 0, float64(h-1))
			return blendHue(base, palette.Nearest(x, y), randomness)
		}
	}
	return m
}

// goldenRatioConjugate spaces successive hues evenly around the wheel.
const goldenRatioConjugate = 0.618033988749895

// goldenHues returns a generator of hues starting at a random offset from
// the hue of c and advancing by the golden ratio.
func goldenHues(rng *rand.Rand, c gfx.Color) func() float64 {
	_, r, g, b := gfx.Unpack(uint32(c))
	h, _, _ := gfx.RGBToHSB(r, g, b)
	h += rng.Float64()
	return func() float64 {
		h += goldenRatioConjugate
		return h - math.Floor(h)
	}
}

// blendHue mixes c with a saturated color of the given hue, keeping c's
// alpha and brightness.
func blendHue(c gfx.Color, hue, amount float64) gfx.Color {
	a, r, g, b := gfx.Unpack(uint32(c))
	_, s, v := gfx.RGBToHSB(r, g, b)
	nr, ng, nb := gfx.HSBToRGB(hue, math.Max(s, 0.7), math.Max(v, 0.5))
	mixed := gfx.LerpPixel(gfx.Pack(a, r, g, b), gfx.Pack(a, nr, ng, nb), amount)
	return gfx.Color(mixed)
}
