package noise

import (
	"math"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	inoise "github.com/gogpu/gfx/internal/noise"
)

// Pattern is the base shape distorted by Marble.
type Pattern int

// Marble patterns.
const (
	Lines Pattern = iota
	Rings
	Grid
	Star
)

var patterns = gfx.Choices[Pattern]{"Lines", "Rings", "Grid", "Star"}

func (p Pattern) String() string { return patterns.Name(p) }

// ParsePattern parses a pattern name.
func ParsePattern(s string) (Pattern, error) { return patterns.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Pattern) UnmarshalYAML(node *yaml.Node) error {
	return patterns.Unmarshal(node, p)
}

// Wave is a periodic function with period 2π and range [-1, 1].
type Wave int

// Wave shapes.
const (
	Sine Wave = iota
	Triangle
	Sawtooth
	NoiseWave
)

var waves = gfx.Choices[Wave]{"Sine", "Triangle", "Sawtooth", "Noise"}

func (w Wave) String() string { return waves.Name(w) }

// ParseWave parses a wave name.
func ParseWave(s string) (Wave, error) { return waves.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *Wave) UnmarshalYAML(node *yaml.Node) error {
	return waves.Unmarshal(node, w)
}

// eval evaluates the wave at x. The noise wave samples n.
func (w Wave) eval(x float64, n *inoise.Perlin) float64 {
	const twoPi = 2 * math.Pi
	switch w {
	case Triangle:
		t := x/twoPi - math.Floor(x/twoPi)
		return 1 - 4*math.Abs(t-0.5)
	case Sawtooth:
		t := x/twoPi - math.Floor(x/twoPi)
		return 2*t - 1
	case NoiseWave:
		return lo.Clamp(n.Noise1(x), -1, 1)
	default:
		return math.Sin(x)
	}
}

// Marble distorts a periodic pattern with Perlin noise and maps the result
// through a color gradient.
type Marble struct {
	Pattern        Pattern      `yaml:"pattern"`
	Wave           Wave         `yaml:"wave"`
	Zoom           float64      `yaml:"zoom"`            // 1..200
	Angle          float64      `yaml:"angle"`           // degrees
	Distortion     float64      `yaml:"distortion"`      // 0..100
	DetailLevel    float64      `yaml:"detail_level"`    // 0..8
	DetailStrength float64      `yaml:"detail_strength"` // 0..50
	Smooth         bool         `yaml:"smooth"`
	Colors         gfx.Gradient `yaml:"colors"`
	Seed           int64        `yaml:"seed"`
}

// NewMarble returns dark green marble lines.
func NewMarble() *Marble {
	return &Marble{
		Pattern:        Lines,
		Wave:           Sine,
		Zoom:           10,
		Distortion:     25,
		DetailLevel:    3,
		DetailStrength: 12,
		Colors: gfx.Gradient{
			{Offset: 0, Color: 0xFF010E05},
			{Offset: 0.5, Color: 0xFF143226},
			{Offset: 1, Color: 0xFFEBFFFB},
		},
	}
}

// Transform implements gfx.Filter.
func (f *Marble) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := patterns.Check("pattern", f.Pattern); err != nil {
		return nil, err
	}
	if err := waves.Check("wave", f.Wave); err != nil {
		return nil, err
	}

	zoom := lo.Clamp(f.Zoom, 1, 200)
	strength := lo.Clamp(f.Distortion, 0, 100) / 5
	octaves := math.Pow(2, lo.Clamp(f.DetailLevel, 0, 8)-1)
	detail := lo.Clamp(f.DetailStrength, 0, 50) / 4

	rot := f.Angle * math.Pi / 180
	if f.Pattern == Grid {
		rot += math.Pi / 4
	} else {
		rot += math.Pi / 2
	}
	cos, sin := math.Cos(rot), math.Sin(rot)
	cx, cy := float64(src.Width)/2, float64(src.Height)/2

	perlin := inoise.NewPerlin(gfx.ResolveSeed(f.Seed))
	turbulence := perlin.Turbulence2
	if f.Smooth {
		turbulence = perlin.Turbulence2B
	}
	table := f.Colors.Table(256)
	pattern, wave := f.Pattern, f.Wave

	return generate(src, dst, func(x, y int) uint32 {
		dx, dy := float64(x)-cx, float64(y)-cy
		nx := (cos*dx + sin*dy) / zoom
		ny := (-sin*dx + cos*dy) / zoom

		d := strength*perlin.Noise2(nx*0.1, ny*0.1) + detail*turbulence(nx*0.2, ny*0.2, octaves)

		var c float64
		switch pattern {
		case Lines:
			c = (1 + wave.eval(nx+d, perlin)) / 2
		case Grid:
			d2 := strength*perlin.Noise2(ny*-0.1, nx*-0.1) + detail*turbulence(ny*-0.2, nx*-0.2, octaves)
			c = (2 + wave.eval(nx+d, perlin) + wave.eval(ny+d2, perlin)) / 4
		case Rings:
			c = (1 + wave.eval(d+math.Hypot(dx, dy)/zoom, perlin)) / 2
		case Star:
			c = (1 + wave.eval(d+(math.Atan2(dy, dx)-rot)*10, perlin)) / 2
		}
		return table[index(c, len(table))]
	}), nil
}
