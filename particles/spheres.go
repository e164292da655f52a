package particles

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
)

// ColorSource selects where sphere colors come from.
type ColorSource int

// Sphere color sources.
const (
	// FromImage samples the source pixel under the sphere center.
	FromImage ColorSource = iota

	// RandomColors draws saturated colors from the seeded generator.
	RandomColors
)

var colorSources = gfx.Choices[ColorSource]{"Image", "Random"}

func (s ColorSource) String() string { return colorSources.Name(s) }

// ParseColorSource parses a color source name.
func ParseColorSource(s string) (ColorSource, error) { return colorSources.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *ColorSource) UnmarshalYAML(node *yaml.Node) error {
	return colorSources.Unmarshal(node, s)
}

// R2 sequence constants: the plastic number and its inverse powers.
const (
	phi2 = 1.32471795724474602596
	r2a1 = 1 / phi2
	r2a2 = 1 / (phi2 * phi2)
)

// Spheres covers the image with shaded circles placed on the R2
// low-discrepancy sequence.
type Spheres struct {
	Radius     float64     `yaml:"radius"`     // 2..100
	Randomness float64     `yaml:"randomness"` // radius variation, percent 0..100
	Density    float64     `yaml:"density"`    // percent, 1..100
	Colors     ColorSource `yaml:"colors"`
	Opacity    float64     `yaml:"opacity"` // percent, 0..100
	Highlights bool        `yaml:"highlights"`
	LightAngle float64     `yaml:"light_angle"` // azimuth, degrees
	Elevation  float64     `yaml:"elevation"`   // degrees, 0..90
	Seed       int64       `yaml:"seed"`
}

// NewSpheres returns opaque highlighted spheres of radius 10 at 50% density.
func NewSpheres() *Spheres {
	return &Spheres{
		Radius:     10,
		Density:    50,
		Colors:     FromImage,
		Opacity:    100,
		Highlights: true,
		Elevation:  45,
	}
}

// spherePosition returns the center of sphere i on a w x h image.
func spherePosition(i, w, h int) (x, y int) {
	fx := 0.5 + r2a1*float64(i+1)
	fy := 0.5 + r2a2*float64(i+1)
	x = int(float64(w) * (fx - math.Floor(fx)))
	y = int(float64(h) * (fy - math.Floor(fy)))
	return x, y
}

// Transform implements gfx.Filter.
func (f *Spheres) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := colorSources.Check("colors", f.Colors); err != nil {
		return nil, err
	}
	w, h := src.Width, src.Height
	r := lo.Clamp(f.Radius, 2, 100)
	count := int(float64(w*h) * lo.Clamp(f.Density, 1, 100) / 100 / (r * r))
	randomness := lo.Clamp(f.Randomness, 0, 100) / 100
	opacity := lo.Clamp(f.Opacity, 0, 100) / 100
	if count == 0 || opacity == 0 {
		return src, nil
	}
	rng := gfx.NewRand(f.Seed)

	angle := f.LightAngle*math.Pi/180 + math.Pi
	elevation := lo.Clamp(f.Elevation, 0, 90) * math.Pi / 180
	shiftX := math.Cos(angle) * math.Cos(elevation)
	shiftY := math.Sin(angle) * math.Cos(elevation)

	dc := src.Context()
	defer dc.Close()

	for i := range count {
		x, y := spherePosition(i, w, h)
		p := src.At(x, y)
		if gfx.Alpha(p) == 0 {
			continue
		}
		c := gfx.Color(p) | 0xFF000000
		if f.Colors == RandomColors {
			c = gfx.HSB(rng.Float64(), 0.5+rng.Float64()/2, 0.6+rng.Float64()*0.4)
		}
		radius := r
		if randomness > 0 {
			radius = math.Max(1, r*(1+randomness*(2*rng.Float64()-1)))
		}

		cx, cy := float64(x), float64(y)
		if f.Highlights {
			sx := cx + math.Trunc(radius*shiftX)
			sy := cy + math.Trunc(radius*shiftY)
			dc.SetFillBrush(gg.NewRadialGradientBrush(sx, sy, 0, radius).
				AddColorStop(0, fade(c.Brighter().Brighter(), opacity)).
				AddColorStop(1, fade(c, opacity)))
		} else {
			dc.SetColor(fade(c, opacity).Color())
		}
		dc.DrawCircle(cx, cy, radius)
		if err := dc.Fill(); err != nil {
			return nil, err
		}
	}
	return gfx.ContextResult(dc, src, dst), nil
}

// fade scales the alpha of c by opacity.
func fade(c gfx.Color, opacity float64) gg.RGBA {
	rgba := c.Float()
	rgba.A *= opacity
	return rgba
}
