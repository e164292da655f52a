package tiling

import (
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/shape"
)

// StripeType is the centerline shape of the stripes.
type StripeType int

// Stripe shapes.
const (
	Straight StripeType = iota
	Chevron
	Curved
)

var stripeTypes = gfx.Choices[StripeType]{"Straight", "Chevron", "Curved"}

func (t StripeType) String() string { return stripeTypes.Name(t) }

// ParseStripeType parses a stripe shape name.
func ParseStripeType(s string) (StripeType, error) { return stripeTypes.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *StripeType) UnmarshalYAML(node *yaml.Node) error {
	return stripeTypes.Unmarshal(node, t)
}

// Stripes paints parallel stripes separated by gaps of the same
// thickness, cycling through Colors and rotated about the image center.
type Stripes struct {
	Type       StripeType  `yaml:"type"`
	Thickness  float64     `yaml:"thickness"`  // 2..200
	Wavelength float64     `yaml:"wavelength"` // 10..500, Chevron and Curved
	Amplitude  float64     `yaml:"amplitude"`  // 10..500, Chevron and Curved
	Background gfx.Color   `yaml:"background"`
	Colors     []gfx.Color `yaml:"colors"`
	Rotate     float64     `yaml:"rotate"` // degrees
}

// NewStripes returns white horizontal stripes on black.
func NewStripes() *Stripes {
	return &Stripes{
		Type:       Straight,
		Thickness:  20,
		Wavelength: 50,
		Amplitude:  20,
		Background: gfx.Black,
		Colors:     []gfx.Color{gfx.White},
	}
}

// centerline returns one stripe centered on the x axis, long enough to
// cross the image diagonal at any rotation.
func (f *Stripes) centerline(diagonal, wavelength, amplitude float64) *shape.Path {
	var p shape.Path
	if f.Type == Straight {
		p.Line(-diagonal/2, 0, diagonal/2, 0)
		return &p
	}
	half := wavelength / 2
	x, end := -diagonal/2-wavelength, diagonal/2+wavelength
	up := true
	p.MoveTo(x, -amplitude)
	for x < end {
		y0, y1 := -amplitude, amplitude
		if !up {
			y0, y1 = y1, y0
		}
		if f.Type == Chevron {
			p.LineTo(x+half, y1)
		} else {
			k := half * 0.552284749831
			p.CubicTo(x+k, y0, x+half-k, y1, x+half, y1)
		}
		x += half
		up = !up
	}
	return &p
}

// period returns the distance between stripe centerlines that keeps
// the gaps as thick as the stripes along the mean slope.
func period(thickness, wavelength, amplitude float64, straight bool) float64 {
	if straight || wavelength <= 0 {
		return 2 * thickness
	}
	slope := 4 * amplitude / wavelength
	return 2 * thickness * math.Sqrt(1+slope*slope)
}

func (f *Stripes) shapes(width, height int) ([]shape.Styled, error) {
	if err := stripeTypes.Check("type", f.Type); err != nil {
		return nil, err
	}
	colors := f.Colors
	if len(colors) == 0 {
		colors = []gfx.Color{gfx.White}
	}
	thickness := lo.Clamp(f.Thickness, 2, 200)
	wavelength := lo.Clamp(f.Wavelength, 10, 500)
	amplitude := lo.Clamp(f.Amplitude, 10, 500)

	w, h := float64(width), float64(height)
	diagonal := math.Hypot(w, h)
	proto := f.centerline(diagonal, wavelength, amplitude)
	step := period(thickness, wavelength, amplitude, f.Type == Straight)

	base := gg.Translate(w/2, h/2).Multiply(gg.Rotate(f.Rotate * math.Pi / 180))
	n := int(math.Ceil(diagonal / 2 / step))

	// Stripes never overlap, so one path per color keeps the order.
	paths := make([]shape.Path, len(colors))
	for i := -n; i <= n; i++ {
		m := base.Multiply(gg.Translate(0, float64(i)*step))
		paths[(i+n)%len(colors)].Append(proto.Transform(m))
	}

	items := make([]shape.Styled, len(colors))
	for i, c := range colors {
		items[i] = shape.Styled{Path: &paths[i], Style: shape.Style{Stroke: c, Width: thickness}}
	}
	items[0].Style.Background = f.Background
	return items, nil
}

// Transform implements gfx.Filter.
func (f *Stripes) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	items, err := f.shapes(src.Width, src.Height)
	if err != nil {
		return nil, err
	}
	return shape.RenderAll(src, dst, items...)
}

// SVG implements gfx.VectorFilter.
func (f *Stripes) SVG(w io.Writer, width, height int) error {
	items, err := f.shapes(width, height)
	if err != nil {
		return err
	}
	return shape.WriteSVG(w, width, height, items...)
}
