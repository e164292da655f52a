package adjust

import (
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/lut"
)

// Tones selects the tonal range ColorBalance affects.
type Tones int

// Tonal ranges.
const (
	Everything Tones = iota
	Shadows
	Midtones
	Highlights
)

var tones = gfx.Choices[Tones]{"Everything", "Shadows", "Midtones", "Highlights"}

func (t Tones) String() string { return tones.Name(t) }

// ParseTones parses a tonal range name.
func ParseTones(s string) (Tones, error) { return tones.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Tones) UnmarshalYAML(node *yaml.Node) error {
	return tones.Unmarshal(node, t)
}

// ColorBalance shifts colors along the cyan-red, magenta-green and
// yellow-blue axes, optionally weighted towards a tonal range.
type ColorBalance struct {
	Affect       Tones `yaml:"affect"`
	CyanRed      int   `yaml:"cyan_red"`      // -100..100
	MagentaGreen int   `yaml:"magenta_green"` // -100..100
	YellowBlue   int   `yaml:"yellow_blue"`   // -100..100
}

// NewColorBalance returns a neutral ColorBalance.
func NewColorBalance() *ColorBalance {
	return &ColorBalance{Affect: Everything}
}

// Transform implements gfx.Filter.
func (f *ColorBalance) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := tones.Check("affect", f.Affect); err != nil {
		return nil, err
	}
	cr := float64(lo.Clamp(f.CyanRed, -100, 100))
	mg := float64(lo.Clamp(f.MagentaGreen, -100, 100))
	yb := float64(lo.Clamp(f.YellowBlue, -100, 100))
	if cr == 0 && mg == 0 && yb == 0 {
		return src, nil
	}

	weight := toneWeight(f.Affect)
	shift := func(own, o1, o2 float64) lut.Table {
		d := own - o1/2 - o2/2
		return lut.FromFunc(func(i int) float64 {
			return float64(int(float64(i) + weight(i)*d))
		})
	}
	t := &lut.RGB{
		R: shift(cr, mg, yb),
		G: shift(mg, cr, yb),
		B: shift(yb, mg, cr),
	}
	return lookup(src, dst, t), nil
}

// toneWeight returns the per-level weight of a tonal range.
func toneWeight(t Tones) func(i int) float64 {
	const size = 256
	switch t {
	case Shadows:
		return func(i int) float64 { return 1 - float64(i)/size }
	case Highlights:
		return func(i int) float64 { return float64(i) / size }
	case Midtones:
		return func(i int) float64 {
			if i <= size/2 {
				return 2 * float64(i) / size
			}
			return 2 * (1 - float64(i)/size)
		}
	default:
		return func(int) float64 { return 1 }
	}
}
