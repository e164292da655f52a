package adjust

import (
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
)

// Criterion selects the pixel quantity compared against the threshold.
type Criterion int

// Threshold criteria.
const (
	ByLuminosity Criterion = iota
	ByRed
	ByGreen
	ByBlue
	BySaturation
)

var criteria = gfx.Choices[Criterion]{"Luminosity", "Red", "Green", "Blue", "Saturation"}

func (c Criterion) String() string { return criteria.Name(c) }

// ParseCriterion parses a criterion name.
func ParseCriterion(s string) (Criterion, error) { return criteria.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Criterion) UnmarshalYAML(node *yaml.Node) error {
	return criteria.Unmarshal(node, c)
}

// Threshold turns pixels white when the selected quantity is strictly
// greater than Level, and black otherwise. Alpha is preserved.
type Threshold struct {
	Level     float64   `yaml:"level"` // 0..255
	Criterion Criterion `yaml:"criterion"`
}

// NewThreshold returns a luminosity threshold at 128.
func NewThreshold() *Threshold {
	return &Threshold{Level: 128, Criterion: ByLuminosity}
}

// Transform implements gfx.Filter.
func (f *Threshold) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := criteria.Check("criterion", f.Criterion); err != nil {
		return nil, err
	}
	level := lo.Clamp(f.Level, 0, 255)
	crit := f.Criterion

	return mapPixels(src, dst, func(p uint32) uint32 {
		_, r, g, b := gfx.Unpack(p)
		var v float64
		switch crit {
		case ByLuminosity:
			v = float64(int(gfx.Luminosity(r, g, b)))
		case ByRed:
			v = float64(r)
		case ByGreen:
			v = float64(g)
		case ByBlue:
			v = float64(b)
		case BySaturation:
			_, s, _ := gfx.RGBToHSB(r, g, b)
			v = s * 255
		}
		if v > level {
			return p | 0x00FFFFFF
		}
		return p & 0xFF000000
	}), nil
}
