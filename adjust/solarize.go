package adjust

import (
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/lut"
)

// SolarizeType selects the solarization curve.
type SolarizeType int

// Solarization curves.
const (
	// SolarizeClassic inverts values above the threshold and stretches
	// contrast so both halves span the full range.
	SolarizeClassic SolarizeType = iota

	// SolarizeUpsideDown is a V-shaped curve with black at the threshold.
	SolarizeUpsideDown
)

var solarizeTypes = gfx.Choices[SolarizeType]{"Classic", "Upside Down"}

func (t SolarizeType) String() string { return solarizeTypes.Name(t) }

// ParseSolarizeType parses a curve name.
func ParseSolarizeType(s string) (SolarizeType, error) { return solarizeTypes.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *SolarizeType) UnmarshalYAML(node *yaml.Node) error {
	return solarizeTypes.Unmarshal(node, t)
}

// Solarize applies a per-channel solarization curve. Fully transparent
// pixels become transparent black.
type Solarize struct {
	Type  SolarizeType `yaml:"type"`
	Red   int          `yaml:"red"`   // threshold, 1..254
	Green int          `yaml:"green"` // threshold, 1..254
	Blue  int          `yaml:"blue"`  // threshold, 1..254
}

// NewSolarize returns a classic solarization at the midpoint.
func NewSolarize() *Solarize {
	return &Solarize{Type: SolarizeClassic, Red: 128, Green: 128, Blue: 128}
}

// Transform implements gfx.Filter.
func (f *Solarize) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := solarizeTypes.Check("type", f.Type); err != nil {
		return nil, err
	}
	t := &lut.RGB{
		R: solarizeTable(f.Type, f.Red),
		G: solarizeTable(f.Type, f.Green),
		B: solarizeTable(f.Type, f.Blue),
	}
	return mapPixels(src, dst, func(p uint32) uint32 {
		if p>>24 == 0 {
			return 0
		}
		return t.Apply(p)
	}), nil
}

func solarizeTable(typ SolarizeType, threshold int) lut.Table {
	th := lo.Clamp(threshold, 1, 254)
	below := 255 / float64(th)
	above := 255 / float64(255-th)
	return lut.FromFunc(func(i int) float64 {
		var v int
		if i > th {
			v = int(above * float64(i-th))
		} else {
			v = int(below * float64(th-i))
		}
		if typ == SolarizeClassic {
			v = 255 - v
		}
		return float64(v)
	})
}
