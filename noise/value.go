package noise

import (
	"github.com/samber/lo"

	"github.com/gogpu/gfx"
	inoise "github.com/gogpu/gfx/internal/noise"
)

// ValueNoise renders octaves of smoothed lattice noise between two colors.
type ValueNoise struct {
	Scale       float64   `yaml:"scale"`       // 5..300
	Details     int       `yaml:"details"`     // octaves, 1..8
	Persistence float64   `yaml:"persistence"` // amplitude factor per octave, 0..1
	Color1      gfx.Color `yaml:"color1"`
	Color2      gfx.Color `yaml:"color2"`
	Seed        int64     `yaml:"seed"`
}

// NewValueNoise returns five octaves at scale 100.
func NewValueNoise() *ValueNoise {
	return &ValueNoise{
		Scale:       100,
		Details:     5,
		Persistence: 0.6,
		Color1:      gfx.Black,
		Color2:      gfx.White,
	}
}

// Transform implements gfx.Filter.
func (f *ValueNoise) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	frequency := 1 / lo.Clamp(f.Scale, 5, 300)
	octaves := lo.Clamp(f.Details, 1, 8)
	persistence := lo.Clamp(f.Persistence, 0, 1)
	table := gfx.TwoColor(f.Color1, f.Color2).Table(256)
	value := inoise.NewValue(gfx.ResolveSeed(f.Seed))

	return generate(src, dst, func(x, y int) uint32 {
		n := value.Octaves(float64(x), float64(y), octaves, frequency, persistence)
		return table[int(255*n)]
	}), nil
}
