package noise

import (
	"github.com/samber/lo"

	"github.com/gogpu/gfx"
	inoise "github.com/gogpu/gfx/internal/noise"
)

// Clouds renders fractal Perlin noise blended between two colors.
type Clouds struct {
	Scale     float64   `yaml:"scale"`     // 3..300
	Roughness float64   `yaml:"roughness"` // percent, 1..100
	Color1    gfx.Color `yaml:"color1"`
	Color2    gfx.Color `yaml:"color2"`
	Seed      int64     `yaml:"seed"`
}

// NewClouds returns black-to-white clouds at scale 100 and 50% roughness.
func NewClouds() *Clouds {
	return &Clouds{
		Scale:     100,
		Roughness: 50,
		Color1:    gfx.Black,
		Color2:    gfx.White,
	}
}

// maxCloudOctaves bounds the octave loop; the contribution cut-off usually
// stops it earlier.
const maxCloudOctaves = 8

// Transform implements gfx.Filter.
func (f *Clouds) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	scale := lo.Clamp(f.Scale, 3, 300)
	roughness := lo.Clamp(f.Roughness, 1, 100) / 100
	perlin := inoise.NewImproved(gfx.ResolveSeed(f.Seed))
	c1, c2 := uint32(f.Color1), uint32(f.Color2)

	return generate(src, dst, func(x, y int) uint32 {
		s := scale
		sum := 0.0
		contribution := 1.0
		for i := 0; i < maxCloudOctaves && contribution > 0.03 && s > 0; i++ {
			sum += contribution * perlin.Eval2(float64(x)/s, float64(y)/s)
			s /= 2
			contribution *= roughness
		}
		t := lo.Clamp((1+sum)/2, 0, 1)
		return gfx.LerpPixel(c1, c2, t)
	}), nil
}
