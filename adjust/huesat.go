package adjust

import (
	"github.com/samber/lo"

	"github.com/gogpu/gfx"
)

// HueSat shifts hue and scales saturation and lightness in HSB space.
type HueSat struct {
	Hue        float64 `yaml:"hue"`        // degrees, -180..180
	Saturation float64 `yaml:"saturation"` // percent, -100..100
	Lightness  float64 `yaml:"lightness"`  // percent, -100..100
}

// NewHueSat returns a HueSat with all adjustments at zero.
func NewHueSat() *HueSat {
	return &HueSat{}
}

// Transform implements gfx.Filter.
func (f *HueSat) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	shift := lo.Clamp(f.Hue, -180, 180) / 360
	sat := lo.Clamp(f.Saturation, -100, 100) / 100
	light := lo.Clamp(f.Lightness, -100, 100) / 100
	if shift == 0 && sat == 0 && light == 0 {
		return src, nil
	}

	return mapPixels(src, dst, visible(func(p uint32) uint32 {
		a, r, g, b := gfx.Unpack(p)
		h, s, v := gfx.RGBToHSB(r, g, b)
		h += shift
		s = lo.Clamp(s*(1+sat), 0, 1)
		if light > 0 {
			v += (1 - v) * light
			s *= 1 - light
		} else {
			v *= 1 + light
		}
		r, g, b = gfx.HSBToRGB(h, s, v)
		return gfx.Pack(a, r, g, b)
	})), nil
}
