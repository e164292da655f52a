package noise

import "github.com/gogpu/gfx"

func init() {
	for _, info := range []gfx.Info{
		{Name: "clouds", New: func() gfx.Filter { return NewClouds() }},
		{Name: "value-noise", New: func() gfx.Filter { return NewValueNoise() }},
		{Name: "marble", New: func() gfx.Filter { return NewMarble() }},
		{Name: "organic-noise", New: func() gfx.Filter { return NewOrganicNoise() }},
	} {
		info.Category = "noise"
		gfx.Register(info)
	}
}
