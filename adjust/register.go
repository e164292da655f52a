package adjust

import "github.com/gogpu/gfx"

const category = "color"

func init() {
	for _, info := range []gfx.Info{
		{Name: "channel-invert", New: func() gfx.Filter { return NewChannelInvert() }},
		{Name: "extract-channel", New: func() gfx.Filter { return NewExtractChannel() }},
		{Name: "threshold", New: func() gfx.Filter { return NewThreshold() }},
		{Name: "channel-mixer", New: func() gfx.Filter { return NewChannelMixer() }},
		{Name: "hue-saturation", New: func() gfx.Filter { return NewHueSat() }},
		{Name: "solarize", New: func() gfx.Filter { return NewSolarize() }},
		{Name: "color-balance", New: func() gfx.Filter { return NewColorBalance() }},
		{Name: "posterize", New: func() gfx.Filter { return NewPosterize() }},
		{Name: "equalize", New: func() gfx.Filter { return NewEqualize() }},
		{Name: "color-matrix", New: func() gfx.Filter { return NewIdentityMatrix() }},
	} {
		info.Category = category
		gfx.Register(info)
	}
}
