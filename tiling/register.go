package tiling

import "github.com/gogpu/gfx"

func init() {
	for _, info := range []gfx.Info{
		{Name: "penrose", New: func() gfx.Filter { return NewPenrose() }},
		{Name: "truchet", New: func() gfx.Filter { return NewTruchet() }},
		{Name: "grid", New: func() gfx.Filter { return NewGrid() }},
		{Name: "stripes", New: func() gfx.Filter { return NewStripes() }},
	} {
		info.Category = "tiling"
		gfx.Register(info)
	}
}
