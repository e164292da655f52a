package particles

import "github.com/gogpu/gfx"

func init() {
	for _, info := range []gfx.Info{
		{Name: "flow-field", New: func() gfx.Filter { return NewFlowField() }},
		{Name: "spheres", New: func() gfx.Filter { return NewSpheres() }},
		{Name: "lightning", New: func() gfx.Filter { return NewLightning() }},
	} {
		info.Category = "render"
		gfx.Register(info)
	}
}
