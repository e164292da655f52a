package fractal

import "github.com/gogpu/gfx"

func init() {
	for _, info := range []gfx.Info{
		{Name: "mandelbrot", New: func() gfx.Filter { return NewMandelbrot() }},
		{Name: "julia", New: func() gfx.Filter { return NewJulia() }},
		{Name: "chaos-game", New: func() gfx.Filter { return NewChaosGame() }},
		{Name: "fractal-tree", New: func() gfx.Filter { return NewFractalTree() }},
		{Name: "l-system", New: func() gfx.Filter { return NewLSystem() }},
	} {
		info.Category = "render"
		gfx.Register(info)
	}
}
