package stylize

import "github.com/gogpu/gfx"

func init() {
	for _, info := range []gfx.Info{
		{Name: "gaussian-blur", New: func() gfx.Filter { return NewGaussianBlur(2) }},
		{Name: "convolve", New: func() gfx.Filter { return NewConvolve() }},
		{Name: "kuwahara", New: func() gfx.Filter { return NewKuwahara() }},
		{Name: "kmeans", New: func() gfx.Filter { return NewKMeans() }},
		{Name: "canny", New: func() gfx.Filter { return NewCanny() }},
	} {
		info.Category = "stylize"
		gfx.Register(info)
	}
}
