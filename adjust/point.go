package adjust

import (
	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/lut"
	"github.com/gogpu/gfx/internal/parallel"
)

// mapPixels writes fn(p) for every source pixel p into the destination.
func mapPixels(src, dst *gfx.Image, fn func(p uint32) uint32) *gfx.Image {
	out := gfx.Dest(src, dst)
	parallel.Rows(src.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			d := out.Row(y)
			for x, p := range src.Row(y) {
				d[x] = fn(p)
			}
		}
	})
	return out
}

// lookup maps the color channels of src through per-channel tables.
func lookup(src, dst *gfx.Image, t *lut.RGB) *gfx.Image {
	return mapPixels(src, dst, t.Apply)
}

// visible leaves fully transparent pixels untouched and passes the rest to fn.
func visible(fn func(p uint32) uint32) func(uint32) uint32 {
	return func(p uint32) uint32 {
		if p>>24 == 0 {
			return p
		}
		return fn(p)
	}
}
