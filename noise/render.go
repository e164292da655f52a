package noise

import (
	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/parallel"
)

// generate fills a destination the size of src with fn(x, y), one row band
// per job.
func generate(src, dst *gfx.Image, fn func(x, y int) uint32) *gfx.Image {
	out := gfx.Dest(src, dst)
	parallel.Rows(out.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := out.Row(y)
			for x := range row {
				row[x] = fn(x, y)
			}
		}
	})
	return out
}

// index maps t in [0, 1] to an index into a table of n entries.
func index(t float64, n int) int {
	i := int(t * float64(n-1))
	return min(max(i, 0), n-1)
}
