package stylize

import (
	"math"

	"github.com/samber/lo"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/parallel"
)

// Kuwahara smooths an image while keeping edges. Each pixel takes the
// mean brightness of whichever of its four overlapping (radius+1)-square
// quadrants has the lowest brightness variance; hue, saturation and alpha
// are kept.
type Kuwahara struct {
	Radius int `yaml:"radius"` // 1..10
}

// NewKuwahara returns a filter with radius 1.
func NewKuwahara() *Kuwahara {
	return &Kuwahara{Radius: 1}
}

// integral is a summed-area table padded with a zero row and column.
type integral struct {
	stride int
	sum    []float64
	sumSq  []float64
}

func newIntegral(values []float64, w, h int) *integral {
	t := &integral{
		stride: w + 1,
		sum:    make([]float64, (w+1)*(h+1)),
		sumSq:  make([]float64, (w+1)*(h+1)),
	}
	for y := range h {
		var rowSum, rowSq float64
		for x := range w {
			v := values[y*w+x]
			rowSum += v
			rowSq += v * v
			i := (y+1)*t.stride + x + 1
			t.sum[i] = rowSum + t.sum[i-t.stride]
			t.sumSq[i] = rowSq + t.sumSq[i-t.stride]
		}
	}
	return t
}

// region returns the sums over the inclusive rectangle (x1, y1)-(x2, y2).
func (t *integral) region(x1, y1, x2, y2 int) (sum, sumSq float64) {
	a := y1*t.stride + x1
	b := y1*t.stride + x2 + 1
	c := (y2+1)*t.stride + x1
	d := (y2+1)*t.stride + x2 + 1
	return t.sum[d] - t.sum[b] - t.sum[c] + t.sum[a],
		t.sumSq[d] - t.sumSq[b] - t.sumSq[c] + t.sumSq[a]
}

// bestMean returns the mean of the quadrant around (cx, cy) with the
// lowest variance.
func (t *integral) bestMean(cx, cy, r, w, h int) float64 {
	origins := [4][2]int{
		{cx - r, cy - r}, {cx, cy - r},
		{cx - r, cy}, {cx, cy},
	}
	minVar, best := math.Inf(1), 0.0
	for _, o := range origins {
		x1, y1 := max(0, o[0]), max(0, o[1])
		x2, y2 := min(w-1, o[0]+r), min(h-1, o[1]+r)
		if x1 > x2 || y1 > y2 {
			continue
		}
		n := float64((x2 - x1 + 1) * (y2 - y1 + 1))
		sum, sumSq := t.region(x1, y1, x2, y2)
		mean := sum / n
		if variance := sumSq/n - mean*mean; variance < minVar {
			minVar, best = variance, mean
		}
	}
	return best
}

// Transform implements gfx.Filter.
func (f *Kuwahara) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	r := lo.Clamp(f.Radius, 1, 10)
	w, h := src.Width, src.Height

	brightness := make([]float64, w*h)
	for i, p := range src.Pix {
		brightness[i] = float64(max(gfx.Red(p), gfx.Green(p), gfx.Blue(p))) / 255
	}
	table := newIntegral(brightness, w, h)

	out := gfx.Dest(src, dst)
	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := src.Row(y)
			dstRow := out.Row(y)
			for x, p := range row {
				hue, sat, _ := gfx.RGBToHSB(gfx.Red(p), gfx.Green(p), gfx.Blue(p))
				nr, ng, nb := gfx.HSBToRGB(hue, sat, table.bestMean(x, y, r, w, h))
				dstRow[x] = gfx.Pack(gfx.Alpha(p), nr, ng, nb)
			}
		}
	})
	return out, nil
}
