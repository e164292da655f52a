package stylize

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/parallel"
)

const (
	// cannyBytesPerPixel estimates the working buffers of one pixel:
	// luminance, two smoothed copies, two gradients, the magnitude and
	// the edge flags.
	cannyBytesPerPixel = 32

	// DefaultMemoryBudget bounds the working memory of Canny when no
	// budget is set.
	DefaultMemoryBudget int64 = 2 << 30

	gaussianCutOff = 0.005
)

// Canny marks edges found by the Canny detector: Gaussian smoothing,
// gradient estimation, non-maximum suppression and hysteresis between
// the two thresholds. Edges are white on an opaque black background.
type Canny struct {
	LowThreshold  float64 `yaml:"low_threshold"`  // 0.1..100
	HighThreshold float64 `yaml:"high_threshold"` // 0.1..100
	KernelRadius  float64 `yaml:"kernel_radius"`  // Gaussian sigma, 0.1..10
	KernelWidth   int     `yaml:"kernel_width"`   // taps on each side, 2..32

	// ContrastNormalized equalizes the luminance histogram first.
	ContrastNormalized bool `yaml:"contrast_normalized"`

	// MemoryBudget is the largest working set in bytes the filter may
	// allocate; zero means DefaultMemoryBudget.
	MemoryBudget int64 `yaml:"memory_budget"`
}

// NewCanny returns a detector with thresholds 2.5 and 7.5.
func NewCanny() *Canny {
	return &Canny{
		LowThreshold:  2.5,
		HighThreshold: 7.5,
		KernelRadius:  2,
		KernelWidth:   16,
	}
}

// checkMemory fails before any allocation when the image needs more
// working memory than the budget allows.
func (f *Canny) checkMemory(w, h int) error {
	budget := f.MemoryBudget
	if budget <= 0 {
		budget = DefaultMemoryBudget
	}
	need := int64(w) * int64(h) * cannyBytesPerPixel
	if need > budget {
		gfx.Logger().Warn("canny: image too large", "width", w, "height", h, "need", need, "budget", budget)
		return fmt.Errorf("canny on %dx%d needs %d bytes, budget %d: %w",
			w, h, need, budget, gfx.ErrInsufficientMemory)
	}
	return nil
}

// cannyKernels returns the smoothing kernel and its derivative, sampled
// at offsets 0..n-1 and averaged over each pixel.
func cannyKernels(sigma float64, width int) (kernel, diff []float64) {
	gauss := func(x float64) float64 { return math.Exp(-(x * x) / (2 * sigma * sigma)) }
	norm := 2 * math.Pi * sigma * sigma
	for i := range width {
		x := float64(i)
		g1 := gauss(x)
		if g1 <= gaussianCutOff && i >= 2 {
			break
		}
		g2, g3 := gauss(x-0.5), gauss(x+0.5)
		kernel = append(kernel, (g1+g2+g3)/3/norm)
		diff = append(diff, g3-g2)
	}
	return kernel, diff
}

// Transform implements gfx.Filter.
func (f *Canny) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	w, h := src.Width, src.Height
	if err := f.checkMemory(w, h); err != nil {
		return nil, err
	}
	low := lo.Clamp(f.LowThreshold, 0.1, 100)
	high := math.Max(low, lo.Clamp(f.HighThreshold, 0.1, 100))

	lum := luminances(src)
	if f.ContrastNormalized {
		equalize(lum)
	}
	kernel, diff := cannyKernels(lo.Clamp(f.KernelRadius, 0.1, 10), lo.Clamp(f.KernelWidth, 2, 32))

	at := func(buf []float32, x, y int) float32 {
		return buf[lo.Clamp(y, 0, h-1)*w+lo.Clamp(x, 0, w-1)]
	}

	// Smooth along each axis separately.
	xConv := make([]float32, w*h)
	yConv := make([]float32, w*h)
	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range w {
				i := y*w + x
				sx := float64(lum[i]) * kernel[0]
				sy := sx
				for k := 1; k < len(kernel); k++ {
					sx += kernel[k] * float64(at(lum, x-k, y)+at(lum, x+k, y))
					sy += kernel[k] * float64(at(lum, x, y-k)+at(lum, x, y+k))
				}
				xConv[i], yConv[i] = float32(sx), float32(sy)
			}
		}
	})

	// Differentiate across the smoothing direction.
	gx := make([]float32, w*h)
	gy := make([]float32, w*h)
	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range w {
				var sx, sy float64
				for k := 1; k < len(diff); k++ {
					sx += diff[k] * float64(at(yConv, x-k, y)-at(yConv, x+k, y))
					sy += diff[k] * float64(at(xConv, x, y-k)-at(xConv, x, y+k))
				}
				gx[y*w+x], gy[y*w+x] = float32(sx), float32(sy)
			}
		}
	})

	mag := suppress(gx, gy, w, h)
	edges := hysteresis(mag, w, h, float32(low), float32(high))

	out := gfx.Dest(src, dst)
	for i, e := range edges {
		if e {
			out.Pix[i] = uint32(gfx.White)
		} else {
			out.Pix[i] = uint32(gfx.Black)
		}
	}
	return out, nil
}

func luminances(src *gfx.Image) []float32 {
	lum := make([]float32, len(src.Pix))
	for i, p := range src.Pix {
		lum[i] = float32(gfx.ClampF255(gfx.Luminosity(gfx.Red(p), gfx.Green(p), gfx.Blue(p))))
	}
	return lum
}

// equalize spreads the integer luminance values over 0..255 by their
// cumulative histogram.
func equalize(lum []float32) {
	var hist [256]int
	for _, v := range lum {
		hist[int(v)]++
	}
	var remap [256]float32
	sum := 0
	for i, n := range hist {
		sum += n
		remap[i] = float32(sum * 255 / len(lum))
	}
	for i, v := range lum {
		lum[i] = remap[int(v)]
	}
}

// suppress returns the gradient magnitude with every pixel that is not a
// local maximum across the gradient direction set to zero.
func suppress(gx, gy []float32, w, h int) []float32 {
	raw := make([]float32, w*h)
	for i := range raw {
		raw[i] = float32(math.Hypot(float64(gx[i]), float64(gy[i])))
	}
	at := func(x, y int) float32 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return raw[y*w+x]
	}
	mag := make([]float32, w*h)
	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range w {
				i := y*w + x
				m := raw[i]
				if m == 0 {
					continue
				}
				// Quantize the direction to 0, 45, 90 or 135 degrees.
				angle := math.Atan2(float64(gy[i]), float64(gx[i])) * 180 / math.Pi
				if angle < 0 {
					angle += 180
				}
				var dx, dy int
				switch {
				case angle < 22.5 || angle >= 157.5:
					dx, dy = 1, 0
				case angle < 67.5:
					dx, dy = 1, 1
				case angle < 112.5:
					dx, dy = 0, 1
				default:
					dx, dy = -1, 1
				}
				if m >= at(x+dx, y+dy) && m > at(x-dx, y-dy) {
					mag[i] = m
				}
			}
		}
	})
	return mag
}

// hysteresis keeps pixels above high and every pixel above low connected
// to one of them.
func hysteresis(mag []float32, w, h int, low, high float32) []bool {
	edges := make([]bool, w*h)
	var stack []int
	for seed, m := range mag {
		if m < high || edges[seed] {
			continue
		}
		edges[seed] = true
		stack = append(stack[:0], seed)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w
			for ny := max(y-1, 0); ny <= min(y+1, h-1); ny++ {
				for nx := max(x-1, 0); nx <= min(x+1, w-1); nx++ {
					j := ny*w + nx
					if !edges[j] && mag[j] >= low {
						edges[j] = true
						stack = append(stack, j)
					}
				}
			}
		}
	}
	return edges
}
