package stylize

import (
	"sync"

	"github.com/samber/lo"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/parallel"
)

// GaussianBlur blurs an image with a separable Gaussian kernel: a
// horizontal pass into a float buffer, then a vertical pass into the
// destination. Both passes run on row bands in parallel. Colors are
// premultiplied while blurring so transparent pixels do not bleed black.
type GaussianBlur struct {
	RadiusX float64 `yaml:"radius_x"` // 0..100
	RadiusY float64 `yaml:"radius_y"` // 0..100
}

// NewGaussianBlur returns a blur with the same radius in both directions.
func NewGaussianBlur(radius float64) *GaussianBlur {
	return &GaussianBlur{RadiusX: radius, RadiusY: radius}
}

// NewGaussianBlurXY returns a blur with separate radii, for directional
// blurs.
func NewGaussianBlurXY(radiusX, radiusY float64) *GaussianBlur {
	return &GaussianBlur{RadiusX: radiusX, RadiusY: radiusY}
}

// Transform implements gfx.Filter. Zero radii return src.
func (f *GaussianBlur) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	rx := lo.Clamp(f.RadiusX, 0, 100)
	ry := lo.Clamp(f.RadiusY, 0, 100)
	if rx == 0 && ry == 0 {
		return src, nil
	}
	out := gfx.Dest(src, dst)
	w, h := src.Width, src.Height

	temp := getFloats(w * h * 4)
	defer putFloats(temp)

	kx := kernels.get(rx)
	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			blurRow(src.Row(y), temp[y*w*4:(y+1)*w*4], kx)
		}
	})
	ky := kernels.get(ry)
	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			blurColumn(temp, out.Row(y), y, w, h, ky)
		}
	})
	return out, nil
}

// blurRow convolves one row of pixels into premultiplied RGBA floats.
// Samples beyond the edges repeat the edge pixel.
func blurRow(row []uint32, out []float32, kernel []float32) {
	half := len(kernel) / 2
	last := len(row) - 1
	for x := range row {
		var r, g, b, a float32
		for k, weight := range kernel {
			p := row[lo.Clamp(x+k-half, 0, last)]
			pa := float32(p>>24) * weight
			a += pa
			r += float32(p>>16&0xFF) * pa
			g += float32(p>>8&0xFF) * pa
			b += float32(p&0xFF) * pa
		}
		i := x * 4
		out[i], out[i+1], out[i+2], out[i+3] = r, g, b, a
	}
}

// blurColumn convolves the premultiplied buffer vertically at row y and
// writes unpremultiplied pixels into dst.
func blurColumn(temp []float32, dst []uint32, y, w, h int, kernel []float32) {
	half := len(kernel) / 2
	for x := range dst {
		var r, g, b, a float32
		for k, weight := range kernel {
			i := (lo.Clamp(y+k-half, 0, h-1)*w + x) * 4
			r += temp[i] * weight
			g += temp[i+1] * weight
			b += temp[i+2] * weight
			a += temp[i+3] * weight
		}
		if a <= 0 {
			dst[x] = 0
			continue
		}
		inv := 1 / a
		dst[x] = gfx.Pack(
			clampByte(a),
			clampByte(r*inv),
			clampByte(g*inv),
			clampByte(b*inv),
		)
	}
}

func clampByte(v float32) int {
	return lo.Clamp(int(v+0.5), 0, 255)
}

// floatBuffer wraps a slice so sync.Pool stores a pointer.
type floatBuffer struct {
	data []float32
}

var floatPool = sync.Pool{
	New: func() any { return &floatBuffer{} },
}

// getFloats returns a buffer of n floats. Contents are overwritten by the
// horizontal pass, so they are not cleared.
func getFloats(n int) []float32 {
	fb := floatPool.Get().(*floatBuffer)
	if cap(fb.data) < n {
		fb.data = make([]float32, n)
	}
	return fb.data[:n]
}

// putFloats returns a buffer to the pool unless it is very large.
func putFloats(buf []float32) {
	if cap(buf) <= 16<<20 {
		floatPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}
