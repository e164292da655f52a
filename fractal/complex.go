package fractal

import (
	"math"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/parallel"
)

// SetKind selects the iterated function of a ComplexFractal.
type SetKind int

// Escape-time sets.
const (
	// Mandelbrot iterates z² + c with c at the pixel and z starting at 0.
	Mandelbrot SetKind = iota

	// Julia iterates z² + c with z starting at the pixel and a fixed c.
	Julia
)

var setKinds = gfx.Choices[SetKind]{"Mandelbrot", "Julia"}

func (k SetKind) String() string { return setKinds.Name(k) }

// ParseSetKind parses a set name.
func ParseSetKind(s string) (SetKind, error) { return setKinds.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *SetKind) UnmarshalYAML(node *yaml.Node) error {
	return setKinds.Unmarshal(node, k)
}

// Palette selects how escape counts are colored.
type Palette int

// Escape-time palettes.
const (
	Contrasting Palette = iota
	Continuous
	Blues
)

var palettes = gfx.Choices[Palette]{"Contrasting", "Continuous", "Blues"}

func (p Palette) String() string { return palettes.Name(p) }

// ParsePalette parses a palette name.
func ParsePalette(s string) (Palette, error) { return palettes.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Palette) UnmarshalYAML(node *yaml.Node) error {
	return palettes.Unmarshal(node, p)
}

// viewSpan is the extent of the complex plane shown across the shorter
// image side at zoom 1.
const viewSpan = 3.0

// ComplexFractal renders a Mandelbrot or Julia set by escape time.
type ComplexFractal struct {
	Set SetKind `yaml:"set"`

	// Zoom magnifies around the center; 1 shows the whole set.
	Zoom    float64 `yaml:"zoom"` // 1..1e12
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`

	// JuliaX and JuliaY are the constant c of the Julia set.
	JuliaX float64 `yaml:"julia_x"`
	JuliaY float64 `yaml:"julia_y"`

	Iterations  int     `yaml:"iterations"` // 2..998
	Palette     Palette `yaml:"palette"`
	Supersample bool    `yaml:"supersample"` // 2x2 samples per pixel
}

// NewMandelbrot returns the whole Mandelbrot set.
func NewMandelbrot() *ComplexFractal {
	return &ComplexFractal{
		Set:        Mandelbrot,
		Zoom:       1,
		CenterX:    -0.6,
		Iterations: 500,
		Palette:    Contrasting,
	}
}

// NewJulia returns the Julia set of c = -0.7 + 0.27015i.
func NewJulia() *ComplexFractal {
	return &ComplexFractal{
		Set:        Julia,
		Zoom:       1,
		JuliaX:     -0.7,
		JuliaY:     0.27015,
		Iterations: 300,
		Palette:    Continuous,
	}
}

// escape returns the number of iterations before z leaves the radius 2
// disk, or limit when it never does.
func escape(zx, zy, cx, cy float64, limit int) int {
	for it := range limit {
		x2, y2 := zx*zx, zy*zy
		if x2+y2 > 4 {
			return it
		}
		zx, zy = x2-y2+cx, 2*zx*zy+cy
	}
	return limit
}

// Transform implements gfx.Filter.
func (f *ComplexFractal) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := setKinds.Check("set", f.Set); err != nil {
		return nil, err
	}
	if err := palettes.Check("palette", f.Palette); err != nil {
		return nil, err
	}
	limit := lo.Clamp(f.Iterations, 2, 998)
	colors := paletteFor(f.Palette, limit)

	w, h := src.Width, src.Height
	step := viewSpan / lo.Clamp(f.Zoom, 1, 1e12) / float64(min(w, h))
	left := f.CenterX - step*float64(w)/2
	top := f.CenterY - step*float64(h)/2
	julia := f.Set == Julia

	sample := func(px, py float64) uint32 {
		x, y := left+px*step, top+py*step
		var it int
		if julia {
			it = escape(x, y, f.JuliaX, f.JuliaY, limit)
		} else {
			it = escape(0, 0, x, y, limit)
		}
		if it == limit {
			return uint32(gfx.Black)
		}
		return colors[it]
	}

	out := gfx.Dest(src, dst)
	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := out.Row(y)
			for x := range row {
				px, py := float64(x), float64(y)
				if !f.Supersample {
					row[x] = sample(px+0.5, py+0.5)
					continue
				}
				row[x] = average(
					sample(px+0.25, py+0.25),
					sample(px+0.75, py+0.25),
					sample(px+0.25, py+0.75),
					sample(px+0.75, py+0.75),
				)
			}
		}
	})
	return out, nil
}

// average returns the channel-wise mean of four opaque pixels.
func average(a, b, c, d uint32) uint32 {
	sum := func(shift uint) int {
		return int(a>>shift&0xFF + b>>shift&0xFF + c>>shift&0xFF + d>>shift&0xFF)
	}
	return gfx.Pack(255, (sum(16)+2)/4, (sum(8)+2)/4, (sum(0)+2)/4)
}

type paletteKey struct {
	palette    Palette
	iterations int
}

// paletteCache memoizes the most recently built palette. Filters with the
// same settings share the slice, so it must not be modified.
var paletteCache struct {
	sync.Mutex
	key    paletteKey
	colors []uint32
}

// paletteFor returns the colors for escape counts 0..iterations.
func paletteFor(p Palette, iterations int) []uint32 {
	key := paletteKey{palette: p, iterations: iterations}
	paletteCache.Lock()
	defer paletteCache.Unlock()
	if paletteCache.colors != nil && paletteCache.key == key {
		return paletteCache.colors
	}
	paletteCache.key = key
	paletteCache.colors = buildPalette(p, iterations)
	return paletteCache.colors
}

func buildPalette(p Palette, iterations int) []uint32 {
	colors := make([]uint32, iterations+1)
	colors[0] = uint32(gfx.Black)
	n := float64(iterations)
	norm := math.Log(n + 1)
	for it := 1; it <= iterations; it++ {
		bri := (1 + math.Log(n-float64(it)+1)/norm) / 2
		var c gfx.Color
		switch p {
		case Contrasting:
			c = gfx.HSB(n/float64(it), 0.9, bri)
		case Continuous:
			c = gfx.HSB(float64(it)/n, 0.9, bri)
		case Blues:
			c = gfx.HSB(0.5+float64(it)/(n*10), float64(it)/n, bri)
		}
		colors[it] = uint32(c)
	}
	return colors
}
