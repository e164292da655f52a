package adjust

import (
	"image/color"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/lut"
	"github.com/gogpu/gfx/internal/parallel"
)

// EqualizeSpace selects the channel whose histogram is equalized.
type EqualizeSpace int

// Equalization spaces.
const (
	// EqualizeBrightness equalizes HSB brightness, keeping hue and saturation.
	EqualizeBrightness EqualizeSpace = iota

	// EqualizeLuma equalizes YCbCr luma, keeping chroma.
	EqualizeLuma
)

var equalizeSpaces = gfx.Choices[EqualizeSpace]{"Brightness", "Luma"}

func (s EqualizeSpace) String() string { return equalizeSpaces.Name(s) }

// ParseEqualizeSpace parses a space name.
func ParseEqualizeSpace(s string) (EqualizeSpace, error) { return equalizeSpaces.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *EqualizeSpace) UnmarshalYAML(node *yaml.Node) error {
	return equalizeSpaces.Unmarshal(node, s)
}

// Equalize spreads the histogram of one channel over the full range.
type Equalize struct {
	Space EqualizeSpace `yaml:"space"`
}

// NewEqualize returns a brightness equalizer.
func NewEqualize() *Equalize {
	return &Equalize{Space: EqualizeBrightness}
}

// Transform implements gfx.Filter.
func (f *Equalize) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := equalizeSpaces.Check("space", f.Space); err != nil {
		return nil, err
	}

	level := brightnessLevel
	if f.Space == EqualizeLuma {
		level = lumaLevel
	}
	t, ok := equalizeTable(histogram(src, level))
	if !ok {
		return src, nil
	}

	if f.Space == EqualizeLuma {
		return mapPixels(src, dst, func(p uint32) uint32 {
			a, r, g, b := gfx.Unpack(p)
			y, cb, cr := color.RGBToYCbCr(uint8(r), uint8(g), uint8(b))
			nr, ng, nb := color.YCbCrToRGB(t[y], cb, cr)
			return gfx.Pack(a, int(nr), int(ng), int(nb))
		}), nil
	}
	return mapPixels(src, dst, func(p uint32) uint32 {
		a, r, g, b := gfx.Unpack(p)
		h, s, v := gfx.RGBToHSB(r, g, b)
		v = float64(t[int(v*255+0.5)]) / 255
		r, g, b = gfx.HSBToRGB(h, s, v)
		return gfx.Pack(a, r, g, b)
	}), nil
}

func brightnessLevel(r, g, b int) uint8 {
	return uint8(max(r, g, b))
}

func lumaLevel(r, g, b int) uint8 {
	y, _, _ := color.RGBToYCbCr(uint8(r), uint8(g), uint8(b))
	return y
}

// histogram counts levels per row band and merges the partial counts.
func histogram(src *gfx.Image, level func(r, g, b int) uint8) *[256]int {
	pool := parallel.Default()
	bands := parallel.Bands(src.Height, pool.Workers())
	partial := make([][256]int, len(bands))
	jobs := make([]func(), len(bands))
	for i, band := range bands {
		jobs[i] = func() {
			h := &partial[i]
			for y := band[0]; y < band[1]; y++ {
				for _, p := range src.Row(y) {
					_, r, g, b := gfx.Unpack(p)
					h[level(r, g, b)]++
				}
			}
		}
	}
	pool.Run(jobs)

	var total [256]int
	for i := range partial {
		for v, n := range partial[i] {
			total[v] += n
		}
	}
	return &total
}

// equalizeTable builds the cumulative mapping of a histogram. It reports
// false when the image has a single level and nothing can be spread.
func equalizeTable(hist *[256]int) (lut.Table, bool) {
	var cdf [256]int
	sum := 0
	for i, n := range hist {
		sum += n
		cdf[i] = sum
	}
	first := 0
	for _, c := range cdf {
		if c > 0 {
			first = c
			break
		}
	}
	if sum == first {
		return lut.Table{}, false
	}
	scale := 255 / float64(sum-first)
	return lut.FromFunc(func(i int) float64 {
		return float64(max(cdf[i]-first, 0)) * scale
	}), true
}
