package adjust

import (
	"github.com/samber/lo"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/lut"
)

// Posterize reduces every color channel to a fixed number of evenly
// spaced levels.
type Posterize struct {
	Red   int `yaml:"red"`   // levels, 1..255
	Green int `yaml:"green"` // levels, 1..255
	Blue  int `yaml:"blue"`  // levels, 1..255
}

// NewPosterize returns a Posterize with 6 levels per channel.
func NewPosterize() *Posterize {
	return &Posterize{Red: 6, Green: 6, Blue: 6}
}

// Transform implements gfx.Filter.
func (f *Posterize) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	t := &lut.RGB{
		R: levelsTable(f.Red),
		G: levelsTable(f.Green),
		B: levelsTable(f.Blue),
	}
	if t.IsIdentity() {
		return src, nil
	}
	return lookup(src, dst, t), nil
}

// levelsTable quantizes [0, 255] into n levels. A single level maps
// everything to black.
func levelsTable(n int) lut.Table {
	n = lo.Clamp(n, 1, 255)
	if n == 1 {
		return lut.Table{}
	}
	return lut.FromFunc(func(i int) float64 {
		level := i * n / 256
		return float64(255 * level / (n - 1))
	})
}
