package particles

import (
	"math"

	"github.com/samber/lo"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/lut"
	"github.com/gogpu/gfx/internal/parallel"
	"github.com/gogpu/gfx/noise"
)

// Lightning screens bright, jagged bolts radiating from a center point
// over the source. Bolts appear where a radial spoke pattern crosses a
// cloud texture.
type Lightning struct {
	Bolts     int       `yaml:"bolts"`     // 1..20
	CenterX   float64   `yaml:"center_x"`  // relative, 0..1
	CenterY   float64   `yaml:"center_y"`  // relative, 0..1
	Expansion float64   `yaml:"expansion"` // 1..255
	Color     gfx.Color `yaml:"color"`
	Seed      int64     `yaml:"seed"`
}

// NewLightning returns eight white bolts from the image center.
func NewLightning() *Lightning {
	return &Lightning{
		Bolts:     8,
		CenterX:   0.5,
		CenterY:   0.5,
		Expansion: 70,
		Color:     gfx.White,
	}
}

// spokes returns the gray level of a reflected black-to-white gradient
// wrapped around (cx, cy) so that it repeats bolts times per turn.
// Pixels beyond radius are black.
func spokes(x, y, cx, cy, radius float64, bolts int) float64 {
	dx, dy := x-cx, y-cy
	if dx*dx+dy*dy >= radius*radius {
		return 0
	}
	t := (math.Atan2(dy, dx) + math.Pi) / (2 * math.Pi) * float64(bolts)
	t = math.Mod(t, 2)
	if t > 1 {
		t = 2 - t
	}
	return 255 * t
}

// boltTables maps the difference image to the bolt color: values under
// the expansion threshold brighten towards the bolt core, the rest vanish.
func boltTables(expansion float64, c gfx.Color) *lut.RGB {
	darken := func(v int) float64 {
		if float64(v) >= expansion {
			return 0
		}
		return 255 * (expansion - float64(v)) / expansion
	}
	if c|0xFF000000 == gfx.White {
		return lut.Uniform(lut.FromFunc(darken))
	}

	// Tint the mid grays, keeping black and white.
	_, cr, cg, cb := gfx.Unpack(uint32(c))
	tint := func(channel int) lut.Table {
		return lut.FromFunc(func(v int) float64 {
			t := darken(v) / 255
			if t < 0.5 {
				return float64(channel) * 2 * t
			}
			return float64(channel) + (255-float64(channel))*(2*t-1)
		})
	}
	return &lut.RGB{R: tint(cr), G: tint(cg), B: tint(cb)}
}

// screen blends b over a: 1 - (1-a)(1-b).
func screen(a, b int) int {
	return 255 - (255-a)*(255-b)/255
}

// Transform implements gfx.Filter.
func (f *Lightning) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	w, h := src.Width, src.Height

	clouds := noise.NewClouds()
	clouds.Seed = f.Seed
	cloudImg, err := clouds.Transform(src, nil)
	if err != nil {
		return nil, err
	}

	bolts := lo.Clamp(f.Bolts, 1, 20)
	cx := float64(w) * lo.Clamp(f.CenterX, 0, 1)
	cy := float64(h) * lo.Clamp(f.CenterY, 0, 1)
	radius := float64(max(w, h))
	tables := boltTables(lo.Clamp(f.Expansion, 1, 255), f.Color)

	out := gfx.Dest(src, dst)
	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			in, cl, o := src.Row(y), cloudImg.Row(y), out.Row(y)
			for x, p := range in {
				s := int(spokes(float64(x)+0.5, float64(y)+0.5, cx, cy, radius, bolts))
				d := lo.Clamp(abs(s-gfx.Red(cl[x])), 0, 255)
				bolt := tables.Apply(gfx.Pack(255, d, d, d))

				a, r, g, b := gfx.Unpack(p)
				o[x] = gfx.Pack(a,
					screen(r, gfx.Red(bolt)),
					screen(g, gfx.Green(bolt)),
					screen(b, gfx.Blue(bolt)))
			}
		}
	})
	return out, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
