package tiling

import (
	"io"
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/shape"
)

// TruchetType is the motif drawn in every tile.
type TruchetType int

// Truchet tile motifs.
const (
	// Triangles fills the lower right half of the tile.
	Triangles TruchetType = iota

	// QuarterCircles strokes two quarter arcs around opposite corners.
	QuarterCircles

	// Diagonals strokes one diagonal.
	Diagonals
)

var truchetTypes = gfx.Choices[TruchetType]{"Triangles", "Quarter Circles", "Diagonals"}

func (t TruchetType) String() string { return truchetTypes.Name(t) }

// ParseTruchetType parses a tile motif name.
func ParseTruchetType(s string) (TruchetType, error) { return truchetTypes.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TruchetType) UnmarshalYAML(node *yaml.Node) error {
	return truchetTypes.Unmarshal(node, t)
}

// TruchetPattern decides the rotation of each tile. RandomPattern draws
// rotations from the seed; the numbered patterns are fixed layouts.
type TruchetPattern int

// RandomPattern is the only pattern that depends on the seed.
const RandomPattern TruchetPattern = 0

var truchetPatterns = gfx.Choices[TruchetPattern]{
	"Random", "Un", "Deux", "Trois", "Quatre", "Cinq", "Six", "Sept", "Huit",
	"Neuf", "Dix", "Onze", "Douze", "Treize", "Quatorze", "Quinze", "Seize",
	"Dix-sept", "Dix-huit", "Dix-neuf", "Vingt", "Vingt et un",
}

func (p TruchetPattern) String() string { return truchetPatterns.Name(p) }

// ParseTruchetPattern parses a pattern name.
func ParseTruchetPattern(s string) (TruchetPattern, error) { return truchetPatterns.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler. Plain numbers select the
// numbered patterns.
func (p *TruchetPattern) UnmarshalYAML(node *yaml.Node) error {
	return truchetPatterns.Unmarshal(node, p)
}

// rotationTables are the layouts of patterns 3 to 19, indexed [row][col]
// and repeated over the image.
var rotationTables = map[TruchetPattern][][]uint8{
	3: {
		{2, 2, 1, 1, 2, 2, 3, 3, 0, 0, 3, 3},
		{0, 0, 3, 3, 0, 0, 1, 1, 2, 2, 1, 1},
	},
	4: {
		{0, 1, 2, 3},
		{1, 0, 3, 2},
		{2, 3, 0, 1},
		{3, 2, 1, 0},
	},
	5: {
		{0, 0, 1, 1, 2, 2, 3, 3},
		{0, 0, 1, 1, 2, 2, 3, 3},
		{1, 1, 0, 0, 3, 3, 2, 2},
		{1, 1, 0, 0, 3, 3, 2, 2},
	},
	6: {
		{2, 3, 2, 3, 0, 1, 0, 1},
		{1, 3, 2, 0, 3, 3, 2, 2},
		{2, 0, 1, 3, 0, 0, 1, 1},
		{1, 0, 1, 0, 3, 2, 3, 2},
		{0, 1, 0, 1, 2, 3, 2, 3},
		{3, 3, 2, 2, 1, 3, 2, 0},
		{0, 0, 1, 1, 2, 0, 1, 3},
		{3, 2, 3, 2, 1, 0, 1, 0},
	},
	7: {
		{0, 1, 1, 0, 0, 1},
		{3, 3, 2, 3, 2, 2},
		{0, 0, 1, 0, 1, 1},
		{3, 2, 2, 3, 3, 2},
	},
	8: {
		{0, 2, 3},
		{3, 2, 0},
		{2, 0, 1},
		{1, 0, 2},
	},
	9: {
		{0, 2, 3, 1},
		{1, 0, 2, 3},
		{3, 1, 0, 2},
		{2, 3, 1, 0},
	},
	10: {
		{2, 1, 3, 1, 0, 1, 3, 1},
		{1, 3, 1, 0, 1, 3, 1, 2},
		{3, 1, 0, 1, 3, 1, 2, 1},
		{1, 0, 1, 3, 1, 2, 1, 3},
		{0, 1, 3, 1, 2, 1, 3, 1},
		{1, 3, 1, 2, 1, 3, 1, 0},
		{3, 1, 2, 1, 3, 1, 0, 1},
		{1, 2, 1, 3, 1, 0, 1, 3},
	},
	11: {
		{0, 2, 2, 3, 2, 0},
		{2, 2, 0, 0, 1, 0},
		{2, 0, 0, 2, 2, 3},
		{1, 0, 2, 2, 0, 0},
		{2, 3, 2, 0, 0, 2},
		{0, 0, 1, 0, 2, 2},
	},
	12: {
		{3, 2, 3, 2, 1, 0, 1, 0},
		{0, 2, 3, 1, 2, 0, 1, 3},
		{3, 1, 0, 2, 1, 3, 2, 0},
		{0, 1, 0, 1, 2, 3, 2, 3},
		{1, 0, 1, 0, 3, 2, 3, 2},
		{2, 0, 1, 3, 0, 2, 3, 1},
		{1, 3, 2, 0, 3, 1, 0, 2},
		{2, 3, 2, 3, 0, 1, 0, 1},
	},
	13: {
		{0, 2, 3, 1, 2, 0, 1, 3},
		{0, 1, 0, 1, 2, 3, 2, 3},
		{3, 2, 3, 2, 1, 0, 1, 0},
		{0, 2, 3, 1, 2, 0, 1, 3},
		{0, 1, 0, 1, 2, 3, 2, 3},
		{3, 2, 3, 2, 1, 0, 1, 0},
	},
	14: {
		{2, 2, 3, 3, 0, 0, 1, 1},
		{1, 1, 0, 0, 3, 3, 2, 2},
		{2, 0, 1, 3, 0, 2, 3, 1},
		{1, 3, 2, 0, 3, 1, 0, 2},
	},
	15: {
		{0, 2, 1, 0, 3, 1, 2, 0, 3, 2, 1, 3},
		{2, 0, 3, 2, 1, 3, 0, 2, 1, 0, 3, 1},
		{3, 1, 0, 1, 0, 2, 1, 3, 2, 3, 2, 0},
		{0, 2, 3, 2, 3, 1, 2, 0, 1, 0, 1, 3},
		{1, 3, 0, 1, 2, 0, 3, 1, 2, 3, 0, 2},
		{3, 1, 2, 3, 0, 2, 1, 3, 0, 1, 2, 0},
		{2, 0, 3, 2, 1, 3, 0, 2, 1, 0, 3, 1},
		{0, 2, 1, 0, 3, 1, 2, 0, 3, 2, 1, 3},
		{1, 3, 2, 3, 2, 0, 3, 1, 0, 1, 0, 2},
		{2, 0, 1, 0, 1, 3, 0, 2, 3, 2, 3, 1},
		{3, 1, 2, 3, 0, 2, 1, 3, 0, 1, 2, 0},
		{1, 3, 0, 1, 2, 0, 3, 1, 2, 3, 0, 2},
	},
	16: {
		{0, 1, 3, 1, 3, 2, 0, 2},
		{3, 2, 0, 2, 0, 1, 3, 1},
		{1, 0, 2, 0, 2, 3, 1, 3},
		{3, 2, 0, 2, 0, 1, 3, 1},
		{1, 0, 2, 0, 2, 3, 1, 3},
		{2, 3, 1, 3, 1, 0, 2, 0},
		{0, 1, 3, 1, 3, 2, 0, 2},
		{2, 3, 1, 3, 1, 0, 2, 0},
	},
	17: {
		{0, 0, 0, 2, 0, 1, 3, 1, 1, 1},
		{0, 0, 2, 0, 2, 3, 1, 3, 1, 1},
		{0, 2, 0, 2, 0, 1, 3, 1, 3, 1},
		{2, 0, 2, 0, 0, 1, 1, 3, 1, 3},
		{0, 2, 0, 0, 2, 3, 1, 1, 3, 1},
		{3, 1, 3, 3, 1, 0, 2, 2, 0, 2},
		{1, 3, 1, 3, 3, 2, 2, 0, 2, 0},
		{3, 1, 3, 1, 3, 2, 0, 2, 0, 2},
		{3, 3, 1, 3, 1, 0, 2, 0, 2, 2},
		{3, 3, 3, 1, 3, 2, 0, 2, 2, 2},
	},
	18: {
		{0, 1, 0, 1, 0, 1, 2, 3, 2, 3, 2, 3},
		{3, 2, 2, 3, 3, 2, 1, 0, 0, 1, 1, 0},
		{0, 2, 0, 1, 3, 1, 2, 0, 2, 3, 1, 3},
		{3, 1, 3, 2, 0, 2, 1, 3, 1, 0, 2, 0},
		{0, 1, 1, 0, 0, 1, 2, 3, 3, 2, 2, 3},
		{3, 2, 3, 2, 3, 2, 1, 0, 1, 0, 1, 0},
		{2, 3, 2, 3, 2, 3, 0, 1, 0, 1, 0, 1},
		{1, 0, 0, 1, 1, 0, 3, 2, 2, 3, 3, 2},
		{2, 0, 2, 3, 1, 3, 0, 2, 0, 1, 3, 1},
		{1, 3, 1, 0, 2, 0, 3, 1, 3, 2, 0, 2},
		{2, 3, 3, 2, 2, 3, 0, 1, 1, 0, 0, 1},
		{1, 0, 1, 0, 1, 0, 3, 2, 3, 2, 3, 2},
	},
	19: {
		{0, 2, 0, 2, 0, 1, 3, 1},
		{0, 1, 3, 1, 0, 2, 0, 2},
		{2, 3, 1, 3, 2, 0, 2, 0},
		{2, 0, 2, 0, 2, 3, 1, 3},
	},
}

// bezierArc is the control distance of a cubic quarter circle of radius 1.
const bezierArc = 0.5523

// Truchet covers the image with square tiles, each a single motif
// rotated by a multiple of 90 degrees.
type Truchet struct {
	Type         TruchetType    `yaml:"type"`
	Pattern      TruchetPattern `yaml:"pattern"`
	Size         int            `yaml:"size"`       // tile side, 2..100
	LineWidth    float64        `yaml:"line_width"` // 1..20, unused by Triangles
	Background   gfx.Color      `yaml:"background"`
	Foreground   gfx.Color      `yaml:"foreground"`
	ShowBoundary bool           `yaml:"show_boundary"`
	Seed         int64          `yaml:"seed"`
}

// NewTruchet returns random black triangles on white 20 pixel tiles.
func NewTruchet() *Truchet {
	return &Truchet{
		Type:       Triangles,
		Pattern:    RandomPattern,
		Size:       20,
		LineWidth:  3,
		Background: gfx.White,
		Foreground: gfx.Black,
	}
}

// motif returns the tile shape with its top left corner at the origin.
func (f *Truchet) motif(s float64) *shape.Path {
	var p shape.Path
	switch f.Type {
	case Triangles:
		p.Polygon(gg.Pt(s, 0), gg.Pt(s, s), gg.Pt(0, s))
	case QuarterCircles:
		r := s / 2
		k := bezierArc * r
		p.MoveTo(r, 0)
		p.CubicTo(r, k, s-k, r, s, r)
		p.MoveTo(r, s)
		p.CubicTo(r, s-k, k, r, 0, r)
	case Diagonals:
		p.Line(0, 0, s, s)
	}
	return &p
}

// rotation returns the quarter turn count of tile (i, j) in a grid of
// cols x rows tiles.
func (f *Truchet) rotation(i, j, cols, rows int, rng *rand.Rand) int {
	even := func(n int) bool { return n%2 == 0 }
	switch p := f.Pattern; p {
	case RandomPattern:
		return rng.IntN(4)
	case 1:
		return lo.Ternary(even(i), lo.Ternary(even(j), 0, 1), lo.Ternary(even(j), 2, 3))
	case 2:
		return lo.Ternary(even(i), lo.Ternary(even(j), 0, 2), lo.Ternary(even(j), 1, 3))
	case 20:
		left, top := i < cols/2, j < rows/2
		return lo.Ternary(left, lo.Ternary(top, 0, 1), lo.Ternary(top, 3, 2))
	case 21:
		left, top := i < cols/2, j < rows/2
		return lo.Ternary(left, lo.Ternary(top, 1, 0), lo.Ternary(top, 2, 3))
	default:
		table := rotationTables[p]
		row := table[j%len(table)]
		return int(row[i%len(row)])
	}
}

func (f *Truchet) shapes(width, height int) ([]shape.Styled, error) {
	if err := truchetTypes.Check("type", f.Type); err != nil {
		return nil, err
	}
	if err := truchetPatterns.Check("pattern", f.Pattern); err != nil {
		return nil, err
	}
	size := lo.Clamp(f.Size, 2, 100)
	s := float64(size)
	cols, rows := width/size+1, height/size+1

	// The four rotations about the tile center.
	base := f.motif(s)
	var turned [4]*shape.Path
	for k := range turned {
		m := gg.Translate(s/2, s/2).
			Multiply(gg.Rotate(float64(k) * math.Pi / 2)).
			Multiply(gg.Translate(-s/2, -s/2))
		turned[k] = base.Transform(m)
	}

	rng := gfx.NewRand(f.Seed)
	var tiles shape.Path
	for j := range rows {
		for i := range cols {
			k := f.rotation(i, j, cols, rows, rng)
			tiles.Append(turned[k].Transform(gg.Translate(float64(i*size), float64(j*size))))
		}
	}

	st := shape.Style{Background: f.Background}
	if f.Type == Triangles {
		st.Fill = f.Foreground
	} else {
		st.Stroke = f.Foreground
		st.Width = lo.Clamp(f.LineWidth, 1, 20)
	}
	items := []shape.Styled{{Path: &tiles, Style: st}}

	if f.ShowBoundary {
		var grid shape.Path
		for i := 1; i < cols; i++ {
			grid.Line(float64(i*size), 0, float64(i*size), float64(height))
		}
		for j := 1; j < rows; j++ {
			grid.Line(0, float64(j*size), float64(width), float64(j*size))
		}
		items = append(items, shape.Styled{Path: &grid, Style: shape.Style{Stroke: 0xFFFF0000, Width: 1}})
	}
	return items, nil
}

// Transform implements gfx.Filter.
func (f *Truchet) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	items, err := f.shapes(src.Width, src.Height)
	if err != nil {
		return nil, err
	}
	return shape.RenderAll(src, dst, items...)
}

// SVG implements gfx.VectorFilter.
func (f *Truchet) SVG(w io.Writer, width, height int) error {
	items, err := f.shapes(width, height)
	if err != nil {
		return err
	}
	return shape.WriteSVG(w, width, height, items...)
}
