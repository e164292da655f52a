package tiling

import (
	"io"

	"github.com/gogpu/gg"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/shape"
)

// GridType is the cell shape of a Grid.
type GridType int

// Grid cell shapes.
const (
	Rectangles GridType = iota
	Hexagons
	GridTriangles
	Diamonds
	FishScales
	DragonScales
)

var gridTypes = gfx.Choices[GridType]{
	"Rectangles", "Hexagons", "Triangles", "Diamonds", "Fish Scales", "Dragon Scales",
}

func (t GridType) String() string { return gridTypes.Name(t) }

// ParseGridType parses a grid cell shape name.
func ParseGridType(s string) (GridType, error) { return gridTypes.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *GridType) UnmarshalYAML(node *yaml.Node) error {
	return gridTypes.Unmarshal(node, t)
}

// Grid strokes a regular grid of lines. The grid is anchored at a
// relative center and may be scaled around it.
type Grid struct {
	Type       GridType `yaml:"type"`
	DivisionsX int      `yaml:"divisions_x"` // 1..49
	DivisionsY int      `yaml:"divisions_y"` // 1..49

	// CenterX and CenterY are relative to the image size.
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`

	ScaleX float64 `yaml:"scale_x"` // percent, 1..500
	ScaleY float64 `yaml:"scale_y"` // percent, 1..500

	Background gfx.Color `yaml:"background"`
	Foreground gfx.Color `yaml:"foreground"`
	Width      float64   `yaml:"width"`
}

// NewGrid returns a 4 x 4 white rectangular grid on black.
func NewGrid() *Grid {
	return &Grid{
		Type:       Rectangles,
		DivisionsX: 4,
		DivisionsY: 4,
		CenterX:    0.5,
		CenterY:    0.5,
		ScaleX:     100,
		ScaleY:     100,
		Background: gfx.Black,
		Foreground: gfx.White,
		Width:      5,
	}
}

// gridLayout holds the cell size and the offset of the grid origin.
type gridLayout struct {
	w, h         float64
	cols, rows   int
	shiftX       float64
	shiftY       float64
	cellW, cellH float64
}

// staggered calls cell for every cell of a grid whose odd rows are
// offset by interval, with enough cells to cover the shifted area.
func (l gridLayout) staggered(space, interval float64, cell func(x, y float64)) {
	segX := int(l.shiftX / l.cellW)
	segY := int(l.shiftY / (2 * l.cellH))
	for i := -2 - segX; i < l.cols-segX+1; i++ {
		for j := -2 * (segY + 1); j < l.rows-2*(segY-2); j += 2 {
			cell(float64(i)*space, float64(j)*l.cellH)
			cell(float64(i)*space+interval, float64(j+1)*l.cellH)
		}
	}
}

func (l gridLayout) rectangles(p *shape.Path) {
	segX := int(l.shiftX / l.cellW)
	segY := int(l.shiftY / l.cellH)
	for i := -segY; i < l.rows-segY+1; i++ {
		y := float64(i) * l.cellH
		p.Line(-l.shiftX, y, l.w-l.shiftX, y)
	}
	for i := -segX; i < l.cols-segX+1; i++ {
		x := float64(i) * l.cellW
		p.Line(x, -l.shiftY, x, l.h-l.shiftY)
	}
}

// hexagons draws the upper halves of staggered hexagons; the lower
// halves are the upper halves of the row below.
func (l gridLayout) hexagons(p *shape.Path) {
	cw := 2 * l.w / float64(3*l.cols-1)
	space := 3 * cw / 2
	h := l.cellH
	l.cellW = cw
	l.staggered(space, space/2, func(x, y float64) {
		p.MoveTo(x, y)
		p.LineTo(x+cw/4, y-h)
		p.LineTo(x+3*cw/4, y-h)
		p.LineTo(x+cw, y)
	})
}

// triangles draws baseless triangles, plus the horizontal bases unless
// diamond is set.
func (l gridLayout) triangles(p *shape.Path, diamond bool) {
	cw, h := l.cellW, l.cellH
	l.staggered(cw, cw/2, func(x, y float64) {
		p.MoveTo(x, y)
		p.LineTo(x+cw/2, y-h)
		p.LineTo(x+cw, y)
	})
	if diamond {
		return
	}
	segY := 2 * int(l.shiftY/(2*l.cellH))
	for i := -segY - 1; i < l.rows-segY+2; i++ {
		y := float64(i) * h
		p.Line(-l.shiftX, y, l.w-l.shiftX, y)
	}
}

// scales draws one arch per cell. Dragon scales have pointed tips.
func (l gridLayout) scales(p *shape.Path, dragon bool) {
	cw, h := l.cellW, l.cellH
	c1, c2 := 0.25, 0.75
	if dragon {
		c1, c2 = 0.46, 0.54
	}
	l.staggered(cw, cw/2, func(x, y float64) {
		p.MoveTo(x, y-h)
		p.CubicTo(x+cw*c1, y+h/3, x+cw*c2, y+h/3, x+cw, y-h)
	})
}

func (f *Grid) path(width, height int) (*shape.Path, error) {
	if err := gridTypes.Check("type", f.Type); err != nil {
		return nil, err
	}
	l := gridLayout{
		w:      float64(width),
		h:      float64(height),
		cols:   lo.Clamp(f.DivisionsX, 1, 49),
		rows:   lo.Clamp(f.DivisionsY, 1, 49),
		shiftX: (f.CenterX - 0.5) * float64(width),
		shiftY: (f.CenterY - 0.5) * float64(height),
	}
	l.cellW = l.w / float64(l.cols)
	l.cellH = l.h / float64(l.rows)

	var p shape.Path
	switch f.Type {
	case Rectangles:
		l.rectangles(&p)
	case Hexagons:
		l.hexagons(&p)
	case GridTriangles:
		l.triangles(&p, false)
	case Diamonds:
		l.triangles(&p, true)
	case FishScales:
		l.scales(&p, false)
	case DragonScales:
		l.scales(&p, true)
	}

	cx, cy := f.CenterX*l.w, f.CenterY*l.h
	sx := lo.Clamp(f.ScaleX, 1, 500) / 100
	sy := lo.Clamp(f.ScaleY, 1, 500) / 100
	m := gg.Translate(cx-sx*cx, cy-sy*cy).
		Multiply(gg.Scale(sx, sy)).
		Multiply(gg.Translate(l.shiftX, l.shiftY))
	return p.Transform(m), nil
}

func (f *Grid) style() shape.Style {
	return shape.Style{
		Background: f.Background,
		Stroke:     f.Foreground,
		Width:      lo.Clamp(f.Width, 0, 100),
	}
}

// Transform implements gfx.Filter.
func (f *Grid) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	p, err := f.path(src.Width, src.Height)
	if err != nil {
		return nil, err
	}
	return shape.Render(src, dst, p, f.style())
}

// SVG implements gfx.VectorFilter.
func (f *Grid) SVG(w io.Writer, width, height int) error {
	p, err := f.path(width, height)
	if err != nil {
		return err
	}
	return shape.WriteSVG(w, width, height, shape.Styled{Path: p, Style: f.style()})
}
