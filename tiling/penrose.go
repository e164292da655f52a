package tiling

import (
	"io"
	"math"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/shape"
)

// PenroseStart selects the prototile arrangement deflated by Penrose.
type PenroseStart int

// Penrose vertex configurations.
const (
	Sun PenroseStart = iota
	Star
	Ace
	King
	Queen
	Jack
	Deuce
)

var penroseStarts = gfx.Choices[PenroseStart]{"Sun", "Star", "Ace", "King", "Queen", "Jack", "Deuce"}

func (s PenroseStart) String() string { return penroseStarts.Name(s) }

// ParsePenroseStart parses a starting pattern name.
func ParsePenroseStart(s string) (PenroseStart, error) { return penroseStarts.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *PenroseStart) UnmarshalYAML(node *yaml.Node) error {
	return penroseStarts.Unmarshal(node, s)
}

const (
	goldenRatio = 1.618033988749895
	theta       = math.Pi / 5 // 36 degrees

	distEpsilon  = 0.01
	angleEpsilon = 0.1
)

// angleBuckets is the number of angle keys in a full turn. Keys wrap so
// angles just below 2π share a bucket with 0.
var angleBuckets = int64(math.Round(2 * math.Pi / angleEpsilon))

type tileKind uint8

const (
	kite tileKind = iota
	dart
)

// tileEdges holds the distances, in tile sizes, of the three outer
// vertices of each tile kind from its apex.
var tileEdges = [...][3]float64{
	kite: {goldenRatio, goldenRatio, goldenRatio},
	dart: {-goldenRatio, -1, -goldenRatio},
}

// tile is one kite or dart of a P2 tiling, anchored at its apex.
type tile struct {
	kind  tileKind
	x, y  float64
	angle float64 // radians in [0, 2π)
	size  float64
}

func newTile(kind tileKind, x, y, angle, size float64) tile {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return tile{kind: kind, x: x, y: y, angle: angle, size: size}
}

// key groups tiles that coincide within the distance and angle epsilons.
type tileKey struct {
	kind  tileKind
	x, y  int64
	angle int64
}

func (t tile) key() tileKey {
	return tileKey{
		kind:  t.kind,
		x:     int64(math.Round(t.x / distEpsilon)),
		y:     int64(math.Round(t.y / distEpsilon)),
		angle: int64(math.Round(t.angle/angleEpsilon)) % angleBuckets,
	}
}

func (t tile) appendTo(p *shape.Path) {
	p.MoveTo(t.x, t.y)
	a := t.angle - theta
	for _, d := range tileEdges[t.kind] {
		p.LineTo(t.x+d*t.size*math.Cos(a), t.y-d*t.size*math.Sin(a))
		a += theta
	}
	p.Close()
}

// dedupe drops tiles that coincide with an earlier one, keeping order.
func dedupe(tiles []tile) []tile {
	seen := make(map[tileKey]bool, len(tiles))
	out := tiles[:0]
	for _, t := range tiles {
		k := t.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}

// deflate replaces every tile by smaller tiles of the next generation.
func deflate(tiles []tile) []tile {
	next := make([]tile, 0, len(tiles)*4)
	for _, t := range tiles {
		x, y, a := t.x, t.y, t.angle
		size := t.size / goldenRatio
		if t.kind == dart {
			next = append(next, newTile(kite, x, y, a+5*theta, size))
			for sign := 1.0; sign >= -1; sign -= 2 {
				na := a - 4*theta*sign
				nx := x + math.Cos(na)*goldenRatio*t.size
				ny := y - math.Sin(na)*goldenRatio*t.size
				next = append(next, newTile(dart, nx, ny, na, size))
			}
			continue
		}
		for sign := 1.0; sign >= -1; sign -= 2 {
			next = append(next, newTile(dart, x, y, a-4*theta*sign, size))
			nx := x + math.Cos(a-theta*sign)*goldenRatio*t.size
			ny := y - math.Sin(a-theta*sign)*goldenRatio*t.size
			next = append(next, newTile(kite, nx, ny, a+3*theta*sign, size))
		}
	}
	return dedupe(next)
}

// prototiles returns the starting arrangement centered at (cx, cy).
func prototiles(start PenroseStart, cx, cy, s float64) []tile {
	g := goldenRatio
	var tiles []tile
	switch start {
	case Sun:
		for i := range 5 {
			tiles = append(tiles, newTile(kite, cx, cy, math.Pi/2+theta+float64(i)*2*theta, s))
		}
	case Star:
		for i := range 5 {
			tiles = append(tiles, newTile(dart, cx, cy, math.Pi/2+float64(i)*2*theta, s))
		}
	case Ace:
		ky := cy + s*g
		tiles = append(tiles,
			newTile(kite, cx, ky, math.Pi/2+theta, s),
			newTile(kite, cx, ky, math.Pi/2-theta, s),
			newTile(dart, cx, cy-s, math.Pi/2, s),
		)
	case King:
		ky := cy + s/2
		dx := s * g * math.Cos(theta/2)
		tiles = append(tiles,
			newTile(kite, cx+dx, ky, math.Pi+theta/2, s),
			newTile(kite, cx-dx, ky, -theta/2, s),
			newTile(dart, cx, cy, -theta/2, s),
			newTile(dart, cx, cy, -theta/2-2*theta, s),
			newTile(dart, cx, cy, -theta/2-4*theta, s),
		)
	case Queen:
		ty := cy - s*g*math.Cos(theta)
		dx := s * math.Cos(theta/2)
		by := cy + s*g
		tiles = append(tiles,
			newTile(dart, cx, cy, 1.5*math.Pi, s),
			newTile(kite, cx-dx, ty, 1.5*math.Pi, s),
			newTile(kite, cx+dx, ty, 1.5*math.Pi, s),
			newTile(kite, cx, by, 1.5*theta, s),
			newTile(kite, cx, by, 3.5*theta, s),
		)
	case Jack:
		dx := s * g * math.Cos(theta/2)
		dy := cy + s*g*math.Sin(theta/2)
		tiles = append(tiles,
			newTile(kite, cx, cy, 6.5*theta, s),
			newTile(kite, cx, cy, 8.5*theta, s),
			newTile(kite, cx, cy-s*g, 7.5*theta, s),
			newTile(dart, cx-dx, dy, 6.5*theta, s),
			newTile(dart, cx+dx, dy, 8.5*theta, s),
		)
	case Deuce:
		dy := cy - s*g
		ky := cy + s/2
		dx := s * g * math.Cos(theta/2)
		tiles = append(tiles,
			newTile(dart, cx, dy, math.Pi/2+theta, s),
			newTile(dart, cx, dy, math.Pi/2-theta, s),
			newTile(kite, cx-dx, ky, math.Pi/2-2*theta, s),
			newTile(kite, cx+dx, ky, math.Pi/2+2*theta, s),
		)
	}
	return tiles
}

// Penrose draws a kite and dart tiling grown from a starting pattern by
// repeated deflation.
type Penrose struct {
	Start       PenroseStart `yaml:"start"`
	Generations int          `yaml:"generations"` // 0..7
	Zoom        float64      `yaml:"zoom"`        // percent, 10..200
	EdgeWidth   float64      `yaml:"edge_width"`  // 0..5, scaled by zoom
	Kite        gfx.Color    `yaml:"kite"`
	Dart        gfx.Color    `yaml:"dart"`
	Edge        gfx.Color    `yaml:"edge"`

	// Background fills the canvas first; transparent keeps the source.
	Background gfx.Color `yaml:"background"`
}

// NewPenrose returns a sun pattern with green kites and yellow darts.
func NewPenrose() *Penrose {
	return &Penrose{
		Start:     Sun,
		Zoom:      100,
		EdgeWidth: 1,
		Kite:      0xFF8FFF73,
		Dart:      0xFFFCFF4B,
		Edge:      gfx.Black,
	}
}

// tiles returns the deflated tiling of a width x height image.
func (f *Penrose) tiles(width, height int) []tile {
	scale := lo.Clamp(f.Zoom, 10, 200) / 100
	size := scale * float64(min(width, height)) / 2.5
	tiles := dedupe(prototiles(f.Start, float64(width)/2, float64(height)/2, size))
	for range lo.Clamp(f.Generations, 0, 7) {
		tiles = deflate(tiles)
	}
	return tiles
}

func (f *Penrose) shapes(width, height int) ([]shape.Styled, error) {
	if err := penroseStarts.Check("start", f.Start); err != nil {
		return nil, err
	}
	var kites, darts shape.Path
	for _, t := range f.tiles(width, height) {
		if t.kind == kite {
			t.appendTo(&kites)
		} else {
			t.appendTo(&darts)
		}
	}
	var edges shape.Path
	edges.Append(&kites)
	edges.Append(&darts)

	return []shape.Styled{
		{Path: &kites, Style: shape.Style{Background: f.Background, Fill: f.Kite}},
		{Path: &darts, Style: shape.Style{Fill: f.Dart}},
		{Path: &edges, Style: shape.Style{
			Stroke: f.Edge,
			Width:  lo.Clamp(f.EdgeWidth, 0, 5) * lo.Clamp(f.Zoom, 10, 200) / 100,
		}},
	}, nil
}

// Transform implements gfx.Filter.
func (f *Penrose) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
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
func (f *Penrose) SVG(w io.Writer, width, height int) error {
	items, err := f.shapes(width, height)
	if err != nil {
		return err
	}
	return shape.WriteSVG(w, width, height, items...)
}
