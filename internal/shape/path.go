// Package shape records vector paths once and replays them onto a gg
// context or into an SVG document.
package shape

import (
	"math"

	"github.com/gogpu/gg"
)

// Op is a path operation.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	QuadTo
	CubicTo
	Close
)

// Segment is one path operation with up to three points.
type Segment struct {
	Op  Op
	Pts [3]gg.Point
}

// Path is a recorded sequence of segments.
type Path struct {
	Segs []Segment
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) {
	p.Segs = append(p.Segs, Segment{Op: MoveTo, Pts: [3]gg.Point{{X: x, Y: y}}})
}

// LineTo adds a straight segment.
func (p *Path) LineTo(x, y float64) {
	p.Segs = append(p.Segs, Segment{Op: LineTo, Pts: [3]gg.Point{{X: x, Y: y}}})
}

// QuadTo adds a quadratic Bezier segment.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.Segs = append(p.Segs, Segment{Op: QuadTo, Pts: [3]gg.Point{{X: cx, Y: cy}, {X: x, Y: y}}})
}

// CubicTo adds a cubic Bezier segment.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.Segs = append(p.Segs, Segment{Op: CubicTo, Pts: [3]gg.Point{{X: c1x, Y: c1y}, {X: c2x, Y: c2y}, {X: x, Y: y}}})
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.Segs = append(p.Segs, Segment{Op: Close})
}

// Line adds a separate two-point subpath.
func (p *Path) Line(x1, y1, x2, y2 float64) {
	p.MoveTo(x1, y1)
	p.LineTo(x2, y2)
}

// Polygon adds a closed subpath through pts.
func (p *Path) Polygon(pts ...gg.Point) {
	if len(pts) == 0 {
		return
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	p.Close()
}

// Append adds all segments of o.
func (p *Path) Append(o *Path) {
	p.Segs = append(p.Segs, o.Segs...)
}

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool {
	return len(p.Segs) == 0
}

func (s Segment) points() int {
	switch s.Op {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	}
	return 0
}

// Bounds returns the bounding box of all segment points, control points
// included. An empty path reports ok == false.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, s := range p.Segs {
		for _, pt := range s.Pts[:s.points()] {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
			ok = true
		}
	}
	return
}

// Transform returns a copy of p with every point mapped through m.
func (p *Path) Transform(m gg.Matrix) *Path {
	out := &Path{Segs: make([]Segment, len(p.Segs))}
	for i, s := range p.Segs {
		for j := range s.points() {
			s.Pts[j] = m.TransformPoint(s.Pts[j])
		}
		out.Segs[i] = s
	}
	return out
}

// FitMatrix returns a transform that scales and centers p inside a
// width x height area leaving margin pixels on each side. The aspect
// ratio is preserved.
func (p *Path) FitMatrix(width, height int, margin float64) gg.Matrix {
	minX, minY, maxX, maxY, ok := p.Bounds()
	if !ok {
		return gg.Identity()
	}
	w, h := maxX-minX, maxY-minY
	availW := float64(width) - 2*margin
	availH := float64(height) - 2*margin

	scale := 1.0
	switch {
	case w > 0 && h > 0:
		scale = math.Min(availW/w, availH/h)
	case w > 0:
		scale = availW / w
	case h > 0:
		scale = availH / h
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	return gg.Translate(float64(width)/2, float64(height)/2).
		Multiply(gg.Scale(scale, scale)).
		Multiply(gg.Translate(-cx, -cy))
}

// Replay issues the path's segments on dc. The caller fills or strokes.
func (p *Path) Replay(dc *gg.Context) {
	for _, s := range p.Segs {
		switch s.Op {
		case MoveTo:
			dc.MoveTo(s.Pts[0].X, s.Pts[0].Y)
		case LineTo:
			dc.LineTo(s.Pts[0].X, s.Pts[0].Y)
		case QuadTo:
			dc.QuadraticTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y)
		case CubicTo:
			dc.CubicTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y, s.Pts[2].X, s.Pts[2].Y)
		case Close:
			dc.ClosePath()
		}
	}
}
