package shape

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/gogpu/gfx"
	"github.com/gogpu/gg"
)

// Style controls how a path is painted.
type Style struct {
	// Background fills the canvas before drawing. A fully transparent
	// background keeps the source pixels instead.
	Background gfx.Color

	// Stroke is the line color; a zero alpha disables stroking.
	Stroke gfx.Color

	// Fill is the interior color; a zero alpha disables filling.
	Fill gfx.Color

	// Width is the stroke width in pixels.
	Width float64

	// Round selects round caps and joins instead of butt caps and miter joins.
	Round bool
}

func (st Style) apply(dc *gg.Context) {
	dc.SetLineWidth(st.Width)
	if st.Round {
		dc.SetLineCap(gg.LineCapRound)
		dc.SetLineJoin(gg.LineJoinRound)
	} else {
		dc.SetLineCap(gg.LineCapButt)
		dc.SetLineJoin(gg.LineJoinMiter)
	}
}

// Canvas returns a drawing context for src prepared with the style's
// background: a copy of src when the background is transparent, or a
// canvas filled with the background color otherwise.
func Canvas(src *gfx.Image, bg gfx.Color) (*gg.Context, error) {
	if bg>>24 == 0 {
		return src.Context(), nil
	}
	dc := gg.NewContext(src.Width, src.Height)
	dc.SetColor(bg)
	dc.DrawRectangle(0, 0, float64(src.Width), float64(src.Height))
	if err := dc.Fill(); err != nil {
		dc.Close()
		return nil, fmt.Errorf("background: %w", err)
	}
	return dc, nil
}

// Draw fills and strokes path on dc according to st.
func Draw(dc *gg.Context, path *Path, st Style) error {
	if path.Empty() {
		return nil
	}
	st.apply(dc)
	if st.Fill>>24 != 0 {
		dc.SetColor(st.Fill)
		path.Replay(dc)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("fill: %w", err)
		}
	}
	if st.Stroke>>24 != 0 && st.Width > 0 {
		dc.SetColor(st.Stroke)
		path.Replay(dc)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke: %w", err)
		}
	}
	return nil
}

// Render draws path over src and returns the result in gfx.Dest(src, dst).
func Render(src, dst *gfx.Image, path *Path, st Style) (*gfx.Image, error) {
	return RenderAll(src, dst, Styled{Path: path, Style: st})
}

// RenderAll draws the items in order like Render. The background of the
// first item prepares the canvas, as in WriteSVG.
func RenderAll(src, dst *gfx.Image, items ...Styled) (*gfx.Image, error) {
	var bg gfx.Color
	if len(items) > 0 {
		bg = items[0].Style.Background
	}
	dc, err := Canvas(src, bg)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	for _, it := range items {
		if err := Draw(dc, it.Path, it.Style); err != nil {
			return nil, err
		}
	}
	return gfx.ContextResult(dc, src, dst), nil
}

// Styled pairs a path with its style for SVG export.
type Styled struct {
	Path  *Path
	Style Style
}

// WriteSVG writes a width x height SVG document containing the paths.
// The background of the first entry, if opaque, becomes a full-size rect.
func WriteSVG(w io.Writer, width, height int, items ...Styled) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	if len(items) > 0 && items[0].Style.Background>>24 != 0 {
		canvas.Rect(0, 0, width, height, "fill:"+cssColor(items[0].Style.Background))
	}
	for _, it := range items {
		if it.Path.Empty() {
			continue
		}
		canvas.Path(it.Path.SVGData(), it.Style.css())
	}
	canvas.End()
	return ew.err
}

// SVGData formats the path as SVG path data.
func (p *Path) SVGData() string {
	var b strings.Builder
	for _, s := range p.Segs {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch s.Op {
		case MoveTo:
			fmt.Fprintf(&b, "M%.2f,%.2f", s.Pts[0].X, s.Pts[0].Y)
		case LineTo:
			fmt.Fprintf(&b, "L%.2f,%.2f", s.Pts[0].X, s.Pts[0].Y)
		case QuadTo:
			fmt.Fprintf(&b, "Q%.2f,%.2f %.2f,%.2f", s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y)
		case CubicTo:
			fmt.Fprintf(&b, "C%.2f,%.2f %.2f,%.2f %.2f,%.2f",
				s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y, s.Pts[2].X, s.Pts[2].Y)
		case Close:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func (st Style) css() string {
	parts := []string{"fill:none"}
	if st.Fill>>24 != 0 {
		parts[0] = "fill:" + cssColor(st.Fill)
	}
	if st.Stroke>>24 != 0 && st.Width > 0 {
		parts = append(parts, "stroke:"+cssColor(st.Stroke), fmt.Sprintf("stroke-width:%g", st.Width))
		if st.Round {
			parts = append(parts, "stroke-linecap:round", "stroke-linejoin:round")
		}
	}
	return strings.Join(parts, ";")
}

func cssColor(c gfx.Color) string {
	a, r, g, b := gfx.Unpack(uint32(c))
	if a == 255 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", r, g, b, float64(a)/255)
}

// errWriter remembers the first write error, since svgo ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, nil
}
