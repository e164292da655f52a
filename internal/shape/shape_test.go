package shape

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gg"
)

func square() *Path {
	p := &Path{}
	p.Polygon(gg.Pt(0, 0), gg.Pt(10, 0), gg.Pt(10, 10), gg.Pt(0, 10))
	return p
}

func TestPath_Bounds(t *testing.T) {
	p := &Path{}
	if _, _, _, _, ok := p.Bounds(); ok {
		t.Error("empty path should report ok = false")
	}

	p.MoveTo(5, 5)
	p.CubicTo(-3, 2, 20, 30, 10, 10)
	minX, minY, maxX, maxY, ok := p.Bounds()
	if !ok || minX != -3 || minY != 2 || maxX != 20 || maxY != 30 {
		t.Errorf("Bounds = (%v, %v, %v, %v, %v), want (-3, 2, 20, 30, true)", minX, minY, maxX, maxY, ok)
	}
}

func TestPath_FitMatrix(t *testing.T) {
	p := square()
	fitted := p.Transform(p.FitMatrix(100, 50, 5))
	minX, minY, maxX, maxY, _ := fitted.Bounds()

	// Height is the limiting side: 40 px of space for 10 units.
	const eps = 1e-9
	if math.Abs(minY-5) > eps || math.Abs(maxY-45) > eps {
		t.Errorf("y range = [%v, %v], want [5, 45]", minY, maxY)
	}
	if math.Abs(minX-30) > eps || math.Abs(maxX-70) > eps {
		t.Errorf("x range = [%v, %v], want [30, 70]", minX, maxX)
	}
}

func TestPath_SVGData(t *testing.T) {
	p := &Path{}
	p.MoveTo(1, 2)
	p.LineTo(3, 4)
	p.QuadTo(5, 6, 7, 8)
	p.Close()
	want := "M1.00,2.00 L3.00,4.00 Q5.00,6.00 7.00,8.00 Z"
	if got := p.SVGData(); got != want {
		t.Errorf("SVGData() = %q, want %q", got, want)
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	st := Style{Background: gfx.Black, Stroke: gfx.White, Width: 2}
	if err := WriteSVG(&buf, 64, 32, Styled{Path: square(), Style: st}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", `width="64"`, "fill:#000000", "stroke:#ffffff", "M0.00,0.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVG_PropagatesError(t *testing.T) {
	if err := WriteSVG(failWriter{}, 10, 10); err == nil {
		t.Error("WriteSVG should report the writer's error")
	}
}

func TestRender_StrokesOntoBackground(t *testing.T) {
	src := gfx.NewImage(40, 40)
	p := &Path{}
	p.Line(0, 20, 40, 20)
	out, err := Render(src, nil, p, Style{Background: gfx.Black, Stroke: gfx.White, Width: 4})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Width != 40 || out.Height != 40 {
		t.Fatalf("size = %dx%d, want 40x40", out.Width, out.Height)
	}
	if got := out.At(5, 5); got != uint32(gfx.Black) {
		t.Errorf("background pixel = %#08x, want opaque black", got)
	}
	if got := gfx.Red(out.At(20, 20)); got < 200 {
		t.Errorf("stroke pixel red = %d, want bright", got)
	}
}

func TestCanvas(t *testing.T) {
	src := gfx.NewImage(8, 8)
	src.Fill(gfx.White)

	dc, err := Canvas(src, gfx.Black)
	if err != nil {
		t.Fatalf("Canvas: %v", err)
	}
	out := gfx.ContextResult(dc, src, nil)
	dc.Close()
	if got := out.At(3, 3); got != uint32(gfx.Black) {
		t.Errorf("opaque background pixel = %#08x, want opaque black", got)
	}

	dc, err = Canvas(src, 0)
	if err != nil {
		t.Fatalf("Canvas over source: %v", err)
	}
	out = gfx.ContextResult(dc, src, nil)
	dc.Close()
	if got := out.At(3, 3); got != uint32(gfx.White) {
		t.Errorf("transparent background pixel = %#08x, want the source's white", got)
	}
}
