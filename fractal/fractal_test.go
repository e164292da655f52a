package fractal

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/shape"
)

func canvas() *gfx.Image {
	return gfx.NewImage(48, 36)
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name   string
		cx, cy float64
		want   int
	}{
		{"origin stays bounded", 0, 0, 50},
		{"minus one cycles", -1, 0, 50},
		{"far point escapes at once", 3, 0, 1},
		{"one escapes after three steps", 1, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escape(0, 0, tt.cx, tt.cy, 50); got != tt.want {
				t.Errorf("escape(%v, %v) = %d, want %d", tt.cx, tt.cy, got, tt.want)
			}
		})
	}
}

func TestMandelbrotCenterIsBlack(t *testing.T) {
	f := NewMandelbrot()
	f.CenterX = -0.2
	f.Zoom = 10
	out, err := f.Transform(canvas(), nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got := out.At(24, 18); got != uint32(gfx.Black) {
		t.Errorf("center pixel = %#08x, want black inside the set", got)
	}
}

func TestComplexFractalSupersampleDiffers(t *testing.T) {
	plain := NewJulia()
	smooth := NewJulia()
	smooth.Supersample = true

	a, err := plain.Transform(canvas(), nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	b, err := smooth.Transform(canvas(), nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if cmp.Equal(a.Pix, b.Pix) {
		t.Error("supersampling did not change any pixel")
	}
}

func TestPaletteCache(t *testing.T) {
	a := paletteFor(Blues, 120)
	b := paletteFor(Blues, 120)
	if &a[0] != &b[0] {
		t.Error("same key rebuilt the palette")
	}
	c := paletteFor(Contrasting, 120)
	if &a[0] == &c[0] {
		t.Error("different palette returned the cached slice")
	}
	if len(c) != 121 {
		t.Errorf("len = %d, want iterations+1", len(c))
	}
	if c[0] != uint32(gfx.Black) {
		t.Errorf("color of zero iterations = %#08x, want black", c[0])
	}
}

func TestPaletteCacheConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := Palette(i % 3)
			n := 50 + i%4
			if got := paletteFor(p, n); len(got) != n+1 {
				t.Errorf("len = %d, want %d", len(got), n+1)
			}
		}()
	}
	wg.Wait()
}

func TestChaosGameZeroIterationsIsWhite(t *testing.T) {
	f := NewChaosGame()
	f.Iterations = 0
	out, err := f.Transform(canvas(), nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	for _, p := range out.Pix {
		if p != uint32(gfx.White) {
			t.Fatalf("pixel %#08x, want white background only", p)
		}
	}
}

func TestChaosGamePlotsInsideMargin(t *testing.T) {
	for _, n := range []int{3, 4, 7} {
		f := NewChaosGame()
		f.Vertices = n
		f.Iterations = 20
		f.Colors = NoColors
		f.Midpoints = true
		f.Center = true
		f.NoRepeat = true
		f.Seed = 2
		out, err := f.Transform(canvas(), nil)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		plotted := 0
		for y := range out.Height {
			for x := range out.Width {
				if out.At(x, y) == uint32(gfx.White) {
					continue
				}
				plotted++
				if x < chaosMargin || y < chaosMargin || x > out.Width-chaosMargin || y > out.Height-chaosMargin {
					t.Errorf("%d vertices: point (%d, %d) outside the margin", n, x, y)
				}
			}
		}
		if plotted == 0 {
			t.Errorf("%d vertices: nothing plotted", n)
		}
	}
}

func TestDeterministic(t *testing.T) {
	chaos := NewChaosGame()
	chaos.Iterations = 10
	chaos.Colors = LastButTwo
	chaos.Polygon = true
	chaos.Seed = 3

	tree := NewFractalTree()
	tree.Depth = 7
	tree.Gravity = 30
	tree.Wind = -20
	tree.Background = gfx.White
	tree.Seed = 4

	for name, f := range map[string]gfx.Filter{"chaos": chaos, "tree": tree} {
		t.Run(name, func(t *testing.T) {
			a, err := f.Transform(canvas(), nil)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			b, err := f.Transform(canvas(), nil)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			if diff := cmp.Diff(a.Pix, b.Pix); diff != "" {
				t.Errorf("same seed gave different pixels (-first +second):\n%s", diff)
			}
		})
	}
}

func TestFractalTreeDrawsFromBottom(t *testing.T) {
	f := NewFractalTree()
	f.Randomness = 0
	f.Curvedness = 0
	f.Background = gfx.White
	f.Quality = Faster
	out, err := f.Transform(gfx.NewImage(100, 100), nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got := out.At(50, 98); got == uint32(gfx.White) {
		t.Error("no trunk at the bottom center")
	}
	if got := out.At(2, 98); got != uint32(gfx.White) {
		t.Errorf("corner pixel = %#08x, want background", got)
	}
}

func TestBendPullsDown(t *testing.T) {
	var g treeGrower
	lvl := treeLevel{gravity: 0.5}
	// Heading 300 points up and right; gravity turns it towards 360.
	if got := g.bend(300, lvl); got <= 300 {
		t.Errorf("bend(300) = %v, want more than 300", got)
	}
	if got := g.bend(240, lvl); got >= 240 {
		t.Errorf("bend(240) = %v, want less than 240", got)
	}
}

func TestRewrite(t *testing.T) {
	g := grammars[Hilbert]
	if got, want := g.rewrite(1), "+BF-AFA-FB+"; got != want {
		t.Errorf("rewrite(1) = %q, want %q", got, want)
	}
	b := grammars[Border]
	if got := b.rewrite(1); !strings.ContainsRune(got, 'X') {
		t.Errorf("rewrite dropped the X symbols: %q", got)
	}
}

func TestInterpretClosesSquare(t *testing.T) {
	p := interpret(strings.Repeat("F+", 4), 0, 90)
	end := p.Segs[len(p.Segs)-1].Pts[0]
	if math.Abs(end.X) > 1e-9 || math.Abs(end.Y) > 1e-9 {
		t.Errorf("square ends at (%v, %v), want the origin", end.X, end.Y)
	}
}

func TestInterpretBranches(t *testing.T) {
	p := interpret("F[+F]F", 0, 90)
	var moves int
	for _, s := range p.Segs {
		if s.Op == shape.MoveTo {
			moves++
		}
	}
	if moves != 2 {
		t.Errorf("%d move-tos, want the initial one and one after the pop", moves)
	}
}

func TestLSystemRendersAndExportsSVG(t *testing.T) {
	for typ := range LSystemType(len(lsystemTypes) - 1) {
		t.Run(typ.String(), func(t *testing.T) {
			f := NewLSystem()
			f.Type = typ
			f.Iterations = 2
			out, err := f.Transform(canvas(), nil)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			dark := 0
			for _, p := range out.Pix {
				if gfx.Red(p) < 128 {
					dark++
				}
			}
			if dark == 0 {
				t.Error("no curve drawn")
			}

			var buf bytes.Buffer
			if err := f.SVG(&buf, 200, 100); err != nil {
				t.Fatalf("SVG: %v", err)
			}
			if !strings.Contains(buf.String(), "<path") {
				t.Error("SVG has no path element")
			}
		})
	}
}

func TestLSystemCustomYAML(t *testing.T) {
	src := `
type: custom
axiom: F
rules: {F: "F+F-F-F+F"}
turn_angle: 90
iterations: 2
`
	f := NewLSystem()
	if err := yaml.Unmarshal([]byte(src), f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if f.Type != Custom {
		t.Fatalf("Type = %v, want Custom", f.Type)
	}
	if _, err := f.Transform(canvas(), nil); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	f.Rules = map[string]string{"FF": "F"}
	if _, err := f.Transform(canvas(), nil); !errors.Is(err, gfx.ErrInvalidParam) {
		t.Errorf("err = %v, want ErrInvalidParam", err)
	}
}

func TestUnknownChoice(t *testing.T) {
	m := NewMandelbrot()
	m.Palette = 9
	c := NewChaosGame()
	c.Colors = 9
	tr := NewFractalTree()
	tr.Quality = 9
	l := NewLSystem()
	l.Type = 99
	for _, f := range []gfx.Filter{m, c, tr, l} {
		if _, err := f.Transform(canvas(), nil); !errors.Is(err, gfx.ErrUnknownChoice) {
			t.Errorf("%T: err = %v, want ErrUnknownChoice", f, err)
		}
	}
}

func TestVectorFilter(t *testing.T) {
	var _ gfx.VectorFilter = NewLSystem()
}
