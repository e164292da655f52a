package fractal

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/shape"
)

// LSystemType selects a predefined rewriting system, or Custom.
type LSystemType int

// L-system types.
const (
	Border LSystemType = iota
	Box
	Crystal
	Plant
	Gosper
	Hilbert
	PenroseP3
	Pentaplexity
	Ring
	Sierpinski
	SierpinskiSquare
	SierpinskiArrowhead
	SierpinskiTriangle

	// Custom uses the Axiom, Rules and angles of the filter.
	Custom
)

var lsystemTypes = gfx.Choices[LSystemType]{
	"Border",
	"Box",
	"Crystal",
	"Fractal Plant",
	"Gosper",
	"Hilbert Curve",
	"Penrose Tiling P3",
	"Pentaplexity",
	"Ring",
	"Sierpinski",
	"Sierpinski Square",
	"Sierpinski Arrowhead",
	"Sierpinski Triangle",
	"Custom",
}

func (t LSystemType) String() string { return lsystemTypes.Name(t) }

// ParseLSystemType parses an L-system type name.
func ParseLSystemType(s string) (LSystemType, error) { return lsystemTypes.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *LSystemType) UnmarshalYAML(node *yaml.Node) error {
	return lsystemTypes.Unmarshal(node, t)
}

// grammar is a rewriting system with its turtle setup. Symbols without a
// rule rewrite to themselves.
type grammar struct {
	axiom string
	rules map[rune]string

	// drawAxiom counts the axiom itself as the first iteration.
	drawAxiom bool

	turn  int
	start func(n int) int
}

func fixedStart(deg int) func(int) int {
	return func(int) int { return deg }
}

var grammars = map[LSystemType]grammar{
	Border: {
		axiom: "XYXYXYX+XYXYXYX+XYXYXYX+XYXYXYX",
		rules: map[rune]string{'F': "", 'X': "FX+FX+FXFY-FY-", 'Y': "+FX+FXFY-FY-FY"},
		turn:  90,
		start: func(n int) int {
			return [...]int{0, -27, 37, 10, -16, 47, 21, -6}[min(max(n, 0), 7)]
		},
	},
	Box: {
		axiom: "F+F+F+F", drawAxiom: true,
		rules: map[rune]string{'F': "FF+F+F+F+FF"},
		turn:  90, start: fixedStart(0),
	},
	Crystal: {
		axiom: "F+F+F+F", drawAxiom: true,
		rules: map[rune]string{'F': "FF+F++F+F"},
		turn:  90, start: fixedStart(0),
	},
	Plant: {
		axiom: "A",
		rules: map[rune]string{'A': "F+[[A]-A]-F[-FA]+A", 'F': "FF"},
		turn:  25, start: fixedStart(-90),
	},
	Gosper: {
		axiom: "F",
		rules: map[rune]string{'F': "F-G--G+F++FF+G-", 'G': "+F-GG--G-F++F+G"},
		turn:  60, start: fixedStart(0),
	},
	Hilbert: {
		axiom: "A",
		rules: map[rune]string{'A': "+BF-AFA-FB+", 'B': "-AF+BFB+FA-"},
		turn:  90, start: fixedStart(0),
	},
	PenroseP3: {
		axiom: "[B]++[B]++[B]++[B]++[B]",
		rules: map[rune]string{
			'A': "CF++DF----BF[-CF----AF]++",
			'B': "+CF--DF[---AF--BF]+",
			'C': "-AF++BF[+++CF++DF]-",
			'D': "--CF++++AF[+DF++++BF]--BF",
			'F': "",
		},
		turn: 36, start: fixedStart(-90),
	},
	Pentaplexity: {
		axiom: "F++F++F++F++F", drawAxiom: true,
		rules: map[rune]string{'F': "F++F++F+++++F-F++F"},
		turn:  36, start: fixedStart(180),
	},
	Ring: {
		axiom: "F+F+F+F", drawAxiom: true,
		rules: map[rune]string{'F': "FF+F+F+F+F+F-F"},
		turn:  90, start: fixedStart(0),
	},
	Sierpinski: {
		axiom: "F--XF--F--XF",
		rules: map[rune]string{'X': "XF+G+XF--F--XF+G+X"},
		turn:  45, start: fixedStart(0),
	},
	SierpinskiSquare: {
		axiom: "F+XF+F+XF",
		rules: map[rune]string{'X': "XF-F+F-XF+F+XF-F+F-X"},
		turn:  90, start: fixedStart(0),
	},
	SierpinskiArrowhead: {
		axiom: "XF",
		rules: map[rune]string{'X': "YF+XF+Y", 'Y': "XF-YF-X"},
		turn:  60,
		start: func(n int) int {
			if n%2 == 0 {
				return 0
			}
			return -60
		},
	},
	SierpinskiTriangle: {
		axiom: "F-G-G", drawAxiom: true,
		rules: map[rune]string{'F': "F-G+F+G-F", 'G': "GG"},
		turn:  120, start: fixedStart(0),
	},
}

// maxCommands bounds the rewritten string of custom systems.
const maxCommands = 4 << 20

// turtleStep is the distance of one forward move before fitting.
const turtleStep = 10

// LSystem draws the curve produced by a string-rewriting system
// interpreted as turtle graphics: F and G draw forward, f moves without
// drawing, + and - turn, [ and ] save and restore the turtle.
type LSystem struct {
	Type       LSystemType `yaml:"type"`
	Iterations int         `yaml:"iterations"` // 1..7, custom systems up to 12

	// Custom system definition.
	Axiom      string            `yaml:"axiom"`
	Rules      map[string]string `yaml:"rules"`
	StartAngle int               `yaml:"start_angle"` // degrees
	TurnAngle  int               `yaml:"turn_angle"`  // degrees

	Background  gfx.Color `yaml:"background"`
	Foreground  gfx.Color `yaml:"foreground"`
	StrokeWidth float64   `yaml:"stroke_width"`
}

// NewLSystem returns a third-iteration Hilbert curve, black on white.
func NewLSystem() *LSystem {
	return &LSystem{
		Type:        Hilbert,
		Iterations:  3,
		TurnAngle:   90,
		Background:  gfx.White,
		Foreground:  gfx.Black,
		StrokeWidth: 2,
	}
}

func (f *LSystem) grammar() (grammar, int, error) {
	if f.Type != Custom {
		return grammars[f.Type], lo.Clamp(f.Iterations, 1, 7), nil
	}
	rules := make(map[rune]string, len(f.Rules))
	for k, v := range f.Rules {
		r := []rune(k)
		if len(r) != 1 {
			return grammar{}, 0, fmt.Errorf("rule %q: %w: predecessor must be one symbol", k, gfx.ErrInvalidParam)
		}
		rules[r[0]] = v
	}
	g := grammar{
		axiom: f.Axiom,
		rules: rules,
		turn:  f.TurnAngle,
		start: fixedStart(f.StartAngle),
	}
	return g, lo.Clamp(f.Iterations, 0, 12), nil
}

// rewrite applies the rules n times to the axiom. It stops early once the
// string exceeds maxCommands.
func (g grammar) rewrite(n int) string {
	s := g.axiom
	for range n {
		var b strings.Builder
		for _, c := range s {
			if r, ok := g.rules[c]; ok {
				b.WriteString(r)
			} else {
				b.WriteRune(c)
			}
		}
		s = b.String()
		if len(s) > maxCommands {
			break
		}
	}
	return s
}

// turtleState is a saved turtle. The heading is kept in whole degrees so
// that repeated turns do not accumulate rounding errors.
type turtleState struct {
	x, y  float64
	angle int
}

// interpret runs the turtle over commands and records its path.
func interpret(commands string, start, turn int) *shape.Path {
	var path shape.Path
	t := turtleState{angle: start}
	var stack []turtleState
	path.MoveTo(0, 0)

	forward := func() {
		sin, cos := math.Sincos(float64(t.angle) * math.Pi / 180)
		t.x += turtleStep * cos
		t.y += turtleStep * sin
	}
	for _, c := range commands {
		switch c {
		case 'F', 'G':
			forward()
			path.LineTo(t.x, t.y)
		case 'f':
			forward()
			path.MoveTo(t.x, t.y)
		case '+':
			t.angle += turn
		case '-':
			t.angle -= turn
		case '[':
			stack = append(stack, t)
		case ']':
			if len(stack) == 0 {
				continue
			}
			t = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			path.MoveTo(t.x, t.y)
		}
	}
	return &path
}

func (f *LSystem) style() shape.Style {
	return shape.Style{
		Background: f.Background,
		Stroke:     f.Foreground,
		Width:      lo.Clamp(f.StrokeWidth, 0, 100),
		Round:      true,
	}
}

// curve returns the path scaled to fit a width x height image.
func (f *LSystem) curve(width, height int) (*shape.Path, error) {
	if err := lsystemTypes.Check("type", f.Type); err != nil {
		return nil, err
	}
	g, n, err := f.grammar()
	if err != nil {
		return nil, err
	}
	if g.drawAxiom {
		n--
	}
	path := interpret(g.rewrite(n), g.start(n), g.turn)
	margin := math.Max(10, f.style().Width*2)
	return path.Transform(path.FitMatrix(width, height, margin)), nil
}

// Transform implements gfx.Filter.
func (f *LSystem) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	path, err := f.curve(src.Width, src.Height)
	if err != nil {
		return nil, err
	}
	return shape.Render(src, dst, path, f.style())
}

// SVG implements gfx.VectorFilter.
func (f *LSystem) SVG(w io.Writer, width, height int) error {
	path, err := f.curve(width, height)
	if err != nil {
		return err
	}
	return shape.WriteSVG(w, width, height, shape.Styled{Path: path, Style: f.style()})
}
