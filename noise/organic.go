package noise

import (
	"math"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/field"
	inoise "github.com/gogpu/gfx/internal/noise"
)

// Basis selects the base noise function of OrganicNoise.
type Basis int

// Noise bases.
const (
	OpenSimplex Basis = iota
	Perlin
	Value
	Cellular
)

var bases = gfx.Choices[Basis]{"OpenSimplex", "Perlin", "Value", "Cellular"}

func (b Basis) String() string { return bases.Name(b) }

// ParseBasis parses a noise basis name.
func ParseBasis(s string) (Basis, error) { return bases.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Basis) UnmarshalYAML(node *yaml.Node) error {
	return bases.Unmarshal(node, b)
}

// FractalType selects how octaves are combined.
type FractalType int

// Fractal types.
const (
	NoFractal FractalType = iota
	FBm
	Ridged
	PingPong
)

var fractalTypes = gfx.Choices[FractalType]{"None", "FBm", "Ridged", "PingPong"}

func (t FractalType) String() string { return fractalTypes.Name(t) }

// ParseFractalType parses a fractal type name.
func ParseFractalType(s string) (FractalType, error) { return fractalTypes.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *FractalType) UnmarshalYAML(node *yaml.Node) error {
	return fractalTypes.Unmarshal(node, t)
}

// CellDistance is the distance metric of cellular noise.
type CellDistance int

// Cellular distance metrics.
const (
	Euclidean CellDistance = iota
	EuclideanSq
	Manhattan
	Hybrid
)

var cellDistances = gfx.Choices[CellDistance]{"Euclidean", "Euclidean Squared", "Manhattan", "Hybrid"}

func (d CellDistance) String() string { return cellDistances.Name(d) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *CellDistance) UnmarshalYAML(node *yaml.Node) error {
	return cellDistances.Unmarshal(node, d)
}

// CellReturn is the quantity reported by cellular noise.
type CellReturn int

// Cellular return types.
const (
	CellValue CellReturn = iota
	Distance
	Distance2
	Distance2Add
	Distance2Sub
	Distance2Mul
	Distance2Div
)

var cellReturns = gfx.Choices[CellReturn]{
	"Cell Value",
	"Distance",
	"Distance 2",
	"Distance 2 Add",
	"Distance 2 Sub",
	"Distance 2 Mul",
	"Distance 2 Div",
}

func (r CellReturn) String() string { return cellReturns.Name(r) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *CellReturn) UnmarshalYAML(node *yaml.Node) error {
	return cellReturns.Unmarshal(node, r)
}

// baseFrequency converts pixel offsets to noise space at 100% zoom.
const baseFrequency = 0.01

// OrganicNoise renders grayscale fractal noise with optional domain warp.
type OrganicNoise struct {
	Basis            Basis        `yaml:"basis"`
	Fractal          FractalType  `yaml:"fractal"`
	Octaves          int          `yaml:"octaves"`           // 1..10
	Lacunarity       float64      `yaml:"lacunarity"`        // 0.01..5
	Gain             float64      `yaml:"gain"`              // 0.01..2
	WeightedStrength float64      `yaml:"weighted_strength"` // 0..1
	PingPongStrength float64      `yaml:"ping_pong_strength"`
	CellDistance     CellDistance `yaml:"cell_distance"`
	CellReturn       CellReturn   `yaml:"cell_return"`
	CellJitter       float64      `yaml:"cell_jitter"` // 0..1
	Zoom             float64      `yaml:"zoom"`        // percent, 1..1000
	Angle            float64      `yaml:"angle"`       // degrees
	Warp             float64      `yaml:"warp"`        // domain warp amplitude, 0..200

	// Resolution evaluates noise once per Resolution x Resolution block and
	// upsamples bilinearly; 1 evaluates every pixel.
	Resolution int   `yaml:"resolution"` // 1..8
	Seed       int64 `yaml:"seed"`
}

// NewOrganicNoise returns three octaves of FBm OpenSimplex noise.
func NewOrganicNoise() *OrganicNoise {
	return &OrganicNoise{
		Basis:            OpenSimplex,
		Fractal:          FBm,
		Octaves:          3,
		Lacunarity:       2,
		Gain:             0.5,
		PingPongStrength: 2,
		CellDistance:     Euclidean,
		CellReturn:       Distance,
		CellJitter:       1,
		Zoom:             100,
		Resolution:       1,
	}
}

func (f *OrganicNoise) check() error {
	if err := bases.Check("basis", f.Basis); err != nil {
		return err
	}
	if err := fractalTypes.Check("fractal", f.Fractal); err != nil {
		return err
	}
	if err := cellDistances.Check("cell_distance", f.CellDistance); err != nil {
		return err
	}
	return cellReturns.Check("cell_return", f.CellReturn)
}

func (f *OrganicNoise) basis(seed int64) inoise.Func2 {
	switch f.Basis {
	case Perlin:
		return inoise.NewPerlin(seed)
	case Value:
		return inoise.NewValue(seed)
	case Cellular:
		c := inoise.NewCellular(seed)
		c.Distance = inoise.Distance(f.CellDistance)
		c.Return = inoise.CellReturn(f.CellReturn)
		c.Jitter = lo.Clamp(f.CellJitter, 0, 1)
		return c
	default:
		return inoise.NewSimplex(seed)
	}
}

// sampler returns the noise value at pixel (x, y), in about [-1, 1].
func (f *OrganicNoise) sampler(width, height int) func(x, y float64) float64 {
	seed := gfx.ResolveSeed(f.Seed)
	base := f.basis(seed)
	warpNoise := inoise.NewSimplex(seed + 1)
	fr := inoise.Fractal{
		Octaves:          lo.Clamp(f.Octaves, 1, 10),
		Lacunarity:       lo.Clamp(f.Lacunarity, 0.01, 5),
		Gain:             lo.Clamp(f.Gain, 0.01, 2),
		WeightedStrength: lo.Clamp(f.WeightedStrength, 0, 1),
		PingPongStrength: lo.Clamp(f.PingPongStrength, 0.01, 5),
	}
	scale := lo.Clamp(f.Zoom, 1, 1000) / 100
	warp := lo.Clamp(f.Warp, 0, 200) * baseFrequency
	rad := f.Angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	cx, cy := float64(width)/2, float64(height)/2
	kind := f.Fractal

	return func(x, y float64) float64 {
		sx := (x - cx) / scale * baseFrequency
		sy := (y - cy) / scale * baseFrequency
		sx, sy = cos*sx+sin*sy, -sin*sx+cos*sy
		sx, sy = inoise.Warp(warpNoise, sx, sy, warp, 1)

		switch kind {
		case FBm:
			return fr.FBm(base, sx, sy)
		case Ridged:
			return fr.Ridged(base, sx, sy)
		case PingPong:
			return fr.PingPong(base, sx, sy)
		default:
			return base.Eval2(sx, sy)
		}
	}
}

// Transform implements gfx.Filter.
func (f *OrganicNoise) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	sample := f.sampler(src.Width, src.Height)

	res := lo.Clamp(f.Resolution, 1, 8)
	if res == 1 {
		return generate(src, dst, func(x, y int) uint32 {
			return grayPixel(sample(float64(x), float64(y)))
		}), nil
	}

	coarse := field.NewScalar(src.Width, src.Height, float64(res))
	coarse.Fill(func(x, y float64) float64 {
		return (sample(x, y) + 1) / 2
	})
	fine := coarse.Resample(src.Width, src.Height, field.BiLinear)
	return generate(src, dst, func(x, y int) uint32 {
		return grayPixel(fine[y*src.Width+x]*2 - 1)
	}), nil
}

// grayPixel maps n in [-1, 1] to an opaque gray.
func grayPixel(n float64) uint32 {
	v := gfx.Clamp255(int(127.5 * (n + 1)))
	return gfx.Pack(255, v, v, v)
}
