package adjust

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
)

// ColorMatrix applies a 4x5 color transformation matrix to an image.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column holds offsets. Channels are in [0, 255] during the
// transformation and are clamped afterwards.
type ColorMatrix struct {
	// Matrix is row-major: [0-4] = R, [5-9] = G, [10-14] = B, [15-19] = A.
	Matrix [20]float32 `yaml:"matrix"`
}

// MatrixPreset names a parametric color matrix.
type MatrixPreset int

// Color matrix presets. Amount is interpreted per preset.
const (
	MatrixIdentity   MatrixPreset = iota
	MatrixBrightness              // factor, 1 = unchanged
	MatrixContrast                // factor, 1 = unchanged
	MatrixSaturate                // factor, 0 = gray, 1 = unchanged
	MatrixSepia
	MatrixGrayscale
	MatrixInvert
	MatrixHueRotate // degrees
	MatrixOpacity   // alpha factor
	MatrixTint      // uses the tint color; its alpha is the blend factor
)

var matrixPresets = gfx.Choices[MatrixPreset]{
	"Identity",
	"Brightness",
	"Contrast",
	"Saturate",
	"Sepia",
	"Grayscale",
	"Invert",
	"Hue Rotate",
	"Opacity",
	"Tint",
}

func (p MatrixPreset) String() string { return matrixPresets.Name(p) }

// ParseMatrixPreset parses a preset name.
func ParseMatrixPreset(s string) (MatrixPreset, error) { return matrixPresets.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *MatrixPreset) UnmarshalYAML(node *yaml.Node) error {
	return matrixPresets.Unmarshal(node, p)
}

var identityMatrix = [20]float32{
	1, 0, 0, 0, 0, // R
	0, 1, 0, 0, 0, // G
	0, 0, 1, 0, 0, // B
	0, 0, 0, 1, 0, // A
}

// NewColorMatrix returns a filter with the given matrix.
func NewColorMatrix(matrix [20]float32) *ColorMatrix {
	return &ColorMatrix{Matrix: matrix}
}

// NewIdentityMatrix returns a matrix that leaves pixels unchanged.
func NewIdentityMatrix() *ColorMatrix {
	return &ColorMatrix{Matrix: identityMatrix}
}

// NewColorMatrixPreset builds a preset matrix. amount is ignored by presets
// without a parameter and tint is used only by MatrixTint.
func NewColorMatrixPreset(p MatrixPreset, amount float32, tint gfx.Color) (*ColorMatrix, error) {
	switch p {
	case MatrixIdentity:
		return NewIdentityMatrix(), nil
	case MatrixBrightness:
		return NewBrightnessMatrix(amount), nil
	case MatrixContrast:
		return NewContrastMatrix(amount), nil
	case MatrixSaturate:
		return NewSaturationMatrix(amount), nil
	case MatrixSepia:
		return NewSepiaMatrix(), nil
	case MatrixGrayscale:
		return NewGrayscaleMatrix(), nil
	case MatrixInvert:
		return NewInvertMatrix(), nil
	case MatrixHueRotate:
		return NewHueRotateMatrix(amount), nil
	case MatrixOpacity:
		return NewOpacityMatrix(amount), nil
	case MatrixTint:
		return NewTintMatrix(tint), nil
	}
	return nil, matrixPresets.Check("preset", p)
}

// NewBrightnessMatrix scales the color channels.
// factor: 0 = black, 1 = unchanged, 2 = twice as bright
func NewBrightnessMatrix(factor float32) *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			factor, 0, 0, 0, 0,
			0, factor, 0, 0, 0,
			0, 0, factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewContrastMatrix scales the color channels around mid-gray.
// factor: 0 = gray, 1 = unchanged, 2 = high contrast
func NewContrastMatrix(factor float32) *ColorMatrix {
	// (color - 128) * factor + 128
	offset := 128 * (1 - factor)
	return &ColorMatrix{
		Matrix: [20]float32{
			factor, 0, 0, 0, offset,
			0, factor, 0, 0, offset,
			0, 0, factor, 0, offset,
			0, 0, 0, 1, 0,
		},
	}
}

// NewSaturationMatrix blends between luminance and the original color.
// factor: 0 = grayscale, 1 = unchanged, 2 = oversaturated
func NewSaturationMatrix(factor float32) *ColorMatrix {
	// Rec. 709 luminance weights
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)
	inv := 1 - factor
	return &ColorMatrix{
		Matrix: [20]float32{
			lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
			lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
			lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewGrayscaleMatrix converts to Rec. 709 luminance.
func NewGrayscaleMatrix() *ColorMatrix {
	return NewSaturationMatrix(0)
}

// NewSepiaMatrix applies a sepia tone.
func NewSepiaMatrix() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			0.393, 0.769, 0.189, 0, 0,
			0.349, 0.686, 0.168, 0, 0,
			0.272, 0.534, 0.131, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewInvertMatrix inverts the color channels.
func NewInvertMatrix() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			-1, 0, 0, 0, 255,
			0, -1, 0, 0, 255,
			0, 0, -1, 0, 255,
			0, 0, 0, 1, 0,
		},
	}
}

// NewHueRotateMatrix rotates hue by the given angle in degrees.
func NewHueRotateMatrix(degrees float32) *ColorMatrix {
	rad := float64(degrees) * math.Pi / 180
	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))

	const (
		lumR = 0.213
		lumG = 0.715
		lumB = 0.072
	)
	return &ColorMatrix{
		Matrix: [20]float32{
			lumR + cos*(1-lumR) + sin*(-lumR), lumG + cos*(-lumG) + sin*(-lumG), lumB + cos*(-lumB) + sin*(1-lumB), 0, 0,
			lumR + cos*(-lumR) + sin*(0.143), lumG + cos*(1-lumG) + sin*(0.140), lumB + cos*(-lumB) + sin*(-0.283), 0, 0,
			lumR + cos*(-lumR) + sin*(-(1 - lumR)), lumG + cos*(-lumG) + sin*(lumG), lumB + cos*(1-lumB) + sin*(lumB), 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewOpacityMatrix multiplies alpha by factor.
func NewOpacityMatrix(factor float32) *ColorMatrix {
	m := identityMatrix
	m[18] = factor
	return &ColorMatrix{Matrix: m}
}

// NewTintMatrix blends every pixel towards the tint color by the tint's alpha.
func NewTintMatrix(tint gfx.Color) *ColorMatrix {
	a, r, g, b := gfx.Unpack(uint32(tint))
	f := float32(a) / 255
	inv := 1 - f
	return &ColorMatrix{
		Matrix: [20]float32{
			inv, 0, 0, 0, float32(r) * f,
			0, inv, 0, 0, float32(g) * f,
			0, 0, inv, 0, float32(b) * f,
			0, 0, 0, 1, 0,
		},
	}
}

// Multiply returns the product of f and other. The result applies f first,
// then other.
func (f *ColorMatrix) Multiply(other *ColorMatrix) *ColorMatrix {
	a := &other.Matrix
	b := &f.Matrix

	result := &ColorMatrix{}
	r := &result.Matrix
	for row := range 4 {
		for col := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[row*5+k] * b[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = a[row*5+0]*b[4] + a[row*5+1]*b[9] +
			a[row*5+2]*b[14] + a[row*5+3]*b[19] + a[row*5+4]
	}
	return result
}

// IsIdentity reports whether the matrix leaves every pixel unchanged.
func (f *ColorMatrix) IsIdentity() bool {
	return f.Matrix == identityMatrix
}

// Transform implements gfx.Filter.
func (f *ColorMatrix) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if f.IsIdentity() {
		return src, nil
	}
	m := f.Matrix
	return mapPixels(src, dst, func(p uint32) uint32 {
		ai, ri, gi, bi := gfx.Unpack(p)
		a, r, g, b := float32(ai), float32(ri), float32(gi), float32(bi)
		nr := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
		ng := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
		nb := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
		na := m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]
		return gfx.Pack(clampByte(na), clampByte(nr), clampByte(ng), clampByte(nb))
	}), nil
}

// UnmarshalYAML accepts either an explicit matrix or a preset:
//
//	matrix: [1, 0, 0, 0, 0, ...]
//	preset: hue-rotate
//	amount: 90
func (f *ColorMatrix) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Matrix []float32    `yaml:"matrix"`
		Preset MatrixPreset `yaml:"preset"`
		Amount *float32     `yaml:"amount"`
		Tint   gfx.Color    `yaml:"tint"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Matrix != nil {
		if len(raw.Matrix) != len(f.Matrix) {
			return fmt.Errorf("%w: color matrix has %d entries, want 20", gfx.ErrInvalidParam, len(raw.Matrix))
		}
		copy(f.Matrix[:], raw.Matrix)
		return nil
	}
	amount := float32(1)
	if raw.Amount != nil {
		amount = *raw.Amount
	}
	m, err := NewColorMatrixPreset(raw.Preset, amount, raw.Tint)
	if err != nil {
		return err
	}
	*f = *m
	return nil
}

func clampByte(v float32) int {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return int(v + 0.5)
}
