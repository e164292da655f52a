package adjust

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
)

func TestNewColorMatrix(t *testing.T) {
	matrix := [20]float32{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
	f := NewColorMatrix(matrix)
	if !f.IsIdentity() {
		t.Errorf("IsIdentity() = false for %v", f.Matrix)
	}

	src := row(0xFF102030)
	got, err := f.Transform(src, nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != src {
		t.Errorf("identity matrix returned a new image")
	}
}

func TestColorMatrixPresets(t *testing.T) {
	tests := []struct {
		name string
		f    *ColorMatrix
		in   uint32
		want uint32
	}{
		{"brightness", NewBrightnessMatrix(2), gray(50), gray(100)},
		{"brightness clamps", NewBrightnessMatrix(4), gray(100), gray(255)},
		{"contrast zero", NewContrastMatrix(0), gray(200), gray(128)},
		{"grayscale white", NewGrayscaleMatrix(), 0xFFFFFFFF, 0xFFFFFFFF},
		{"invert", NewInvertMatrix(), 0xFF102030, 0xFFEFDFCF},
		{"opacity", NewOpacityMatrix(0.5), 0xFF102030, 0x80102030},
		{"hue rotate zero", NewHueRotateMatrix(0), 0xFF804020, 0xFF804020},
		{"tint opaque", NewTintMatrix(0xFF00FF00), 0xFF102030, 0xFF00FF00},
		{"tint transparent", NewTintMatrix(0x0000FF00), 0xFF102030, 0xFF102030},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.f.Transform(row(tt.in), nil)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			if got.Pix[0] != tt.want {
				t.Errorf("pixel = %#08x, want %#08x", got.Pix[0], tt.want)
			}
		})
	}
}

func TestColorMatrixMultiplyOrder(t *testing.T) {
	// Brightness first gives 255-100; invert first gives 2*205 clamped.
	f := NewBrightnessMatrix(2).Multiply(NewInvertMatrix())
	got, err := f.Transform(row(gray(50)), nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got.Pix[0] != gray(155) {
		t.Errorf("pixel = %#08x, want %#08x", got.Pix[0], gray(155))
	}
}

func TestColorMatrixUnmarshalYAML(t *testing.T) {
	var f ColorMatrix
	if err := yaml.Unmarshal([]byte("preset: brightness\namount: 2\n"), &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if f.Matrix != NewBrightnessMatrix(2).Matrix {
		t.Errorf("Matrix = %v, want brightness x2", f.Matrix)
	}

	src := "matrix: [-1, 0, 0, 0, 255, 0, -1, 0, 0, 255, 0, 0, -1, 0, 255, 0, 0, 0, 1, 0]\n"
	if err := yaml.Unmarshal([]byte(src), &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if f.Matrix != NewInvertMatrix().Matrix {
		t.Errorf("Matrix = %v, want invert", f.Matrix)
	}

	if err := yaml.Unmarshal([]byte("matrix: [1, 2, 3]\n"), &f); err == nil {
		t.Errorf("short matrix accepted")
	}
	if err := yaml.Unmarshal([]byte("preset: swirl\n"), &f); err == nil {
		t.Errorf("unknown preset accepted")
	}
}

func TestColorMatrixPresetUnknown(t *testing.T) {
	if _, err := NewColorMatrixPreset(MatrixPreset(42), 1, gfx.Black); err == nil {
		t.Errorf("NewColorMatrixPreset(42) succeeded, want error")
	}
}
