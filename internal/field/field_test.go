package field

import (
	"math"
	"testing"
)

func TestNewScalar_Covers(t *testing.T) {
	s := NewScalar(100, 50, 10)
	if s.Cols != 11 || s.Rows != 6 {
		t.Errorf("grid = %dx%d, want 11x6", s.Cols, s.Rows)
	}
	if z := NewScalar(10, 10, 0); z.Cell != 1 {
		t.Errorf("Cell = %v for zero cell size, want 1", z.Cell)
	}
}

func TestScalar_SampleLinear(t *testing.T) {
	s := NewScalar(40, 40, 10)
	s.Fill(func(x, y float64) float64 { return x + 2*y })

	tests := []struct{ x, y float64 }{
		{0, 0}, {5, 5}, {13.5, 27.25}, {39, 1},
	}
	for _, tt := range tests {
		want := tt.x + 2*tt.y
		if got := s.sample(tt.x, tt.y); math.Abs(got-want) > 1e-9 {
			t.Errorf("Sample(%v, %v) = %v, want %v", tt.x, tt.y, got, want)
		}
	}
}

func TestScalar_NearestAndClamp(t *testing.T) {
	s := NewScalar(20, 20, 10)
	s.Fill(func(x, y float64) float64 { return x })

	if got := s.Nearest(14, 3); got != 10 {
		t.Errorf("Nearest(14, 3) = %v, want 10", got)
	}
	if got := s.At(-5, 100); got != 0 {
		t.Errorf("At(-5, 100) = %v, want 0 (clamped to first column)", got)
	}
}

func TestScalar_ResampleConstant(t *testing.T) {
	for _, interp := range []Interp{Nearest, BiLinear, CatmullRom} {
		s := NewScalar(30, 20, 8)
		s.Fill(func(x, y float64) float64 { return 0.5 })
		out := s.Resample(30, 20, interp)
		if len(out) != 600 {
			t.Fatalf("len = %d, want 600", len(out))
		}
		for i, v := range out {
			if math.Abs(v-0.5) > 1.0/256 {
				t.Fatalf("interp %d: out[%d] = %v, want 0.5", interp, i, v)
			}
		}
	}
}

func TestScalar_ResampleAligned(t *testing.T) {
	const w, h = 38, 21
	s := NewScalar(w, h, 4)
	s.Fill(func(x, y float64) float64 { return x/100 + y/50 })
	out := s.Resample(w, h, BiLinear)
	for y := range h {
		for x := range w {
			want := s.sample(float64(x), float64(y))
			if got := out[y*w+x]; math.Abs(got-want) > 1e-3 {
				t.Fatalf("out(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	near := s.Resample(w, h, Nearest)
	if got, want := near[5*w+9], s.Nearest(9, 5); math.Abs(got-want) > 1e-3 {
		t.Errorf("nearest out(9, 5) = %v, want %v", got, want)
	}
}

func TestScalar_ResampleEmpty(t *testing.T) {
	s := NewScalar(10, 10, 2)
	if out := s.Resample(0, 10, BiLinear); out != nil {
		t.Errorf("Resample(0, 10) = %v, want nil", out)
	}
}

func TestVector_FillAndSample(t *testing.T) {
	v := NewVector(50, 50, 5)
	v.FillAngle(func(x, y float64) (float64, float64) { return math.Pi / 2, 2 })

	dx, dy := v.sample(17.3, 22.8)
	if math.Abs(dx) > 1e-9 || math.Abs(dy-2) > 1e-9 {
		t.Errorf("Sample = (%v, %v), want (0, 2)", dx, dy)
	}
	dx, dy = v.Nearest(1000, -1000)
	if math.Abs(dx) > 1e-9 || math.Abs(dy-2) > 1e-9 {
		t.Errorf("Nearest outside = (%v, %v), want (0, 2)", dx, dy)
	}
}
