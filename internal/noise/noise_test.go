package noise

import (
	"math"
	"testing"
)

func sampleGrid(fn func(x, y float64) float64) []float64 {
	var out []float64
	for y := -3.0; y < 7; y += 0.37 {
		for x := -5.0; x < 9; x += 0.41 {
			out = append(out, fn(x, y))
		}
	}
	return out
}

func TestGenerators_Deterministic(t *testing.T) {
	gens := map[string]func(seed int64) Func2{
		"perlin":   func(s int64) Func2 { return NewPerlin(s) },
		"improved": func(s int64) Func2 { return NewImproved(s) },
		"value":    func(s int64) Func2 { return NewValue(s) },
		"cellular": func(s int64) Func2 { return NewCellular(s) },
		"simplex":  func(s int64) Func2 { return NewSimplex(s) },
	}
	for name, mk := range gens {
		a := sampleGrid(mk(7).Eval2)
		b := sampleGrid(mk(7).Eval2)
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("%s: sample %d = %v and %v with the same seed", name, i, a[i], b[i])
				break
			}
		}
	}
}

func TestGenerators_SeedChangesOutput(t *testing.T) {
	a := sampleGrid(NewPerlin(1).Eval2)
	b := sampleGrid(NewPerlin(2).Eval2)
	same := 0
	for i := range a {
		if a[i] == b[i] {
			same++
		}
	}
	if same == len(a) {
		t.Error("Perlin output did not change with the seed")
	}
}

func TestPerlin_Range(t *testing.T) {
	p := NewPerlin(42)
	for _, v := range sampleGrid(p.Noise2) {
		if math.IsNaN(v) || v < -1.6 || v > 1.6 {
			t.Fatalf("Noise2 = %v, want finite value in [-1.6, 1.6]", v)
		}
	}
	for x := -10.0; x < 10; x += 0.13 {
		if v := p.Noise1(x); math.IsNaN(v) || math.Abs(v) > 2.5 {
			t.Fatalf("Noise1(%v) = %v", x, v)
		}
		if v := p.Noise3(x, x*0.5, -x); math.IsNaN(v) || math.Abs(v) > 1.6 {
			t.Fatalf("Noise3(%v) = %v", x, v)
		}
	}
}

func TestPerlin_ZeroAtLattice(t *testing.T) {
	p := NewPerlin(3)
	for _, pt := range [][2]float64{{0, 0}, {1, 2}, {5, 9}} {
		if v := p.Noise2(pt[0], pt[1]); math.Abs(v) > 1e-12 {
			t.Errorf("Noise2(%v) = %v, want 0 at lattice points", pt, v)
		}
	}
}

func TestTurbulence_OctaveCount(t *testing.T) {
	p := NewPerlin(5)
	x, y := 0.37, 1.91
	if got, want := p.Turbulence2(x, y, 1), math.Abs(p.Noise2(x, y)); got != want {
		t.Errorf("Turbulence2 with 1 octave = %v, want %v", got, want)
	}
	if got := p.Turbulence2(x, y, 0.5); got != 0 {
		t.Errorf("Turbulence2 with 0.5 octaves = %v, want 0", got)
	}
	if got, want := p.Turbulence2B(x, y, 1), p.Noise2(x, y); got != want {
		t.Errorf("Turbulence2B with 1 octave = %v, want %v", got, want)
	}
}

func TestValue_Octaves(t *testing.T) {
	v := NewValue(11)
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			n := v.Octaves(float64(x), float64(y), 5, 0.01, 0.6)
			if n < 0 || n > 1 {
				t.Fatalf("Octaves(%d, %d) = %v, want [0, 1]", x, y, n)
			}
		}
	}
	if got := v.Octaves(3, 4, 0, 0.1, 0.6); got != 0 {
		t.Errorf("Octaves with 0 octaves = %v, want 0", got)
	}
}

func TestValue_InterpolatesLattice(t *testing.T) {
	v := NewValue(2)
	if got, want := v.Eval2(3, 4), v.Lattice(3, 4); got != want {
		t.Errorf("Eval2(3, 4) = %v, want lattice value %v", got, want)
	}
}

func TestCellular_Returns(t *testing.T) {
	c := NewCellular(9)
	for ret := CellValue; ret <= Distance2Div; ret++ {
		c.Return = ret
		for d := Euclidean; d <= Hybrid; d++ {
			c.Distance = d
			for _, v := range sampleGrid(c.Eval2) {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("return %d distance %d: got %v", ret, d, v)
				}
			}
		}
	}
}

func TestFractal_Bounded(t *testing.T) {
	p := NewPerlin(1)
	f := DefaultFractal()
	f.Octaves = 5
	for _, fn := range []func(Func2, float64, float64) float64{f.FBm, f.Ridged, f.PingPong} {
		for y := 0.0; y < 4; y += 0.3 {
			for x := 0.0; x < 4; x += 0.3 {
				if v := fn(p, x, y); math.Abs(v) > 1.6 {
					t.Fatalf("fractal sum = %v at (%v, %v)", v, x, y)
				}
			}
		}
	}
}

func TestWarp_ZeroAmplitude(t *testing.T) {
	x, y := Warp(NewSimplex(1), 3.5, -2, 0, 1)
	if x != 3.5 || y != -2 {
		t.Errorf("Warp with zero amplitude = (%v, %v), want (3.5, -2)", x, y)
	}
}
