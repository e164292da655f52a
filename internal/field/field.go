// Package field holds coarse two-dimensional grids of precomputed samples.
//
// A field is built once per filter run at reduced resolution and then
// sampled many times, either by particles at arbitrary positions or by a
// full-resolution resample.
package field

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Scalar is a grid of float samples covering an image at a fixed cell size.
type Scalar struct {
	Cols, Rows int
	Cell       float64
	Data       []float64
}

// NewScalar allocates a grid large enough to cover width x height pixels
// with cells of the given size. The grid includes one extra column and row
// so bilinear sampling at the far edge stays inside.
func NewScalar(width, height int, cell float64) *Scalar {
	cell = math.Max(cell, 1)
	cols := int(math.Ceil(float64(width)/cell)) + 1
	rows := int(math.Ceil(float64(height)/cell)) + 1
	return &Scalar{Cols: cols, Rows: rows, Cell: cell, Data: make([]float64, cols*rows)}
}

// Fill evaluates fn at the pixel position of every grid node.
func (s *Scalar) Fill(fn func(x, y float64) float64) {
	for r := range s.Rows {
		for c := range s.Cols {
			s.Data[r*s.Cols+c] = fn(float64(c)*s.Cell, float64(r)*s.Cell)
		}
	}
}

// At returns the node value, clamping indexes to the grid.
func (s *Scalar) At(c, r int) float64 {
	c = min(max(c, 0), s.Cols-1)
	r = min(max(r, 0), s.Rows-1)
	return s.Data[r*s.Cols+c]
}

// Nearest returns the value of the node closest to pixel (x, y).
func (s *Scalar) Nearest(x, y float64) float64 {
	return s.At(int(math.Round(x/s.Cell)), int(math.Round(y/s.Cell)))
}

// sample bilinearly interpolates the grid at pixel (x, y).
func (s *Scalar) sample(x, y float64) float64 {
	gx, gy := x/s.Cell, y/s.Cell
	c, r := int(math.Floor(gx)), int(math.Floor(gy))
	tx, ty := gx-float64(c), gy-float64(r)

	top := s.At(c, r)*(1-tx) + s.At(c+1, r)*tx
	bottom := s.At(c, r+1)*(1-tx) + s.At(c+1, r+1)*tx
	return top*(1-ty) + bottom*ty
}

// Interp selects the kernel used by Resample.
type Interp int

const (
	Nearest Interp = iota
	BiLinear
	CatmullRom
)

func (i Interp) transformer() draw.Transformer {
	switch i {
	case BiLinear:
		return draw.BiLinear
	case CatmullRom:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// Resample upsamples the grid to width x height values in [0, 1].
// Node values are clamped to [0, 1] before scaling.
func (s *Scalar) Resample(width, height int, interp Interp) []float64 {
	if width <= 0 || height <= 0 {
		return nil
	}
	coarse := image.NewGray16(image.Rect(0, 0, s.Cols, s.Rows))
	for r := range s.Rows {
		for c := range s.Cols {
			v := min(max(s.Data[r*s.Cols+c], 0), 1)
			coarse.SetGray16(c, r, color.Gray16{Y: uint16(v*0xFFFF + 0.5)})
		}
	}

	// Node c sits at pixel c*Cell while draw centers source pixel c at
	// c+0.5, so shift by half a node to keep the two aligned.
	off := 0.5 - 0.5*s.Cell
	s2d := f64.Aff3{s.Cell, 0, off, 0, s.Cell, off}
	fine := image.NewGray16(image.Rect(0, 0, width, height))
	interp.transformer().Transform(fine, s2d, coarse, coarse.Bounds(), draw.Src, nil)

	out := make([]float64, width*height)
	for y := range height {
		for x := range width {
			out[y*width+x] = float64(fine.Gray16At(x, y).Y) / 0xFFFF
		}
	}
	return out
}

// Vector is a grid of directions and magnitudes.
type Vector struct {
	Cols, Rows int
	Cell       float64
	DX, DY     []float64
}

// NewVector allocates a vector grid like NewScalar.
func NewVector(width, height int, cell float64) *Vector {
	s := NewScalar(width, height, cell)
	return &Vector{Cols: s.Cols, Rows: s.Rows, Cell: s.Cell, DX: s.Data, DY: make([]float64, len(s.Data))}
}

// FillAngle sets each node to magnitude * (cos a, sin a) where a and
// magnitude come from fn.
func (v *Vector) FillAngle(fn func(x, y float64) (angle, magnitude float64)) {
	for r := range v.Rows {
		for c := range v.Cols {
			a, m := fn(float64(c)*v.Cell, float64(r)*v.Cell)
			sin, cos := math.Sincos(a)
			i := r*v.Cols + c
			v.DX[i] = cos * m
			v.DY[i] = sin * m
		}
	}
}

func (v *Vector) at(c, r int) int {
	c = min(max(c, 0), v.Cols-1)
	r = min(max(r, 0), v.Rows-1)
	return r*v.Cols + c
}

// Nearest returns the vector of the node closest to pixel (x, y).
func (v *Vector) Nearest(x, y float64) (dx, dy float64) {
	i := v.at(int(math.Round(x/v.Cell)), int(math.Round(y/v.Cell)))
	return v.DX[i], v.DY[i]
}

// sample bilinearly interpolates the vector at pixel (x, y).
func (v *Vector) sample(x, y float64) (dx, dy float64) {
	gx, gy := x/v.Cell, y/v.Cell
	c, r := int(math.Floor(gx)), int(math.Floor(gy))
	tx, ty := gx-float64(c), gy-float64(r)

	i00, i10 := v.at(c, r), v.at(c+1, r)
	i01, i11 := v.at(c, r+1), v.at(c+1, r+1)
	w00 := (1 - tx) * (1 - ty)
	w10 := tx * (1 - ty)
	w01 := (1 - tx) * ty
	w11 := tx * ty
	dx = v.DX[i00]*w00 + v.DX[i10]*w10 + v.DX[i01]*w01 + v.DX[i11]*w11
	dy = v.DY[i00]*w00 + v.DY[i10]*w10 + v.DY[i01]*w01 + v.DY[i11]*w11
	return dx, dy
}
