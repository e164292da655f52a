package gfx

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
)

// Image is a rectangular buffer of packed non-premultiplied ARGB pixels.
//
// Pixels are stored row-major: the pixel at (x, y) is Pix[y*Width+x].
// Filters read a source Image and write a destination Image; the two
// never alias unless a filter documents in-place operation.
type Image struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewImage allocates a fully transparent image of the given size.
func NewImage(width, height int) *Image {
	width = max(width, 0)
	height = max(height, 0)
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
}

// At returns the pixel at (x, y), or 0 when the point is outside.
func (m *Image) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Pix[y*m.Width+x]
}

// Set stores a pixel. Points outside the image are ignored.
func (m *Image) Set(x, y int, p uint32) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = p
}

// Row returns the pixels of row y.
func (m *Image) Row(y int) []uint32 {
	return m.Pix[y*m.Width : (y+1)*m.Width]
}

// Clone returns a deep copy of m.
func (m *Image) Clone() *Image {
	c := &Image{Width: m.Width, Height: m.Height, Pix: make([]uint32, len(m.Pix))}
	copy(c.Pix, m.Pix)
	return c
}

// Fill sets every pixel to c.
func (m *Image) Fill(c Color) {
	p := uint32(c)
	for i := range m.Pix {
		m.Pix[i] = p
	}
}

// Bounds returns the image rectangle anchored at the origin.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// Empty reports whether the image has no pixels.
func (m *Image) Empty() bool {
	return m == nil || m.Width <= 0 || m.Height <= 0
}

// SameSize reports whether m and o have equal dimensions.
func (m *Image) SameSize(o *Image) bool {
	return m != nil && o != nil && m.Width == o.Width && m.Height == o.Height
}

// Dest returns dst when it can receive the output of a filter applied to
// src, and a newly allocated image of the source size otherwise.
func Dest(src, dst *Image) *Image {
	if dst != nil && dst != src && dst.SameSize(src) {
		return dst
	}
	return NewImage(src.Width, src.Height)
}

// FromImage converts any image.Image into a packed Image.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	m := NewImage(b.Dx(), b.Dy())
	m.load(img)
	return m
}

// load copies img, which must have the size of m, into m.
func (m *Image) load(img image.Image) {
	nrgba := imaging.Clone(img)
	for y := 0; y < m.Height; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		dst := m.Row(y)
		for x := range dst {
			i := x * 4
			dst[x] = Pack(int(row[i+3]), int(row[i]), int(row[i+1]), int(row[i+2]))
		}
	}
}

// NRGBA converts m into a standard library image.
func (m *Image) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(m.Bounds())
	for y := 0; y < m.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x, p := range m.Row(y) {
			i := x * 4
			row[i] = uint8(p >> 16)
			row[i+1] = uint8(p >> 8)
			row[i+2] = uint8(p)
			row[i+3] = uint8(p >> 24)
		}
	}
	return img
}

// Context returns a gg drawing context initialized with a copy of m.
func (m *Image) Context() *gg.Context {
	return gg.NewContextForImage(m.NRGBA())
}

// FromContext copies the pixels of a gg drawing context into a new Image.
func FromContext(dc *gg.Context) *Image {
	return FromImage(dc.Image())
}

// ContextResult copies the pixels of dc, which has the size of src, into
// Dest(src, dst) and returns it.
func ContextResult(dc *gg.Context, src, dst *Image) *Image {
	out := Dest(src, dst)
	out.load(dc.Image())
	return out
}

// CopyFrom copies the pixels of src into m. Both must have the same size.
func (m *Image) CopyFrom(src *Image) {
	copy(m.Pix, src.Pix)
}
