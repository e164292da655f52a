package gfx

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewImage(t *testing.T) {
	m := NewImage(-1, 3)
	if m.Width != 0 || m.Height != 3 || !m.Empty() {
		t.Errorf("NewImage(-1, 3) = %dx%d, want empty 0x3", m.Width, m.Height)
	}
	m = NewImage(4, 2)
	if len(m.Pix) != 8 || m.Empty() {
		t.Errorf("NewImage(4, 2) has %d pixels", len(m.Pix))
	}
	if b := m.Bounds(); b != image.Rect(0, 0, 4, 2) {
		t.Errorf("Bounds = %v", b)
	}
}

func TestImageAccess(t *testing.T) {
	m := NewImage(3, 2)
	m.Set(2, 1, 0xFF123456)
	m.Set(-1, 0, 0xFFFFFFFF)
	m.Set(3, 0, 0xFFFFFFFF)
	if got := m.At(2, 1); got != 0xFF123456 {
		t.Errorf("At(2, 1) = %#08x", got)
	}
	if got := m.At(5, 5); got != 0 {
		t.Errorf("At outside = %#08x, want 0", got)
	}
	if row := m.Row(1); len(row) != 3 || row[2] != 0xFF123456 {
		t.Errorf("Row(1) = %#v", row)
	}
	for i, p := range m.Pix {
		if i != 5 && p != 0 {
			t.Errorf("out-of-range Set wrote pixel %d", i)
		}
	}
}

func TestImageCloneAndFill(t *testing.T) {
	m := NewImage(2, 2)
	m.Fill(White)
	c := m.Clone()
	c.Set(0, 0, 0)
	if m.At(0, 0) != uint32(White) {
		t.Error("Clone shares pixels with the original")
	}
	if !m.SameSize(c) || m.SameSize(NewImage(2, 3)) || m.SameSize(nil) {
		t.Error("SameSize is wrong")
	}
	d := NewImage(2, 2)
	d.CopyFrom(m)
	if diff := cmp.Diff(m.Pix, d.Pix); diff != "" {
		t.Errorf("CopyFrom (-want +got):\n%s", diff)
	}
}

func TestDest(t *testing.T) {
	src := NewImage(4, 4)
	same := NewImage(4, 4)
	tests := []struct {
		name  string
		dst   *Image
		reuse bool
	}{
		{"nil", nil, false},
		{"same size", same, true},
		{"src itself", src, false},
		{"other size", NewImage(2, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dest(src, tt.dst)
			if (got == tt.dst) != tt.reuse {
				t.Errorf("reused = %v, want %v", got == tt.dst, tt.reuse)
			}
			if got == src {
				t.Error("Dest returned the source")
			}
			if !got.SameSize(src) {
				t.Errorf("Dest size = %dx%d", got.Width, got.Height)
			}
		})
	}
}

func TestNRGBARoundTrip(t *testing.T) {
	m := NewImage(3, 2)
	m.Pix = []uint32{0xFF000000, 0x80FF0000, 0x00000000, 0xFF123456, 0x40FFFFFF, 0xFFFFFFFF}
	img := m.NRGBA()
	if c := img.NRGBAAt(1, 0); c != (color.NRGBA{R: 255, A: 128}) {
		t.Errorf("NRGBAAt(1, 0) = %v", c)
	}
	back := FromImage(img)
	if diff := cmp.Diff(m.Pix, back.Pix); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestFromImagePremultiplied(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 6))
	img.SetRGBA(5, 5, color.RGBA{R: 128, A: 128})
	m := FromImage(img)
	if m.Width != 2 || m.Height != 1 {
		t.Fatalf("size = %dx%d, want 2x1", m.Width, m.Height)
	}
	if got := m.At(0, 0); got != 0x80FF0000 {
		t.Errorf("At(0, 0) = %#08x, want 0x80ff0000", got)
	}
}

func TestContextResult(t *testing.T) {
	src := NewImage(4, 4)
	src.Fill(White)
	dc := src.Context()
	dc.SetRGB(1, 0, 0)
	dc.DrawRectangle(0, 0, 2, 4)
	if err := dc.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	buf := NewImage(4, 4)
	out := ContextResult(dc, src, buf)
	if out != buf {
		t.Error("ContextResult did not use the destination buffer")
	}
	if got := out.At(0, 2); got != 0xFFFF0000 {
		t.Errorf("drawn pixel = %#08x, want red", got)
	}
	if got := out.At(3, 2); got != uint32(White) {
		t.Errorf("untouched pixel = %#08x, want white", got)
	}
	if src.At(0, 2) != uint32(White) {
		t.Error("drawing modified the source")
	}
	if fc := FromContext(dc); !fc.SameSize(src) {
		t.Errorf("FromContext size = %dx%d", fc.Width, fc.Height)
	}
}
