package adjust

import "github.com/gogpu/gfx"

// Test helper functions shared across adjust tests.

// solid returns a w x h image filled with p.
func solid(w, h int, p uint32) *gfx.Image {
	m := gfx.NewImage(w, h)
	m.Fill(gfx.Color(p))
	return m
}

// row returns a one-row image holding the given pixels.
func row(pix ...uint32) *gfx.Image {
	m := gfx.NewImage(len(pix), 1)
	copy(m.Pix, pix)
	return m
}

func gray(v int) uint32 {
	return gfx.Pack(255, v, v, v)
}
