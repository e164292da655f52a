package stylize

import "github.com/gogpu/gfx"

// Test helper functions shared across stylize tests.

// filled returns a w x h image filled with c.
func filled(w, h int, c gfx.Color) *gfx.Image {
	m := gfx.NewImage(w, h)
	m.Fill(c)
	return m
}

// halves returns an image whose left half is left and right half right.
func halves(w, h int, left, right gfx.Color) *gfx.Image {
	m := filled(w, h, left)
	for y := range h {
		for x := w / 2; x < w; x++ {
			m.Set(x, y, uint32(right))
		}
	}
	return m
}

// channelNear reports whether two 8-bit channels differ by at most tol.
func channelNear(a, b, tol int) bool {
	d := a - b
	return d >= -tol && d <= tol
}
