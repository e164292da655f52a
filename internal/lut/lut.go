// Package lut provides per-channel lookup tables.
//
// Tables replace per-pixel arithmetic with one array index per channel,
// which is how most point filters (balance, posterize, solarize, levels)
// are evaluated.
package lut

// Table maps an 8-bit channel value to a new value.
type Table [256]uint8

// Identity returns the table that maps every value to itself.
func Identity() Table {
	var t Table
	for i := range t {
		t[i] = uint8(i)
	}
	return t
}

// FromFunc builds a table from fn, clamping and rounding its results.
func FromFunc(fn func(v int) float64) Table {
	var t Table
	for i := range t {
		t[i] = clampByte(fn(i))
	}
	return t
}

// IsIdentity reports whether t maps every value to itself.
func (t *Table) IsIdentity() bool {
	for i, v := range t {
		if int(v) != i {
			return false
		}
	}
	return true
}

// RGB holds one table per color channel. Alpha is never remapped.
type RGB struct {
	R, G, B Table
}

// Uniform returns an RGB table that applies t to all three channels.
func Uniform(t Table) *RGB {
	return &RGB{R: t, G: t, B: t}
}

// Apply remaps the color channels of an ARGB pixel.
func (l *RGB) Apply(p uint32) uint32 {
	return p&0xFF000000 |
		uint32(l.R[(p>>16)&0xFF])<<16 |
		uint32(l.G[(p>>8)&0xFF])<<8 |
		uint32(l.B[p&0xFF])
}

// IsIdentity reports whether all three tables are identities.
func (l *RGB) IsIdentity() bool {
	return l.R.IsIdentity() && l.G.IsIdentity() && l.B.IsIdentity()
}

func clampByte(v float64) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
