package gfx

import (
	"slices"
	"sort"
)

// Stop is a color at a position in a gradient.
type Stop struct {
	Offset float64 `yaml:"offset"` // Position in gradient, 0.0 to 1.0
	Color  Color   `yaml:"color"`
}

// Gradient maps [0, 1] to colors by interpolating between stops.
// Positions outside [0, 1] take the color of the nearest end.
type Gradient []Stop

// TwoColor returns a gradient from c0 at 0 to c1 at 1.
func TwoColor(c0, c1 Color) Gradient {
	return Gradient{{0, c0}, {1, c1}}
}

// Sorted returns a copy of g ordered by offset.
func (g Gradient) Sorted() Gradient {
	sorted := slices.Clone(g)
	slices.SortStableFunc(sorted, func(a, b Stop) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	})
	return sorted
}

// At returns the color at t. g must be sorted.
func (g Gradient) At(t float64) Color {
	switch len(g) {
	case 0:
		return Transparent
	case 1:
		return g[0].Color
	}

	idx := sort.Search(len(g), func(i int) bool {
		return g[i].Offset >= t
	})
	if idx == 0 {
		return g[0].Color
	}
	if idx >= len(g) {
		return g[len(g)-1].Color
	}

	s1, s2 := g[idx-1], g[idx]
	// Coincident stops
	if s2.Offset == s1.Offset {
		return s1.Color
	}
	local := (t - s1.Offset) / (s2.Offset - s1.Offset)
	return Color(LerpPixel(uint32(s1.Color), uint32(s2.Color), local))
}

// Table samples n evenly spaced colors, the first at 0 and the last at 1.
// It lets per-pixel code replace interpolation with an index.
func (g Gradient) Table(n int) []uint32 {
	sorted := g.Sorted()
	table := make([]uint32, n)
	for i := range table {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		table[i] = uint32(sorted.At(t))
	}
	return table
}
