package gfx

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"
)

// Color is a packed non-premultiplied ARGB color (0xAARRGGBB).
type Color uint32

// Pack packs 8-bit channels into an ARGB pixel.
func Pack(a, r, g, b int) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits an ARGB pixel into its channels.
func Unpack(p uint32) (a, r, g, b int) {
	return int(p >> 24), int(p>>16) & 0xFF, int(p>>8) & 0xFF, int(p) & 0xFF
}

// Alpha returns the alpha channel of p.
func Alpha(p uint32) int { return int(p >> 24) }

// Red returns the red channel of p.
func Red(p uint32) int { return int(p>>16) & 0xFF }

// Green returns the green channel of p.
func Green(p uint32) int { return int(p>>8) & 0xFF }

// Blue returns the blue channel of p.
func Blue(p uint32) int { return int(p) & 0xFF }

// Clamp255 restricts v to the [0, 255] range.
func Clamp255(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// ClampF255 rounds v and restricts it to the [0, 255] range.
func ClampF255(v float64) int {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return int(v + 0.5)
}

// Luminosity returns the perceptual luminosity of an RGB triple
// using the 0.299/0.587/0.114 weights.
func Luminosity(r, g, b int) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// RGBToHSB converts 8-bit RGB values to hue, saturation and brightness,
// each in [0, 1].
func RGBToHSB(r, g, b int) (h, s, v float64) {
	cmax := max(r, g, b)
	cmin := min(r, g, b)

	v = float64(cmax) / 255
	if cmax != 0 {
		s = float64(cmax-cmin) / float64(cmax)
	}
	if s == 0 {
		return 0, 0, v
	}

	d := float64(cmax - cmin)
	rc := float64(cmax-r) / d
	gc := float64(cmax-g) / d
	bc := float64(cmax-b) / d
	switch {
	case r == cmax:
		h = bc - gc
	case g == cmax:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}
	h /= 6
	if h < 0 {
		h++
	}
	return h, s, v
}

// HSBToRGB converts hue, saturation and brightness to 8-bit RGB values.
// The hue wraps around, so values outside [0, 1] are accepted.
func HSBToRGB(h, s, v float64) (r, g, b int) {
	if s == 0 {
		c := int(v*255 + 0.5)
		return c, c, c
	}
	h = (h - math.Floor(h)) * 6
	f := h - math.Floor(h)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var rf, gf, bf float64
	switch int(h) {
	case 0:
		rf, gf, bf = v, t, p
	case 1:
		rf, gf, bf = q, v, p
	case 2:
		rf, gf, bf = p, v, t
	case 3:
		rf, gf, bf = p, q, v
	case 4:
		rf, gf, bf = t, p, v
	default:
		rf, gf, bf = v, p, q
	}
	return int(rf*255 + 0.5), int(gf*255 + 0.5), int(bf*255 + 0.5)
}

// HSB creates an opaque color from hue, saturation and brightness.
func HSB(h, s, v float64) Color {
	r, g, b := HSBToRGB(h, s, v)
	return Color(Pack(255, r, g, b))
}

// LerpPixel interpolates between two ARGB pixels channel by channel.
func LerpPixel(p1, p2 uint32, t float64) uint32 {
	a1, r1, g1, b1 := Unpack(p1)
	a2, r2, g2, b2 := Unpack(p2)
	return Pack(
		lerpChannel(a1, a2, t),
		lerpChannel(r1, r2, t),
		lerpChannel(g1, g2, t),
		lerpChannel(b1, b2, t),
	)
}

func lerpChannel(c1, c2 int, t float64) int {
	return ClampF255(float64(c1) + float64(c2-c1)*t)
}

// RGBA implements color.Color with alpha-premultiplied 16-bit channels,
// so a Color can be passed directly to gg.Context.SetColor.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: uint8(c >> 24)}.RGBA()
}

// Float converts c to a gg color with float components.
func (c Color) Float() gg.RGBA {
	a, r, g, b := Unpack(uint32(c))
	return gg.RGBA2(float64(r)/255, float64(g)/255, float64(b)/255, float64(a)/255)
}

// FromRGBA converts a gg color to a packed color.
func FromRGBA(c gg.RGBA) Color {
	return Color(Pack(
		ClampF255(c.A*255),
		ClampF255(c.R*255),
		ClampF255(c.G*255),
		ClampF255(c.B*255),
	))
}

// Brighter returns a lighter version of c, keeping its alpha.
// Channels are scaled by 1/0.7; pure black becomes a dark gray.
func (c Color) Brighter() Color {
	a, r, g, b := Unpack(uint32(c))
	const factor = 0.7
	const floor = 3
	if r == 0 && g == 0 && b == 0 {
		return Color(Pack(a, floor, floor, floor))
	}
	up := func(v int) int {
		if v > 0 && v < floor {
			v = floor
		}
		return min(int(float64(v)/factor), 255)
	}
	return Color(Pack(a, up(r), up(g), up(b)))
}

// Opaque reports whether the alpha channel is fully opaque.
func (c Color) Opaque() bool { return c>>24 == 0xFF }

// String formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func (c Color) String() string {
	a, r, g, b := Unpack(uint32(c))
	if a == 255 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// Common colors
const (
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
	Transparent Color = 0x00000000
)

// ParseColor parses a hex color string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without '#'.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var r, g, b uint32
	a := uint32(255)
	var ok bool

	switch len(hex) {
	case 3, 4:
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
		if ok && len(hex) == 4 {
			ok = parseHex(hex[3:4], &a)
			a *= 17
		}
	case 6, 8:
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
		if ok && len(hex) == 8 {
			ok = parseHex(hex[6:8], &a)
		}
	}
	if !ok {
		return 0, fmt.Errorf("%w: color %q", ErrInvalidParam, s)
	}
	return Color(a<<24 | r<<16 | g<<8 | b), nil
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// MarshalYAML encodes c as a hex string.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML decodes a hex string such as "#ff8800".
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
