package adjust

import (
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
)

// InvertMode selects which channels ChannelInvert inverts.
type InvertMode int

// Invert modes. The RGB modes flip channel bits; the HSB modes rotate the
// hue by half a turn and mirror saturation or brightness.
const (
	InvertNothing InvertMode = iota
	InvertHue
	InvertSaturation
	InvertBrightness
	InvertHueSat
	InvertHueBri
	InvertSatBri
	InvertHueSatBri
	InvertRed
	InvertGreen
	InvertBlue
	InvertRedGreen
	InvertRedBlue
	InvertGreenBlue
	InvertRGB
)

var invertModes = gfx.Choices[InvertMode]{
	"Nothing",
	"Hue",
	"Saturation",
	"Brightness",
	"Hue and Saturation",
	"Hue and Brightness",
	"Saturation and Brightness",
	"Hue, Saturation and Brightness",
	"Red",
	"Green",
	"Blue",
	"Red and Green",
	"Red and Blue",
	"Green and Blue",
	"RGB",
}

func (m InvertMode) String() string { return invertModes.Name(m) }

// ParseInvertMode parses a mode name such as "red-green".
func ParseInvertMode(s string) (InvertMode, error) { return invertModes.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *InvertMode) UnmarshalYAML(node *yaml.Node) error {
	return invertModes.Unmarshal(node, m)
}

// rgbMasks holds the XOR mask of each RGB mode.
var rgbMasks = map[InvertMode]uint32{
	InvertRed:       0x00FF0000,
	InvertGreen:     0x0000FF00,
	InvertBlue:      0x000000FF,
	InvertRedGreen:  0x00FFFF00,
	InvertRedBlue:   0x00FF00FF,
	InvertGreenBlue: 0x0000FFFF,
	InvertRGB:       0x00FFFFFF,
}

// ChannelInvert inverts selected RGB or HSB channels.
// Fully transparent pixels are copied unchanged.
type ChannelInvert struct {
	Mode InvertMode `yaml:"mode"`
}

// NewChannelInvert returns a ChannelInvert that inverts all RGB channels.
func NewChannelInvert() *ChannelInvert {
	return &ChannelInvert{Mode: InvertRGB}
}

// Transform implements gfx.Filter.
func (f *ChannelInvert) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := invertModes.Check("mode", f.Mode); err != nil {
		return nil, err
	}
	if f.Mode == InvertNothing {
		return src, nil
	}
	if mask, ok := rgbMasks[f.Mode]; ok {
		return mapPixels(src, dst, visible(func(p uint32) uint32 {
			return p ^ mask
		})), nil
	}

	var hue, sat, bri bool
	switch f.Mode {
	case InvertHue:
		hue = true
	case InvertSaturation:
		sat = true
	case InvertBrightness:
		bri = true
	case InvertHueSat:
		hue, sat = true, true
	case InvertHueBri:
		hue, bri = true, true
	case InvertSatBri:
		sat, bri = true, true
	case InvertHueSatBri:
		hue, sat, bri = true, true, true
	}
	return mapPixels(src, dst, visible(func(p uint32) uint32 {
		a, r, g, b := gfx.Unpack(p)
		h, s, v := gfx.RGBToHSB(r, g, b)
		if hue {
			h += 0.5
		}
		if sat {
			s = 1 - s
		}
		if bri {
			v = 1 - v
		}
		r, g, b = gfx.HSBToRGB(h, s, v)
		return gfx.Pack(a, r, g, b)
	})), nil
}
