package adjust

import (
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
)

// Channel selects the channel ExtractChannel keeps or removes.
type Channel int

// Extractable channels.
const (
	Red Channel = iota
	RemoveRed
	Green
	RemoveGreen
	Blue
	RemoveBlue
)

var channels = gfx.Choices[Channel]{
	"Red",
	"Remove Red",
	"Green",
	"Remove Green",
	"Blue",
	"Remove Blue",
}

func (c Channel) String() string { return channels.Name(c) }

// ParseChannel parses a channel name such as "remove-blue".
func ParseChannel(s string) (Channel, error) { return channels.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Channel) UnmarshalYAML(node *yaml.Node) error {
	return channels.Unmarshal(node, c)
}

// ExtractChannel isolates or removes one color channel.
//
// With KeepColor unset the result is grayscale: a kept channel is broadcast
// to all three, and a removed channel is replaced by the mean of the other
// two. With KeepColor set the unselected channels are zeroed instead.
type ExtractChannel struct {
	Channel   Channel `yaml:"channel"`
	KeepColor bool    `yaml:"keep_color"`
}

// NewExtractChannel returns an ExtractChannel for the red channel.
func NewExtractChannel() *ExtractChannel {
	return &ExtractChannel{Channel: Red}
}

// Transform implements gfx.Filter.
func (f *ExtractChannel) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	if err := channels.Check("channel", f.Channel); err != nil {
		return nil, err
	}
	if f.KeepColor {
		mask := colorMask(f.Channel)
		return mapPixels(src, dst, func(p uint32) uint32 { return p & mask }), nil
	}

	ch := f.Channel
	return mapPixels(src, dst, func(p uint32) uint32 {
		a, r, g, b := gfx.Unpack(p)
		var v int
		switch ch {
		case Red:
			v = r
		case RemoveRed:
			v = (g + b) / 2
		case Green:
			v = g
		case RemoveGreen:
			v = (r + b) / 2
		case Blue:
			v = b
		case RemoveBlue:
			v = (r + g) / 2
		}
		return gfx.Pack(a, v, v, v)
	}), nil
}

func colorMask(c Channel) uint32 {
	switch c {
	case Red:
		return 0xFFFF0000
	case RemoveRed:
		return 0xFF00FFFF
	case Green:
		return 0xFF00FF00
	case RemoveGreen:
		return 0xFFFF00FF
	case Blue:
		return 0xFF0000FF
	default:
		return 0xFFFFFF00
	}
}
