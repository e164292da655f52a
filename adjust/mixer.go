package adjust

import (
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
)

// MixerPreset names a predefined channel mixer matrix.
type MixerPreset int

// Channel mixer presets.
const (
	MixIdentity MixerPreset = iota
	MixSwapRedGreen
	MixSwapRedBlue
	MixSwapGreenBlue
	MixShiftRGB
	MixShiftRBG
	MixAverageBW
	MixLuminosityBW
	MixSepia
)

var mixerPresets = gfx.Choices[MixerPreset]{
	"Identity",
	"Swap Red-Green",
	"Swap Red-Blue",
	"Swap Green-Blue",
	"R to G to B to R",
	"R to B to G to R",
	"Average BW",
	"Luminosity BW",
	"Sepia",
}

func (p MixerPreset) String() string { return mixerPresets.Name(p) }

// ParseMixerPreset parses a preset name.
func ParseMixerPreset(s string) (MixerPreset, error) { return mixerPresets.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *MixerPreset) UnmarshalYAML(node *yaml.Node) error {
	return mixerPresets.Unmarshal(node, p)
}

// mixerMatrices holds the percentages of each preset, row by output channel.
var mixerMatrices = [...][3][3]int{
	MixIdentity:      {{100, 0, 0}, {0, 100, 0}, {0, 0, 100}},
	MixSwapRedGreen:  {{0, 100, 0}, {100, 0, 0}, {0, 0, 100}},
	MixSwapRedBlue:   {{0, 0, 100}, {0, 100, 0}, {100, 0, 0}},
	MixSwapGreenBlue: {{100, 0, 0}, {0, 0, 100}, {0, 100, 0}},
	MixShiftRGB:      {{0, 0, 100}, {100, 0, 0}, {0, 100, 0}},
	MixShiftRBG:      {{0, 100, 0}, {0, 0, 100}, {100, 0, 0}},
	MixAverageBW:     {{33, 33, 33}, {33, 33, 33}, {33, 33, 33}},
	MixLuminosityBW:  {{22, 71, 7}, {22, 71, 7}, {22, 71, 7}},
	MixSepia:         {{39, 77, 19}, {35, 69, 17}, {27, 53, 13}},
}

// ChannelMixer rebuilds each output channel as a weighted sum of the input
// channels. Weights are percentages in [-200, 200]; Matrix[i][j] is the
// contribution of input channel j to output channel i (R, G, B order).
type ChannelMixer struct {
	Matrix [3][3]int `yaml:"matrix"`
}

// NewChannelMixer returns an identity mixer.
func NewChannelMixer() *ChannelMixer {
	return &ChannelMixer{Matrix: mixerMatrices[MixIdentity]}
}

// NewChannelMixerPreset returns a mixer initialized from a preset.
func NewChannelMixerPreset(p MixerPreset) (*ChannelMixer, error) {
	if err := mixerPresets.Check("preset", p); err != nil {
		return nil, err
	}
	return &ChannelMixer{Matrix: mixerMatrices[p]}, nil
}

// Normalize adjusts each row so that its weights sum to 100 percent,
// spreading the excess evenly over the three inputs.
func (f *ChannelMixer) Normalize() {
	for i := range f.Matrix {
		row := &f.Matrix[i]
		extra := row[0] + row[1] + row[2] - 100
		if extra == 0 {
			continue
		}
		for j := range row {
			row[j] -= extra / 3
		}
	}
}

// Transform implements gfx.Filter.
func (f *ChannelMixer) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}

	var m [3][3]float64
	identity := true
	for i := range m {
		for j := range m[i] {
			v := lo.Clamp(f.Matrix[i][j], -200, 200)
			m[i][j] = float64(v) / 100
			if (i == j && v != 100) || (i != j && v != 0) {
				identity = false
			}
		}
	}
	if identity {
		return src, nil
	}

	return mapPixels(src, dst, func(p uint32) uint32 {
		a, r, g, b := gfx.Unpack(p)
		fr, fg, fb := float64(r), float64(g), float64(b)
		nr := int(m[0][0]*fr + m[0][1]*fg + m[0][2]*fb)
		ng := int(m[1][0]*fr + m[1][1]*fg + m[1][2]*fb)
		nb := int(m[2][0]*fr + m[2][1]*fg + m[2][2]*fb)
		return gfx.Pack(a, gfx.Clamp255(nr), gfx.Clamp255(ng), gfx.Clamp255(nb))
	}), nil
}
