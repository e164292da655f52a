package stylize

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
)

// KernelPreset selects a predefined convolution kernel.
type KernelPreset int

// Kernel presets. CustomKernel uses the Kernel field.
const (
	CustomKernel KernelPreset = iota
	Sharpen
	Emboss
	EdgeDetect
	BoxBlur
)

var kernelPresets = gfx.Choices[KernelPreset]{"Custom", "Sharpen", "Emboss", "Edge Detect", "Box Blur"}

func (p KernelPreset) String() string { return kernelPresets.Name(p) }

// ParseKernelPreset parses a kernel preset name.
func ParseKernelPreset(s string) (KernelPreset, error) { return kernelPresets.Parse(s) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *KernelPreset) UnmarshalYAML(node *yaml.Node) error {
	return kernelPresets.Unmarshal(node, p)
}

var presetKernels = map[KernelPreset][]float64{
	Sharpen: {
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	},
	Emboss: {
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	},
	EdgeDetect: {
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	},
	BoxBlur: {
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	},
}

// Convolve applies a square 3x3 or 5x5 kernel, given row by row. Kernels
// with a nonzero sum are normalized so they keep the overall brightness.
// Alpha is kept.
type Convolve struct {
	Preset KernelPreset `yaml:"preset"`
	Kernel []float64    `yaml:"kernel"`
	Bias   float64      `yaml:"bias"` // added to every channel, 0..1 of full scale
	Wrap   bool         `yaml:"wrap"` // sample across the opposite edge
}

// NewConvolve returns a sharpening filter.
func NewConvolve() *Convolve {
	return &Convolve{Preset: Sharpen}
}

// matrix returns the kernel as a bild matrix.
func (f *Convolve) matrix() (convolution.Matrix, error) {
	if err := kernelPresets.Check("preset", f.Preset); err != nil {
		return nil, err
	}
	values := f.Kernel
	if f.Preset != CustomKernel {
		values = presetKernels[f.Preset]
	}
	side := int(math.Sqrt(float64(len(values))))
	if side*side != len(values) || (side != 3 && side != 5) {
		return nil, fmt.Errorf("%d values, want 9 or 25: %w", len(values), gfx.ErrInvalidKernel)
	}

	k := convolution.NewKernel(side, side)
	copy(k.Matrix, values)
	var sum float64
	for _, v := range values {
		sum += v
	}
	if sum != 0 && sum != 1 {
		return k.Normalized(), nil
	}
	return k, nil
}

// Transform implements gfx.Filter.
func (f *Convolve) Transform(src, dst *gfx.Image) (*gfx.Image, error) {
	if err := gfx.CheckSource(src); err != nil {
		return nil, err
	}
	m, err := f.matrix()
	if err != nil {
		return nil, err
	}
	res := convolution.Convolve(src.NRGBA(), m, &convolution.Options{
		Bias:      f.Bias * 255,
		Wrap:      f.Wrap,
		KeepAlpha: true,
	})
	out := gfx.Dest(src, dst)
	out.CopyFrom(gfx.FromImage(res))
	return out, nil
}
