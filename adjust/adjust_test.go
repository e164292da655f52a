package adjust

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/gfx"
)

func TestChannelInvertNothingReturnsSource(t *testing.T) {
	src := solid(4, 4, 0xFF102030)
	f := &ChannelInvert{Mode: InvertNothing}

	got, err := f.Transform(src, nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != src {
		t.Errorf("Transform returned a new image, want src itself")
	}
}

func TestChannelInvertRGBModes(t *testing.T) {
	tests := []struct {
		mode InvertMode
		want uint32
	}{
		{InvertRed, 0xFFEF2030},
		{InvertGreen, 0xFF10DF30},
		{InvertBlue, 0xFF1020CF},
		{InvertRedGreen, 0xFFEFDF30},
		{InvertRedBlue, 0xFFEF20CF},
		{InvertGreenBlue, 0xFF10DFCF},
		{InvertRGB, 0xFFEFDFCF},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got, err := (&ChannelInvert{Mode: tt.mode}).Transform(row(0xFF102030, 0x00102030), nil)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			want := []uint32{tt.want, 0x00102030}
			if diff := cmp.Diff(want, got.Pix); diff != "" {
				t.Errorf("pixels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChannelInvertHSB(t *testing.T) {
	tests := []struct {
		name string
		mode InvertMode
		in   uint32
		want uint32
	}{
		{"hue of red", InvertHue, 0xFFFF0000, 0xFF00FFFF},
		{"brightness of white", InvertBrightness, 0xFFFFFFFF, 0xFF000000},
		{"saturation of red", InvertSaturation, 0xFFFF0000, 0xFFFFFFFF},
		{"hue and brightness of black", InvertHueBri, 0xFF000000, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (&ChannelInvert{Mode: tt.mode}).Transform(row(tt.in), nil)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			if got.Pix[0] != tt.want {
				t.Errorf("pixel = %#08x, want %#08x", got.Pix[0], tt.want)
			}
		})
	}
}

func TestChannelInvertUnknownMode(t *testing.T) {
	_, err := (&ChannelInvert{Mode: 99}).Transform(solid(1, 1, 0xFF000000), nil)
	if !errors.Is(err, gfx.ErrUnknownChoice) {
		t.Errorf("err = %v, want ErrUnknownChoice", err)
	}
}

func TestExtractChannel(t *testing.T) {
	const in = 0xFFAABBCC
	tests := []struct {
		channel Channel
		keep    bool
		want    uint32
	}{
		{Red, false, 0xFFAAAAAA},
		{Green, false, 0xFFBBBBBB},
		{Blue, false, 0xFFCCCCCC},
		{RemoveRed, false, 0xFFC3C3C3},
		{RemoveGreen, false, 0xFFBBBBBB},
		{RemoveBlue, false, 0xFFB2B2B2},
		{Red, true, 0xFFAA0000},
		{Green, true, 0xFF00BB00},
		{Blue, true, 0xFF0000CC},
		{RemoveRed, true, 0xFF00BBCC},
		{RemoveGreen, true, 0xFFAA00CC},
		{RemoveBlue, true, 0xFFAABB00},
	}
	for _, tt := range tests {
		f := &ExtractChannel{Channel: tt.channel, KeepColor: tt.keep}
		got, err := f.Transform(row(in), nil)
		if err != nil {
			t.Fatalf("%v: Transform: %v", tt.channel, err)
		}
		if got.Pix[0] != tt.want {
			t.Errorf("%v keep=%v: pixel = %#08x, want %#08x", tt.channel, tt.keep, got.Pix[0], tt.want)
		}
	}
}

func TestExtractChannelDefaultsToBroadcast(t *testing.T) {
	got, err := NewExtractChannel().Transform(row(0xFFAABBCC), nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got.Pix[0] != 0xFFAAAAAA {
		t.Errorf("pixel = %#08x, want 0xffaaaaaa", got.Pix[0])
	}
}

func TestThresholdLuminosity(t *testing.T) {
	src := row(gray(200), gray(50), 0x80C8C8C8, gray(128))
	got, err := NewThreshold().Transform(src, nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	want := []uint32{0xFFFFFFFF, 0xFF000000, 0x80FFFFFF, 0xFF000000}
	if diff := cmp.Diff(want, got.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestThresholdCriteria(t *testing.T) {
	const in = 0xFF90207F
	tests := []struct {
		criterion Criterion
		level     float64
		want      uint32
	}{
		{ByRed, 128, 0xFFFFFFFF},
		{ByGreen, 128, 0xFF000000},
		{ByBlue, 127, 0xFF000000},
		{ByBlue, 126, 0xFFFFFFFF},
		{BySaturation, 100, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		f := &Threshold{Level: tt.level, Criterion: tt.criterion}
		got, err := f.Transform(row(in), nil)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		if got.Pix[0] != tt.want {
			t.Errorf("%v > %v: pixel = %#08x, want %#08x", tt.criterion, tt.level, got.Pix[0], tt.want)
		}
	}
}

func TestChannelMixer(t *testing.T) {
	src := row(0xFF102030)

	got, err := NewChannelMixer().Transform(src, nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != src {
		t.Errorf("identity mixer returned a new image")
	}

	swap, err := NewChannelMixerPreset(MixSwapRedBlue)
	if err != nil {
		t.Fatalf("NewChannelMixerPreset: %v", err)
	}
	got, err = swap.Transform(src, nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got.Pix[0] != 0xFF302010 {
		t.Errorf("swap red-blue = %#08x, want 0xff302010", got.Pix[0])
	}
}

func TestChannelMixerClampsExtremes(t *testing.T) {
	f := &ChannelMixer{Matrix: [3][3]int{{1000, 0, 0}, {0, -1000, 0}, {0, 0, 100}}}
	got, err := f.Transform(row(0xFF808080), nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got.Pix[0] != 0xFFFF0080 {
		t.Errorf("pixel = %#08x, want 0xffff0080", got.Pix[0])
	}
}

func TestChannelMixerNormalize(t *testing.T) {
	f := &ChannelMixer{Matrix: [3][3]int{{100, 100, 100}, {0, 100, 0}, {10, 10, 50}}}
	f.Normalize()
	want := [3][3]int{{34, 34, 34}, {0, 100, 0}, {20, 20, 60}}
	if diff := cmp.Diff(want, f.Matrix); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestHueSat(t *testing.T) {
	src := row(0xFFFF0000)

	got, err := NewHueSat().Transform(src, nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != src {
		t.Errorf("zero adjustment returned a new image")
	}

	tests := []struct {
		name string
		f    HueSat
		want uint32
	}{
		{"half turn", HueSat{Hue: 180}, 0xFF00FFFF},
		{"desaturate", HueSat{Saturation: -100}, 0xFFFFFFFF},
		{"darken", HueSat{Lightness: -100}, 0xFF000000},
		{"lighten", HueSat{Lightness: 100}, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		got, err := tt.f.Transform(src, nil)
		if err != nil {
			t.Fatalf("%s: Transform: %v", tt.name, err)
		}
		if got.Pix[0] != tt.want {
			t.Errorf("%s: pixel = %#08x, want %#08x", tt.name, got.Pix[0], tt.want)
		}
	}
}

func TestSolarize(t *testing.T) {
	src := row(gray(128), 0x00808080)

	got, err := NewSolarize().Transform(src, nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if diff := cmp.Diff([]uint32{gray(255), 0}, got.Pix); diff != "" {
		t.Errorf("classic mismatch (-want +got):\n%s", diff)
	}

	f := NewSolarize()
	f.Type = SolarizeUpsideDown
	got, err = f.Transform(src, nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got.Pix[0] != gray(0) {
		t.Errorf("upside down at threshold = %#08x, want black", got.Pix[0])
	}
}

func TestColorBalance(t *testing.T) {
	src := row(gray(100))

	got, err := NewColorBalance().Transform(src, nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != src {
		t.Errorf("neutral balance returned a new image")
	}

	f := &ColorBalance{Affect: Everything, CyanRed: 100}
	got, err = f.Transform(src, nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got.Pix[0] != gfx.Pack(255, 200, 50, 50) {
		t.Errorf("cyan-red +100 = %#08x, want 0xffc83232", got.Pix[0])
	}

	f.Affect = Highlights
	got, err = f.Transform(row(gray(0)), nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got.Pix[0] != gray(0) {
		t.Errorf("highlights on black = %#08x, want black", got.Pix[0])
	}
}

func TestPosterize(t *testing.T) {
	f := &Posterize{Red: 2, Green: 2, Blue: 1}
	got, err := f.Transform(row(gray(10), gray(127), gray(128), gray(255)), nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	want := []uint32{0xFF000000, 0xFF000000, 0xFFFFFF00, 0xFFFFFF00}
	if diff := cmp.Diff(want, got.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestEqualize(t *testing.T) {
	for _, space := range []EqualizeSpace{EqualizeBrightness, EqualizeLuma} {
		t.Run(space.String(), func(t *testing.T) {
			src := row(gray(100), gray(150), gray(100))
			got, err := (&Equalize{Space: space}).Transform(src, nil)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			want := []uint32{gray(0), gray(255), gray(0)}
			if diff := cmp.Diff(want, got.Pix); diff != "" {
				t.Errorf("pixels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEqualizeUniformReturnsSource(t *testing.T) {
	src := solid(3, 3, gray(77))
	got, err := NewEqualize().Transform(src, nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != src {
		t.Errorf("uniform image returned a new image")
	}
}

func TestDestinationReuse(t *testing.T) {
	src := solid(3, 2, 0xFF102030)
	dst := gfx.NewImage(3, 2)
	got, err := NewChannelInvert().Transform(src, dst)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != dst {
		t.Errorf("matching destination was not reused")
	}

	got, err = NewChannelInvert().Transform(src, gfx.NewImage(1, 1))
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !got.SameSize(src) {
		t.Errorf("size = %dx%d, want %dx%d", got.Width, got.Height, src.Width, src.Height)
	}
}

func TestNilSource(t *testing.T) {
	filters := []gfx.Filter{
		NewChannelInvert(), NewExtractChannel(), NewThreshold(), NewChannelMixer(),
		NewHueSat(), NewSolarize(), NewColorBalance(), NewPosterize(), NewEqualize(),
		NewIdentityMatrix(),
	}
	for _, f := range filters {
		if _, err := f.Transform(nil, nil); !errors.Is(err, gfx.ErrNilImage) {
			t.Errorf("%T: err = %v, want ErrNilImage", f, err)
		}
	}
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"channel-invert", "Extract Channel", "threshold", "color_matrix"} {
		info, err := gfx.Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
			continue
		}
		if info.Category != category {
			t.Errorf("Lookup(%q).Category = %q, want %q", name, info.Category, category)
		}
	}
}
