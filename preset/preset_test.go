package preset

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/adjust"
	"github.com/gogpu/gfx/noise"
	"github.com/gogpu/gfx/stylize"
)

const cloudsThenThreshold = `
name: test
seed: 7
width: 16
height: 12
steps:
  - filter: clouds
    params:
      scale: 20
      color2: "#ff0000"
  - filter: threshold
    params: {level: 64, criterion: red}
`

func mustLoad(t *testing.T, doc string) *Pipeline {
	t.Helper()
	p, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func TestLoadAndBuild(t *testing.T) {
	p := mustLoad(t, cloudsThenThreshold)
	if p.Name != "test" || p.Seed != 7 || len(p.Steps) != 2 {
		t.Fatalf("pipeline = %+v", p)
	}
	filters, err := p.Filters()
	if err != nil {
		t.Fatalf("Filters: %v", err)
	}

	clouds, ok := filters[0].(*noise.Clouds)
	if !ok {
		t.Fatalf("step 0 is %T, want *noise.Clouds", filters[0])
	}
	want := noise.NewClouds()
	want.Scale = 20
	want.Color2 = gfx.Color(0xFFFF0000)
	want.Seed = 7
	if diff := cmp.Diff(want, clouds); diff != "" {
		t.Errorf("clouds (-want +got):\n%s", diff)
	}

	th, ok := filters[1].(*adjust.Threshold)
	if !ok {
		t.Fatalf("step 1 is %T, want *adjust.Threshold", filters[1])
	}
	if th.Level != 64 || th.Criterion != adjust.ByRed {
		t.Errorf("threshold = %+v, want level 64 by red", th)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no steps", "name: empty\n", ErrNoSteps},
		{"empty steps", "steps: []\n", ErrNoSteps},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.doc)); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Load(strings.NewReader("stepz: []\n")); err == nil {
		t.Error("unknown top-level key accepted")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown filter", "steps: [{filter: no-such-filter}]", gfx.ErrUnknownFilter},
		{"bad choice", "steps: [{filter: threshold, params: {criterion: purple}}]", gfx.ErrInvalidParam},
		{"bad type", "steps: [{filter: threshold, params: {level: [1, 2]}}]", gfx.ErrInvalidParam},
		{"unknown key", "steps: [{filter: clouds, params: {scael: 80}}]", gfx.ErrInvalidParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustLoad(t, tt.doc)
			if _, err := p.Filters(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnknownKeyNamed(t *testing.T) {
	p := mustLoad(t, "steps: [{filter: clouds, params: {scale: 80, scael: 80}}]")
	_, err := p.Filters()
	if err == nil || !strings.Contains(err.Error(), "scael") {
		t.Errorf("err = %v, want it to name the key scael", err)
	}
}

func TestNullParamsKeepDefaults(t *testing.T) {
	p := mustLoad(t, "steps:\n  - filter: threshold\n    params:\n")
	filters, err := p.Filters()
	if err != nil {
		t.Fatalf("Filters: %v", err)
	}
	if diff := cmp.Diff(adjust.NewThreshold(), filters[0]); diff != "" {
		t.Errorf("threshold (-want +got):\n%s", diff)
	}
}

func TestSetSeed(t *testing.T) {
	k := stylize.NewKMeans()
	if !SetSeed(k, 9) || k.Seed != 9 {
		t.Errorf("SetSeed on zero seed: Seed = %d, want 9", k.Seed)
	}
	if SetSeed(k, 3) || k.Seed != 9 {
		t.Errorf("SetSeed overwrote an explicit seed: Seed = %d", k.Seed)
	}
	if SetSeed(adjust.NewThreshold(), 1) {
		t.Error("SetSeed reported success on a filter without a seed")
	}
	if SetSeed(gfx.FilterFunc(nil), 1) {
		t.Error("SetSeed reported success on a func")
	}
}

func TestRunIsDeterministic(t *testing.T) {
	p := mustLoad(t, cloudsThenThreshold)
	a, err := p.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.Width != 16 || a.Height != 12 {
		t.Fatalf("size = %dx%d, want 16x12", a.Width, a.Height)
	}
	b, err := mustLoad(t, cloudsThenThreshold).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff(a.Pix, b.Pix); diff != "" {
		t.Errorf("runs differ (-first +second):\n%s", diff)
	}
	for i, px := range a.Pix {
		if px != uint32(gfx.White) && px != uint32(gfx.Black) {
			t.Fatalf("pixel %d = %#08x, want black or white", i, px)
		}
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := mustLoad(t, cloudsThenThreshold).Run(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunWithoutCanvasSize(t *testing.T) {
	p := mustLoad(t, "steps: [{filter: clouds}]")
	if _, err := p.Run(context.Background(), nil); !errors.Is(err, gfx.ErrEmptyImage) {
		t.Errorf("err = %v, want ErrEmptyImage", err)
	}
}

func TestParseSet(t *testing.T) {
	params, err := ParseSet([]string{"level=200", "criterion=Blue"})
	if err != nil {
		t.Fatalf("ParseSet: %v", err)
	}
	s := Step{Filter: "threshold", Params: params}
	f, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := &adjust.Threshold{Level: 200, Criterion: adjust.ByBlue}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("threshold (-want +got):\n%s", diff)
	}
}

func TestParseSetList(t *testing.T) {
	params, err := ParseSet([]string{"preset=custom", "kernel=[0, 0, 0, 0, 2, 0, 0, 0, 0]"})
	if err != nil {
		t.Fatalf("ParseSet: %v", err)
	}
	f, err := (&Step{Filter: "convolve", Params: params}).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := f.(*stylize.Convolve)
	if c.Preset != stylize.CustomKernel || len(c.Kernel) != 9 || c.Kernel[4] != 2 {
		t.Errorf("convolve = %+v", c)
	}
}

func TestParseSetErrors(t *testing.T) {
	for _, pair := range []string{"level", "=3", "level=[1,"} {
		if _, err := ParseSet([]string{pair}); !errors.Is(err, gfx.ErrInvalidParam) {
			t.Errorf("ParseSet(%q) err = %v, want ErrInvalidParam", pair, err)
		}
	}
}

func TestDefaults(t *testing.T) {
	out, err := Defaults("clouds")
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	if !strings.Contains(string(out), "scale: 100") {
		t.Errorf("Defaults(clouds) = %q, want a scale of 100", out)
	}
	if _, err := Defaults("nope"); !errors.Is(err, gfx.ErrUnknownFilter) {
		t.Errorf("err = %v, want ErrUnknownFilter", err)
	}
}
