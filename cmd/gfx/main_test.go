package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Tiling:", "penrose", "Chaos Game", "Stylize:", "kmeans"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output lacks %q", want)
		}
	}
}

func TestListCategory(t *testing.T) {
	out, err := execute(t, "list", "--category", "tiling", "--params")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "truchet") || strings.Contains(out, "clouds") {
		t.Errorf("tiling list = %q", out)
	}
	if !strings.Contains(out, "generations:") {
		t.Error("--params did not print penrose defaults")
	}

	if _, err := execute(t, "list", "--category", "nope"); err == nil {
		t.Error("unknown category accepted")
	}
}

func TestApplyGenerateThenFilter(t *testing.T) {
	dir := t.TempDir()
	clouds := filepath.Join(dir, "clouds.png")
	if _, err := execute(t, "apply", "-f", "clouds", "--set", "seed=3", "--set", "scale=10",
		"-W", "24", "-H", "16", clouds); err != nil {
		t.Fatalf("apply clouds: %v", err)
	}
	img, err := imaging.Open(clouds)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
		t.Errorf("size = %v, want 24x16", b)
	}

	inverted := filepath.Join(dir, "sub", "inverted.jpg")
	if _, err := execute(t, "apply", "-f", "channel-invert", clouds, inverted); err != nil {
		t.Fatalf("apply channel-invert: %v", err)
	}
	if _, err := os.Stat(inverted); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestApplyErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	tests := [][]string{
		{"apply", out},
		{"apply", "-f", "no-such-filter", out},
		{"apply", "-f", "threshold", "--set", "level", out},
		{"apply", "-f", "clouds", "--set", "scael=10", out},
		{"apply", "-f", "threshold", "missing.png", out},
	}
	for _, args := range tests {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v succeeded", args)
		}
	}
}

func TestSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "penrose.svg")
	if _, err := execute(t, "svg", "-f", "penrose", "--set", "generations=2", "-W", "200", "-H", "100", path); err != nil {
		t.Fatalf("svg: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) || !bytes.Contains(data, []byte("<path")) {
		t.Errorf("svg output = %.80q", data)
	}

	if _, err := execute(t, "svg", "-f", "clouds", path); err == nil {
		t.Error("svg of a raster filter succeeded")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	doc := "seed: 5\nwidth: 20\nheight: 10\nsteps:\n  - filter: clouds\n  - filter: posterize\n"
	presetPath := filepath.Join(dir, "poster.yaml")
	if err := os.WriteFile(presetPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	if _, err := execute(t, "run", presetPath, "-o", outDir); err != nil {
		t.Fatalf("run without inputs: %v", err)
	}
	generated := filepath.Join(outDir, "poster.png")
	if _, err := os.Stat(generated); err != nil {
		t.Fatalf("generated image missing: %v", err)
	}

	second := filepath.Join(dir, "second.png")
	if _, err := execute(t, "apply", "-f", "grid", "-W", "20", "-H", "10", second); err != nil {
		t.Fatalf("apply grid: %v", err)
	}
	batch := filepath.Join(dir, "batch")
	if _, err := execute(t, "run", presetPath, generated, second, "-o", batch, "--format", "jpg", "--workers", "2"); err != nil {
		t.Fatalf("run batch: %v", err)
	}
	for _, name := range []string{"poster.jpg", "second.jpg"} {
		if _, err := os.Stat(filepath.Join(batch, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestRunKeepsInputs(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	doc := "steps:\n  - filter: posterize\n"
	if err := os.WriteFile("p.yaml", []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "apply", "-f", "grid", "-W", "8", "-H", "8", "photo.png"); err != nil {
		t.Fatalf("apply grid: %v", err)
	}
	before, err := os.ReadFile("photo.png")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "run", "p.yaml", "photo.png"); err == nil {
		t.Error("run over its own input succeeded")
	}
	after, err := os.ReadFile("photo.png")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("run modified its input")
	}

	if err := os.Mkdir("a", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("a", "photo.png"), before, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "run", "p.yaml", "photo.png", filepath.Join("a", "photo.png"), "-o", "out"); err == nil {
		t.Error("run with two inputs writing one output succeeded")
	}
	if _, err := os.Stat("out"); err == nil {
		t.Error("run wrote output despite the collision")
	}

	if _, err := execute(t, "run", "p.yaml", "photo.png", "--format", "jpg"); err != nil {
		t.Fatalf("run to another format: %v", err)
	}
	if _, err := os.Stat("photo.jpg"); err != nil {
		t.Errorf("photo.jpg missing: %v", err)
	}
}

func TestRunBadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("steps: [{filter: nope}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "run", path); err == nil {
		t.Error("run with an unknown filter succeeded")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		dir, name, format, want string
	}{
		{"out", "a.png", "", filepath.Join("out", "a.png")},
		{"out", "a.png", "jpg", filepath.Join("out", "a.jpg")},
		{".", "b.tiff", ".png", "b.png"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.dir, tt.name, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.dir, tt.name, tt.format, got, tt.want)
		}
	}
}
