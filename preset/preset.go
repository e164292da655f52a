// Package preset loads filter pipelines from YAML.
//
// A preset names a sequence of registered filters and their parameters:
//
//	name: stained glass
//	seed: 42
//	steps:
//	  - filter: clouds
//	    params: {scale: 80, roughness: 60}
//	  - filter: kmeans
//	    params: {clusters: 6}
//
// Params decode straight into the filter struct returned by the registry,
// so their keys are the yaml tags of that struct. Omitted keys keep the
// filter's defaults and unknown keys are an error.
package preset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/gfx"
)

// Pipeline is a named sequence of filter steps.
type Pipeline struct {
	Name string `yaml:"name,omitempty"`

	// Seed seeds every step whose own seed is zero; step i receives
	// Seed+i. Zero leaves those steps on the process-wide seed.
	Seed int64 `yaml:"seed,omitempty"`

	// Width and Height size the blank canvas used when the pipeline runs
	// without an input image.
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`

	Steps []Step `yaml:"steps"`
}

// Step configures one filter.
type Step struct {
	Filter string    `yaml:"filter"`
	Params yaml.Node `yaml:"params,omitempty"`
}

// ErrNoSteps is returned for a pipeline without steps.
var ErrNoSteps = errors.New("preset: pipeline has no steps")

// Load decodes a pipeline from r.
func Load(r io.Reader) (*Pipeline, error) {
	var p Pipeline
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	if len(p.Steps) == 0 {
		return nil, ErrNoSteps
	}
	return &p, nil
}

// LoadFile reads a pipeline from a YAML file.
func LoadFile(path string) (*Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Build returns the configured filter of one step.
func (s *Step) Build() (gfx.Filter, error) {
	info, err := gfx.Lookup(s.Filter)
	if err != nil {
		return nil, err
	}
	f := info.New()
	if s.Params.Kind != 0 && s.Params.ShortTag() != "!!null" {
		if err := decodeStrict(&s.Params, f); err != nil {
			return nil, fmt.Errorf("%s params: %w: %w", info.Name, gfx.ErrInvalidParam, err)
		}
	}
	return f, nil
}

// decodeStrict decodes node into v, rejecting keys v has no field for.
func decodeStrict(node *yaml.Node, v any) error {
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// Filters builds every step in order.
func (p *Pipeline) Filters() ([]gfx.Filter, error) {
	if len(p.Steps) == 0 {
		return nil, ErrNoSteps
	}
	filters := make([]gfx.Filter, len(p.Steps))
	for i := range p.Steps {
		f, err := p.Steps[i].Build()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		if p.Seed != 0 {
			SetSeed(f, p.Seed+int64(i))
		}
		filters[i] = f
	}
	return filters, nil
}

// Run builds the pipeline and applies it to src. A nil src starts from a
// transparent canvas of the pipeline's size. Cancellation of ctx is
// checked between steps.
func (p *Pipeline) Run(ctx context.Context, src *gfx.Image) (*gfx.Image, error) {
	filters, err := p.Filters()
	if err != nil {
		return nil, err
	}
	if src == nil {
		src = gfx.NewImage(p.Width, p.Height)
	}
	cur := src
	for i, f := range filters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := gfx.Apply(f, cur, gfx.WithName(p.Steps[i].Filter))
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		cur = out
	}
	return cur, nil
}

// SetSeed sets the Seed field of f when f is a pointer to a struct with
// a zero int64 Seed. It reports whether the field was set.
func SetSeed(f gfx.Filter, seed int64) bool {
	v := reflect.ValueOf(f)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return false
	}
	field := v.Elem().FieldByName("Seed")
	if !field.IsValid() || field.Kind() != reflect.Int64 || !field.CanSet() || field.Int() != 0 {
		return false
	}
	field.SetInt(seed)
	return true
}

// ParseSet turns key=value pairs into a YAML mapping suitable for
// Step.Params. Values are parsed as YAML, so lists such as
// "kernel=[0,-1,0,-1,5,-1,0,-1,0]" work.
func ParseSet(pairs []string) (yaml.Node, error) {
	m := yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return yaml.Node{}, fmt.Errorf("%w: %q is not key=value", gfx.ErrInvalidParam, pair)
		}
		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(value), &doc); err != nil {
			return yaml.Node{}, fmt.Errorf("%w: %s: %w", gfx.ErrInvalidParam, key, err)
		}
		val := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ""}
		if len(doc.Content) > 0 {
			val = doc.Content[0]
		}
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			val,
		)
	}
	return m, nil
}

// Defaults returns the YAML encoding of a filter's default parameters.
func Defaults(name string) ([]byte, error) {
	info, err := gfx.Lookup(name)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(info.New())
}
