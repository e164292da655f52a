package gfx

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Filter transforms a source image into a destination image.
//
// dst may be nil or of a different size, in which case the filter allocates
// its own destination (see Dest). The returned image is the result; a
// filter whose parameters make it an identity returns src itself.
// Filters never modify src.
type Filter interface {
	Transform(src, dst *Image) (*Image, error)
}

// VectorFilter is a Filter whose output is built from shapes that can
// also be exported as an SVG document of the given size.
type VectorFilter interface {
	Filter
	SVG(w io.Writer, width, height int) error
}

// FilterFunc adapts an ordinary function to the Filter interface.
type FilterFunc func(src, dst *Image) (*Image, error)

// Transform calls f(src, dst).
func (f FilterFunc) Transform(src, dst *Image) (*Image, error) {
	return f(src, dst)
}

// Apply validates src, runs f and logs the elapsed time at debug level.
func Apply(f Filter, src *Image, opts ...ApplyOption) (*Image, error) {
	var o applyOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = fmt.Sprintf("%T", f)
	}
	if err := CheckSource(src); err != nil {
		return nil, fmt.Errorf("%s: %w", o.name, err)
	}

	start := time.Now()
	out, err := f.Transform(src, o.dst)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.name, err)
	}

	Logger().Debug("filter applied",
		slog.String("filter", o.name),
		slog.Int("width", src.Width),
		slog.Int("height", src.Height),
		slog.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

// Chain returns a filter that applies filters in order, feeding each
// result into the next.
func Chain(filters ...Filter) Filter {
	return FilterFunc(func(src, dst *Image) (*Image, error) {
		cur := src
		for i, f := range filters {
			var d *Image
			if i == len(filters)-1 {
				d = dst
			}
			out, err := f.Transform(cur, d)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			cur = out
		}
		return cur, nil
	})
}
