package gfx

// ApplyOption configures a single Apply call.
//
// Example:
//
//	out, err := gfx.Apply(f, src, gfx.WithDest(buf), gfx.WithName("clouds"))
type ApplyOption func(*applyOptions)

type applyOptions struct {
	dst  *Image
	name string
}

// WithDest supplies a destination buffer. It is used only when its size
// matches the source; otherwise the filter allocates its own.
func WithDest(dst *Image) ApplyOption {
	return func(o *applyOptions) {
		o.dst = dst
	}
}

// WithName sets the label used when logging the call.
func WithName(name string) ApplyOption {
	return func(o *applyOptions) {
		o.name = name
	}
}
