package gfx

import "errors"

// Sentinel errors returned by filters. Callers match them with errors.Is;
// filters wrap them with additional context.
var (
	// ErrNilImage is returned when a filter receives a nil source image.
	ErrNilImage = errors.New("gfx: nil source image")

	// ErrEmptyImage is returned when an image has zero width or height.
	ErrEmptyImage = errors.New("gfx: empty image")

	// ErrUnknownFilter is returned by the registry for unregistered names.
	ErrUnknownFilter = errors.New("gfx: unknown filter")

	// ErrUnknownChoice is returned for an enumerated value outside its set.
	ErrUnknownChoice = errors.New("gfx: unknown choice")

	// ErrInvalidParam is returned when a parameter cannot be parsed.
	ErrInvalidParam = errors.New("gfx: invalid parameter")

	// ErrInvalidKernel is returned for a convolution kernel with a bad shape.
	ErrInvalidKernel = errors.New("gfx: invalid convolution kernel")

	// ErrInsufficientMemory is returned when a filter estimates that its
	// working buffers would exceed the configured memory budget.
	ErrInsufficientMemory = errors.New("gfx: insufficient memory")
)

// CheckSource validates the source image handed to a filter.
func CheckSource(src *Image) error {
	if src == nil {
		return ErrNilImage
	}
	if src.Empty() {
		return ErrEmptyImage
	}
	return nil
}
