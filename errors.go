package resample

import "errors"

var (
	// ErrInvalidInput is returned for nil or empty buffers, buffers whose length
	// does not match the dimensions, and non-positive dimensions.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownKernel is returned for a kernel selector outside the built-in set.
	ErrUnknownKernel = errors.New("unknown kernel")
	// ErrDegenerateGeometry is returned when a source or destination axis has
	// no samples.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)
