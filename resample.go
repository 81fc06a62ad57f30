package resample

import (
	"fmt"
	"image"
	"math"
	"runtime"
)

// Options controls a resample call.
type Options struct {
	// Workers bounds the goroutines used per pass, 1 runs sequentially.
	Workers int
	// BicubicB and BicubicC shape the Bicubic kernel, see NewCubicFilter.
	// Other cubic kernels have fixed parameters.
	BicubicB float64
	BicubicC float64
}

func defaultOptions() Options {
	return Options{
		Workers:  runtime.GOMAXPROCS(0),
		BicubicB: 0,
		BicubicC: 0.5,
	}
}

// WithWorkers sets Options.Workers.
func WithWorkers(n int) func(o *Options) {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithBicubic sets the (B, C) pair used by the Bicubic kernel.
func WithBicubic(b, c float64) func(o *Options) {
	return func(o *Options) {
		o.BicubicB = b
		o.BicubicC = c
	}
}

// ResampleImage24 resizes the packed RGB image src of srcW x srcH pixels into
// dst, which must hold exactly dstW x dstH pixels. Nothing is written to dst
// unless the call succeeds.
func ResampleImage24(src []byte, srcW, srcH int, dst []byte, dstW, dstH int, kernel Kernel, opts ...func(o *Options)) error {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return fmt.Errorf("%w: %w: %dx%d to %dx%d", ErrInvalidInput, ErrDegenerateGeometry, srcW, srcH, dstW, dstH)
	}
	if len(src) == 0 || len(dst) == 0 {
		return fmt.Errorf("%w: empty buffer", ErrInvalidInput)
	}
	if n, ok := bufferLen(srcW, srcH); !ok || len(src) != n {
		return fmt.Errorf("%w: source buffer has %d bytes, %dx%d needs %d", ErrInvalidInput, len(src), srcW, srcH, n)
	}
	if n, ok := bufferLen(dstW, dstH); !ok || len(dst) != n {
		return fmt.Errorf("%w: destination buffer has %d bytes, %dx%d needs %d", ErrInvalidInput, len(dst), dstW, dstH, n)
	}
	if !kernel.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKernel, int(kernel))
	}

	opt := defaultOptions()
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	f := kernel.filter(opt)
	wx, err := BuildWeights(srcW, dstW, f)
	if err != nil {
		return fmt.Errorf("horizontal weights: %w", err)
	}
	wy, err := BuildWeights(srcH, dstH, f)
	if err != nil {
		return fmt.Errorf("vertical weights: %w", err)
	}

	return resampleRGB24(dst, src, srcW, srcH, dstW, dstH, wx, wy, opt.Workers)
}

// Resize returns src resampled to w x h.
func Resize(src *RGB, w, h int, kernel Kernel, opts ...func(o *Options)) (*RGB, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	if _, ok := bufferLen(w, h); !ok {
		return nil, fmt.Errorf("%w: %w: target %dx%d", ErrInvalidInput, ErrDegenerateGeometry, w, h)
	}
	dst := NewRGB(w, h)
	if err := ResampleImage24(src.Pix, src.Width, src.Height, dst.Pix, w, h, kernel, opts...); err != nil {
		return nil, err
	}
	return dst, nil
}

// ResizeImage resamples the color channels of img to w x h and returns an
// opaque image.
func ResizeImage(img image.Image, w, h int, kernel Kernel, opts ...func(o *Options)) (*image.RGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	out, err := Resize(FromImage(img), w, h, kernel, opts...)
	if err != nil {
		return nil, err
	}
	return out.RGBA(), nil
}

// bufferLen returns w*h*3 and false if the dimensions are not positive or the
// product overflows.
func bufferLen(w, h int) (int, bool) {
	if w <= 0 || h <= 0 {
		return 0, false
	}
	if w > math.MaxInt/3/h {
		return 0, false
	}
	return w * h * 3, true
}
