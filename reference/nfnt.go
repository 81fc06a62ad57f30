package reference

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"

	"github.com/vearutop/resample"
)

// NFNT uses "github.com/nfnt/resize", which only knows a subset of the kernels.
type NFNT struct{}

var _ Backend = NFNT{}

var nfntInterpolation = map[resample.Kernel]resize.InterpolationFunction{
	resample.Nearest:           resize.NearestNeighbor,
	resample.Bilinear:          resize.Bilinear,
	resample.Bicubic:           resize.Bicubic,
	resample.Cardinal:          resize.Bicubic,
	resample.Catrom:            resize.Bicubic,
	resample.MitchellNetravali: resize.MitchellNetravali,
	resample.Lanczos:           resize.Lanczos3,
	resample.Lanczos2:          resize.Lanczos2,
	resample.Lanczos3:          resize.Lanczos3,
}

// Name implements Backend.
func (NFNT) Name() string { return "nfnt" }

// Resize implements Backend.
func (NFNT) Resize(img image.Image, w, h int, k resample.Kernel) (image.Image, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	interp, ok := nfntInterpolation[k]
	if !ok {
		return nil, fmt.Errorf("%w: nfnt has no %s", ErrUnsupportedKernel, k)
	}
	return resize.Resize(uint(w), uint(h), img, interp), nil
}
