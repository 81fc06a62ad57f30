package reference

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/vearutop/resample"
)

// Imaging uses "github.com/disintegration/imaging".
type Imaging struct{}

var _ Backend = Imaging{}

// Name implements Backend.
func (Imaging) Name() string { return "imaging" }

// Resize implements Backend.
func (Imaging) Resize(img image.Image, w, h int, k resample.Kernel) (image.Image, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	filter := imaging.NearestNeighbor
	if k != resample.Nearest {
		f, err := filterFor(k)
		if err != nil {
			return nil, err
		}
		filter = imaging.ResampleFilter{Support: f.Support(), Kernel: f.At}
	}
	return imaging.Resize(img, w, h, filter), nil
}
