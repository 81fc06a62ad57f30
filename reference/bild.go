package reference

import (
	"image"

	"github.com/anthonynsimon/bild/transform"

	"github.com/vearutop/resample"
)

// Bild uses "github.com/anthonynsimon/bild/transform".
type Bild struct{}

var _ Backend = Bild{}

// Name implements Backend.
func (Bild) Name() string { return "bild" }

// Resize implements Backend.
func (Bild) Resize(img image.Image, w, h int, k resample.Kernel) (image.Image, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	filter := transform.NearestNeighbor
	if k != resample.Nearest {
		f, err := filterFor(k)
		if err != nil {
			return nil, err
		}
		filter = transform.ResampleFilter{Support: f.Support(), Fn: f.At}
	}
	return transform.Resize(img, w, h, filter), nil
}
