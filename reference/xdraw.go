package reference

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/vearutop/resample"
)

// XDraw uses "golang.org/x/image/draw" with a draw.Kernel built from the
// resample filter, so every kernel is available.
type XDraw struct{}

var _ Backend = XDraw{}

// Name implements Backend.
func (XDraw) Name() string { return "xdraw" }

// Resize implements Backend.
func (XDraw) Resize(img image.Image, w, h int, k resample.Kernel) (image.Image, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	var scaler draw.Scaler
	if k == resample.Nearest {
		scaler = draw.NearestNeighbor
	} else {
		f, err := filterFor(k)
		if err != nil {
			return nil, err
		}
		scaler = &draw.Kernel{Support: f.Support(), At: f.At}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}
