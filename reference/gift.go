package reference

import (
	"image"

	"github.com/disintegration/gift"

	"github.com/vearutop/resample"
)

// Gift uses "github.com/disintegration/gift".
type Gift struct{}

var _ Backend = Gift{}

// giftResampling adapts a resample.Filter to gift.Resampling.
type giftResampling struct {
	f resample.Filter
}

func (r giftResampling) Support() float32 { return float32(r.f.Support()) }

func (r giftResampling) Kernel(x float32) float32 { return float32(r.f.At(float64(x))) }

// Name implements Backend.
func (Gift) Name() string { return "gift" }

// Resize implements Backend.
func (Gift) Resize(img image.Image, w, h int, k resample.Kernel) (image.Image, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	var res gift.Resampling
	if k == resample.Nearest {
		res = gift.NearestNeighborResampling
	} else {
		f, err := filterFor(k)
		if err != nil {
			return nil, err
		}
		res = giftResampling{f: f}
	}
	g := gift.New(gift.Resize(w, h, res))
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst, nil
}
