package reference

import (
	"image"
	"math"

	"github.com/bamiaux/rez"

	"github.com/vearutop/resample"
)

// Rez uses "github.com/bamiaux/rez".
type Rez struct{}

var _ Backend = Rez{}

// rezFilter adapts a resample.Filter to rez.Filter.
type rezFilter struct {
	name string
	f    resample.Filter
}

func (r rezFilter) Name() string { return r.name }

func (r rezFilter) Taps() int { return int(math.Ceil(r.f.Support())) }

func (r rezFilter) Get(x float64) float64 { return r.f.At(x) }

// Name implements Backend.
func (Rez) Name() string { return "rez" }

// Resize implements Backend.
func (Rez) Resize(img image.Image, w, h int, k resample.Kernel) (image.Image, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	f, err := filterFor(k)
	if err != nil {
		return nil, err
	}
	src, ok := img.(*image.RGBA)
	if !ok {
		src = resample.FromImage(img).RGBA()
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := rez.Convert(dst, src, rezFilter{name: k.String(), f: f}); err != nil {
		return nil, err
	}
	return dst, nil
}
