// Package reference resizes images with established Go libraries so the
// results of package resample can be cross-checked against them.
package reference

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/vearutop/resample"
)

// ErrUnsupportedKernel is returned by backends that have no equivalent of the
// requested kernel.
var ErrUnsupportedKernel = errors.New("kernel not supported by backend")

// Backend resizes an image with one implementation.
type Backend interface {
	Name() string
	Resize(img image.Image, w, h int, k resample.Kernel) (image.Image, error)
}

// All returns every backend, the native engine first.
func All() []Backend {
	return []Backend{
		Native{},
		NFNT{},
		XDraw{},
		Gift{},
		Imaging{},
		Bild{},
		Rez{},
	}
}

// ByName finds a backend by its Name.
func ByName(name string) (Backend, error) {
	for _, b := range All() {
		if b.Name() == name {
			return b, nil
		}
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

// Native uses package resample.
type Native struct {
	Options []func(o *resample.Options)
}

var _ Backend = Native{}

// Name implements Backend.
func (Native) Name() string { return "native" }

// Resize implements Backend.
func (n Native) Resize(img image.Image, w, h int, k resample.Kernel) (image.Image, error) {
	return resample.ResizeImage(img, w, h, k, n.Options...)
}

// Diff summarizes per-channel differences between two images.
type Diff struct {
	MaxAbs  int
	MeanAbs float64
	// PSNR is in dB, +Inf for identical images.
	PSNR float64
}

// Compare computes the difference of the color channels of a and b, which
// must have the same size.
func Compare(a, b image.Image) (Diff, error) {
	if a.Bounds().Dx() != b.Bounds().Dx() || a.Bounds().Dy() != b.Bounds().Dy() {
		return Diff{}, fmt.Errorf("size mismatch: %v vs %v", a.Bounds().Size(), b.Bounds().Size())
	}
	pa := resample.FromImage(a).Pix
	pb := resample.FromImage(b).Pix

	var (
		d      Diff
		sumAbs float64
		sumSq  float64
	)
	for i := range pa {
		v := int(pa[i]) - int(pb[i])
		if v < 0 {
			v = -v
		}
		if v > d.MaxAbs {
			d.MaxAbs = v
		}
		sumAbs += float64(v)
		sumSq += float64(v * v)
	}
	if len(pa) > 0 {
		d.MeanAbs = sumAbs / float64(len(pa))
	}
	if sumSq == 0 {
		d.PSNR = math.Inf(1)
	} else {
		mse := sumSq / float64(len(pa))
		d.PSNR = 10 * math.Log10(255*255/mse)
	}
	return d, nil
}

func filterFor(k resample.Kernel) (resample.Filter, error) {
	f := k.Filter()
	if f == nil {
		return nil, fmt.Errorf("%w: %d", resample.ErrUnknownKernel, int(k))
	}
	return f, nil
}

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %w: target %dx%d", resample.ErrInvalidInput, resample.ErrDegenerateGeometry, w, h)
	}
	return nil
}
