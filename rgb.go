package resample

import (
	"image"
	"image/color"
)

// RGB is a packed 24-bit image: Width*Height pixels of interleaved R, G, B
// bytes, row-major, without row padding.
type RGB struct {
	Pix    []byte
	Width  int
	Height int
}

// NewRGB allocates a black w x h image.
func NewRGB(w, h int) *RGB {
	return &RGB{Pix: make([]byte, w*h*3), Width: w, Height: h}
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (m *RGB) PixOffset(x, y int) int {
	return (y*m.Width + x) * 3
}

// RGBAt returns the pixel at (x, y).
func (m *RGB) RGBAt(x, y int) (r, g, b uint8) {
	i := m.PixOffset(x, y)
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// SetRGB sets the pixel at (x, y).
func (m *RGB) SetRGB(x, y int, r, g, b uint8) {
	i := m.PixOffset(x, y)
	m.Pix[i], m.Pix[i+1], m.Pix[i+2] = r, g, b
}

// RGBA converts m to an opaque *image.RGBA.
func (m *RGB) RGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		s := m.Pix[y*m.Width*3:]
		d := dst.Pix[y*dst.Stride:]
		for x := 0; x < m.Width; x++ {
			d[x*4+0] = s[x*3+0]
			d[x*4+1] = s[x*3+1]
			d[x*4+2] = s[x*3+2]
			d[x*4+3] = 0xFF
		}
	}
	return dst
}

// FromImage packs the color channels of img into a new RGB, dropping alpha.
// *image.RGBA keeps its premultiplied values, i.e. translucent pixels end up
// composited over black; other types are read through color.NRGBAModel.
func FromImage(img image.Image) *RGB {
	b := img.Bounds()
	dst := NewRGB(b.Dx(), b.Dy())
	switch src := img.(type) {
	case *image.RGBA:
		copyRGBX(dst, src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y))
	case *image.NRGBA:
		copyRGBX(dst, src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y))
	default:
		for y := 0; y < dst.Height; y++ {
			for x := 0; x < dst.Width; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				dst.SetRGB(x, y, c.R, c.G, c.B)
			}
		}
	}
	return dst
}

func copyRGBX(dst *RGB, pix []byte, stride, start int) {
	for y := 0; y < dst.Height; y++ {
		s := pix[start+y*stride:]
		d := dst.Pix[y*dst.Width*3:]
		for x := 0; x < dst.Width; x++ {
			d[x*3+0] = s[x*4+0]
			d[x*3+1] = s[x*4+1]
			d[x*3+2] = s[x*4+2]
		}
	}
}
