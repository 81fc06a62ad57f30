// Package bitmap reads and writes the pixel containers used by bmpresize.
//
// BMP files are decoded and encoded with golang.org/x/image/bmp, which stores
// pixels as BGR with rows padded to 4 bytes; conversion to and from the packed
// RGB layout of resample.RGB happens on copies, never on the caller's buffer.
package bitmap

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder.
	_ "image/jpeg" // Register JPEG decoder.
	_ "image/png"  // Register PNG decoder.
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/vearutop/resample"
)

// ErrUnsupportedFormat is returned for inputs that are not 24/32-bit BMP files
// when decoding strictly, or not a known image format otherwise.
var ErrUnsupportedFormat = errors.New("unsupported format")

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	// HeaderSize is the size of the file and info headers written by Encode.
	HeaderSize = fileHeaderSize + infoHeaderSize

	bitCountOffset = fileHeaderSize + 14
)

// RowPadding returns the number of zero bytes appended to each 24-bit row of
// the given width.
func RowPadding(width int) int {
	return (4 - (width*3)%4) % 4
}

// EncodedSize returns the size in bytes of a 24-bit BMP file of w x h pixels.
func EncodedSize(w, h int) int {
	return HeaderSize + (w*3+RowPadding(w))*h
}

// Decode reads a BMP, PNG, JPEG or GIF image and packs its color channels.
func Decode(r io.Reader) (*resample.RGB, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return resample.FromImage(img), nil
}

// DecodeBMP reads an uncompressed 24-bit or 32-bit BMP image.
func DecodeBMP(r io.Reader) (*resample.RGB, error) {
	br := bufio.NewReader(r)
	hdr, err := br.Peek(bitCountOffset + 2)
	if err != nil {
		return nil, fmt.Errorf("read bitmap header: %w", err)
	}
	if hdr[0] != 'B' || hdr[1] != 'M' {
		return nil, fmt.Errorf("%w: missing BM signature", ErrUnsupportedFormat)
	}
	if bits := binary.LittleEndian.Uint16(hdr[bitCountOffset:]); bits != 24 && bits != 32 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedFormat, bits)
	}

	img, err := bmp.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("decode bitmap: %w", err)
	}
	return resample.FromImage(img), nil
}

// Encode writes img as an uncompressed 24-bit BMP.
func Encode(w io.Writer, img *resample.RGB) error {
	if img == nil || img.Width <= 0 || img.Height <= 0 || len(img.Pix) != img.Width*img.Height*3 {
		return fmt.Errorf("%w: malformed image", resample.ErrInvalidInput)
	}
	return bmp.Encode(w, img.RGBA())
}

// Load reads an image file. Files with a .bmp extension go through DecodeBMP,
// anything else through Decode.
func Load(path string) (*resample.RGB, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decode := Decode
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		decode = DecodeBMP
	}

	img, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Save writes img to path as a 24-bit BMP.
func Save(path string, img *resample.RGB) (err error) {
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Encode(bw, img); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return bw.Flush()
}
