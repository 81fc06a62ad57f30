package bitmap

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/vearutop/resample"
)

func testImage(w, h int) *resample.RGB {
	m := resample.NewRGB(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetRGB(x, y, uint8(x*40), uint8(y*60), uint8(x+y))
		}
	}
	return m
}

func TestRowPadding(t *testing.T) {
	want := map[int]int{1: 1, 2: 2, 3: 3, 4: 0, 5: 1, 8: 0}
	for w, p := range want {
		if got := RowPadding(w); got != p {
			t.Fatalf("width %d: got %d want %d", w, got, p)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, size := range [][2]int{{5, 3}, {4, 4}, {1, 7}, {6, 1}} {
		src := testImage(size[0], size[1])

		var buf bytes.Buffer
		if err := Encode(&buf, src); err != nil {
			t.Fatalf("encode %v: %v", size, err)
		}
		if buf.Len() != EncodedSize(size[0], size[1]) {
			t.Fatalf("encoded %v: got %d bytes want %d", size, buf.Len(), EncodedSize(size[0], size[1]))
		}
		raw := buf.Bytes()
		if raw[0] != 'B' || raw[1] != 'M' {
			t.Fatalf("missing signature: %q", raw[:2])
		}
		// First stored pixel is the bottom-left one, in BGR order.
		r, g, b := src.RGBAt(0, size[1]-1)
		if raw[HeaderSize] != b || raw[HeaderSize+1] != g || raw[HeaderSize+2] != r {
			t.Fatalf("unexpected channel order: %v", raw[HeaderSize:HeaderSize+3])
		}

		got, err := DecodeBMP(bytes.NewReader(raw))
		if err != nil {
			t.Fatalf("decode %v: %v", size, err)
		}
		if got.Width != src.Width || got.Height != src.Height || !bytes.Equal(got.Pix, src.Pix) {
			t.Fatalf("round trip %v mismatch", size)
		}
	}
}

func TestEncodeDoesNotMutateSource(t *testing.T) {
	src := testImage(3, 2)
	before := append([]byte(nil), src.Pix...)
	if err := Encode(&bytes.Buffer{}, src); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, src.Pix) {
		t.Fatal("encode modified the source pixels")
	}
}

func TestDecodeBMPRejectsPaletted(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, pal); err != nil {
		t.Fatal(err)
	}

	if _, err := DecodeBMP(bytes.NewReader(buf.Bytes())); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}

	img, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("generic decode: %v", err)
	}
	if img.Width != 4 || img.Height != 4 {
		t.Fatalf("unexpected geometry: %dx%d", img.Width, img.Height)
	}
}

func TestDecodeFormats(t *testing.T) {
	src := testImage(3, 3)
	var buf bytes.Buffer
	if err := png.Encode(&buf, src.RGBA()); err != nil {
		t.Fatal(err)
	}

	if _, err := DecodeBMP(bytes.NewReader(buf.Bytes())); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat for png, got %v", err)
	}
	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Pix, src.Pix) {
		t.Fatal("png pixels differ")
	}

	if _, err := Decode(bytes.NewReader([]byte("definitely not an image"))); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := DecodeBMP(bytes.NewReader([]byte("BM"))); err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestEncodeRejectsMalformed(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, nil); !errors.Is(err, resample.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	bad := &resample.RGB{Pix: make([]byte, 5), Width: 2, Height: 2}
	if err := Encode(&bytes.Buffer{}, bad); !errors.Is(err, resample.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.bmp")
	src := testImage(7, 5)
	if err := Save(p, src); err != nil {
		t.Fatalf("save: %v", err)
	}
	st, err := os.Stat(p)
	if err != nil {
		t.Fatal(err)
	}
	if st.Size() != int64(EncodedSize(7, 5)) {
		t.Fatalf("file size %d, want %d", st.Size(), EncodedSize(7, 5))
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(got.Pix, src.Pix) {
		t.Fatal("pixels differ after save and load")
	}

	if _, err := Load(filepath.Join(dir, "missing.bmp")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist, got %v", err)
	}
	if err := Save(filepath.Join(dir, "no", "such", "dir.bmp"), src); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoadStrictForBMPExtension(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 3, 2), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, pal); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	strict := filepath.Join(dir, "pal.BMP")
	lenient := filepath.Join(dir, "pal.img")
	for _, p := range []string{strict, lenient} {
		if err := os.WriteFile(p, buf.Bytes(), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := Load(strict); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat for 8-bit bmp, got %v", err)
	}
	img, err := Load(lenient)
	if err != nil {
		t.Fatalf("lenient load: %v", err)
	}
	if img.Width != 3 || img.Height != 2 {
		t.Fatalf("unexpected geometry: %dx%d", img.Width, img.Height)
	}
}
