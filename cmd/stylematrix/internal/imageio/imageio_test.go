package imageio

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 100), B: 40, A: 255})
		}
	}
	return img
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, ext := range []string{".png", ".jpg", ".gif", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "img"+ext)
			if err := Save(path, testImage()); err != nil {
				t.Fatal(err)
			}
			img, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
				t.Errorf("bounds = %v, want 4x3", b)
			}
		})
	}
}

func TestPNGIsLossless(t *testing.T) {
	var buf bytes.Buffer
	src := testImage()
	if err := Encode(&buf, ".PNG", src); err != nil {
		t.Fatal(err)
	}
	img, _, err := image.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(3, 2).RGBA()
	if r>>8 != 180 || g>>8 != 200 || b>>8 != 40 {
		t.Errorf("pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, ".xcf", testImage()); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anim.gif")
	frames := []image.Image{testImage(), testImage(), testImage()}
	if err := SaveGIF(path, frames, 4); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatal(err)
	}
}
