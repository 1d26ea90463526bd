package styler_test

import (
	stderrors "errors"
	"image"
	"image/color"
	"testing"

	"github.com/go-drift/stylematrix/pkg/errors"
	"github.com/go-drift/stylematrix/pkg/style"
	"github.com/go-drift/stylematrix/pkg/styler"
	"github.com/go-drift/stylematrix/pkg/surface"
	smtest "github.com/go-drift/stylematrix/pkg/testing"
)

func fill(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestSnapshot_View(t *testing.T) {
	v := &surface.View{
		Background:     surface.NewDrawable(fill(2, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})),
		MeasuredWidth:  8,
		MeasuredHeight: 6,
	}
	s, err := styler.New(surface.ForView(v), styler.DefaultOptions().WithMode(style.ModeInvert))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyStyle(); err != nil {
		t.Fatal(err)
	}

	img, err := s.Snapshot(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := color.NRGBA{R: 55, G: 155, B: 205, A: 255}
	if got := img.NRGBAAt(1, 1); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
	img, err = s.Snapshot(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", b)
	}

	img, err = s.SnapshotNatural()
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("natural bounds = %v, want 2x2", b)
	}

	v.Background = surface.NewDrawable(nil)
	img, err = s.SnapshotNatural()
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("measured fallback bounds = %v, want 8x6", b)
	}
}

func TestSnapshot_Errors(t *testing.T) {
	s, err := styler.New(surface.ForView(&surface.View{}), styler.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Snapshot(4, 4); !stderrors.Is(err, errors.ErrNoTarget) {
		t.Errorf("Snapshot() without target = %v", err)
	}
	if _, err := s.Snapshot(0, 4); !stderrors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("Snapshot(0, 4) = %v", err)
	}

	rec, _ := styler.New(smtest.NewRecordingSurface(), styler.DefaultOptions())
	var se *errors.StyleError
	if _, err := rec.Snapshot(1, 1); !stderrors.As(err, &se) || se.Kind != errors.KindRender {
		t.Errorf("Snapshot() on a plain surface = %v", err)
	}
}

func TestSnapshot_PixelBuffer(t *testing.T) {
	buf := surface.NewPixelBuffer(fill(3, 1, color.NRGBA{R: 90, G: 90, B: 90, A: 255}))
	s, err := styler.New(surface.ForPixelBuffer(buf), styler.DefaultOptions().WithBrightness(10))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyStyle(); err != nil {
		t.Fatal(err)
	}
	if got := buf.Pixels().NRGBAAt(2, 0); got != (color.NRGBA{R: 100, G: 100, B: 100, A: 255}) {
		t.Errorf("buffer pixel = %v", got)
	}
	s.ClearStyle()
	if got := buf.Pixels().NRGBAAt(2, 0); got.R != 90 {
		t.Errorf("cleared buffer pixel = %v", got)
	}
}

func TestRenderStyledSnapshot(t *testing.T) {
	src := fill(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	p := style.DefaultParameters()
	p.Mode = style.ModeRGBToBGR

	out, err := styler.RenderStyledSnapshot(src, p)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := out.NRGBAAt(0, 1), (color.NRGBA{R: 30, G: 20, B: 10, A: 128}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
	if src.NRGBAAt(0, 1).R != 10 {
		t.Error("source image was modified")
	}
}

func TestRenderStyledSnapshot_Validation(t *testing.T) {
	src := fill(1, 1, color.NRGBA{A: 255})
	tests := []struct {
		name string
		p    style.Parameters
		want error
	}{
		{"saturation with sepia", style.Parameters{Mode: style.ModeSepia, Contrast: 1, Saturation: 0.5}, errors.ErrConfigConflict},
		{"saturation with invert", style.Parameters{Mode: style.ModeInvert, Contrast: 1, Saturation: 2}, errors.ErrConfigConflict},
		{"brightness", style.Parameters{Mode: style.ModeNone, Brightness: -256, Contrast: 1, Saturation: 1}, errors.ErrInvalidParameter},
		{"contrast", style.Parameters{Mode: style.ModeNone, Contrast: -2, Saturation: 1}, errors.ErrInvalidParameter},
		{"saturation", style.Parameters{Mode: style.ModeSaturation, Contrast: 1, Saturation: -1}, errors.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := styler.RenderStyledSnapshot(src, tt.p); !stderrors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := styler.RenderStyledSnapshot(nil, style.DefaultParameters()); err == nil {
		t.Error("nil source should be rejected")
	}

	// Saturation with ModeNone is promoted rather than rejected.
	p := style.Parameters{Mode: style.ModeNone, Contrast: 1, Saturation: 0}
	out, err := styler.RenderStyledSnapshot(fill(1, 1, color.NRGBA{R: 255, A: 255}), p)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.NRGBAAt(0, 0); got.R != got.G || got.G != got.B {
		t.Errorf("desaturated pixel = %v, want grey", got)
	}
}

func TestRenderModeSnapshot(t *testing.T) {
	out, err := styler.RenderModeSnapshot(fill(1, 1, color.NRGBA{R: 0, G: 0, B: 0, A: 255}), style.ModeInvert)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
	if _, err := styler.RenderModeSnapshot(out, style.Mode(-5)); err == nil {
		t.Error("invalid mode should be rejected")
	}
}
