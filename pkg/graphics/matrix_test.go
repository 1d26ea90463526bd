package graphics

import (
	"image"
	"image/color"
	"testing"
)

func TestIdentityMatrix_Transform(t *testing.T) {
	m := IdentityMatrix()
	colors := []Color{ColorRed, ColorGreen, ColorBlue, ColorWhite, RGBA8(10, 20, 30, 40)}
	for _, c := range colors {
		if got := m.Transform(c); got != c {
			t.Errorf("identity Transform(%#08x) = %#08x", uint32(c), uint32(got))
		}
	}
	if !m.IsIdentity() {
		t.Error("expected IsIdentity to be true")
	}
}

func TestIdentityMatrix_ReturnsCopy(t *testing.T) {
	a := IdentityMatrix()
	a[0] = 42
	if b := IdentityMatrix(); b[0] != 1 {
		t.Errorf("IdentityMatrix()[0] = %v after mutating a copy, want 1", b[0])
	}
}

func TestColorMatrix_TransformClamps(t *testing.T) {
	invert := ColorMatrix{
		-1, 0, 0, 0, 255,
		0, -1, 0, 0, 255,
		0, 0, -1, 0, 255,
		0, 0, 0, 1, 0,
	}
	if got, want := invert.Transform(RGB(255, 0, 55)), RGB(0, 255, 200); got != want {
		t.Errorf("invert = %#08x, want %#08x", uint32(got), uint32(want))
	}

	boost := ColorMatrix{
		2, 0, 0, 0, 0,
		0, 2, 0, 0, 0,
		0, 0, 2, 0, -300,
		0, 0, 0, 1, 0,
	}
	if got, want := boost.Transform(RGB(200, 100, 10)), RGB(255, 200, 0); got != want {
		t.Errorf("boost = %#08x, want %#08x", uint32(got), uint32(want))
	}
}

func TestLerpMatrix_Endpoints(t *testing.T) {
	a := IdentityMatrix()
	b := ColorMatrix{
		0.393, 0.769, 0.189, 0, 0,
		0.349, 0.686, 0.168, 0, 0,
		0.272, 0.534, 0.131, 0, 0,
		0, 0, 0, 1, 0,
	}
	if got := LerpMatrix(a, b, 0); got != a {
		t.Errorf("LerpMatrix(t=0) = %v, want start", got)
	}
	if got := LerpMatrix(a, b, 1); got != b {
		t.Errorf("LerpMatrix(t=1) = %v, want end", got)
	}
	mid := LerpMatrix(a, b, 0.5)
	if want := (1 + 0.393) / 2; mid[0] != want {
		t.Errorf("mid[0] = %v, want %v", mid[0], want)
	}
	if mid[18] != 1 {
		t.Errorf("alpha coefficient = %v, want 1", mid[18])
	}
}

func TestColorMatrix_ConcatIdentity(t *testing.T) {
	m := ColorMatrix{
		0.5, 0.1, 0, 0, 10,
		0, 0.5, 0.2, 0, 20,
		0.3, 0, 0.5, 0, 30,
		0, 0, 0, 1, 0,
	}
	if got := m.Concat(IdentityMatrix()); got != m {
		t.Errorf("m.Concat(identity) = %v, want %v", got, m)
	}
	if got := IdentityMatrix().Concat(m); got != m {
		t.Errorf("identity.Concat(m) = %v, want %v", got, m)
	}
}

func TestColorMatrix_RowAndOffset(t *testing.T) {
	m := IdentityMatrix()
	m[9] = -245
	if got := m.Row(1); got != [5]float64{0, 1, 0, 0, -245} {
		t.Errorf("Row(1) = %v", got)
	}
	if got := m.Offset(1); got != -245 {
		t.Errorf("Offset(1) = %v, want -245", got)
	}
}

func TestColorFilter_ComposeAppliesInnerFirst(t *testing.T) {
	// Inner zeroes red, outer moves green into red.
	inner := NewMatrixFilter(ColorMatrix{
		0, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	})
	outer := NewMatrixFilter(ColorMatrix{
		1, 1, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	})
	cf := outer.Compose(inner)
	if got, want := cf.Apply(RGB(100, 50, 0)), RGB(50, 50, 0); got != want {
		t.Errorf("composed Apply = %#08x, want %#08x", uint32(got), uint32(want))
	}
	if got, want := NewMatrixFilter(cf.Flatten()).Apply(RGB(100, 50, 0)), RGB(50, 50, 0); got != want {
		t.Errorf("flattened Apply = %#08x, want %#08x", uint32(got), uint32(want))
	}

	// Mutating the inner filter after Compose must not leak into cf.
	inner.Matrix[0] = 1
	if cf.Inner.Matrix[0] != 0 {
		t.Error("Compose did not copy the inner filter")
	}
}

func TestColorFilter_ApplyImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 128})

	swap := NewMatrixFilter(ColorMatrix{
		0, 0, 1, 0, 0,
		0, 1, 0, 0, 0,
		1, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
	})
	dst := swap.ApplyImage(src)

	if got := dst.NRGBAAt(0, 0); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("pixel (0,0) = %v, want blue", got)
	}
	if got := dst.NRGBAAt(1, 0); got != (color.NRGBA{G: 255, A: 128}) {
		t.Errorf("pixel (1,0) = %v, want translucent green", got)
	}
	if src.NRGBAAt(0, 0).R != 255 {
		t.Error("ApplyImage modified the source image")
	}
}
