package graphics

import (
	"image"

	"golang.org/x/image/draw"
)

// ColorFilter transforms colors as pixels are drawn.
//
// Filters can be chained using the Compose method. When composed, the inner
// filter is applied first, then the outer filter processes the result.
//
// Filter chains must be acyclic. Use the Compose method to build chains.
type ColorFilter struct {
	// Matrix is the color transformation applied by this filter.
	Matrix ColorMatrix

	// Inner is an optional filter to apply before this one.
	Inner *ColorFilter
}

// NewMatrixFilter creates a color filter from a matrix.
func NewMatrixFilter(m ColorMatrix) ColorFilter {
	return ColorFilter{Matrix: m}
}

// Compose returns a new ColorFilter that applies inner first, then this filter.
//
// The returned filter is independent of the inputs; modifying inner after
// calling Compose does not affect the composed filter.
func (cf ColorFilter) Compose(inner ColorFilter) ColorFilter {
	result := cf
	result.Inner = inner.clone()
	return result
}

// Flatten collapses the filter chain into a single matrix.
func (cf ColorFilter) Flatten() ColorMatrix {
	if cf.Inner == nil {
		return cf.Matrix
	}
	return cf.Matrix.Concat(cf.Inner.Flatten())
}

// Apply runs the filter chain on one color.
func (cf ColorFilter) Apply(c Color) Color {
	if cf.Inner != nil {
		c = cf.Inner.Apply(c)
	}
	return cf.Matrix.Transform(c)
}

// ApplyImage returns a new straight-alpha image with the filter applied to
// every pixel of src. The result has the same bounds as src.
func (cf ColorFilter) ApplyImage(src image.Image) *image.NRGBA {
	dst := ToNRGBA(src)
	cf.applyInPlace(dst)
	return dst
}

func (cf ColorFilter) applyInPlace(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			out := cf.Apply(RGBA8(row[i], row[i+1], row[i+2], row[i+3]))
			row[i] = uint8(out >> 16)
			row[i+1] = uint8(out >> 8)
			row[i+2] = uint8(out)
			row[i+3] = uint8(out >> 24)
		}
	}
}

// ToNRGBA copies src into a new straight-alpha image with the same bounds.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// Clone returns a deep copy of the filter chain.
func (cf ColorFilter) Clone() ColorFilter {
	return *cf.clone()
}

// clone returns a deep copy of the ColorFilter, including the Inner chain.
func (cf *ColorFilter) clone() *ColorFilter {
	if cf == nil {
		return nil
	}
	c := *cf
	c.Inner = cf.Inner.clone()
	return &c
}
