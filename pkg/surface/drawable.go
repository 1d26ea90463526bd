// Package surface provides the targets a computed color matrix is painted on.
//
// A [Sink] is one of three variants, selected at construction:
//
//   - [ForView]: a view whose image drawable is preferred, falling back to
//     its background drawable.
//   - [ForDrawable]: a single [Drawable].
//   - [ForPixelBuffer]: a raw [PixelBuffer] whose pixels are re-rendered on
//     every matrix change.
//
// The target is resolved again on every call, so replacing a view's image
// between calls is always observed.
package surface

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/go-drift/stylematrix/pkg/graphics"
)

// Drawable is an image with an optional color filter, drawn at any size.
type Drawable struct {
	// Image is the source content. A nil Image draws nothing.
	Image image.Image

	filter *graphics.ColorFilter
}

// NewDrawable wraps img in a Drawable with no color filter.
func NewDrawable(img image.Image) *Drawable {
	return &Drawable{Image: img}
}

// SetColorFilter installs cf, replacing any previous filter.
func (d *Drawable) SetColorFilter(cf graphics.ColorFilter) {
	c := cf.Clone()
	d.filter = &c
}

// ClearColorFilter removes the color filter.
func (d *Drawable) ClearColorFilter() {
	d.filter = nil
}

// ColorFilter returns the installed filter, if any.
func (d *Drawable) ColorFilter() (graphics.ColorFilter, bool) {
	if d.filter == nil {
		return graphics.ColorFilter{}, false
	}
	return *d.filter, true
}

// IntrinsicSize returns the natural size of the image, or 0x0 without one.
func (d *Drawable) IntrinsicSize() (width, height int) {
	if d.Image == nil {
		return 0, 0
	}
	b := d.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Render draws the drawable, filter included, into a new width x height image.
// The source is scaled with bilinear filtering when sizes differ.
func (d *Drawable) Render(width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if d.Image == nil || width <= 0 || height <= 0 {
		return dst
	}
	src := d.Image
	if b := src.Bounds(); b.Dx() == width && b.Dy() == height {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}
	if d.filter != nil {
		return d.filter.ApplyImage(dst)
	}
	return dst
}
