package surface

import (
	"fmt"
	"image"

	"github.com/go-drift/stylematrix/pkg/graphics"
)

// Kind identifies which variant a Sink wraps.
type Kind int

const (
	// KindView paints a view's image drawable, or its background.
	KindView Kind = iota
	// KindDrawable paints a single drawable.
	KindDrawable
	// KindPixelBuffer re-renders a raw pixel buffer.
	KindPixelBuffer
)

func (k Kind) String() string {
	switch k {
	case KindView:
		return "view"
	case KindDrawable:
		return "drawable"
	case KindPixelBuffer:
		return "pixel buffer"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sink is the surface a computed matrix is applied to. The zero value has
// no target. Sinks reference their surface and never own it.
type Sink struct {
	kind     Kind
	view     *View
	drawable *Drawable
	buffer   *PixelBuffer
}

// ForView returns a sink that paints v's current target drawable.
func ForView(v *View) Sink {
	return Sink{kind: KindView, view: v}
}

// ForDrawable returns a sink that paints d.
func ForDrawable(d *Drawable) Sink {
	return Sink{kind: KindDrawable, drawable: d}
}

// ForPixelBuffer returns a sink that re-renders b.
func ForPixelBuffer(b *PixelBuffer) Sink {
	return Sink{kind: KindPixelBuffer, buffer: b}
}

// Kind returns the sink variant.
func (s Sink) Kind() Kind {
	return s.kind
}

// resolve returns the drawable currently targeted by view and drawable
// sinks. It is evaluated on every call.
func (s Sink) resolve() *Drawable {
	switch s.kind {
	case KindView:
		return s.view.TargetDrawable()
	case KindDrawable:
		return s.drawable
	default:
		return nil
	}
}

// HasTarget reports whether there is currently anything to paint on.
func (s Sink) HasTarget() bool {
	if s.kind == KindPixelBuffer {
		return s.buffer != nil && s.buffer.Source() != nil
	}
	return s.resolve() != nil
}

// CurrentMatrix returns the matrix presently applied to the target. It
// returns false when there is no target or no matrix applied.
func (s Sink) CurrentMatrix() (graphics.ColorMatrix, bool) {
	if s.kind == KindPixelBuffer {
		if s.buffer == nil {
			return graphics.ColorMatrix{}, false
		}
		return s.buffer.Matrix()
	}
	d := s.resolve()
	if d == nil {
		return graphics.ColorMatrix{}, false
	}
	cf, ok := d.ColorFilter()
	if !ok {
		return graphics.ColorMatrix{}, false
	}
	return cf.Flatten(), true
}

// SetMatrix applies m to the target. It does nothing without a target.
func (s Sink) SetMatrix(m graphics.ColorMatrix) {
	if s.kind == KindPixelBuffer {
		if s.HasTarget() {
			s.buffer.SetMatrix(m)
		}
		return
	}
	if d := s.resolve(); d != nil {
		d.SetColorFilter(graphics.NewMatrixFilter(m))
	}
}

// Clear removes the target's filter entirely. It does nothing without a target.
func (s Sink) Clear() {
	if s.kind == KindPixelBuffer {
		if s.HasTarget() {
			s.buffer.ClearMatrix()
		}
		return
	}
	if d := s.resolve(); d != nil {
		d.ClearColorFilter()
	}
}

// NaturalSize returns the target's intrinsic size. View sinks fall back to
// the view's measured size when the drawable reports 0x0.
func (s Sink) NaturalSize() (width, height int) {
	switch s.kind {
	case KindPixelBuffer:
		if !s.HasTarget() {
			return 0, 0
		}
		b := s.buffer.Source().Bounds()
		return b.Dx(), b.Dy()
	case KindView:
		if d := s.resolve(); d != nil {
			width, height = d.IntrinsicSize()
		}
		if (width == 0 || height == 0) && s.view != nil {
			width, height = s.view.MeasuredWidth, s.view.MeasuredHeight
		}
		return width, height
	default:
		if d := s.resolve(); d != nil {
			return d.IntrinsicSize()
		}
		return 0, 0
	}
}

// Render draws the styled target into a new width x height image. It
// returns false when there is no target.
func (s Sink) Render(width, height int) (*image.NRGBA, bool) {
	if !s.HasTarget() {
		return nil, false
	}
	if s.kind == KindPixelBuffer {
		return NewDrawable(s.buffer.Pixels()).Render(width, height), true
	}
	return s.resolve().Render(width, height), true
}
