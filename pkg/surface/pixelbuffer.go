package surface

import (
	"image"

	"github.com/go-drift/stylematrix/pkg/graphics"
)

// PixelBuffer is a raw pixel surface. Pix always holds Source with the
// current matrix applied, or an unfiltered copy of Source when cleared.
type PixelBuffer struct {
	source *image.NRGBA
	pix    *image.NRGBA
	matrix *graphics.ColorMatrix
}

// NewPixelBuffer copies src into a new buffer with no matrix applied.
// A nil src yields a buffer with no target.
func NewPixelBuffer(src image.Image) *PixelBuffer {
	b := &PixelBuffer{}
	b.SetSource(src)
	return b
}

// SetSource replaces the source pixels and re-renders with the current matrix.
func (b *PixelBuffer) SetSource(src image.Image) {
	if src == nil {
		b.source, b.pix = nil, nil
		return
	}
	b.source = graphics.ToNRGBA(src)
	b.render()
}

// Pixels returns the rendered pixels. Nil when the buffer has no source.
func (b *PixelBuffer) Pixels() *image.NRGBA {
	return b.pix
}

// Source returns the unfiltered pixels. Nil when the buffer has no source.
func (b *PixelBuffer) Source() *image.NRGBA {
	return b.source
}

// Matrix returns the applied matrix, if any.
func (b *PixelBuffer) Matrix() (graphics.ColorMatrix, bool) {
	if b.matrix == nil {
		return graphics.ColorMatrix{}, false
	}
	return *b.matrix, true
}

// SetMatrix applies m to the source pixels.
func (b *PixelBuffer) SetMatrix(m graphics.ColorMatrix) {
	b.matrix = &m
	b.render()
}

// ClearMatrix restores the unfiltered source pixels.
func (b *PixelBuffer) ClearMatrix() {
	b.matrix = nil
	b.render()
}

func (b *PixelBuffer) render() {
	if b.source == nil {
		return
	}
	if b.matrix == nil {
		b.pix = graphics.ToNRGBA(b.source)
		return
	}
	b.pix = graphics.NewMatrixFilter(*b.matrix).ApplyImage(b.source)
}
