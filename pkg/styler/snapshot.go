package styler

import (
	"image"

	"github.com/go-drift/stylematrix/pkg/errors"
	"github.com/go-drift/stylematrix/pkg/graphics"
	"github.com/go-drift/stylematrix/pkg/style"
)

// Snapshotter is implemented by surfaces that can render their styled
// content offscreen. surface.Sink implements it.
type Snapshotter interface {
	// NaturalSize returns the size to render at when none is given.
	NaturalSize() (width, height int)
	// Render draws the styled target at width x height. It returns false
	// when there is no target.
	Render(width, height int) (*image.NRGBA, bool)
}

// Snapshot renders the surface, current filter included, at width x height.
func (s *Styler) Snapshot(width, height int) (*image.NRGBA, error) {
	return s.snapshot("styler.Snapshot", width, height)
}

// SnapshotNatural renders the surface at its natural size.
func (s *Styler) SnapshotNatural() (*image.NRGBA, error) {
	const op = "styler.SnapshotNatural"
	snap, ok := s.surface.(Snapshotter)
	if !ok {
		return nil, &errors.StyleError{Op: op, Kind: errors.KindRender, Err: errNotSnapshotter}
	}
	w, h := snap.NaturalSize()
	return s.snapshot(op, w, h)
}

func (s *Styler) snapshot(op string, width, height int) (*image.NRGBA, error) {
	snap, ok := s.surface.(Snapshotter)
	if !ok {
		return nil, &errors.StyleError{Op: op, Kind: errors.KindRender, Err: errNotSnapshotter}
	}
	if width <= 0 {
		return nil, errors.InvalidParameter(op, "width", width, "must be positive")
	}
	if height <= 0 {
		return nil, errors.InvalidParameter(op, "height", height, "must be positive")
	}
	img, ok := snap.Render(width, height)
	if !ok {
		return nil, errors.NoTarget(op)
	}
	return img, nil
}

// RenderStyledSnapshot returns a styled copy of src. No animation applies
// and src is not modified. A saturation other than 1 requires
// style.ModeSaturation, or style.ModeNone which is promoted to it.
func RenderStyledSnapshot(src image.Image, p style.Parameters) (*image.NRGBA, error) {
	const op = "styler.RenderStyledSnapshot"
	if src == nil {
		return nil, errors.InvalidParameter(op, "src", nil, "can't be nil")
	}
	p, err := resolveParameters(op, p)
	if err != nil {
		return nil, err
	}
	m, err := p.Matrix()
	if err != nil {
		return nil, err
	}
	return graphics.NewMatrixFilter(m).ApplyImage(src), nil
}

// RenderModeSnapshot is RenderStyledSnapshot with default brightness,
// contrast and saturation.
func RenderModeSnapshot(src image.Image, mode style.Mode) (*image.NRGBA, error) {
	p := style.DefaultParameters()
	p.Mode = mode
	return RenderStyledSnapshot(src, p)
}
