// Package styler applies color styles to a surface, optionally animating
// between them.
//
// A [Styler] holds the style parameters and the last matrix it committed.
// Setters only change the parameters; call [Styler.ApplyStyle] to paint.
//
//	s, err := styler.New(surface.ForView(view), styler.DefaultOptions().
//		WithMode(style.ModeSepia).
//		WithAnimation(300*time.Millisecond))
//	if err != nil {
//		return err
//	}
//	s.ApplyStyle()
//
// Animated transitions are driven by [animation.StepTickers] and must run on
// the goroutine that owns the Styler.
package styler

import (
	"time"

	"github.com/go-drift/stylematrix/pkg/animation"
	"github.com/go-drift/stylematrix/pkg/errors"
	"github.com/go-drift/stylematrix/pkg/graphics"
	"github.com/go-drift/stylematrix/pkg/style"
)

// Surface is where a Styler paints. It is queried on every call, so an
// implementation may change what it points at between calls.
type Surface interface {
	// HasTarget reports whether there is anything to paint on.
	HasTarget() bool
	// CurrentMatrix returns the applied matrix, if any.
	CurrentMatrix() (graphics.ColorMatrix, bool)
	// SetMatrix applies m.
	SetMatrix(m graphics.ColorMatrix)
	// Clear removes any applied matrix.
	Clear()
}

// Styler is the live style state of one surface.
type Styler struct {
	surface  Surface
	params   style.Parameters
	anim     AnimationConfig
	listener *Listener

	// last is the most recently committed matrix, frames included. The next
	// transition starts from it.
	last     graphics.ColorMatrix
	animator animation.MatrixAnimator
}

// New returns a Styler painting on surface. The options are validated with
// the same rules as attribute ingestion.
func New(surface Surface, opts Options) (*Styler, error) {
	const op = "styler.New"
	if surface == nil {
		return nil, errors.InvalidParameter(op, "surface", nil, "can't be nil")
	}
	p, err := opts.Validate(op)
	if err != nil {
		return nil, err
	}
	return &Styler{
		surface:  surface,
		params:   p,
		anim:     opts.Animation,
		listener: opts.Listener,
		last:     graphics.IdentityMatrix(),
	}, nil
}

// ApplyStyle paints the current parameters. With animation enabled it
// starts a transition from the last committed matrix, cancelling any
// transition in flight. It does nothing when the surface has no target.
func (s *Styler) ApplyStyle() error {
	if !s.surface.HasTarget() {
		return nil
	}
	target, err := s.params.Matrix()
	if err != nil {
		return err
	}
	s.transition(target, func(end graphics.ColorMatrix) {
		if s.surface.HasTarget() {
			s.surface.SetMatrix(end)
		}
		s.last = end
	})
	return nil
}

// ClearStyle transitions to identity and then removes the surface's filter.
// Once cleared the mode is style.ModeNone and saturation is 1. Brightness
// and contrast are kept. It does nothing when the surface has no target.
func (s *Styler) ClearStyle() {
	if !s.surface.HasTarget() {
		return
	}
	s.transition(graphics.IdentityMatrix(), func(end graphics.ColorMatrix) {
		if s.surface.HasTarget() {
			s.surface.Clear()
		}
		s.last = end
		s.params.Mode = style.ModeNone
		s.params.Saturation = 1
	})
}

func (s *Styler) transition(end graphics.ColorMatrix, commit animation.SettleFunc) {
	if !s.anim.Enabled {
		s.animator.Begin(s.last, end, animation.TransitionConfig{}, nil, commit)
		return
	}
	cfg := animation.TransitionConfig{
		Enabled:  true,
		Duration: s.anim.Duration,
		Curve:    s.anim.Curve,
	}
	t := s.animator.Begin(s.last, end, cfg, s.frame, func(end graphics.ColorMatrix) {
		commit(end)
		s.listener.end()
	})
	t.OnCancel = func() { s.listener.cancel() }
	s.listener.start()
}

func (s *Styler) frame(m graphics.ColorMatrix, fraction, progress float64) {
	if s.surface.HasTarget() {
		s.surface.SetMatrix(m)
	}
	s.last = m
	s.listener.frame(fraction, progress)
}

// Cancel stops a transition in flight without committing its end matrix.
// The surface keeps the last delivered frame. It reports whether a
// transition was running.
func (s *Styler) Cancel() bool {
	return s.animator.Cancel()
}

// Animating reports whether a transition is in flight.
func (s *Styler) Animating() bool {
	return s.animator.Active() != nil
}

// LastMatrix returns the most recently committed matrix. It starts as the
// identity matrix.
func (s *Styler) LastMatrix() graphics.ColorMatrix {
	return s.last
}

// Surface returns the surface the Styler paints on.
func (s *Styler) Surface() Surface {
	return s.surface
}

// Parameters returns a copy of the current style parameters.
func (s *Styler) Parameters() style.Parameters {
	return s.params
}

// SetParameters replaces every style parameter at once. A saturation
// other than 1 promotes style.ModeNone to style.ModeSaturation and
// conflicts with any other mode. On error nothing changes.
func (s *Styler) SetParameters(p style.Parameters) error {
	resolved, err := resolveParameters("styler.SetParameters", p)
	if err != nil {
		return err
	}
	s.params = resolved
	return nil
}

// Mode returns the current mode.
func (s *Styler) Mode() style.Mode {
	return s.params.Mode
}

// SetMode selects mode. Any mode other than style.ModeSaturation resets
// saturation to 1.
func (s *Styler) SetMode(mode style.Mode) error {
	if err := style.ValidateMode("styler.SetMode", mode); err != nil {
		return err
	}
	s.params.Mode = mode
	if mode != style.ModeSaturation {
		s.params.Saturation = 1
	}
	return nil
}

// Brightness returns the brightness offset.
func (s *Styler) Brightness() int {
	return s.params.Brightness
}

// SetBrightness sets the brightness offset, in [-255, 255].
func (s *Styler) SetBrightness(brightness int) error {
	if err := style.ValidateBrightness("styler.SetBrightness", brightness); err != nil {
		return err
	}
	s.params.Brightness = brightness
	return nil
}

// Contrast returns the contrast factor.
func (s *Styler) Contrast() float64 {
	return s.params.Contrast
}

// SetContrast sets the contrast factor. It must be >= 0.
func (s *Styler) SetContrast(contrast float64) error {
	if err := style.ValidateContrast("styler.SetContrast", contrast); err != nil {
		return err
	}
	s.params.Contrast = contrast
	return nil
}

// Saturation returns the saturation factor.
func (s *Styler) Saturation() float64 {
	return s.params.Saturation
}

// SetSaturation sets the saturation factor and selects
// style.ModeSaturation. It must be >= 0.
func (s *Styler) SetSaturation(saturation float64) error {
	if err := style.ValidateSaturation("styler.SetSaturation", saturation); err != nil {
		return err
	}
	s.params.Mode = style.ModeSaturation
	s.params.Saturation = saturation
	return nil
}

// AnimationEnabled reports whether style changes are animated.
func (s *Styler) AnimationEnabled() bool {
	return s.anim.Enabled
}

// AnimationDuration returns the transition duration.
func (s *Styler) AnimationDuration() time.Duration {
	return s.anim.Duration
}

// EnableAnimation animates later style changes linearly over d.
func (s *Styler) EnableAnimation(d time.Duration) error {
	return s.EnableAnimationWithCurve(d, nil)
}

// EnableAnimationWithCurve animates later style changes over d, eased by
// curve. A nil curve is linear.
func (s *Styler) EnableAnimationWithCurve(d time.Duration, curve func(float64) float64) error {
	cfg := AnimationConfig{Enabled: true, Duration: d, Curve: curve}
	if err := cfg.Validate("styler.EnableAnimation"); err != nil {
		return err
	}
	s.anim = cfg
	return nil
}

// DisableAnimation turns animation off and resets the duration to 0. A
// transition already in flight keeps running.
func (s *Styler) DisableAnimation() {
	s.anim = AnimationConfig{}
}

// Listener returns the animation listener, or nil.
func (s *Styler) Listener() *Listener {
	return s.listener
}

// SetListener installs l, replacing any previous listener.
func (s *Styler) SetListener(l *Listener) {
	s.listener = l
}

// RemoveListener removes the listener and returns it.
func (s *Styler) RemoveListener() *Listener {
	l := s.listener
	s.listener = nil
	return l
}
