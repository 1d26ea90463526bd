package styler

import (
	"time"

	"github.com/go-drift/stylematrix/pkg/errors"
	"github.com/go-drift/stylematrix/pkg/style"
)

// AnimationConfig controls whether style changes are animated.
type AnimationConfig struct {
	// Enabled turns on animated transitions.
	Enabled bool
	// Duration of each transition. Must be zero while Enabled is false.
	Duration time.Duration
	// Curve eases the time fraction. Nil means linear.
	Curve func(float64) float64
}

// Validate rejects negative durations and a duration set while disabled.
func (c AnimationConfig) Validate(op string) error {
	if c.Duration < 0 {
		return errors.InvalidParameter(op, "duration", c.Duration, "can't be negative")
	}
	if !c.Enabled && c.Duration != 0 {
		return errors.ConfigConflict(op, "animation duration set while animation is disabled")
	}
	return nil
}

// Options configures a new [Styler]. Start from [DefaultOptions] and
// derive variants with the With methods; each returns a modified copy.
type Options struct {
	Parameters style.Parameters
	Animation  AnimationConfig
	Listener   *Listener
}

// DefaultOptions returns options that leave colors unchanged, with
// animation disabled.
func DefaultOptions() Options {
	return Options{Parameters: style.DefaultParameters()}
}

// WithMode returns a copy of o using mode.
func (o Options) WithMode(mode style.Mode) Options {
	o.Parameters.Mode = mode
	return o
}

// WithBrightness returns a copy of o using brightness.
func (o Options) WithBrightness(brightness int) Options {
	o.Parameters.Brightness = brightness
	return o
}

// WithContrast returns a copy of o using contrast.
func (o Options) WithContrast(contrast float64) Options {
	o.Parameters.Contrast = contrast
	return o
}

// WithSaturation returns a copy of o using saturation. A saturation other
// than 1 selects style.ModeSaturation when the mode is style.ModeNone.
func (o Options) WithSaturation(saturation float64) Options {
	o.Parameters.Saturation = saturation
	return o
}

// WithAnimation returns a copy of o with linear animation of duration d.
func (o Options) WithAnimation(d time.Duration) Options {
	o.Animation = AnimationConfig{Enabled: true, Duration: d}
	return o
}

// WithCurve returns a copy of o with animation of duration d eased by curve.
func (o Options) WithCurve(d time.Duration, curve func(float64) float64) Options {
	o.Animation = AnimationConfig{Enabled: true, Duration: d, Curve: curve}
	return o
}

// WithListener returns a copy of o that notifies l of animation events.
func (o Options) WithListener(l *Listener) Options {
	o.Listener = l
	return o
}

// Validate checks o the same way [New] does and returns the parameters
// that would be used.
func (o Options) Validate(op string) (style.Parameters, error) {
	p, err := resolveParameters(op, o.Parameters)
	if err != nil {
		return style.Parameters{}, err
	}
	if err := o.Animation.Validate(op); err != nil {
		return style.Parameters{}, err
	}
	return p, nil
}

// resolveParameters applies the saturation rule shared by every
// configuration entry point: a saturation other than 1 implies
// style.ModeSaturation, and conflicts with any other explicit mode.
func resolveParameters(op string, p style.Parameters) (style.Parameters, error) {
	if p.Saturation != 1 {
		switch p.Mode {
		case style.ModeNone:
			p.Mode = style.ModeSaturation
		case style.ModeSaturation:
		default:
			return style.Parameters{}, errors.ConfigConflict(op,
				"saturation must be 1 unless mode is saturation, got mode "+p.Mode.String())
		}
	}
	if err := p.Validate(op); err != nil {
		return style.Parameters{}, err
	}
	return p, nil
}
