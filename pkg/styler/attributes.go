package styler

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/stylematrix/pkg/animation"
	"github.com/go-drift/stylematrix/pkg/errors"
	"github.com/go-drift/stylematrix/pkg/style"
)

// Attributes is the declarative form of a Styler's configuration, as read
// from markup. Nil fields were not given and take their defaults.
//
//	mode: sepia            # or the integer encoding, -1..9
//	brightness: 20
//	contrast: 1.2
//	animationEnabled: true
//	animationDurationMs: 400
//	easing: ease_in_out
type Attributes struct {
	Mode                *style.Mode `yaml:"mode,omitempty"`
	Brightness          *int        `yaml:"brightness,omitempty"`
	Contrast            *float64    `yaml:"contrast,omitempty"`
	Saturation          *float64    `yaml:"saturation,omitempty"`
	AnimationEnabled    *bool       `yaml:"animationEnabled,omitempty"`
	AnimationDurationMs *int        `yaml:"animationDurationMs,omitempty"`
	Easing              *string     `yaml:"easing,omitempty"`
}

// ParseAttributes decodes YAML attributes. Unknown keys are rejected. An
// empty document yields empty attributes.
func ParseAttributes(data []byte) (Attributes, error) {
	var a Attributes
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil && !stderrors.Is(err, io.EOF) {
		return Attributes{}, fmt.Errorf("parse attributes: %w", err)
	}
	return a, nil
}

// Merge returns a copy of a with every field set in other overriding it.
func (a Attributes) Merge(other Attributes) Attributes {
	if other.Mode != nil {
		a.Mode = other.Mode
	}
	if other.Brightness != nil {
		a.Brightness = other.Brightness
	}
	if other.Contrast != nil {
		a.Contrast = other.Contrast
	}
	if other.Saturation != nil {
		a.Saturation = other.Saturation
	}
	if other.AnimationEnabled != nil {
		a.AnimationEnabled = other.AnimationEnabled
	}
	if other.AnimationDurationMs != nil {
		a.AnimationDurationMs = other.AnimationDurationMs
	}
	if other.Easing != nil {
		a.Easing = other.Easing
	}
	return a
}

// Options converts the attributes to validated Styler options.
//
// A saturation other than 1 selects style.ModeSaturation when no mode or
// style.ModeNone is given, and conflicts with any other mode. A nonzero
// duration conflicts with disabled animation.
func (a Attributes) Options() (Options, error) {
	const op = "styler.Attributes"
	opts := DefaultOptions()
	if a.Mode != nil {
		opts.Parameters.Mode = *a.Mode
	}
	if a.Brightness != nil {
		opts.Parameters.Brightness = *a.Brightness
	}
	if a.Contrast != nil {
		opts.Parameters.Contrast = *a.Contrast
	}
	if a.Saturation != nil {
		opts.Parameters.Saturation = *a.Saturation
	}
	if a.AnimationEnabled != nil {
		opts.Animation.Enabled = *a.AnimationEnabled
	}
	if a.AnimationDurationMs != nil {
		opts.Animation.Duration = time.Duration(*a.AnimationDurationMs) * time.Millisecond
	}
	if a.Easing != nil {
		curve, ok := animation.CurveByName(*a.Easing)
		if !ok {
			return Options{}, errors.InvalidParameter(op, "easing", *a.Easing, "unknown easing curve")
		}
		opts.Animation.Curve = curve
	}

	p, err := opts.Validate(op)
	if err != nil {
		return Options{}, err
	}
	opts.Parameters = p
	return opts, nil
}
