// Package style produces the color matrices applied to a styled surface.
//
// The library accessors ([Sepia], [Invert], [Saturation], ...) return base
// matrices for each [Mode]. [Compose] layers brightness and contrast on top
// of the base matrix to produce the matrix that is actually drawn.
package style

import (
	"math"

	"github.com/go-drift/stylematrix/pkg/errors"
	"github.com/go-drift/stylematrix/pkg/graphics"
)

// Parameter limits.
const (
	MinBrightness = -255
	MaxBrightness = 255
)

// Parameters selects a mode and the global tone adjustments layered on it.
type Parameters struct {
	// Mode is the base color transform.
	Mode Mode
	// Brightness is added to every color channel, in [-255, 255].
	Brightness int
	// Contrast scales the color channels around mid-grey. Must be >= 0.
	Contrast float64
	// Saturation is used only by ModeSaturation. Must be >= 0.
	Saturation float64
}

// DefaultParameters returns parameters that leave colors unchanged.
func DefaultParameters() Parameters {
	return Parameters{
		Mode:       ModeNone,
		Brightness: 0,
		Contrast:   1,
		Saturation: 1,
	}
}

// Validate checks every field against its accepted range.
func (p Parameters) Validate(op string) error {
	if err := ValidateMode(op, p.Mode); err != nil {
		return err
	}
	if err := ValidateBrightness(op, p.Brightness); err != nil {
		return err
	}
	if err := ValidateContrast(op, p.Contrast); err != nil {
		return err
	}
	return ValidateSaturation(op, p.Saturation)
}

// Matrix validates p and composes its matrix.
func (p Parameters) Matrix() (graphics.ColorMatrix, error) {
	return Compose(p.Mode, p.Saturation, p.Brightness, p.Contrast)
}

// ValidateMode rejects unsupported modes.
func ValidateMode(op string, mode Mode) error {
	if !mode.Valid() {
		return errors.InvalidParameter(op, "mode", int(mode), "unsupported mode")
	}
	return nil
}

// ValidateBrightness rejects brightness outside [-255, 255].
func ValidateBrightness(op string, brightness int) error {
	if brightness > MaxBrightness {
		return errors.InvalidParameter(op, "brightness", brightness, "can't be bigger than 255")
	}
	if brightness < MinBrightness {
		return errors.InvalidParameter(op, "brightness", brightness, "can't be smaller than -255")
	}
	return nil
}

// ValidateContrast rejects negative or non-finite contrast.
func ValidateContrast(op string, contrast float64) error {
	if math.IsNaN(contrast) || math.IsInf(contrast, 0) {
		return errors.InvalidParameter(op, "contrast", contrast, "must be finite")
	}
	if contrast < 0 {
		return errors.InvalidParameter(op, "contrast", contrast, "can't be smaller than 0")
	}
	return nil
}

// ValidateSaturation rejects negative or non-finite saturation.
func ValidateSaturation(op string, saturation float64) error {
	if math.IsNaN(saturation) || math.IsInf(saturation, 0) {
		return errors.InvalidParameter(op, "saturation", saturation, "must be finite")
	}
	if saturation < 0 {
		return errors.InvalidParameter(op, "saturation", saturation, "can't be smaller than 0")
	}
	return nil
}

// Compose returns the base matrix for mode with contrast and brightness
// applied to its three color rows. The alpha row is untouched.
//
// For each color row the mixing coefficients (columns 0-2) are multiplied by
// contrast, and (1-contrast)/2*255 + brightness is added to the offset
// column. The base matrix is resolved first; brightness and contrast always
// act on its output.
func Compose(mode Mode, saturation float64, brightness int, contrast float64) (graphics.ColorMatrix, error) {
	const op = "style.Compose"
	if err := (Parameters{Mode: mode, Brightness: brightness, Contrast: contrast, Saturation: saturation}).Validate(op); err != nil {
		return graphics.ColorMatrix{}, err
	}
	m, ok := Base(mode, saturation)
	if !ok {
		return graphics.ColorMatrix{}, errors.InvalidParameter(op, "mode", int(mode), "unsupported mode")
	}
	return applyBrightnessAndContrast(m, brightness, contrast), nil
}

func applyBrightnessAndContrast(m graphics.ColorMatrix, brightness int, contrast float64) graphics.ColorMatrix {
	t := (1 - contrast) / 2 * 255
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m[row*5+col] *= contrast
		}
		m[row*5+4] += t + float64(brightness)
	}
	return m
}
