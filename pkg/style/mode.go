package style

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects which built-in color transform is active.
//
// The integer values match the attribute encoding: -1 is ModeNone and the
// remaining modes count up from 0.
type Mode int

const (
	// ModeNone leaves colors unchanged (identity matrix).
	ModeNone Mode = iota - 1
	// ModeSaturation is the parametric saturation matrix.
	ModeSaturation
	// ModeGreyScale averages channels with fixed weights.
	ModeGreyScale
	// ModeInvert produces a color negative.
	ModeInvert
	// ModeRGBToBGR swaps the red and blue channels.
	ModeRGBToBGR
	// ModeSepia applies a warm brown tone.
	ModeSepia
	// ModeBlackAndWhite is a high-contrast threshold-like monochrome.
	ModeBlackAndWhite
	// ModeBright boosts saturation and brightness slightly.
	ModeBright
	// ModeVintagePinhole is a faded, low-contrast film look.
	ModeVintagePinhole
	// ModeKodachrome is a saturated warm film look.
	ModeKodachrome
	// ModeTechnicolor is a strongly saturated cinema look.
	ModeTechnicolor
)

var modeNames = map[Mode]string{
	ModeNone:           "none",
	ModeSaturation:     "saturation",
	ModeGreyScale:      "grey_scale",
	ModeInvert:         "invert",
	ModeRGBToBGR:       "rgb_to_bgr",
	ModeSepia:          "sepia",
	ModeBlackAndWhite:  "black_and_white",
	ModeBright:         "bright",
	ModeVintagePinhole: "vintage_pinhole",
	ModeKodachrome:     "kodachrome",
	ModeTechnicolor:    "technicolor",
}

// Modes returns every supported mode in attribute order, starting with ModeNone.
func Modes() []Mode {
	modes := make([]Mode, 0, len(modeNames))
	for m := ModeNone; m <= ModeTechnicolor; m++ {
		modes = append(modes, m)
	}
	return modes
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// String returns the snake_case name of the mode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode resolves a mode from its name or its integer encoding.
// Names are matched case-insensitively and may use '-' or ' ' for '_'.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		m := Mode(n)
		if !m.Valid() {
			return ModeNone, fmt.Errorf("unsupported mode %d", n)
		}
		return m, nil
	}
	key := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(s))
	for m, name := range modeNames {
		if name == key {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("unsupported mode %q", s)
}

// UnmarshalYAML accepts either the integer encoding or the mode name.
func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: mode must be a scalar", value.Line)
	}
	parsed, err := ParseMode(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = parsed
	return nil
}

// MarshalYAML encodes the mode by name.
func (m Mode) MarshalYAML() (any, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unsupported mode %d", int(m))
	}
	return m.String(), nil
}
