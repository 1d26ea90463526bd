package style

import (
	"github.com/go-drift/stylematrix/pkg/graphics"
)

// Luminance weights used by the saturation matrix.
const (
	LumR = 0.3086
	LumG = 0.6094
	LumB = 0.0820
)

// Each accessor returns a new matrix value. Callers may modify the result
// freely without affecting later calls.

// Identity returns the matrix for ModeNone.
func Identity() graphics.ColorMatrix {
	return graphics.IdentityMatrix()
}

// GreyScale returns the matrix for ModeGreyScale.
func GreyScale() graphics.ColorMatrix {
	return graphics.ColorMatrix{
		0.33, 0.59, 0.11, 0, 0,
		0.33, 0.59, 0.11, 0, 0,
		0.33, 0.59, 0.11, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Invert returns the matrix for ModeInvert. Alpha is preserved.
func Invert() graphics.ColorMatrix {
	return graphics.ColorMatrix{
		-1, 0, 0, 0, 255,
		0, -1, 0, 0, 255,
		0, 0, -1, 0, 255,
		0, 0, 0, 1, 0,
	}
}

// RGBToBGR returns the matrix for ModeRGBToBGR.
func RGBToBGR() graphics.ColorMatrix {
	return graphics.ColorMatrix{
		0, 0, 1, 0, 0,
		0, 1, 0, 0, 0,
		1, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Sepia returns the matrix for ModeSepia.
func Sepia() graphics.ColorMatrix {
	return graphics.ColorMatrix{
		0.393, 0.769, 0.189, 0, 0,
		0.349, 0.686, 0.168, 0, 0,
		0.272, 0.534, 0.131, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Bright returns the matrix for ModeBright.
func Bright() graphics.ColorMatrix {
	return graphics.ColorMatrix{
		1.438, -0.122, -0.016, 0, 0,
		-0.062, 1.378, -0.016, 0, 0,
		-0.062, -0.122, 1.483, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// BlackAndWhite returns the matrix for ModeBlackAndWhite.
func BlackAndWhite() graphics.ColorMatrix {
	return graphics.ColorMatrix{
		1.5, 1.5, 1.5, 0, -255,
		1.5, 1.5, 1.5, 0, -255,
		1.5, 1.5, 1.5, 0, -255,
		0, 0, 0, 1, 0,
	}
}

// VintagePinhole returns the matrix for ModeVintagePinhole.
func VintagePinhole() graphics.ColorMatrix {
	return graphics.ColorMatrix{
		0.6279345635605994, 0.3202183420819367, -0.03965408211312453, 0, 9.651285835294123,
		0.02578397704808868, 0.6441188644374771, 0.03259127616149294, 0, 7.462829176470591,
		0.0466055556782719, -0.0851232987247891, 0.5241648018700465, 0, 5.159190588235296,
		0, 0, 0, 1, 0,
	}
}

// Kodachrome returns the matrix for ModeKodachrome.
func Kodachrome() graphics.ColorMatrix {
	return graphics.ColorMatrix{
		1.1285582396593525, -0.3967382283601348, -0.03992559172921793, 0, 63.72958762196502,
		-0.16404339962244616, 1.0835251566291304, -0.05498805115633132, 0, 24.732407896706203,
		-0.16786010706155763, -0.5603416277695248, 1.6014850761964943, 0, 35.62982807460946,
		0, 0, 0, 1, 0,
	}
}

// Technicolor returns the matrix for ModeTechnicolor.
func Technicolor() graphics.ColorMatrix {
	return graphics.ColorMatrix{
		1.9125277891456083, -0.8545344976951645, -0.09155508482755585, 0, 11.793603434377337,
		-0.3087833385928097, 1.7658908555458428, -0.10601743074722245, 0, -70.35205161461398,
		-0.231103377548616, -0.7501899197440212, 1.847597816108189, 0, 30.950940869491138,
		0, 0, 0, 1, 0,
	}
}

// Saturation returns the parametric saturation matrix.
//
// A saturation of 1 is the identity. A saturation of 0 is greyscale using
// the LumR/LumG/LumB weights. Values above 1 boost saturation.
func Saturation(saturation float64) graphics.ColorMatrix {
	sr := (1 - saturation) * LumR
	sg := (1 - saturation) * LumG
	sb := (1 - saturation) * LumB
	return graphics.ColorMatrix{
		sr + saturation, sg, sb, 0, 0,
		sr, saturation + sg, sb, 0, 0,
		sr, sg, saturation + sb, 0, 0,
		0, 0, 0, 1, 0,
	}
}

var fixedMatrices = map[Mode]func() graphics.ColorMatrix{
	ModeNone:           Identity,
	ModeGreyScale:      GreyScale,
	ModeInvert:         Invert,
	ModeRGBToBGR:       RGBToBGR,
	ModeSepia:          Sepia,
	ModeBlackAndWhite:  BlackAndWhite,
	ModeBright:         Bright,
	ModeVintagePinhole: VintagePinhole,
	ModeKodachrome:     Kodachrome,
	ModeTechnicolor:    Technicolor,
}

// Base returns the library matrix for mode. The saturation argument is used
// only for ModeSaturation. It returns false for an unsupported mode.
func Base(mode Mode, saturation float64) (graphics.ColorMatrix, bool) {
	if mode == ModeSaturation {
		return Saturation(saturation), true
	}
	fn, ok := fixedMatrices[mode]
	if !ok {
		return graphics.ColorMatrix{}, false
	}
	return fn(), true
}
