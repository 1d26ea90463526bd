package graphics

import (
	"fmt"
	"image/color"
	"strings"
)

// MatrixSize is the number of coefficients in a ColorMatrix.
const MatrixSize = 20

// ColorMatrix is a 4x5 affine color transformation matrix.
//
// The matrix is stored in row-major order as [R, G, B, A, translate] for
// each output channel:
//
//	R' = m[0]*R  + m[1]*G  + m[2]*B  + m[3]*A  + m[4]
//	G' = m[5]*R  + m[6]*G  + m[7]*B  + m[8]*A  + m[9]
//	B' = m[10]*R + m[11]*G + m[12]*B + m[13]*A + m[14]
//	A' = m[15]*R + m[16]*G + m[17]*B + m[18]*A + m[19]
//
// Input values are in the range [0, 255]. ColorMatrix is an array, so
// assignment and function calls copy it; there is no way to alias another
// caller's coefficients.
type ColorMatrix [MatrixSize]float64

// IdentityMatrix returns the matrix that leaves every color unchanged.
func IdentityMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Row returns output row i (0=R, 1=G, 2=B, 3=A).
func (m ColorMatrix) Row(i int) [5]float64 {
	var r [5]float64
	copy(r[:], m[i*5:i*5+5])
	return r
}

// Offset returns the translate coefficient of row i.
func (m ColorMatrix) Offset(i int) float64 {
	return m[i*5+4]
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m ColorMatrix) IsIdentity() bool {
	return m == IdentityMatrix()
}

// LerpMatrix blends two matrices coefficient by coefficient:
// a[i]*(1-t) + b[i]*t. At t=0 the result is a and at t=1 it is b.
func LerpMatrix(a, b ColorMatrix, t float64) ColorMatrix {
	var r ColorMatrix
	for i := range r {
		r[i] = a[i]*(1-t) + b[i]*t
	}
	return r
}

// Concat returns the matrix that applies inner first, then m.
func (m ColorMatrix) Concat(inner ColorMatrix) ColorMatrix {
	var r ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[row*5+k] * inner[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = m[row*5+0]*inner[4] + m[row*5+1]*inner[9] +
			m[row*5+2]*inner[14] + m[row*5+3]*inner[19] + m[row*5+4]
	}
	return r
}

// Transform applies m to a single color. Output channels are rounded and
// clamped to [0, 255].
func (m ColorMatrix) Transform(c Color) Color {
	r, g, b, a := c.Channels()
	return RGBA8(
		clampByte(m[0]*r+m[1]*g+m[2]*b+m[3]*a+m[4]),
		clampByte(m[5]*r+m[6]*g+m[7]*b+m[8]*a+m[9]),
		clampByte(m[10]*r+m[11]*g+m[12]*b+m[13]*a+m[14]),
		clampByte(m[15]*r+m[16]*g+m[17]*b+m[18]*a+m[19]),
	)
}

// TransformNRGBA applies m to a straight-alpha image/color value.
func (m ColorMatrix) TransformNRGBA(c color.NRGBA) color.NRGBA {
	return m.Transform(RGBA8(c.R, c.G, c.B, c.A)).NRGBA()
}

// String formats the matrix as four bracketed rows.
func (m ColorMatrix) String() string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('[')
		for col := 0; col < 5; col++ {
			if col > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m[row*5+col])
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
