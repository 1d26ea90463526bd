package animation

import (
	"math"
	"strings"
)

// Easing curves map the linear time fraction of a transition to its
// visual progress. Every curve returns 0 at t=0 and 1 at t=1.
//
// Standard curves: [LinearCurve], [Ease], [EaseIn], [EaseOut], [EaseInOut].
// Use [CubicBezier] to create custom curves matching CSS cubic-bezier().

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// Ease is equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly with acceleration in the middle.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// CurveByName resolves a curve by name: linear, ease, ease_in, ease_out or
// ease_in_out. Matching ignores case and accepts '-' for '_'.
func CurveByName(name string) (func(float64) float64, bool) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
	case "", "linear":
		return LinearCurve, true
	case "ease":
		return Ease, true
	case "ease_in":
		return EaseIn, true
	case "ease_out":
		return EaseOut, true
	case "ease_in_out":
		return EaseInOut, true
	default:
		return nil, false
	}
}

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	bx := newBezierAxis(x1, x2)
	by := newBezierAxis(y1, y2)
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return by.sample(bx.solve(t))
	}
}

// bezierAxis holds the polynomial form a*u^3 + b*u^2 + c*u of one axis.
type bezierAxis struct {
	a, b, c float64
}

func newBezierAxis(p1, p2 float64) bezierAxis {
	c := 3 * p1
	b := 3*(p2-p1) - c
	return bezierAxis{a: 1 - c - b, b: b, c: c}
}

func (ax bezierAxis) sample(u float64) float64 {
	return ((ax.a*u+ax.b)*u + ax.c) * u
}

func (ax bezierAxis) slope(u float64) float64 {
	return (3*ax.a*u+2*ax.b)*u + ax.c
}

// solve finds u in [0,1] with sample(u) == x.
func (ax bezierAxis) solve(x float64) float64 {
	const epsilon = 1e-7

	// Newton-Raphson converges quickly for most values.
	u := x
	for i := 0; i < 8; i++ {
		d := ax.sample(u) - x
		if math.Abs(d) < epsilon {
			return clampUnit(u)
		}
		s := ax.slope(u)
		if math.Abs(s) < epsilon {
			break
		}
		u -= d / s
	}

	// Bisection always lands inside [0,1].
	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for i := 0; i < 20; i++ {
		d := ax.sample(u) - x
		if math.Abs(d) < epsilon {
			break
		}
		if d > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) * 0.5
	}
	return u
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
