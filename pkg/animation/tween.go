package animation

import "github.com/go-drift/stylematrix/pkg/graphics"

// Tween interpolates between Begin and End values based on progress.
type Tween[T any] struct {
	// Begin is the starting value (when t = 0).
	Begin T
	// End is the ending value (when t = 1).
	End T
	// Lerp interpolates between Begin and End for progress t in [0, 1].
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t (0.0 to 1.0).
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a*(1-t) + b*t
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{
		Begin: begin,
		End:   end,
		Lerp:  LerpFloat64,
	}
}

// TweenMatrix creates a tween that blends every coefficient of two matrices.
func TweenMatrix(begin, end graphics.ColorMatrix) *Tween[graphics.ColorMatrix] {
	return &Tween[graphics.ColorMatrix]{
		Begin: begin,
		End:   end,
		Lerp:  graphics.LerpMatrix,
	}
}
