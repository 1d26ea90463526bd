package testing

import "github.com/go-drift/stylematrix/pkg/graphics"

// SurfaceOp identifies a recorded surface operation.
type SurfaceOp int

const (
	// OpSetMatrix records a SetMatrix call.
	OpSetMatrix SurfaceOp = iota
	// OpClear records a Clear call.
	OpClear
)

// SurfaceCall is one recorded operation.
type SurfaceCall struct {
	Op     SurfaceOp
	Matrix graphics.ColorMatrix
}

// RecordingSurface is an in-memory surface that records every write.
type RecordingSurface struct {
	// Target controls what HasTarget reports. NewRecordingSurface sets it.
	Target bool
	// Calls holds every SetMatrix and Clear in order.
	Calls []SurfaceCall

	matrix    graphics.ColorMatrix
	hasMatrix bool
}

// NewRecordingSurface returns a surface that has a target and no filter.
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{Target: true}
}

// HasTarget reports the Target field.
func (s *RecordingSurface) HasTarget() bool {
	return s.Target
}

// CurrentMatrix returns the last matrix set since the last Clear.
func (s *RecordingSurface) CurrentMatrix() (graphics.ColorMatrix, bool) {
	return s.matrix, s.hasMatrix
}

// SetMatrix records m and makes it current.
func (s *RecordingSurface) SetMatrix(m graphics.ColorMatrix) {
	s.Calls = append(s.Calls, SurfaceCall{Op: OpSetMatrix, Matrix: m})
	s.matrix = m
	s.hasMatrix = true
}

// Clear records a clear and drops the current matrix.
func (s *RecordingSurface) Clear() {
	s.Calls = append(s.Calls, SurfaceCall{Op: OpClear})
	s.matrix = graphics.ColorMatrix{}
	s.hasMatrix = false
}

// Sets returns the matrices passed to SetMatrix, in order.
func (s *RecordingSurface) Sets() []graphics.ColorMatrix {
	var out []graphics.ColorMatrix
	for _, c := range s.Calls {
		if c.Op == OpSetMatrix {
			out = append(out, c.Matrix)
		}
	}
	return out
}

// Clears returns how many times Clear was called.
func (s *RecordingSurface) Clears() int {
	n := 0
	for _, c := range s.Calls {
		if c.Op == OpClear {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls but keeps the current matrix.
func (s *RecordingSurface) Reset() {
	s.Calls = nil
}
