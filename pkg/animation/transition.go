package animation

import (
	"fmt"
	"time"

	"github.com/go-drift/stylematrix/pkg/graphics"
)

// TransitionStatus represents the lifecycle state of a [Transition].
//
//	            tick reaches fraction 1
//	Running ─────────────────────────────► Settled
//	   │
//	   │  Cancel() or a newer Begin()
//	   └─────────────────────────────────► Cancelled
type TransitionStatus int

const (
	// TransitionRunning means frames are still being delivered.
	TransitionRunning TransitionStatus = iota
	// TransitionSettled means the end matrix was committed.
	TransitionSettled
	// TransitionCancelled means the transition was superseded or cancelled
	// before settling. Its settle callback never ran.
	TransitionCancelled
)

// String returns a human-readable representation of the status.
func (s TransitionStatus) String() string {
	switch s {
	case TransitionRunning:
		return "running"
	case TransitionSettled:
		return "settled"
	case TransitionCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("TransitionStatus(%d)", int(s))
	}
}

// TransitionConfig controls how a transition is timed.
type TransitionConfig struct {
	// Enabled selects an animated transition. When false the end matrix is
	// committed synchronously.
	Enabled bool
	// Duration is the length of the transition. Zero settles on the first tick.
	Duration time.Duration
	// Curve eases the time fraction. Nil means linear.
	Curve func(float64) float64
}

// FrameFunc receives each interpolated matrix together with the linear
// time fraction and the eased progress.
type FrameFunc func(m graphics.ColorMatrix, fraction, progress float64)

// SettleFunc receives the exact end matrix once a transition completes.
type SettleFunc func(end graphics.ColorMatrix)

// Transition interpolates from a start matrix to an end matrix over time.
//
// Each tick computes fraction = elapsed/duration clamped to [0, 1], eases it
// through the curve, and blends every coefficient:
// start*(1-progress) + end*progress. When the fraction reaches 1 the settle
// callback receives the end matrix itself, not the last blended frame.
type Transition struct {
	// OnCancel, if set, is called once if the transition is cancelled.
	OnCancel func()

	owner    *MatrixAnimator
	tween    *Tween[graphics.ColorMatrix]
	current  graphics.ColorMatrix
	duration time.Duration
	curve    func(float64) float64
	onFrame  FrameFunc
	onSettle SettleFunc
	ticker   *Ticker
	status   TransitionStatus
	fraction float64
	progress float64
}

// Status returns the lifecycle state.
func (t *Transition) Status() TransitionStatus {
	return t.status
}

// IsRunning reports whether frames are still being delivered.
func (t *Transition) IsRunning() bool {
	return t.status == TransitionRunning
}

// Start returns the matrix the transition blends from.
func (t *Transition) Start() graphics.ColorMatrix {
	return t.tween.Begin
}

// End returns the matrix the transition settles on.
func (t *Transition) End() graphics.ColorMatrix {
	return t.tween.End
}

// Current returns the most recently delivered frame, or the start matrix
// before the first tick.
func (t *Transition) Current() graphics.ColorMatrix {
	return t.current
}

// Fraction returns the time fraction of the last delivered frame.
func (t *Transition) Fraction() float64 {
	return t.fraction
}

// Progress returns the eased progress of the last delivered frame.
func (t *Transition) Progress() float64 {
	return t.progress
}

// Cancel stops a running transition. No frame or settle callback fires
// after Cancel returns. It reports whether the transition was running.
func (t *Transition) Cancel() bool {
	if t == nil || t.status != TransitionRunning {
		return false
	}
	t.finish(TransitionCancelled)
	if t.OnCancel != nil {
		t.OnCancel()
	}
	return true
}

func (t *Transition) finish(status TransitionStatus) {
	t.status = status
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
	if t.owner != nil && t.owner.active == t {
		t.owner.active = nil
	}
}

func (t *Transition) tick(elapsed time.Duration) {
	if t.status != TransitionRunning {
		return
	}

	fraction := 1.0
	if t.duration > 0 {
		fraction = clampUnit(float64(elapsed) / float64(t.duration))
	}
	progress := fraction
	if t.curve != nil {
		progress = t.curve(fraction)
	}

	frame := t.tween.Evaluate(progress)
	t.current = frame
	t.fraction = fraction
	t.progress = progress
	if t.onFrame != nil {
		t.onFrame(frame, fraction, progress)
	}

	// The frame callback may have started a newer transition.
	if t.status != TransitionRunning || fraction < 1 {
		return
	}
	t.finish(TransitionSettled)
	if t.onSettle != nil {
		t.onSettle(t.tween.End)
	}
}

// MatrixAnimator owns at most one live transition.
//
// The zero value is ready to use. A MatrixAnimator must only be used from
// the goroutine that calls StepTickers.
type MatrixAnimator struct {
	active *Transition
}

// Active returns the live transition, or nil.
func (a *MatrixAnimator) Active() *Transition {
	return a.active
}

// Cancel cancels the live transition, if any, and reports whether one was
// running.
func (a *MatrixAnimator) Cancel() bool {
	return a.active.Cancel()
}

// Begin starts a transition from start to end.
//
// Any live transition is cancelled first; its settle callback is discarded.
// When cfg.Enabled is false no transition is created: onSettle receives end
// synchronously and Begin returns nil.
func (a *MatrixAnimator) Begin(start, end graphics.ColorMatrix, cfg TransitionConfig, onFrame FrameFunc, onSettle SettleFunc) *Transition {
	a.Cancel()

	if !cfg.Enabled {
		if onSettle != nil {
			onSettle(end)
		}
		return nil
	}

	t := &Transition{
		owner:    a,
		tween:    TweenMatrix(start, end),
		current:  start,
		duration: cfg.Duration,
		curve:    cfg.Curve,
		onFrame:  onFrame,
		onSettle: onSettle,
		status:   TransitionRunning,
	}
	t.ticker = NewTicker(t.tick)
	a.active = t
	t.ticker.Start()
	return t
}
