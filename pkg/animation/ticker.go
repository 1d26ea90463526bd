// Package animation drives time-based transitions between color matrices.
//
// # Core Components
//
//   - [Ticker]: the low-level frame callback. Tickers are advanced by the
//     host's frame loop through [StepTickers], or by [Drive].
//
//   - [MatrixAnimator]: owns at most one live [Transition]. Beginning a new
//     transition synchronously cancels the previous one.
//
//   - [Transition]: interpolates every coefficient from a start matrix to an
//     end matrix, eased by a curve, and commits the exact end matrix once.
//
//   - Curves: easing functions such as [LinearCurve], [EaseInOut] and
//     [CubicBezier].
//
// # Basic Usage
//
//	var animator animation.MatrixAnimator
//	animator.Begin(current, target, animation.TransitionConfig{
//	    Enabled:  true,
//	    Duration: 300 * time.Millisecond,
//	    Curve:    animation.EaseInOut,
//	}, func(m graphics.ColorMatrix, fraction, progress float64) {
//	    sink.SetMatrix(m)
//	}, func(end graphics.ColorMatrix) {
//	    sink.SetMatrix(end)
//	})
//
//	// Once per frame, on the thread that owns the animator:
//	animation.StepTickers()
//
// All tickers and transitions belong to a single control goroutine. The
// package performs no locking around transition state.
package animation

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/go-drift/stylematrix/pkg/errors"
)

var (
	tickerMu      sync.Mutex
	activeTickers []*Ticker
)

// Ticker calls a callback on each frame while active.
//
// Ticker is the timing primitive used by [Transition]. Most code should use
// [MatrixAnimator] rather than Ticker directly.
//
// The callback receives the elapsed time since Start was called.
type Ticker struct {
	callback func(elapsed time.Duration)
	isActive bool
	start    time.Time
}

// NewTicker creates a new ticker with the given callback.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{
		callback: callback,
	}
}

// Start activates the ticker and records the start time.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = Now()
	tickerMu.Lock()
	activeTickers = append(activeTickers, t)
	tickerMu.Unlock()
}

// Stop deactivates the ticker. A stopped ticker receives no further
// callbacks, even from a StepTickers call already in progress.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	tickerMu.Lock()
	if i := slices.Index(activeTickers, t); i >= 0 {
		activeTickers = slices.Delete(activeTickers, i, i+1)
	}
	tickerMu.Unlock()
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return Now().Sub(t.start)
}

// StepTickers advances all active tickers in start order.
// This should be called once per frame from the owning goroutine.
//
// A panicking callback is reported through the errors handler and its ticker
// is stopped; the remaining tickers still run.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return
	}
	// Copy so callbacks can start and stop tickers.
	tickers := slices.Clone(activeTickers)
	tickerMu.Unlock()

	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			stepTicker(ticker)
		}
	}
}

func stepTicker(t *Ticker) {
	defer errors.RecoverWithCallback("animation.StepTickers", func(any) {
		t.Stop()
	})
	t.callback(Now().Sub(t.start))
}

// HasActiveTickers returns true if any tickers are active.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0
}

// Drive calls StepTickers every interval until ctx is done, and returns
// ctx.Err(). It must run on the goroutine that owns the animated state.
func Drive(ctx context.Context, interval time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	frames := time.NewTicker(interval)
	defer frames.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frames.C:
			StepTickers()
		}
	}
}
