package testing

import (
	"fmt"
	"time"

	"github.com/go-drift/stylematrix/pkg/animation"
)

// Pump advances clk by step and steps every active ticker, frames times.
func Pump(clk *FakeClock, step time.Duration, frames int) {
	for i := 0; i < frames; i++ {
		clk.Advance(step)
		animation.StepTickers()
	}
}

// PumpAndSettle pumps frames of length step until no tickers are active.
// It returns the number of frames pumped, or an error if tickers are still
// active after maxFrames.
func PumpAndSettle(clk *FakeClock, step time.Duration, maxFrames int) (int, error) {
	for n := 0; n < maxFrames; n++ {
		if !animation.HasActiveTickers() {
			return n, nil
		}
		clk.Advance(step)
		animation.StepTickers()
	}
	if animation.HasActiveTickers() {
		return maxFrames, fmt.Errorf("tickers still active after %d frames", maxFrames)
	}
	return maxFrames, nil
}
