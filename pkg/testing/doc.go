// Package testing provides helpers for deterministic transition tests.
//
// # Controlling Time
//
// Install a [FakeClock] so transitions only advance when the test says so:
//
//	func TestFade(t *testing.T) {
//	    clk := smtest.InstallFakeClock(t)
//	    surface := smtest.NewRecordingSurface()
//
//	    // start a transition that paints onto surface ...
//
//	    smtest.Pump(clk, 100*time.Millisecond, 5)
//	    if got := len(surface.Sets()); got != 5 {
//	        t.Errorf("expected 5 frames, got %d", got)
//	    }
//	}
//
// [Pump] advances the clock and calls animation.StepTickers once per frame.
// [PumpAndSettle] keeps pumping until no tickers remain.
//
// # Recording Surfaces
//
// [RecordingSurface] stands in for a real sink and records every matrix
// written to it and every clear.
package testing
