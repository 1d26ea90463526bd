package cmd

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-drift/stylematrix/cmd/stylematrix/internal/imageio"
	"github.com/go-drift/stylematrix/pkg/animation"
	"github.com/go-drift/stylematrix/pkg/graphics"
	"github.com/go-drift/stylematrix/pkg/style"
	"github.com/go-drift/stylematrix/pkg/styler"
	"github.com/go-drift/stylematrix/pkg/surface"
)

const maxAnimateFPS = 1000

func init() {
	RegisterCommand(&Command{
		Name:  "animate",
		Short: "Render the transition between two modes",
		Long: `Render every frame of an animated transition between two modes.

The transition runs on a stepped clock, one step per output frame, so the
result does not depend on how fast the machine is. A .gif output writes an
animated GIF; any other output is a directory of frame_NNN.png files.

Usage:
  stylematrix animate photo.jpg fade.gif --from none --to sepia
  stylematrix animate photo.jpg frames --to invert --duration 2s --fps 30 --easing ease_in_out`,
		Usage: "stylematrix animate <input> <output> [--from M] --to M [--duration D] [--fps N] [--easing E]",
		Run:   runAnimate,
	})
}

func runAnimate(args []string) error {
	fs := newFlagSet()
	fromFlag := fs.String("from")
	toFlag := fs.String("to")
	durationFlag := fs.String("duration")
	fpsFlag := fs.String("fps")
	easingFlag := fs.String("easing")
	rest, err := fs.Parse(args)
	if err != nil {
		return err
	}
	if len(rest) != 2 {
		return fmt.Errorf("animate requires an input and an output\n\nUsage: stylematrix animate <input> <output> --to M [flags]")
	}
	in, out := rest[0], rest[1]

	if *toFlag == "" {
		return fmt.Errorf("--to is required")
	}
	to, err := style.ParseMode(*toFlag)
	if err != nil {
		return err
	}
	from := style.ModeNone
	if *fromFlag != "" {
		if from, err = style.ParseMode(*fromFlag); err != nil {
			return err
		}
	}
	duration, err := parseDurationFlag("duration", *durationFlag, time.Second)
	if err != nil {
		return err
	}
	fps, err := parseIntFlag("fps", *fpsFlag, 20)
	if err != nil {
		return err
	}
	if fps > maxAnimateFPS {
		return fmt.Errorf("--fps must be at most %d (got %d)", maxAnimateFPS, fps)
	}
	curve, ok := animation.CurveByName(*easingFlag)
	if !ok {
		return fmt.Errorf("unknown easing %q", *easingFlag)
	}

	src, err := imageio.Load(in)
	if err != nil {
		return err
	}
	frames, err := renderTransition(src, from, to, duration, fps, curve)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(out), ".gif") {
		delay := max(1, 100/fps)
		if err := imageio.SaveGIF(out, frames, delay); err != nil {
			return err
		}
	} else {
		if err := os.MkdirAll(out, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		for i, frame := range frames {
			if err := imageio.Save(filepath.Join(out, fmt.Sprintf("frame_%03d.png", i)), frame); err != nil {
				return err
			}
		}
	}
	logger.Info("transition written", "output", out, "from", from, "to", to, "frames", len(frames))
	return nil
}

// renderTransition styles src with from, then animates to `to` on a stepped
// clock and returns the starting frame followed by every delivered frame.
func renderTransition(src image.Image, from, to style.Mode, duration time.Duration, fps int, curve func(float64) float64) ([]image.Image, error) {
	if fps <= 0 || fps > maxAnimateFPS {
		return nil, fmt.Errorf("frame rate must be in [1, %d], got %d", maxAnimateFPS, fps)
	}
	now := time.Unix(0, 0)
	prev := animation.SetClock(animation.ClockFunc(func() time.Time { return now }))
	defer animation.SetClock(prev)

	buf := surface.NewPixelBuffer(src)
	var frames []image.Image
	capture := func() {
		frames = append(frames, graphics.ToNRGBA(buf.Pixels()))
	}

	s, err := styler.New(surface.ForPixelBuffer(buf), styler.DefaultOptions().WithMode(from))
	if err != nil {
		return nil, err
	}
	if err := s.ApplyStyle(); err != nil {
		return nil, err
	}
	capture()

	s.SetListener(&styler.Listener{
		OnFrame: func(_, _ float64) { capture() },
	})
	if err := s.EnableAnimationWithCurve(duration, curve); err != nil {
		return nil, err
	}
	if err := s.SetMode(to); err != nil {
		return nil, err
	}
	if err := s.ApplyStyle(); err != nil {
		return nil, err
	}

	step := time.Second / time.Duration(fps)
	limit := int(duration/step) + 2
	for i := 0; s.Animating(); i++ {
		if i >= limit {
			s.Cancel()
			return nil, fmt.Errorf("transition did not settle after %d frames", limit)
		}
		now = now.Add(step)
		animation.StepTickers()
	}
	logger.Debug("transition settled", "frames", len(frames), "step", step)
	return frames, nil
}
