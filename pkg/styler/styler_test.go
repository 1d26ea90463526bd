package styler_test

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-drift/stylematrix/pkg/errors"
	"github.com/go-drift/stylematrix/pkg/graphics"
	"github.com/go-drift/stylematrix/pkg/style"
	"github.com/go-drift/stylematrix/pkg/styler"
	smtest "github.com/go-drift/stylematrix/pkg/testing"
)

func newStyler(t *testing.T, opts styler.Options) (*styler.Styler, *smtest.RecordingSurface) {
	t.Helper()
	rs := smtest.NewRecordingSurface()
	s, err := styler.New(rs, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, rs
}

func TestApplyStyle_SepiaUnanimated(t *testing.T) {
	s, rs := newStyler(t, styler.DefaultOptions().WithMode(style.ModeSepia))
	if err := s.ApplyStyle(); err != nil {
		t.Fatal(err)
	}
	want := graphics.ColorMatrix{
		0.393, 0.769, 0.189, 0, 0,
		0.349, 0.686, 0.168, 0, 0,
		0.272, 0.534, 0.131, 0, 0,
		0, 0, 0, 1, 0,
	}
	got, ok := rs.CurrentMatrix()
	if !ok || got != want {
		t.Errorf("surface matrix = %v, want %v", got, want)
	}
	if s.LastMatrix() != want {
		t.Errorf("LastMatrix() = %v", s.LastMatrix())
	}
	if len(rs.Calls) != 1 {
		t.Errorf("expected a single SetMatrix, got %d calls", len(rs.Calls))
	}
}

func TestApplyStyle_BlackAndWhiteBrightness(t *testing.T) {
	s, rs := newStyler(t, styler.DefaultOptions().WithMode(style.ModeBlackAndWhite).WithBrightness(10))
	if err := s.ApplyStyle(); err != nil {
		t.Fatal(err)
	}
	got, _ := rs.CurrentMatrix()
	base := style.BlackAndWhite()
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			if i := row*5 + col; got[i] != base[i] {
				t.Errorf("m[%d] = %v, want %v", i, got[i], base[i])
			}
		}
		if off := got.Offset(row); off != -245 {
			t.Errorf("row %d offset = %v, want -245", row, off)
		}
	}
}

func TestApplyStyle_NoTarget(t *testing.T) {
	smtest.InstallFakeClock(t)
	s, rs := newStyler(t, styler.DefaultOptions().WithMode(style.ModeInvert).WithAnimation(time.Second))
	rs.Target = false

	if err := s.ApplyStyle(); err != nil {
		t.Fatal(err)
	}
	s.ClearStyle()
	if len(rs.Calls) != 0 {
		t.Errorf("surface without target received %d calls", len(rs.Calls))
	}
	if s.Animating() {
		t.Error("no transition should start without a target")
	}
	if s.Mode() != style.ModeInvert {
		t.Errorf("ClearStyle without target changed mode to %v", s.Mode())
	}
}

func TestClearStyle_Idempotent(t *testing.T) {
	s, rs := newStyler(t, styler.DefaultOptions().WithSaturation(0.3).WithBrightness(40).WithContrast(1.5))
	if err := s.ApplyStyle(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		s.ClearStyle()
		if _, ok := rs.CurrentMatrix(); ok {
			t.Errorf("clear %d: surface still has a matrix", i)
		}
		if !s.LastMatrix().IsIdentity() {
			t.Errorf("clear %d: LastMatrix() = %v, want identity", i, s.LastMatrix())
		}
		if s.Mode() != style.ModeNone || s.Saturation() != 1 {
			t.Errorf("clear %d: mode=%v saturation=%v", i, s.Mode(), s.Saturation())
		}
	}
	if rs.Clears() != 2 {
		t.Errorf("Clears() = %d, want 2", rs.Clears())
	}
	// Brightness and contrast survive a clear.
	if s.Brightness() != 40 || s.Contrast() != 1.5 {
		t.Errorf("brightness=%d contrast=%v, want 40 and 1.5", s.Brightness(), s.Contrast())
	}
}

func TestSetMode_ResetsSaturation(t *testing.T) {
	s, _ := newStyler(t, styler.DefaultOptions())
	if err := s.SetMode(style.ModeKodachrome); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMode(style.ModeSaturation); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSaturation(0.25); err != nil {
		t.Fatal(err)
	}
	if s.Mode() != style.ModeSaturation || s.Saturation() != 0.25 {
		t.Fatalf("mode=%v saturation=%v", s.Mode(), s.Saturation())
	}
	if err := s.SetMode(style.ModeKodachrome); err != nil {
		t.Fatal(err)
	}
	if s.Mode() != style.ModeKodachrome || s.Saturation() != 1 {
		t.Errorf("mode=%v saturation=%v, want kodachrome and 1", s.Mode(), s.Saturation())
	}
}

func TestSetSaturation_SelectsSaturationMode(t *testing.T) {
	s, _ := newStyler(t, styler.DefaultOptions().WithMode(style.ModeSepia))
	if err := s.SetSaturation(2); err != nil {
		t.Fatal(err)
	}
	if s.Mode() != style.ModeSaturation {
		t.Errorf("Mode() = %v, want saturation", s.Mode())
	}
	// SetMode(SATURATION) keeps the value.
	if err := s.SetMode(style.ModeSaturation); err != nil {
		t.Fatal(err)
	}
	if s.Saturation() != 2 {
		t.Errorf("Saturation() = %v, want 2", s.Saturation())
	}
}

func TestSetBrightness_Bounds(t *testing.T) {
	s, _ := newStyler(t, styler.DefaultOptions())
	for _, v := range []int{255, -255} {
		if err := s.SetBrightness(v); err != nil {
			t.Errorf("SetBrightness(%d): %v", v, err)
		}
	}
	for _, v := range []int{256, -256} {
		err := s.SetBrightness(v)
		if !stderrors.Is(err, errors.ErrInvalidParameter) {
			t.Errorf("SetBrightness(%d) = %v, want invalid parameter", v, err)
		}
		if s.Brightness() != -255 {
			t.Errorf("SetBrightness(%d) changed brightness to %d", v, s.Brightness())
		}
	}
}

func TestSetters_RejectWithoutMutation(t *testing.T) {
	s, _ := newStyler(t, styler.DefaultOptions().WithMode(style.ModeSepia).WithContrast(2))
	if err := s.SetContrast(-0.1); err == nil {
		t.Error("SetContrast(-0.1) should fail")
	}
	if err := s.SetSaturation(-1); err == nil {
		t.Error("SetSaturation(-1) should fail")
	}
	if err := s.SetMode(style.Mode(42)); err == nil {
		t.Error("SetMode(42) should fail")
	}
	want := style.Parameters{Mode: style.ModeSepia, Contrast: 2, Saturation: 1}
	if got := s.Parameters(); got != want {
		t.Errorf("Parameters() = %+v, want %+v", got, want)
	}
}

func TestSetParameters(t *testing.T) {
	s, _ := newStyler(t, styler.DefaultOptions().WithMode(style.ModeSepia))

	if err := s.SetParameters(style.Parameters{Mode: style.ModeNone, Contrast: 1, Saturation: 0.5}); err != nil {
		t.Fatal(err)
	}
	if got := s.Mode(); got != style.ModeSaturation {
		t.Errorf("Mode() = %v, want saturation", got)
	}

	before := s.Parameters()
	tests := []struct {
		name string
		p    style.Parameters
		want error
	}{
		{"conflict", style.Parameters{Mode: style.ModeInvert, Contrast: 1, Saturation: 0.5}, errors.ErrConfigConflict},
		{"brightness", style.Parameters{Mode: style.ModeInvert, Brightness: 999, Contrast: 1, Saturation: 1}, errors.ErrInvalidParameter},
		{"mode", style.Parameters{Mode: style.Mode(42), Contrast: 1, Saturation: 1}, errors.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.SetParameters(tt.p); !stderrors.Is(err, tt.want) {
				t.Errorf("SetParameters(%+v) = %v, want %v", tt.p, err, tt.want)
			}
			if got := s.Parameters(); got != before {
				t.Errorf("Parameters() = %+v, want %+v", got, before)
			}
		})
	}
}

func TestSetters_DoNotRepaint(t *testing.T) {
	s, rs := newStyler(t, styler.DefaultOptions())
	_ = s.SetMode(style.ModeInvert)
	_ = s.SetBrightness(12)
	if len(rs.Calls) != 0 {
		t.Errorf("setters painted %d times", len(rs.Calls))
	}
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name string
		opts styler.Options
		want error
	}{
		{"saturation with sepia", styler.DefaultOptions().WithMode(style.ModeSepia).WithSaturation(0.5), errors.ErrConfigConflict},
		{"duration while disabled", styler.Options{Parameters: style.DefaultParameters(), Animation: styler.AnimationConfig{Duration: time.Second}}, errors.ErrConfigConflict},
		{"negative duration", styler.DefaultOptions().WithAnimation(-time.Second), errors.ErrInvalidParameter},
		{"brightness", styler.DefaultOptions().WithBrightness(300), errors.ErrInvalidParameter},
		{"contrast", styler.DefaultOptions().WithContrast(-1), errors.ErrInvalidParameter},
		{"mode", styler.DefaultOptions().WithMode(style.Mode(11)), errors.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := styler.New(smtest.NewRecordingSurface(), tt.opts)
			if !stderrors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := styler.New(nil, styler.DefaultOptions()); !stderrors.Is(err, errors.ErrInvalidParameter) {
		t.Errorf("New(nil) error = %v", err)
	}
}

func TestNew_PromotesSaturation(t *testing.T) {
	s, _ := newStyler(t, styler.DefaultOptions().WithSaturation(0.5))
	if s.Mode() != style.ModeSaturation {
		t.Errorf("Mode() = %v, want saturation", s.Mode())
	}
}

func TestAnimationToggles(t *testing.T) {
	s, _ := newStyler(t, styler.DefaultOptions())
	if s.AnimationEnabled() || s.AnimationDuration() != 0 {
		t.Fatal("animation should start disabled")
	}
	if err := s.EnableAnimation(250 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if !s.AnimationEnabled() || s.AnimationDuration() != 250*time.Millisecond {
		t.Errorf("enabled=%v duration=%v", s.AnimationEnabled(), s.AnimationDuration())
	}
	if err := s.EnableAnimation(-1); err == nil {
		t.Error("negative duration should be rejected")
	}
	if s.AnimationDuration() != 250*time.Millisecond {
		t.Error("rejected EnableAnimation changed the duration")
	}
	s.DisableAnimation()
	if s.AnimationEnabled() || s.AnimationDuration() != 0 {
		t.Errorf("after disable: enabled=%v duration=%v", s.AnimationEnabled(), s.AnimationDuration())
	}
}

func TestListenerAccessors(t *testing.T) {
	s, _ := newStyler(t, styler.DefaultOptions())
	l := &styler.Listener{}
	s.SetListener(l)
	if s.Listener() != l {
		t.Error("Listener() did not return the installed listener")
	}
	if got := s.RemoveListener(); got != l {
		t.Error("RemoveListener() did not return the removed listener")
	}
	if s.Listener() != nil || s.RemoveListener() != nil {
		t.Error("listener should be gone")
	}
}
