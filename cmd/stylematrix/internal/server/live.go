package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/go-drift/stylematrix/pkg/animation"
	"github.com/go-drift/stylematrix/pkg/errors"
	"github.com/go-drift/stylematrix/pkg/graphics"
	"github.com/go-drift/stylematrix/pkg/style"
	"github.com/go-drift/stylematrix/pkg/styler"
)

// DefaultFrameRate is the tick rate of live transitions.
const DefaultFrameRate = 60

// LiveRequest is a client message on /live. Nil fields keep their value.
type LiveRequest struct {
	Mode       string   `json:"mode,omitempty"`
	Brightness *int     `json:"brightness,omitempty"`
	Contrast   *float64 `json:"contrast,omitempty"`
	Saturation *float64 `json:"saturation,omitempty"`
	// DurationMs animates this change. Zero applies it immediately.
	DurationMs int    `json:"durationMs,omitempty"`
	Easing     string `json:"easing,omitempty"`
	// Clear clears the style instead of applying it.
	Clear bool `json:"clear,omitempty"`
}

// LiveMessage is sent to /live clients.
type LiveMessage struct {
	Type     string                `json:"type"`
	Matrix   *graphics.ColorMatrix `json:"matrix,omitempty"`
	Fraction float64               `json:"fraction,omitempty"`
	Progress float64               `json:"progress,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// Message types.
const (
	MsgStart  = "start"
	MsgFrame  = "frame"
	MsgEnd    = "end"
	MsgCancel = "cancel"
	MsgError  = "error"
)

// session is one /live client. Only the hub goroutine touches styler.
type session struct {
	out    chan LiveMessage
	styler *styler.Styler
	log    *slog.Logger
}

func (s *session) send(msg LiveMessage) {
	select {
	case s.out <- msg:
	default:
		s.log.Debug("dropping live message", "type", msg.Type)
	}
}

// sessionSurface holds the matrix a session's styler last applied. Frames
// reach the client through the styler's listener.
type sessionSurface struct {
	matrix *graphics.ColorMatrix
}

func (s *sessionSurface) HasTarget() bool { return true }

func (s *sessionSurface) CurrentMatrix() (graphics.ColorMatrix, bool) {
	if s.matrix == nil {
		return graphics.ColorMatrix{}, false
	}
	return *s.matrix, true
}

func (s *sessionSurface) SetMatrix(m graphics.ColorMatrix) {
	s.matrix = &m
}

func (s *sessionSurface) Clear() {
	s.matrix = nil
}

// Hub owns every live Styler. All style changes and ticks run on the
// goroutine that calls Run, which is the only caller of StepTickers.
type Hub struct {
	actions  chan func()
	stopped  chan struct{}
	interval time.Duration
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewHub returns a hub ticking frameRate times per second.
func NewHub(frameRate int, log *slog.Logger) *Hub {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		actions:  make(chan func(), 64),
		stopped:  make(chan struct{}),
		interval: time.Second / time.Duration(frameRate),
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Run processes actions and ticks until ctx is done. It must be called
// once.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.stopped)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case act := <-h.actions:
			act()
		case <-ticker.C:
			animation.StepTickers()
		}
	}
}

// do queues fn to run on the hub goroutine. It returns false if ctx is
// done or the hub has stopped first.
func (h *Hub) do(ctx context.Context, fn func()) bool {
	select {
	case h.actions <- fn:
		return true
	case <-ctx.Done():
		return false
	case <-h.stopped:
		return false
	}
}

func (h *Hub) newSession() *session {
	sess := &session{out: make(chan LiveMessage, 256), log: h.log}
	s, err := styler.New(&sessionSurface{}, styler.DefaultOptions())
	if err != nil {
		// Default options always validate.
		panic(err)
	}
	s.SetListener(&styler.Listener{
		OnStart:  func() { sess.send(LiveMessage{Type: MsgStart}) },
		OnCancel: func() { sess.send(LiveMessage{Type: MsgCancel}) },
		OnFrame: func(fraction, progress float64) {
			m := s.LastMatrix()
			sess.send(LiveMessage{Type: MsgFrame, Matrix: &m, Fraction: fraction, Progress: progress})
		},
		OnEnd: func() {
			m := s.LastMatrix()
			sess.send(LiveMessage{Type: MsgEnd, Matrix: &m, Fraction: 1, Progress: 1})
		},
	})
	sess.styler = s
	return sess
}

// apply runs req against the session's styler. It must run on the hub
// goroutine. A rejected request leaves the styler unchanged.
func (sess *session) apply(req LiveRequest) error {
	s := sess.styler
	var curve func(float64) float64
	if req.DurationMs > 0 {
		var ok bool
		if curve, ok = animation.CurveByName(req.Easing); !ok {
			return errors.InvalidParameter("live", "easing", req.Easing, "unknown easing curve")
		}
	}
	if !req.Clear {
		p, err := req.parameters(s.Parameters())
		if err != nil {
			return err
		}
		if err := s.SetParameters(p); err != nil {
			return err
		}
	}

	if req.DurationMs > 0 {
		if err := s.EnableAnimationWithCurve(time.Duration(req.DurationMs)*time.Millisecond, curve); err != nil {
			return err
		}
	} else {
		s.DisableAnimation()
	}

	if req.Clear {
		s.ClearStyle()
	} else if err := s.ApplyStyle(); err != nil {
		return err
	}
	if !s.AnimationEnabled() {
		sess.send(LiveMessage{Type: MsgEnd, Matrix: ptr(s.LastMatrix()), Fraction: 1, Progress: 1})
	}
	return nil
}

// parameters layers the request's fields on p. A mode other than
// style.ModeSaturation resets saturation to 1 unless the request sets
// one, and a saturation without a mode selects style.ModeSaturation.
func (req LiveRequest) parameters(p style.Parameters) (style.Parameters, error) {
	if req.Mode != "" {
		m, err := style.ParseMode(req.Mode)
		if err != nil {
			return p, err
		}
		p.Mode = m
		if m != style.ModeSaturation {
			p.Saturation = 1
		}
	}
	if req.Brightness != nil {
		p.Brightness = *req.Brightness
	}
	if req.Contrast != nil {
		p.Contrast = *req.Contrast
	}
	if req.Saturation != nil {
		p.Saturation = *req.Saturation
		if req.Mode == "" {
			p.Mode = style.ModeSaturation
		}
	}
	return p, nil
}

func ptr(m graphics.ColorMatrix) *graphics.ColorMatrix {
	return &m
}

// ServeHTTP upgrades the request and serves one live session.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var sess *session
	ready := make(chan struct{})
	if !h.do(ctx, func() { sess = h.newSession(); close(ready) }) {
		return
	}
	select {
	case <-ready:
	case <-ctx.Done():
		return
	case <-h.stopped:
		return
	}
	h.log.Info("live session opened", "remote", r.RemoteAddr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case msg := <-sess.out:
				conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
				if err := conn.WriteJSON(msg); err != nil {
					cancel()
					conn.Close()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var req LiveRequest
		if err := conn.ReadJSON(&req); err != nil {
			break
		}
		if !h.do(ctx, func() {
			if err := sess.apply(req); err != nil {
				sess.send(LiveMessage{Type: MsgError, Error: err.Error()})
			}
		}) {
			break
		}
	}

	h.do(context.Background(), func() { sess.styler.Cancel() })
	cancel()
	<-done
	h.log.Info("live session closed", "remote", r.RemoteAddr)
}
