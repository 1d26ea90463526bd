package server

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/go-drift/stylematrix/pkg/style"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writePNG(t *testing.T, dir, name string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestRenderer(t *testing.T) (*Renderer, string) {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, dir, "red.png", color.NRGBA{R: 255, A: 255})
	r, err := NewRenderer(dir, 1<<20, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(r.Close)
	return r, dir
}

func TestRender(t *testing.T) {
	r, _ := newTestRenderer(t)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/render?image=red.png&mode=invert", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("Content-Type = %q", ct)
		}
		img, err := png.Decode(rec.Body)
		if err != nil {
			t.Fatal(err)
		}
		rr, g, b, _ := img.At(1, 1).RGBA()
		if rr>>8 != 0 || g>>8 != 255 || b>>8 != 255 {
			t.Errorf("request %d: pixel = %d,%d,%d, want 0,255,255", i, rr>>8, g>>8, b>>8)
		}
	}
}

func TestRender_Errors(t *testing.T) {
	r, _ := newTestRenderer(t)
	tests := []struct {
		query string
		want  int
	}{
		{"", http.StatusBadRequest},
		{"image=../red.png", http.StatusBadRequest},
		{"image=.env", http.StatusBadRequest},
		{"image=red.png&mode=glow", http.StatusBadRequest},
		{"image=red.png&brightness=300", http.StatusBadRequest},
		{"image=red.png&brightness=abc", http.StatusBadRequest},
		{"image=red.png&mode=sepia&saturation=0.5", http.StatusBadRequest},
		{"image=red.png&format=webp", http.StatusBadRequest},
		{"image=blue.png", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/render?"+tt.query, nil))
		if rec.Code != tt.want {
			t.Errorf("%q: status = %d, want %d", tt.query, rec.Code, tt.want)
		}
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render?image=red.png", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d", rec.Code)
	}
}

func TestParseRenderQuery(t *testing.T) {
	req, err := parseRenderQuery(map[string][]string{
		"image":      {"a.png"},
		"saturation": {"0"},
		"contrast":   {"1.5"},
		"format":     {"JPG"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if req.params.Mode != style.ModeSaturation || req.params.Contrast != 1.5 || req.format != "jpg" {
		t.Errorf("parsed %+v", req)
	}
	if k1, k2 := req.cacheKey(time.Unix(1, 0)), req.cacheKey(time.Unix(2, 0)); k1 == k2 {
		t.Error("cache key should change with the file's modification time")
	}
}

// dialLive connects to a running hub and returns send and read helpers.
func dialLive(t *testing.T) (send func(LiveRequest), read func() LiveMessage) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub(200, quietLogger())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	send = func(req LiveRequest) {
		t.Helper()
		if err := conn.WriteJSON(req); err != nil {
			t.Fatal(err)
		}
	}
	read = func() LiveMessage {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg LiveMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatal(err)
		}
		return msg
	}
	return send, read
}

func TestLive(t *testing.T) {
	send, read := dialLive(t)

	// Immediate change.
	send(LiveRequest{Mode: "sepia"})
	msg := read()
	if msg.Type != MsgEnd || msg.Matrix == nil || *msg.Matrix != style.Sepia() {
		t.Fatalf("got %+v, want end with sepia", msg)
	}

	// Animated change.
	send(LiveRequest{Mode: "invert", DurationMs: 50, Easing: "ease"})
	if msg := read(); msg.Type != MsgStart {
		t.Fatalf("got %q, want start", msg.Type)
	}
	frames := 0
	for {
		msg := read()
		if msg.Type == MsgEnd {
			if *msg.Matrix != style.Invert() {
				t.Errorf("end matrix = %v", *msg.Matrix)
			}
			break
		}
		if msg.Type != MsgFrame {
			t.Fatalf("unexpected %q", msg.Type)
		}
		frames++
	}
	if frames == 0 {
		t.Error("expected at least one frame")
	}

	// Rejected parameters are reported and the session stays usable.
	bad := 999
	send(LiveRequest{Brightness: &bad})
	if msg := read(); msg.Type != MsgError || msg.Error == "" {
		t.Errorf("got %+v, want error", msg)
	}
	send(LiveRequest{Clear: true})
	if msg := read(); msg.Type != MsgEnd || !msg.Matrix.IsIdentity() {
		t.Errorf("got %+v, want end with identity", msg)
	}
}

func TestLive_RejectedRequestsChangeNothing(t *testing.T) {
	send, read := dialLive(t)

	send(LiveRequest{Mode: "sepia"})
	if msg := read(); msg.Type != MsgEnd {
		t.Fatalf("got %+v, want end", msg)
	}

	half := 0.5
	bad := 999
	rejected := []struct {
		name string
		req  LiveRequest
	}{
		{"mode with saturation", LiveRequest{Mode: "invert", Saturation: &half}},
		{"mode with bad brightness", LiveRequest{Mode: "invert", Brightness: &bad}},
		{"bad easing", LiveRequest{Mode: "invert", DurationMs: 100, Easing: "wobble"}},
	}
	for _, tt := range rejected {
		send(tt.req)
		if msg := read(); msg.Type != MsgError {
			t.Errorf("%s: got %+v, want error", tt.name, msg)
		}
		// An empty request repaints whatever the styler holds.
		send(LiveRequest{})
		msg := read()
		if msg.Type != MsgEnd || msg.Matrix == nil || *msg.Matrix != style.Sepia() {
			t.Errorf("%s: after rejection got %+v, want end with sepia", tt.name, msg)
		}
	}

	// Saturation alone on a none mode is promoted.
	send(LiveRequest{Mode: "none", Saturation: &half})
	if msg := read(); msg.Type != MsgEnd || *msg.Matrix != style.Saturation(0.5) {
		t.Errorf("got %+v, want end with saturation 0.5", msg)
	}
}
