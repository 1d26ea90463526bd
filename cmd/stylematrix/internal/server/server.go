package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Config configures Serve.
type Config struct {
	Addr          string
	Dir           string
	CacheMaxBytes int64
	FrameRate     int
	Logger        *slog.Logger
}

// NewMux routes /render to r and /live to h.
func NewMux(r *Renderer, h *Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/render", r)
	mux.Handle("/live", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})
	return mux
}

// Serve runs the HTTP server until ctx is done, then shuts it down.
func Serve(ctx context.Context, cfg Config) error {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	renderer, err := NewRenderer(cfg.Dir, cfg.CacheMaxBytes, log)
	if err != nil {
		return err
	}
	defer renderer.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := NewHub(cfg.FrameRate, log)
	hubDone := make(chan error, 1)
	go func() { hubDone <- hub.Run(ctx) }()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewMux(renderer, hub),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe() }()
	log.Info("serving", "addr", cfg.Addr, "dir", cfg.Dir)

	select {
	case err := <-serveErr:
		cancel()
		<-hubDone
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	err = srv.Shutdown(shutdownCtx)
	<-hubDone
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
