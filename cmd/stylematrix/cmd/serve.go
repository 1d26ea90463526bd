package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-drift/stylematrix/cmd/stylematrix/internal/server"
)

const defaultServeAddr = ":8080"

func init() {
	RegisterCommand(&Command{
		Name:  "serve",
		Short: "Serve styled images over HTTP",
		Long: `Start an HTTP server for a directory of images.

Endpoints:
  GET /render?image=NAME&mode=M[&brightness=N&contrast=F&saturation=F&format=png]
      Render a styled copy of NAME. Results are cached in memory.
  GET /live
      WebSocket. Send style requests as JSON, receive matrix frames as
      transitions run.
  GET /healthz

Defaults come from the serve section of stylematrix.yaml.

Usage:
  stylematrix serve --dir ./photos
  stylematrix serve --addr :9090 --dir ./photos --fps 30 --cache-bytes 67108864`,
		Usage: "stylematrix serve [--addr A] [--dir D] [--fps N] [--cache-bytes N]",
		Run:   runServe,
	})
}

func runServe(args []string) error {
	fs := newFlagSet()
	addr := fs.String("addr")
	dir := fs.String("dir")
	fpsFlag := fs.String("fps")
	cacheFlag := fs.String("cache-bytes")
	rest, err := fs.Parse(args)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return fmt.Errorf("serve takes no positional arguments (got %q)", rest[0])
	}

	conf := server.Config{
		Addr:          cfg.Serve.Addr,
		Dir:           cfg.Serve.Dir,
		CacheMaxBytes: cfg.Serve.CacheMaxBytes,
		FrameRate:     cfg.Serve.FrameRate,
		Logger:        logger,
	}
	if conf.Addr == "" {
		conf.Addr = defaultServeAddr
	}
	if conf.Dir == "" {
		conf.Dir = "."
	}
	if *addr != "" {
		conf.Addr = *addr
	}
	if *dir != "" {
		conf.Dir = *dir
	}
	if conf.FrameRate, err = parseIntFlag("fps", *fpsFlag, conf.FrameRate); err != nil {
		return err
	}
	if *cacheFlag != "" {
		n, err := strconv.ParseInt(*cacheFlag, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("--cache-bytes must be a positive integer (got %q)", *cacheFlag)
		}
		conf.CacheMaxBytes = n
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Serve(ctx, conf)
}
