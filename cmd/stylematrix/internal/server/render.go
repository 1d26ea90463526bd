// Package server implements the HTTP surface of "stylematrix serve".
//
// GET /render styles an image from the served directory and returns it,
// caching encoded results. GET /live upgrades to a WebSocket that streams
// animated transitions frame by frame.
package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/go-drift/stylematrix/cmd/stylematrix/internal/imageio"
	"github.com/go-drift/stylematrix/pkg/errors"
	"github.com/go-drift/stylematrix/pkg/style"
	"github.com/go-drift/stylematrix/pkg/styler"
)

// Cache defaults.
const (
	DefaultCacheMaxBytes = 64 * 1024 * 1024
	DefaultCacheTTL      = time.Hour
)

// Renderer serves styled images from Dir.
type Renderer struct {
	dir   string
	cache *ristretto.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewRenderer returns a renderer for the images in dir. maxBytes bounds the
// total size of cached encodings; zero uses DefaultCacheMaxBytes.
func NewRenderer(dir string, maxBytes int64, log *slog.Logger) (*Renderer, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultCacheMaxBytes
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1 << 14,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{dir: dir, cache: cache, ttl: DefaultCacheTTL, log: log}, nil
}

// Close releases the cache.
func (r *Renderer) Close() {
	r.cache.Close()
}

// renderRequest is a parsed /render query.
type renderRequest struct {
	image  string
	format string
	params style.Parameters
}

func (req renderRequest) cacheKey(modTime time.Time) string {
	key := fmt.Sprintf("image=%s&mtime=%d&format=%s&mode=%d&brightness=%d&contrast=%g&saturation=%g",
		req.image, modTime.UnixNano(), req.format,
		int(req.params.Mode), req.params.Brightness, req.params.Contrast, req.params.Saturation)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// parseRenderQuery reads image, format and the style attributes from q.
func parseRenderQuery(q url.Values) (renderRequest, error) {
	name := q.Get("image")
	if name == "" {
		return renderRequest{}, fmt.Errorf("missing 'image' query parameter")
	}
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return renderRequest{}, fmt.Errorf("invalid image name %q", name)
	}

	format := strings.ToLower(q.Get("format"))
	switch format {
	case "":
		format = "png"
	case "png", "jpeg", "jpg", "gif":
	default:
		return renderRequest{}, fmt.Errorf("unsupported format %q", format)
	}

	var attrs styler.Attributes
	if v := q.Get("mode"); v != "" {
		m, err := style.ParseMode(v)
		if err != nil {
			return renderRequest{}, err
		}
		attrs.Mode = &m
	}
	if v := q.Get("brightness"); v != "" {
		b, err := strconv.Atoi(v)
		if err != nil {
			return renderRequest{}, fmt.Errorf("invalid brightness %q", v)
		}
		attrs.Brightness = &b
	}
	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"contrast", &attrs.Contrast},
		{"saturation", &attrs.Saturation},
	} {
		if v := q.Get(f.name); v != "" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return renderRequest{}, fmt.Errorf("invalid %s %q", f.name, v)
			}
			*f.dst = &n
		}
	}
	opts, err := attrs.Options()
	if err != nil {
		return renderRequest{}, err
	}
	return renderRequest{image: name, format: format, params: opts.Parameters}, nil
}

func (r *Renderer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rr, err := parseRenderQuery(req.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	path := filepath.Join(r.dir, rr.image)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}

	key := rr.cacheKey(info.ModTime())
	contentType := "image/" + strings.Replace(rr.format, "jpg", "jpeg", 1)
	if cached, found := r.cache.Get(key); found {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Cache", "hit")
		w.Write(cached.([]byte))
		return
	}

	start := time.Now()
	src, err := imageio.Load(path)
	if err != nil {
		r.log.Warn("decode failed", "image", rr.image, "err", err)
		http.Error(w, "image could not be decoded", http.StatusUnprocessableEntity)
		return
	}
	styled, err := styler.RenderStyledSnapshot(src, rr.params)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, "."+rr.format, styled); err != nil {
		r.log.Error("encode failed", "image", rr.image, "err", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	body := buf.Bytes()
	r.cache.SetWithTTL(key, body, int64(len(body)), r.ttl)
	r.log.Debug("rendered", "image", rr.image, "mode", rr.params.Mode, "bytes", len(body), "elapsed", time.Since(start))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Cache", "miss")
	w.Write(body)
}

func statusFor(err error) int {
	var se *errors.StyleError
	if stderrors.As(err, &se) && se.Kind == errors.KindRender {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
