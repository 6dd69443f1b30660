package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/terra-clan/content-engine/internal/cache"
)

const cacheTimeout = 500 * time.Millisecond

// CacheMiddleware serves successful GET responses from the response cache.
// Cache failures are logged and the request falls through to the handler.
type CacheMiddleware struct {
	cache   cache.Cache
	metrics *Metrics
}

// NewCacheMiddleware creates cache middleware
func NewCacheMiddleware(c cache.Cache, metrics *Metrics) *CacheMiddleware {
	return &CacheMiddleware{cache: c, metrics: metrics}
}

// Handle looks up the request URI before calling next and stores 200 responses after
func (m *CacheMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.RequestURI()

		ctx, cancel := context.WithTimeout(r.Context(), cacheTimeout)
		body, hit, err := m.cache.Get(ctx, key)
		cancel()
		if errors.Is(err, cache.ErrUnavailable) {
			m.record("bypass")
			w.Header().Set("X-Cache", "BYPASS")
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			slog.Warn("response cache read failed", "key", key, "error", err)
			m.record("error")
		}
		if hit {
			m.record("hit")
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}
		if err == nil {
			m.record("miss")
		}

		var buf bytes.Buffer
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Tee(&buf)
		w.Header().Set("X-Cache", "MISS")

		next.ServeHTTP(ww, r)

		if ww.Status() != http.StatusOK {
			return
		}

		ctx, cancel = context.WithTimeout(context.WithoutCancel(r.Context()), cacheTimeout)
		defer cancel()
		if err := m.cache.Set(ctx, key, buf.Bytes()); err != nil {
			slog.Warn("response cache write failed", "key", key, "error", err)
		}
	})
}

func (m *CacheMiddleware) record(result string) {
	if m.metrics != nil {
		m.metrics.cacheResult(result)
	}
}
