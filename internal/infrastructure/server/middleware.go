package server

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	apperrors "github.com/reglet-dev/userprofiles/internal/application/errors"
)

const (
	// limiterCleanupThreshold is the map size above which idle clients are pruned.
	limiterCleanupThreshold = 500
	limiterMaxIdle          = 10 * time.Minute
)

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client IP.
type clientLimiter struct {
	clients map[string]*limiterEntry
	mu      sync.Mutex
	r       rate.Limit
	b       int
}

func newClientLimiter(r rate.Limit, b int) *clientLimiter {
	if b < 1 {
		b = 1
	}
	return &clientLimiter{
		clients: make(map[string]*limiterEntry),
		r:       r,
		b:       b,
	}
}

func (c *clientLimiter) get(ip string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if len(c.clients) > limiterCleanupThreshold {
		cutoff := now.Add(-limiterMaxIdle)
		for k, e := range c.clients {
			if e.lastSeen.Before(cutoff) {
				delete(c.clients, k)
			}
		}
	}

	e, ok := c.clients[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(c.r, c.b)}
		c.clients[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

func rateLimit(limiter *clientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.get(ip).Allow() {
				writeError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests), apperrors.CodeRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
