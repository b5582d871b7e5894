package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// DefaultRateLimit is the default number of requests per minute.
	DefaultRateLimit = 120
	// DefaultBurstSize is the default burst size.
	DefaultBurstSize = 20
	// cleanupInterval is how often stale limiters are swept.
	cleanupInterval = 5 * time.Minute
	// limiterTTL is how long an idle limiter is kept.
	limiterTTL = 10 * time.Minute
)

// RateLimiter manages per-client rate limiting. Authenticated requests are
// keyed by user ID, unauthenticated ones by remote address.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rateLimit rate.Limit
	burstSize int
	stopCh    chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter allowing requestsPerMinute sustained
// with bursts up to burstSize.
func NewRateLimiter(requestsPerMinute, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rateLimit: rate.Limit(float64(requestsPerMinute) / 60.0),
		burstSize: burstSize,
		stopCh:    make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether a request from the given key may proceed.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(r.rateLimit, r.burstSize)}
		r.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// cleanup periodically drops limiters that have gone idle.
func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			now := time.Now()
			for key, entry := range r.limiters {
				if now.Sub(entry.lastSeen) > limiterTTL {
					delete(r.limiters, key)
				}
			}
			r.mu.Unlock()
		case <-r.stopCh:
			return
		}
	}
}

// Stop stops the cleanup goroutine.
func (r *RateLimiter) Stop() {
	close(r.stopCh)
}

// RateLimit returns a middleware that applies per-client rate limiting.
func RateLimit(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := GetUserID(c)
			if key == "" {
				key = c.RealIP()
			}

			if !rl.Allow(key) {
				c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", DefaultRateLimit))
				c.Response().Header().Set("Retry-After", "1")

				slog.Warn("Rate limit exceeded", "key", key, "path", c.Request().URL.Path)
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}

			return next(c)
		}
	}
}
