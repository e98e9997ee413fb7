package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// maxTrackedKeys triggers idle eviction when the per-key map grows past it.
	maxTrackedKeys = 10000
	// keyIdleLifetime is how long a key may sit unused before eviction.
	keyIdleLifetime = 3 * time.Minute
)

// RateLimiter tracks one token bucket per caller key.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[string]*clientLimiter

	perSecond rate.Limit
	burst     int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter allowing perSecond requests with the
// given burst per key. Zero or negative arguments fall back to 10 rps / 20.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if perSecond <= 0 {
		perSecond = 10
	}
	if burst <= 0 {
		burst = 20
	}
	return &RateLimiter{
		limits:    make(map[string]*clientLimiter),
		perSecond: rate.Limit(perSecond),
		burst:     burst,
	}
}

// getLimiter gets or creates a limiter for the given key. When the map is
// full, idle keys are evicted first; active keys keep their buckets.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if cl, ok := rl.limits[key]; ok {
		cl.lastSeen = now
		return cl.limiter
	}

	if len(rl.limits) >= maxTrackedKeys {
		rl.evictIdleLocked(now)
	}

	cl := &clientLimiter{
		limiter:  rate.NewLimiter(rl.perSecond, rl.burst),
		lastSeen: now,
	}
	rl.limits[key] = cl
	return cl.limiter
}

// evictIdleLocked removes keys unused for longer than the idle lifetime.
// Caller must hold the lock.
func (rl *RateLimiter) evictIdleLocked(now time.Time) {
	for k, cl := range rl.limits {
		if now.Sub(cl.lastSeen) > keyIdleLifetime {
			delete(rl.limits, k)
		}
	}
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Wait blocks until a request is allowed for the given key.
// Returns an error if the context is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context, key string) error {
	return rl.getLimiter(key).Wait(ctx)
}

// Reset clears all tracked limiters.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.limits = make(map[string]*clientLimiter)
}

// Echo returns an echo middleware limiting requests per client IP.
func (rl *RateLimiter) Echo() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"code":    "RATE_LIMITED",
					"message": "too many requests",
				})
			}
			return next(c)
		}
	}
}
