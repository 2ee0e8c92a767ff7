package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig tunes the per-client token bucket.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// limiter keeps one token bucket per client. Buckets idle long enough to
// have refilled completely are dropped on a periodic sweep so the map
// does not grow with every IP that ever connected.
type limiter struct {
	mu        sync.Mutex
	cfg       RateLimitConfig
	clients   map[string]*bucket
	lastSweep time.Time
}

// take consumes one token for key, reporting whether the request may
// proceed and, if not, how long until a token is available.
func (l *limiter) take(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > time.Minute {
		l.sweep(now)
	}

	b, ok := l.clients[key]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.BurstSize)}
		l.clients[key] = b
	} else {
		refill := now.Sub(b.seen).Seconds() * l.cfg.RequestsPerSecond
		b.tokens = math.Min(float64(l.cfg.BurstSize), b.tokens+refill)
	}
	b.seen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if l.cfg.RequestsPerSecond <= 0 {
		return false, time.Second
	}
	wait := (1 - b.tokens) / l.cfg.RequestsPerSecond
	return false, time.Duration(wait * float64(time.Second))
}

func (l *limiter) sweep(now time.Time) {
	idle := time.Minute
	if l.cfg.RequestsPerSecond > 0 {
		refillAll := float64(l.cfg.BurstSize) / l.cfg.RequestsPerSecond
		idle += time.Duration(refillAll * float64(time.Second))
	}
	for key, b := range l.clients {
		if now.Sub(b.seen) > idle {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

// RateLimit bounds the request rate per client IP with a token bucket.
// Rejected requests get a 429 with a Retry-After hint.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	l := &limiter{
		cfg:       cfg,
		clients:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
	limitHeader := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', -1, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, wait := l.take(c.RealIP(), time.Now())
			c.Response().Header().Set("X-RateLimit-Limit", limitHeader)
			if !ok {
				retryAfter := int(math.Ceil(wait.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
