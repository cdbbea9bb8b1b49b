package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"afterhourshvac/internal/config"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// LimiterIdleTTL is how long a client's bucket survives without requests.
const LimiterIdleTTL = 15 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// RateLimiter keeps one token bucket per client IP. Idle buckets are
// dropped by Sweep.
type RateLimiter struct {
	limiters sync.Map
	cfg      config.RateLimitConfig
	now      func() time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{cfg: cfg, now: time.Now}
}

func (l *RateLimiter) getLimiter(key string) *rate.Limiter {
	now := l.now().UnixNano()
	if v, ok := l.limiters.Load(key); ok {
		cl := v.(*clientLimiter)
		cl.lastSeen.Store(now)
		return cl.limiter
	}

	burst := l.cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	cl := &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.cfg.RPS), burst)}
	cl.lastSeen.Store(now)
	actual, _ := l.limiters.LoadOrStore(key, cl)
	stored := actual.(*clientLimiter)
	stored.lastSeen.Store(now)
	return stored.limiter
}

// Sweep removes buckets idle for longer than idle and returns how many went.
func (l *RateLimiter) Sweep(idle time.Duration) int {
	cutoff := l.now().Add(-idle).UnixNano()
	removed := 0
	l.limiters.Range(func(key, v any) bool {
		if v.(*clientLimiter).lastSeen.Load() < cutoff {
			l.limiters.CompareAndDelete(key, v)
			removed++
		}
		return true
	})
	return removed
}

// Size reports how many client buckets are held.
func (l *RateLimiter) Size() int {
	n := 0
	l.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Middleware answers 429 once a client exhausts its bucket.
func (l *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if l.cfg.RPS <= 0 {
				return next(c)
			}
			if !l.getLimiter(c.RealIP()).Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please slow down")
			}
			return next(c)
		}
	}
}
