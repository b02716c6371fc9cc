package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mercury-homes/lead-funnel/internal/api/metrics"
)

// RateLimitConfig configures RateLimit. With a nil Client only the in-memory
// limiter is used.
type RateLimitConfig struct {
	Client *redis.Client
	RPS    float64
	Burst  int
	Window time.Duration
	Logger zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// RateLimit limits requests per client IP as reported by c.RealIP, so the
// Echo instance must have an IPExtractor that does not trust client headers.
//
// With Redis the limit is a fixed window shared by every replica: INCR on
// rl:ip:<ip>:<bucket>, allowing floor(RPS*window)+Burst requests per window.
// Without Redis, or when Redis fails, a per-process token bucket with the
// same RPS and Burst is used instead so lead capture keeps working.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	windowSeconds := int64(cfg.Window / time.Second)
	if windowSeconds <= 0 {
		windowSeconds = 1
	}
	allowedPerWindow := int64(math.Floor(cfg.RPS*float64(windowSeconds))) + int64(cfg.Burst)

	local := newMemoryLimiter(cfg.RPS, cfg.Burst, cfg.Now)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}

			if cfg.Client != nil {
				bucket := cfg.Now().Unix() / windowSeconds
				key := fmt.Sprintf("rl:ip:%s:%d", ip, bucket)

				cnt, err := countHit(c.Request().Context(), cfg.Client, key, time.Duration(windowSeconds+1)*time.Second)
				if err == nil {
					if cnt > allowedPerWindow {
						return reject(c, "redis", windowSeconds)
					}
					metrics.RateLimitTotal.WithLabelValues("redis", "allowed").Inc()
					return next(c)
				}
				cfg.Logger.Warn().Err(err).Msg("redis rate limit check failed, using local limiter")
			}

			if !local.allow(ip) {
				return reject(c, "memory", 1)
			}
			metrics.RateLimitTotal.WithLabelValues("memory", "allowed").Inc()
			return next(c)
		}
	}
}

// countHit increments key and sets its expiry in one transaction, so a
// counter never outlives its window.
func countHit(ctx context.Context, client *redis.Client, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func reject(c echo.Context, limiter string, retryAfter int64) error {
	metrics.RateLimitTotal.WithLabelValues(limiter, "rejected").Inc()
	c.Response().Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
	return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
}

const (
	limiterIdleTTL = 10 * time.Minute
	sweepInterval  = time.Minute
)

type visitor struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// memoryLimiter keeps one token bucket per key. Buckets idle for longer than
// limiterIdleTTL are swept at most once per sweepInterval.
type memoryLimiter struct {
	rps   rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func newMemoryLimiter(rps float64, burst int, now func() time.Time) *memoryLimiter {
	if burst < 1 {
		burst = 1
	}
	if now == nil {
		now = time.Now
	}
	return &memoryLimiter{
		rps:       rate.Limit(rps),
		burst:     burst,
		now:       now,
		visitors:  make(map[string]*visitor),
		lastSweep: now(),
	}
}

func (m *memoryLimiter) allow(key string) bool {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) >= sweepInterval {
		m.sweep(now)
	}

	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(m.rps, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now
	return v.lim.AllowN(now, 1)
}

func (m *memoryLimiter) sweep(now time.Time) {
	for key, v := range m.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(m.visitors, key)
		}
	}
	m.lastSweep = now
}

func (m *memoryLimiter) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.visitors)
}
