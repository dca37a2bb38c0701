package filter

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Suhaibinator/SFilter/pkg/middleware"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// RateLimitStrategy selects how clients are identified for rate limiting.
type RateLimitStrategy string

const (
	// StrategyIP identifies clients by IP address.
	StrategyIP RateLimitStrategy = "ip"

	// StrategyCustom identifies clients with RateLimitConfig.KeyExtractor.
	StrategyCustom RateLimitStrategy = "custom"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Unique identifier for this rate limit bucket.
	// Filters sharing a BucketName and limiter share the same limit.
	BucketName string

	// Maximum number of requests allowed in the time window
	Limit int

	// Time window for the rate limit (e.g., 1 minute, 1 hour)
	Window time.Duration

	// Strategy for identifying clients; defaults to StrategyIP
	Strategy RateLimitStrategy

	// Custom key extractor function (used when Strategy is StrategyCustom)
	KeyExtractor func(*http.Request) (string, error)

	// Smooth paces admitted requests evenly across the window instead of
	// letting them through in a burst.
	Smooth bool
}

// RateLimiter defines the interface for rate limiting algorithms
type RateLimiter interface {
	// Allow checks if a request is allowed for the key.
	// It returns whether the request is allowed, the number of remaining
	// requests and the time until the window resets.
	Allow(key string, limit int, window time.Duration) (bool, int, time.Duration)

	// Wait blocks until the key may proceed at a pace of limit per window.
	Wait(key string, limit int, window time.Duration)
}

// UberRateLimiter implements RateLimiter with a fixed window counter per key
// and Uber's leaky bucket ratelimit library for pacing.
type UberRateLimiter struct {
	mu       sync.Mutex
	windows  map[string]*rateWindow
	limiters sync.Map // map[string]ratelimit.Limiter
	now      func() time.Time
}

type rateWindow struct {
	start time.Time
	count int
}

// NewUberRateLimiter creates a new rate limiter using Uber's ratelimit library
func NewUberRateLimiter() *UberRateLimiter {
	return &UberRateLimiter{
		windows: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

// Allow implements RateLimiter.
func (u *UberRateLimiter) Allow(key string, limit int, window time.Duration) (bool, int, time.Duration) {
	if window <= 0 {
		window = time.Second
	}
	if limit <= 0 {
		limit = 1
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	w, ok := u.windows[key]
	if !ok || now.Sub(w.start) >= window {
		w = &rateWindow{start: now}
		u.windows[key] = w
	}
	reset := window - now.Sub(w.start)

	if w.count >= limit {
		return false, 0, reset
	}
	w.count++
	return true, limit - w.count, reset
}

// Wait implements RateLimiter.
func (u *UberRateLimiter) Wait(key string, limit int, window time.Duration) {
	u.getLimiter(key, limit, window).Take()
}

// getLimiter gets or creates a pacing limiter for the key
func (u *UberRateLimiter) getLimiter(key string, limit int, window time.Duration) ratelimit.Limiter {
	if limiter, ok := u.limiters.Load(key); ok {
		return limiter.(ratelimit.Limiter)
	}
	if window <= 0 {
		window = time.Second
	}
	if limit <= 0 {
		limit = 1
	}
	limiter, _ := u.limiters.LoadOrStore(key, ratelimit.New(limit, ratelimit.Per(window)))
	return limiter.(ratelimit.Limiter)
}

// extractKey returns the client key for the configured strategy.
func extractKey(config *RateLimitConfig, r *http.Request) (string, error) {
	if config.Strategy == StrategyCustom && config.KeyExtractor != nil {
		return config.KeyExtractor(r)
	}
	return extractIP(r), nil
}

// extractIP extracts the client IP address from the request context,
// falling back to proxy headers and RemoteAddr.
func extractIP(r *http.Request) string {
	if ip := middleware.ClientIP(r); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// RateLimit returns a predicate that rejects requests over the configured
// limit with 429. A nil config disables rate limiting.
func RateLimit(config *RateLimitConfig, limiter RateLimiter, logger *zap.Logger) Predicate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(r *http.Request) error {
		if config == nil {
			return nil
		}

		key, err := extractKey(config, r)
		if err != nil {
			logger.Error("Failed to extract rate limit key",
				zap.Error(err),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			return RejectWithCause(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), err)
		}

		bucketKey := config.BucketName + ":" + key
		allowed, remaining, reset := limiter.Allow(bucketKey, config.Limit, config.Window)
		if !allowed {
			logger.Warn("Rate limit exceeded",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("key", key),
				zap.Int("limit", config.Limit),
				zap.Int("remaining", remaining),
				zap.Duration("reset", reset),
			)
			return Reject(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
		}

		if config.Smooth {
			limiter.Wait(bucketKey, config.Limit, config.Window)
		}
		return nil
	}
}
