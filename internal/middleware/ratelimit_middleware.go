package middleware

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/brijnamkeen/store_api/internal/utils"
)

// Counter is the sliver of the Redis client the rate limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// RateLimiter enforces a fixed-window per-IP request limit backed by Redis,
// so the limit holds across multiple server instances.
type RateLimiter struct {
	counter Counter
	prefix  string
	max     int64
	window  time.Duration
}

// NewRateLimiter creates a limiter allowing max requests per window per
// client IP. prefix namespaces the Redis keys (e.g. "rl:login").
func NewRateLimiter(counter Counter, prefix string, max int64, window time.Duration) *RateLimiter {
	return &RateLimiter{counter: counter, prefix: prefix, max: max, window: window}
}

// NewLoginRateLimiter limits login attempts to 5 per 15 minutes per IP. This
// is layered on top of the per-account lockout, not a replacement for it.
func NewLoginRateLimiter(counter Counter) *RateLimiter {
	return &RateLimiter{counter: counter, prefix: "rl:login", max: 5, window: 15 * time.Minute}
}

// NewContactRateLimiter limits contact-form submissions to 3 per hour per IP.
func NewContactRateLimiter(counter Counter) *RateLimiter {
	return &RateLimiter{counter: counter, prefix: "rl:contact", max: 3, window: time.Hour}
}

// Handle returns a Gin middleware that rejects over-limit requests with 429
// and a Retry-After header.
func (r *RateLimiter) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		key := fmt.Sprintf("%s:%s", r.prefix, ip)

		count, err := r.counter.Incr(c.Request.Context(), key, r.window)
		if err != nil {
			// Redis being down should not take the endpoint with it.
			log.Warn().Err(err).Str("ip", ip).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if count > r.max {
			retryAfter := r.window
			if ttl, err := r.counter.TTL(c.Request.Context(), key); err == nil && ttl > 0 {
				retryAfter = ttl
			}
			c.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(retryAfter.Seconds()))))
			utils.Error(c, 429, "TOO_MANY_REQUESTS", "You have exceeded the rate limit. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
