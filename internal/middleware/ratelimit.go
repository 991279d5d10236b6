package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter is a fixed-window request limiter keyed by client IP. Counters
// live in Redis, so every instance shares the same budget.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

// NewRateLimiter creates a rate limiter. A nil client or a non-positive
// limit disables limiting.
func NewRateLimiter(rdb *redis.Client, maxReqs, windowSec int) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		limit:  int64(maxReqs),
		window: time.Duration(windowSec) * time.Second,
	}
}

// hit counts one request and returns the window's count and time left.
func (rl *RateLimiter) hit(c fiber.Ctx) (int64, time.Duration, error) {
	key := rateLimitPrefix + c.IP()
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := rl.rdb.TxPipelined(c.Context(), func(p redis.Pipeliner) error {
		incr = p.Incr(c.Context(), key)
		p.ExpireNX(c.Context(), key, rl.window)
		ttl = p.TTL(c.Context(), key)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return incr.Val(), ttl.Val(), nil
}

// Handler returns the Fiber middleware. Requests pass when Redis fails.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		if rl.rdb == nil || rl.limit <= 0 {
			return c.Next()
		}

		count, ttl, err := rl.hit(c)
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err)
			return c.Next()
		}

		reset := int64(ttl / time.Second)
		c.Set("X-RateLimit-Limit", strconv.FormatInt(rl.limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(max(0, rl.limit-count), 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

		if count > rl.limit {
			c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(reset, 10))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message":    "rate limit exceeded",
				"retryAfter": reset,
			})
		}
		return c.Next()
	}
}
