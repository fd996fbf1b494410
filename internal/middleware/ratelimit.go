package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cinesuggest/web/internal/logging"
	"github.com/cinesuggest/web/pkg/response"
)

type RateLimiter struct {
	redis *redis.Client
}

// NewRateLimiter creates a fixed-window limiter. A nil client disables limiting.
func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// Limit creates a rate limiting middleware keyed by session
func (rl *RateLimiter) Limit(keyPrefix string, maxRequests int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := GetSessionID(c)
		if rl.redis == nil || sessionID == "" || maxRequests <= 0 {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", keyPrefix, sessionID)
		ctx := c.UserContext()

		count, err := rl.redis.Incr(ctx, key).Result()
		if err != nil {
			logging.Warn().Err(err).Str("limit", keyPrefix).Msg("rate limiter unavailable")
			return c.Next()
		}

		if count == 1 {
			rl.redis.Expire(ctx, key, window)
		}

		if count > int64(maxRequests) {
			ttl, _ := rl.redis.TTL(ctx, key).Result()
			c.Set("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			return response.RateLimited(c)
		}

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequests))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", maxRequests-int(count)))

		return c.Next()
	}
}

// SearchLimit limits search requests per minute
func (rl *RateLimiter) SearchLimit(maxPerMin int) fiber.Handler {
	return rl.Limit("search", maxPerMin, time.Minute)
}

// ActionLimit limits backend-bound actions (mood, random, quote) per minute
func (rl *RateLimiter) ActionLimit(maxPerMin int) fiber.Handler {
	return rl.Limit("action", maxPerMin, time.Minute)
}
