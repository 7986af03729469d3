package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	WindowSeconds     int
	Enabled           bool
}

// fixed-window counter, atomic increment with expiry
const rateLimitScript = `
	local key = KEYS[1]
	local window = tonumber(ARGV[1])
	local max_requests = tonumber(ARGV[2])

	local count = redis.call('INCR', key)
	if count == 1 then
		redis.call('EXPIRE', key, window)
	end

	return count
`

// RateLimiter returns a middleware that limits requests per client IP using
// a Redis fixed-window counter. On Redis errors requests are allowed through
// (fail-open strategy).
func RateLimiter(client *redis.Client, cfg RateLimiterConfig, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled || client == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s:%s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
		maxRequests := int64(cfg.RequestsPerSecond * float64(cfg.WindowSeconds))

		count, err := client.Eval(c.Request.Context(), rateLimitScript, []string{key},
			cfg.WindowSeconds, maxRequests).Int64()
		if err != nil {
			log.Warn("rate limiter redis error, allowing request",
				zap.String("client_ip", c.ClientIP()),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count > maxRequests {
			log.Warn("rate limit exceeded",
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
				zap.Int64("count", count),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate_limit_exceeded",
				"message": fmt.Sprintf("rate limit exceeded: %.0f requests/second",
					cfg.RequestsPerSecond),
			})
			return
		}

		c.Next()
	}
}
