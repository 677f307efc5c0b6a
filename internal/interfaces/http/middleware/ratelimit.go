package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/infrastructure/ratelimit"
	"helpdesk/internal/shared/utils"
)

// RateLimit enforces the given profile per client. Authenticated callers
// are keyed by user UUID so NAT'd offices do not share a budget; anonymous
// callers fall back to the client IP. A limiter outage fails open rather
// than taking the API down with it.
func RateLimit(limiter ratelimit.RateLimiter, scope string, cfg ratelimit.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.GetString("user_uuid")
		if subject == "" {
			subject = c.ClientIP()
		}

		allowed, err := limiter.Allow(ratelimit.KeyFor(scope, subject), cfg)
		if err != nil {
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

// LoginRateLimit keys strictly by IP since login requests are anonymous.
func LoginRateLimit(limiter ratelimit.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(ratelimit.KeyFor("login", c.ClientIP()), ratelimit.LoginLimit)
		if err != nil {
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many login attempts, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
