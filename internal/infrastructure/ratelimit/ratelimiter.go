package ratelimit

import (
	"fmt"
	"time"
)

type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
	BurstSize         int
}

// Limit profiles for the endpoints that need protection. Login is kept
// tight to slow credential stuffing; uploads are bounded because each
// one writes to attachment storage; tool calls cover the MCP surface.
var (
	LoginLimit = RateLimitConfig{
		RequestsPerMinute: 10,
		RequestsPerHour:   60,
	}

	UploadLimit = RateLimitConfig{
		RequestsPerMinute: 20,
		RequestsPerHour:   200,
		RequestsPerDay:    1000,
	}

	ToolCallLimit = RateLimitConfig{
		RequestsPerMinute: 60,
		RequestsPerHour:   1000,
	}

	DefaultAPILimit = RateLimitConfig{
		RequestsPerMinute: 120,
		RequestsPerHour:   3000,
	}
)

// KeyFor builds a limiter key scoped to an operation and a subject,
// e.g. KeyFor("login", clientIP) or KeyFor("upload", userUUID).
func KeyFor(scope, subject string) string {
	return fmt.Sprintf("%s:%s", scope, subject)
}

type RateLimiter interface {
	Allow(key string, config RateLimitConfig) (bool, error)
	GetRemaining(key string, window time.Duration) (int64, error)
	Reset(key string) error
}
