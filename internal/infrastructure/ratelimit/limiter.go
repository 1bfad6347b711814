// Package ratelimit provides the request rate limiters guarding the assessment endpoint.
package ratelimit

import (
	"context"
	"time"

	"github.com/turtacn/gdmrisk/pkg/constants"
)

// Result represents the outcome of a rate limit check.
type Result struct {
	// Allowed indicates if the request is allowed
	Allowed bool
	// Limit is the maximum number of requests allowed per window
	Limit int64
	// Remaining is the number of requests remaining
	Remaining int64
	// ResetAt is the time when the limit resets
	ResetAt time.Time
	// RetryAfter is the duration to wait before retrying
	RetryAfter time.Duration
}

// Limiter decides whether a caller identified by scope and identifier may
// issue another request.
type Limiter interface {
	Allow(ctx context.Context, scope constants.RateLimitScope, identifier string) (*Result, error)
	Close() error
}

// Config holds rate limiter configuration.
type Config struct {
	// Limit is the number of requests allowed per window
	Limit int64
	// Window is the time window for rate limiting
	Window time.Duration
	// KeyPrefix is the storage key prefix
	KeyPrefix string
}

// DefaultConfig returns the default rate limiter configuration.
func DefaultConfig() *Config {
	return &Config{
		Limit:     constants.DefaultRateLimitPerMinute,
		Window:    constants.RateLimitWindow,
		KeyPrefix: constants.CacheKeyPrefixRateLimit,
	}
}

func (c *Config) normalize() *Config {
	out := *DefaultConfig()
	if c == nil {
		return &out
	}
	if c.Limit > 0 {
		out.Limit = c.Limit
	}
	if c.Window > 0 {
		out.Window = c.Window
	}
	if c.KeyPrefix != "" {
		out.KeyPrefix = c.KeyPrefix
	}
	return &out
}
