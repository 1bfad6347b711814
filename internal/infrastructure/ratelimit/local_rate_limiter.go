package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/turtacn/gdmrisk/pkg/constants"
)

// LocalRateLimiter is an in-process fixed window limiter backed by go-cache.
// Counters expire with their window.
type LocalRateLimiter struct {
	counters *cache.Cache
	config   *Config
	now      func() time.Time
}

// NewLocalRateLimiter creates an in-process rate limiter.
func NewLocalRateLimiter(cfg *Config) *LocalRateLimiter {
	cfg = cfg.normalize()
	return &LocalRateLimiter{
		counters: cache.New(cfg.Window, 2*cfg.Window),
		config:   cfg,
		now:      time.Now,
	}
}

// Allow increments the caller's counter for the current window.
func (l *LocalRateLimiter) Allow(_ context.Context, scope constants.RateLimitScope, identifier string) (*Result, error) {
	now := l.now()
	windowStart := now.Truncate(l.config.Window)
	resetAt := windowStart.Add(l.config.Window)
	key := fmt.Sprintf("%s%s:%s:%d", l.config.KeyPrefix, scope, identifier, windowStart.Unix())

	count, err := l.increment(key, resetAt.Sub(now))
	if err != nil {
		return nil, err
	}

	res := &Result{
		Allowed:   count <= l.config.Limit,
		Limit:     l.config.Limit,
		Remaining: l.config.Limit - count,
		ResetAt:   resetAt,
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	if !res.Allowed {
		res.RetryAfter = resetAt.Sub(now)
	}
	return res, nil
}

func (l *LocalRateLimiter) increment(key string, ttl time.Duration) (int64, error) {
	if n, err := l.counters.IncrementInt64(key, 1); err == nil {
		return n, nil
	}
	if err := l.counters.Add(key, int64(1), ttl); err == nil {
		return 1, nil
	}
	// another request created the counter first
	return l.counters.IncrementInt64(key, 1)
}

// Close releases all counters.
func (l *LocalRateLimiter) Close() error {
	l.counters.Flush()
	return nil
}
