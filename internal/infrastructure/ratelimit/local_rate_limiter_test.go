package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/gdmrisk/pkg/constants"
)

func TestLocalRateLimiter_Window(t *testing.T) {
	l := NewLocalRateLimiter(&Config{Limit: 2, Window: time.Minute})
	defer l.Close()

	now := time.Date(2024, 5, 1, 10, 0, 15, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := l.Allow(ctx, constants.RateLimitScopeIP, "a")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, int64(1-i), res.Remaining)
	}

	res, err := l.Allow(ctx, constants.RateLimitScopeIP, "a")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, int64(0), res.Remaining)
	assert.Equal(t, 45*time.Second, res.RetryAfter)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 1, 0, 0, time.UTC), res.ResetAt)

	// a different scope is counted separately
	res, err = l.Allow(ctx, constants.RateLimitScopeGlobal, "a")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	// next window starts fresh
	now = now.Add(time.Minute)
	res, err = l.Allow(ctx, constants.RateLimitScopeIP, "a")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, int64(1), res.Remaining)
}

func TestConfig_Normalize(t *testing.T) {
	var nilCfg *Config
	cfg := nilCfg.normalize()
	assert.Equal(t, int64(constants.DefaultRateLimitPerMinute), cfg.Limit)
	assert.Equal(t, constants.RateLimitWindow, cfg.Window)
	assert.Equal(t, constants.CacheKeyPrefixRateLimit, cfg.KeyPrefix)

	cfg = (&Config{Limit: 5}).normalize()
	assert.Equal(t, int64(5), cfg.Limit)
	assert.Equal(t, constants.RateLimitWindow, cfg.Window)
}
