package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/gdmrisk/internal/infrastructure/ratelimit"
	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

func newRedisLimiter(t *testing.T, withFallback bool) (*ratelimit.RedisRateLimiter, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	rl, err := ratelimit.NewRedisRateLimiter(client, &ratelimit.Config{Limit: 3, Window: time.Minute}, withFallback, logger.NewNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rl.Close() })
	return rl, s
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	rl, s := newRedisLimiter(t, false)
	ctx := context.Background()
	scope := constants.RateLimitScopeIP
	identifier := "127.0.0.1"

	for i := 0; i < 3; i++ {
		res, err := rl.Allow(ctx, scope, identifier)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i)
		assert.Equal(t, int64(3), res.Limit)
		assert.Equal(t, int64(2-i), res.Remaining)
	}

	res, err := rl.Allow(ctx, scope, identifier)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, int64(0), res.Remaining)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, res.RetryAfter, 20*time.Second)

	assert.True(t, s.Exists(constants.CacheKeyPrefixRateLimit+"ip:127.0.0.1"))

	// other callers keep their own bucket
	res, err = rl.Allow(ctx, scope, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	rl, _ := newRedisLimiter(t, false)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := rl.Allow(ctx, constants.RateLimitScopeIP, "1.2.3.4")
		require.NoError(t, err)
	}
	require.NoError(t, rl.Reset(ctx, constants.RateLimitScopeIP, "1.2.3.4"))

	res, err := rl.Allow(ctx, constants.RateLimitScopeIP, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, int64(2), res.Remaining)
}

func TestRedisRateLimiter_Unavailable(t *testing.T) {
	rl, s := newRedisLimiter(t, false)
	s.Close()

	_, err := rl.Allow(context.Background(), constants.RateLimitScopeIP, "1.2.3.4")
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, constants.ErrCodeServiceUnavailable, appErr.Code())
}

func TestRedisRateLimiter_LocalFallback(t *testing.T) {
	rl, s := newRedisLimiter(t, true)
	s.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := rl.Allow(ctx, constants.RateLimitScopeIP, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
	res, err := rl.Allow(ctx, constants.RateLimitScopeIP, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestNewRedisRateLimiter_NilClient(t *testing.T) {
	_, err := ratelimit.NewRedisRateLimiter(nil, nil, false, nil)
	assert.Error(t, err)
}
