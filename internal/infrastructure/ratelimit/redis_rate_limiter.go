package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/errors"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

// RedisRateLimiter implements distributed rate limiting using Redis.
// Each caller owns a token bucket refilled at Limit tokens per Window.
type RedisRateLimiter struct {
	client   redis.UniversalClient
	logger   logger.Logger
	config   *Config
	script   *redis.Script
	fallback *LocalRateLimiter // used while Redis is unreachable
}

// Lua script for atomic token bucket operations
const tokenBucketLuaScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local requested = tonumber(ARGV[3])
local now = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(bucket[1]) or capacity
local last_refill = tonumber(bucket[2]) or now

-- rate is per second, elapsed in ms
local elapsed = math.max(0, now - last_refill)
tokens = math.min(tokens + elapsed * rate / 1000, capacity)

local allowed = 0
local retry_ms = 0
if tokens >= requested then
    tokens = tokens - requested
    allowed = 1
else
    retry_ms = math.ceil((requested - tokens) / rate * 1000)
end

local reset_ms = 0
if tokens < capacity then
    reset_ms = math.ceil((capacity - tokens) / rate * 1000)
end

redis.call('HSET', key, 'tokens', tostring(tokens), 'last_refill', tostring(now))
redis.call('PEXPIRE', key, reset_ms + 60000)

return {allowed, math.floor(tokens), math.floor(capacity), reset_ms, retry_ms}
`

// NewRedisRateLimiter creates a new Redis-based rate limiter. When
// withFallback is set, requests are counted in-process while Redis fails.
func NewRedisRateLimiter(client redis.UniversalClient, cfg *Config, withFallback bool, log logger.Logger) (*RedisRateLimiter, error) {
	if client == nil {
		return nil, errors.ErrInvalidConfig("redis client is required for the rate limiter")
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}
	cfg = cfg.normalize()

	rl := &RedisRateLimiter{
		client: client,
		logger: log,
		config: cfg,
		script: redis.NewScript(tokenBucketLuaScript),
	}
	if withFallback {
		rl.fallback = NewLocalRateLimiter(cfg)
	}

	log.Info(context.Background(), "Redis rate limiter initialized", logger.Fields{
		"limit":          cfg.Limit,
		"window":         cfg.Window.String(),
		"local_fallback": withFallback,
	})
	return rl, nil
}

// Allow consumes one token from the caller's bucket.
func (rl *RedisRateLimiter) Allow(ctx context.Context, scope constants.RateLimitScope, identifier string) (*Result, error) {
	key := rl.buildKey(scope, identifier)
	rate := float64(rl.config.Limit) / rl.config.Window.Seconds()

	res, err := rl.executeLuaScript(ctx, key, rl.config.Limit, rate, 1, time.Now())
	if err == nil {
		return res, nil
	}

	if rl.fallback != nil {
		rl.logger.Warn(ctx, "Redis rate limiter unavailable, using local counters", logger.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return rl.fallback.Allow(ctx, scope, identifier)
	}
	return nil, errors.ErrServiceUnavailable("rate limiter").WithCause(err)
}

// Reset clears the bucket of a caller.
func (rl *RedisRateLimiter) Reset(ctx context.Context, scope constants.RateLimitScope, identifier string) error {
	key := rl.buildKey(scope, identifier)
	if err := rl.client.Del(ctx, key).Err(); err != nil && err != redis.Nil {
		return errors.ErrInternal("reset rate limit").WithCause(err)
	}
	rl.logger.Debug(ctx, "Rate limit reset", logger.Fields{"key": key})
	return nil
}

func (rl *RedisRateLimiter) executeLuaScript(ctx context.Context, key string, capacity int64, rate float64, requested int64, now time.Time) (*Result, error) {
	raw, err := rl.script.Run(ctx, rl.client, []string{key}, capacity, rate, requested, now.UnixMilli()).Result()
	if err != nil {
		return nil, err
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) < 5 {
		return nil, fmt.Errorf("invalid rate limit script result: %v", raw)
	}
	ints := make([]int64, 5)
	for i := range ints {
		n, ok := values[i].(int64)
		if !ok {
			return nil, fmt.Errorf("invalid rate limit script value at %d: %v", i, values[i])
		}
		ints[i] = n
	}

	return &Result{
		Allowed:    ints[0] == 1,
		Remaining:  ints[1],
		Limit:      ints[2],
		ResetAt:    now.Add(time.Duration(ints[3]) * time.Millisecond),
		RetryAfter: time.Duration(ints[4]) * time.Millisecond,
	}, nil
}

func (rl *RedisRateLimiter) buildKey(scope constants.RateLimitScope, identifier string) string {
	return fmt.Sprintf("%s%s:%s", rl.config.KeyPrefix, scope, identifier)
}

// Close releases the local fallback. The Redis client is owned by the caller.
func (rl *RedisRateLimiter) Close() error {
	if rl.fallback != nil {
		_ = rl.fallback.Close()
	}
	rl.logger.Info(context.Background(), "Redis rate limiter closed")
	return nil
}
