package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/gdmrisk/internal/config"
	redisinfra "github.com/turtacn/gdmrisk/internal/infrastructure/persistence/redis"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

func TestNewRedisConnection(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redisinfra.NewRedisConnection(context.Background(),
		&config.RedisConfig{Enabled: true, Address: mr.Addr()}, logger.NewNoopLogger())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisConnection_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := redisinfra.NewRedisConnection(context.Background(),
		&config.RedisConfig{Enabled: true, Address: addr}, logger.NewNoopLogger())
	assert.Error(t, err)
}
