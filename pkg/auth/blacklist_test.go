package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requer um Redis acessível em REDIS_TEST_ADDR
func TestRedisBlacklist(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR não definido")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	bl := NewRedisBlacklist(client)
	token := uuid.New().String()

	revoked, err := bl.Contains(ctx, token)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Add(ctx, token, time.Minute))
	revoked, err = bl.Contains(ctx, token)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := client.TTL(ctx, blacklistKey(token)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, bl.Add(ctx, "expirado", 0))
	revoked, err = bl.Contains(ctx, "expirado")
	require.NoError(t, err)
	assert.False(t, revoked)
}
