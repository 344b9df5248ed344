package cache

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тесты требуют живой Redis: REDIS_ADDR=localhost:6379 go test ./internal/cache/...
func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR is not set")
	}
	c, err := NewRedisCache(t.Context(), addr, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCache(t *testing.T) {
	c := newTestCache(t)
	code := uuid.NewString()

	_, ok, err := c.Get(t.Context(), code)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(t.Context(), code, "https://example.com/abc"))

	got, ok, err := c.Get(t.Context(), code)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/abc", got)

	require.NoError(t, c.Delete(t.Context(), code))
	_, ok, err = c.Get(t.Context(), code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	_, err := NewRedisCache(t.Context(), "127.0.0.1:1", time.Minute)
	require.Error(t, err)
}
