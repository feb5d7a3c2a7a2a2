package ratelimit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, rate float64, burst int) *Limiter {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLimiter(client, rate, burst)
}

func TestAllowWithinBurst(t *testing.T) {
	limiter := newTestLimiter(t, 1, 3)

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(context.Background(), "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestDenyWhenBucketEmpty(t *testing.T) {
	limiter := newTestLimiter(t, 0.001, 2)

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(context.Background(), "10.0.0.2")
		require.NoError(t, err)
		require.True(t, allowed)
	}

	allowed, err := limiter.Allow(context.Background(), "10.0.0.2")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestKeysAreIndependent(t *testing.T) {
	limiter := newTestLimiter(t, 0.001, 1)

	allowed, err := limiter.Allow(context.Background(), "10.0.0.3")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = limiter.Allow(context.Background(), "10.0.0.3")
	require.NoError(t, err)
	require.False(t, allowed)

	allowed, err = limiter.Allow(context.Background(), "10.0.0.4")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestNilLimiterFailsOpen(t *testing.T) {
	var limiter *Limiter

	allowed, err := limiter.Allow(context.Background(), "10.0.0.5")
	require.NoError(t, err)
	assert.True(t, allowed)
}
