package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/khanghh/signup/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterAllow(t *testing.T) {
	ctx := context.Background()
	limiter := NewLimiter(store.NewMemoryStore[Attempts](), 3, time.Minute)

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Allow(ctx, "register:10.0.0.1"))
	}
	assert.ErrorIs(t, limiter.Allow(ctx, "register:10.0.0.1"), ErrTooManyAttempts)
	assert.NoError(t, limiter.Allow(ctx, "register:10.0.0.2"))

	require.NoError(t, limiter.Reset(ctx, "register:10.0.0.1"))
	assert.NoError(t, limiter.Allow(ctx, "register:10.0.0.1"))
}

func TestLimiterWindowExpires(t *testing.T) {
	ctx := context.Background()
	limiter := NewLimiter(store.NewMemoryStore[Attempts](), 1, 20*time.Millisecond)

	require.NoError(t, limiter.Allow(ctx, "k"))
	assert.ErrorIs(t, limiter.Allow(ctx, "k"), ErrTooManyAttempts)

	time.Sleep(30 * time.Millisecond)
	assert.NoError(t, limiter.Allow(ctx, "k"))
}

func TestLimiterDisabled(t *testing.T) {
	ctx := context.Background()
	limiter := NewLimiter(store.NewMemoryStore[Attempts](), 0, time.Minute)
	for i := 0; i < 10; i++ {
		assert.NoError(t, limiter.Allow(ctx, "k"))
	}
}
