package store

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attempts struct {
	Count  int64  `redis:"count"`
	Reason string `redis:"reason"`
}

func TestMemoryStoreSetGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[attempts]()

	_, err := s.Get(ctx, "ip:1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "ip:1", attempts{Count: 3, Reason: "burst"}, 0))
	got, err := s.Get(ctx, "ip:1")
	require.NoError(t, err)
	assert.Equal(t, attempts{Count: 3, Reason: "burst"}, *got)

	require.NoError(t, s.Del(ctx, "ip:1"))
	_, err = s.Get(ctx, "ip:1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreIncrAttr(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[attempts]()

	for i := int64(1); i <= 3; i++ {
		n, err := s.IncrAttr(ctx, "ip:1", "count", 1)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	got, err := s.Get(ctx, "ip:1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Count)

	_, err = s.IncrAttr(ctx, "ip:1", "count", 2)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "ip:2", attempts{Reason: "x"}, 0))
	_, err = s.IncrAttr(ctx, "ip:2", "reason", 1)
	assert.Error(t, err)
}

func TestMemoryStoreExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := NewMemoryStore[attempts]()
	s.now = func() time.Time { return now }

	_, err := s.IncrAttr(ctx, "ip:1", "count", 1)
	require.NoError(t, err)
	require.NoError(t, s.Expire(ctx, "ip:1", time.Minute))

	now = now.Add(59 * time.Second)
	_, err = s.Get(ctx, "ip:1")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = s.Get(ctx, "ip:1")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := s.IncrAttr(ctx, "ip:1", "count", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPrefixedStorage(t *testing.T) {
	shared := memory.New()
	sessions := NewPrefixedStorage(shared, "session:")

	require.NoError(t, sessions.Set("abc", []byte("data"), 0))
	raw, err := shared.Get("session:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), raw)

	val, err := sessions.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), val)

	require.NoError(t, sessions.Delete("abc"))
	raw, err = shared.Get("session:abc")
	require.NoError(t, err)
	assert.Nil(t, raw)
}
