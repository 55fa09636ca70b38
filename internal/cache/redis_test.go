package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisBackend(t *testing.T) (*RedisBackend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	b, err := NewRedisBackend(rdb, "test", time.Hour)
	require.NoError(t, err)
	return b, mr
}

func TestRedisBackend_RoundTrip(t *testing.T) {
	b, mr := newRedisBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "calendar:1", []byte(`{"a":1}`), []string{"item:1"}, time.Minute))

	got, ok, err := b.Get(ctx, "calendar:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), got)

	assert.True(t, mr.Exists("test:entry:calendar:1"))
	members, err := mr.Members("test:tag:item:1")
	require.NoError(t, err)
	assert.Equal(t, []string{"test:entry:calendar:1"}, members)
	assert.Equal(t, time.Minute, mr.TTL("test:entry:calendar:1"))
}

func TestRedisBackend_Miss(t *testing.T) {
	b, _ := newRedisBackend(t)

	_, ok, err := b.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisBackend_Expiry(t *testing.T) {
	b, mr := newRedisBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "k", []byte("v"), nil, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisBackend_TTLCappedByTagTTL(t *testing.T) {
	b, mr := newRedisBackend(t)

	require.NoError(t, b.Set(context.Background(), "k", []byte("v"), []string{"item:1"}, 24*time.Hour))

	assert.Equal(t, time.Hour, mr.TTL("test:entry:k"))
	assert.Equal(t, time.Hour, mr.TTL("test:tag:item:1"))
}

func TestRedisBackend_InvalidateTag(t *testing.T) {
	b, mr := newRedisBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "a", []byte("1"), []string{"timeframe:5"}, time.Minute))
	require.NoError(t, b.Set(ctx, "b", []byte("2"), []string{"timeframe:5", "item:1"}, time.Minute))
	require.NoError(t, b.Set(ctx, "c", []byte("3"), []string{"item:2"}, time.Minute))

	removed, err := b.InvalidateTag(ctx, "timeframe:5")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	assert.False(t, mr.Exists("test:entry:a"))
	assert.False(t, mr.Exists("test:entry:b"))
	assert.False(t, mr.Exists("test:tag:timeframe:5"))
	assert.True(t, mr.Exists("test:entry:c"))

	removed, err = b.InvalidateTag(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestRedisBackend_InvalidateTag_LargeTag(t *testing.T) {
	b, mr := newRedisBackend(t)
	ctx := context.Background()

	const entries = 2500
	for i := 0; i < entries; i++ {
		require.NoError(t, b.Set(ctx, fmt.Sprintf("calendar:%d", i), []byte("x"), []string{"item:1"}, time.Minute))
	}
	require.NoError(t, b.Set(ctx, "other", []byte("y"), []string{"item:2"}, time.Minute))

	removed, err := b.InvalidateTag(ctx, "item:1")
	require.NoError(t, err)
	assert.Equal(t, entries, removed)

	assert.False(t, mr.Exists("test:tag:item:1"))
	assert.False(t, mr.Exists("test:entry:calendar:0"))
	assert.False(t, mr.Exists(fmt.Sprintf("test:entry:calendar:%d", entries-1)))
	assert.True(t, mr.Exists("test:entry:other"))
}

func TestNewRedisBackend_NilClient(t *testing.T) {
	_, err := NewRedisBackend(nil, "x", time.Hour)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
