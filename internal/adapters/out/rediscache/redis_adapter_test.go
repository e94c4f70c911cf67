package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) *RedisAdapter {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = adapter.Close() })
	return adapter
}

func TestRedisAdapter_GetSet(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	err := adapter.Set(ctx, "shipments:status:in_transit", []byte(`[{"id":"abc"}]`), 10*time.Second)
	require.NoError(t, err)

	value, ok, err := adapter.Get(ctx, "shipments:status:in_transit")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[{"id":"abc"}]`), value)
}

func TestRedisAdapter_GetMiss(t *testing.T) {
	adapter := newTestAdapter(t)

	value, ok, err := adapter.Get(context.Background(), "no_such_key")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "key", []byte("value"), time.Minute))
	require.NoError(t, adapter.Delete(ctx, "key"))

	_, ok, err := adapter.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisAdapter_Ping(t *testing.T) {
	adapter := newTestAdapter(t)

	require.NoError(t, adapter.Ping(context.Background()))
}

func TestNewRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("not-a-url")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
