package adapters

import (
	"context"
	"testing"

	"checkout-gateway/internal/core/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RedisTokenStore {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return NewRedisTokenStore(adapter)
}

func TestRedisTokenStore_SaveAndExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "guest_abc")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Save(ctx, "guest_abc"))

	exists, err = store.Exists(ctx, "guest_abc")
	require.NoError(t, err)
	assert.True(t, exists)

	// Saving the same token again is idempotent.
	require.NoError(t, store.Save(ctx, "guest_abc"))
	exists, err = store.Exists(ctx, "guest_abc")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisTokenStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "guest_abc"))
	require.NoError(t, store.Delete(ctx, "guest_abc"))

	exists, err := store.Exists(ctx, "guest_abc")
	require.NoError(t, err)
	assert.False(t, exists)
}
