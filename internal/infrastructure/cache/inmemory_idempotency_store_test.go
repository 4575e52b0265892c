package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("marks a new key as processed", func(t *testing.T) {
		fresh, err := store.MarkProcessed(ctx, "commit-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, fresh, "new key should return true")
	})

	t.Run("returns false for a repeated key", func(t *testing.T) {
		fresh, err := store.MarkProcessed(ctx, "commit-2", time.Hour)
		require.NoError(t, err)
		assert.True(t, fresh)

		fresh, err = store.MarkProcessed(ctx, "commit-2", time.Hour)
		require.NoError(t, err)
		assert.False(t, fresh, "repeated key should return false")
	})

	t.Run("accepts the key again after expiration", func(t *testing.T) {
		fresh, err := store.MarkProcessed(ctx, "commit-3", 10*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, fresh)

		time.Sleep(20 * time.Millisecond)

		fresh, err = store.MarkProcessed(ctx, "commit-3", 10*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, fresh, "expired key should be accepted again")
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("unknown key reads as not processed", func(t *testing.T) {
		processed, err := store.IsProcessed(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, processed)
	})

	t.Run("marked key reads as processed until expiry", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "commit-4", 10*time.Millisecond)
		require.NoError(t, err)

		processed, err := store.IsProcessed(ctx, "commit-4")
		require.NoError(t, err)
		assert.True(t, processed)

		time.Sleep(20 * time.Millisecond)

		processed, err = store.IsProcessed(ctx, "commit-4")
		require.NoError(t, err)
		assert.False(t, processed)
	})
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "commit-5", 1*time.Millisecond)
	require.NoError(t, err)
	_, err = store.MarkProcessed(ctx, "commit-6", time.Hour)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	store.cleanup()

	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()

	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "close must be idempotent")
}
