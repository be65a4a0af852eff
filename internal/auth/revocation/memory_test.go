package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	t.Run("unknown jti is not revoked", func(t *testing.T) {
		store := NewInMemory()

		revoked, err := store.IsTokenRevoked(context.Background(), "unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked jti stays revoked until its deadline", func(t *testing.T) {
		store := NewInMemory()
		require.NoError(t, store.Revoke(context.Background(), "jti-1", time.Now().Add(time.Hour)))

		revoked, err := store.IsTokenRevoked(context.Background(), "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired entries are pruned on access", func(t *testing.T) {
		store := NewInMemory()
		require.NoError(t, store.Revoke(context.Background(), "jti-1", time.Now().Add(-time.Minute)))

		revoked, err := store.IsTokenRevoked(context.Background(), "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)

		store.mu.RLock()
		_, still := store.revoked["jti-1"]
		store.mu.RUnlock()
		assert.False(t, still)
	})
}
