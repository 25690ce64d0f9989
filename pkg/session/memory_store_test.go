package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/session"
)

func newTestSession(ttl time.Duration) *session.Session {
	now := time.Now()
	return &session.Session{
		Token:     uuid.NewString(),
		UserID:    uuid.New(),
		Email:     "user@example.com",
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)

		s := newTestSession(time.Hour)
		require.NoError(t, store.Create(ctx, s))

		got, err := store.Get(ctx, s.Token)
		require.NoError(t, err)
		assert.Equal(t, s.UserID, got.UserID)
		assert.Equal(t, s.Email, got.Email)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)

		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("expired session", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)

		s := newTestSession(-time.Minute)
		require.NoError(t, store.Create(ctx, s))

		_, err := store.Get(ctx, s.Token)
		assert.ErrorIs(t, err, session.ErrSessionExpired)

		// Expired records are dropped on read.
		_, err = store.Get(ctx, s.Token)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)

		s := newTestSession(time.Hour)
		require.NoError(t, store.Create(ctx, s))
		require.NoError(t, store.Delete(ctx, s.Token))

		_, err := store.Get(ctx, s.Token)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)

		// Deleting again is a no-op.
		require.NoError(t, store.Delete(ctx, s.Token))
	})

	t.Run("rejects incomplete session", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore(0)

		assert.ErrorIs(t, store.Create(ctx, nil), session.ErrInvalidSession)
		assert.ErrorIs(t, store.Create(ctx, &session.Session{}), session.ErrInvalidSession)
	})
}
