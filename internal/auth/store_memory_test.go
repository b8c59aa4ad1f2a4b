package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemorySessionStore()

	session := Session{
		ID:        uuid.New(),
		SubjectID: "subj-1",
		Role:      RoleClient,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	t.Run("save then find", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, session))
		found, err := store.FindByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, session, found)
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := store.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("delete removes the session", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, session.ID))
		_, err := store.FindByID(ctx, session.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("double delete reports not found", func(t *testing.T) {
		assert.ErrorIs(t, store.Delete(ctx, session.ID), ErrSessionNotFound)
	})
}
