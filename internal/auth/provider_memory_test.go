package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsportal/pkg/sentinel"
)

func TestMemoryProvider_SignIn(t *testing.T) {
	provider := NewMemoryProvider()
	require.NoError(t, provider.Register(Identity{
		SubjectID:   "subj-1",
		Email:       "jane@example.com",
		DisplayName: "Jane Doe",
	}, "hunter2"))

	t.Run("accepts the registered pair", func(t *testing.T) {
		identity, err := provider.SignIn(context.Background(), "jane@example.com", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "subj-1", identity.SubjectID)
		assert.Equal(t, "Jane Doe", identity.DisplayName)
	})

	t.Run("email lookup is case and whitespace insensitive", func(t *testing.T) {
		_, err := provider.SignIn(context.Background(), "  Jane@Example.COM ", "hunter2")
		require.NoError(t, err)
	})

	t.Run("wrong password is a credential mismatch", func(t *testing.T) {
		_, err := provider.SignIn(context.Background(), "jane@example.com", "wrong")
		assert.ErrorIs(t, err, sentinel.ErrCredentialMismatch)
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		_, err := provider.SignIn(context.Background(), "nobody@example.com", "hunter2")
		assert.ErrorIs(t, err, sentinel.ErrCredentialMismatch)
	})
}
