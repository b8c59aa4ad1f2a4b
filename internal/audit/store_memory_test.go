package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_AppendThenList(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	event := Event{
		ID:        uuid.New(),
		UserType:  UserTypeAdmin,
		UserName:  "Jane Doe",
		Action:    ActionLogin,
		Timestamp: time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Append(ctx, event))

	events, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event, events[0])
}

func TestInMemoryStore_ListReturnsACopy(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	require.NoError(t, store.Append(ctx, Event{ID: uuid.New(), Action: ActionLogin}))

	first, err := store.List(ctx)
	require.NoError(t, err)
	first[0].UserName = "mutated"

	second, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second[0].UserName)
}
