package audit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(action Action, ts time.Time) Event {
	return Event{
		ID:        uuid.New(),
		UserType:  UserTypeAdmin,
		UserName:  "Jane Doe",
		Action:    action,
		Timestamp: ts,
	}
}

func TestPresent_OrdersMostRecentFirst(t *testing.T) {
	base := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	t1 := eventAt(ActionLogin, base.Add(time.Hour))    // 10:00
	t2 := eventAt(ActionLogout, base)                  // 09:00
	t3 := eventAt(ActionLogin, base.Add(2*time.Hour))  // 11:00

	// Snapshot order is arbitrary; the viewer establishes its own order.
	presentation := Present([]Event{t1, t2, t3})

	require.False(t, presentation.Empty)
	require.Len(t, presentation.Entries, 3)
	assert.Equal(t, t3.ID, presentation.Entries[0].ID)
	assert.Equal(t, t1.ID, presentation.Entries[1].ID)
	assert.Equal(t, t2.ID, presentation.Entries[2].ID)
}

func TestPresent_EmptySnapshotIsDistinct(t *testing.T) {
	for name, input := range map[string][]Event{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			presentation := Present(input)
			assert.True(t, presentation.Empty)
			assert.Equal(t, EmptyPlaceholder, presentation.Placeholder)
			assert.Empty(t, presentation.Entries)
		})
	}
}

func TestPresent_CategorizesByAction(t *testing.T) {
	now := time.Now()
	presentation := Present([]Event{
		eventAt(ActionLogin, now),
		eventAt(ActionLogout, now.Add(-time.Minute)),
		eventAt(Action("archived"), now.Add(-2*time.Minute)),
	})

	require.Len(t, presentation.Entries, 3)
	assert.Equal(t, CategoryLogin, presentation.Entries[0].Category)
	assert.Equal(t, CategoryLogout, presentation.Entries[1].Category)
	assert.Equal(t, CategoryOther, presentation.Entries[2].Category,
		"unrecognized actions render under the generic category instead of failing")
}

func TestPresent_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	events := []Event{
		eventAt(ActionLogin, base),
		eventAt(ActionLogin, base.Add(time.Hour)),
	}
	original := append([]Event{}, events...)

	_ = Present(events)

	assert.Equal(t, original, events)
}
