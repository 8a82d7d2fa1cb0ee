package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"varotra-backend-go/internal/models"
	"varotra-backend-go/internal/store"
)

func TestManagerReturnsSameWorkspacePerOwner(t *testing.T) {
	_, src := newFixtures()
	m := NewManager(src, zap.NewNop(), Options{})
	t.Cleanup(m.Close)

	ws1, err := m.Workspace(context.Background(), "u1")
	require.NoError(t, err)
	ws2, err := m.Workspace(context.Background(), "u1")
	require.NoError(t, err)
	other, err := m.Workspace(context.Background(), "u2")
	require.NoError(t, err)

	assert.Same(t, ws1, ws2)
	assert.NotSame(t, ws1, other)
}

func TestManagerRequiresOwner(t *testing.T) {
	_, src := newFixtures()
	m := NewManager(src, zap.NewNop(), Options{})

	_, err := m.Workspace(context.Background(), "")
	assert.ErrorIs(t, err, store.ErrNotAuthenticated)
}

func TestManagerLocalOnly(t *testing.T) {
	_, src := newFixtures()
	m := NewManager(src, zap.NewNop(), Options{LocalOnly: true})
	t.Cleanup(m.Close)

	ws, err := m.Workspace(context.Background(), "u1")
	require.NoError(t, err)

	state, _ := ws.State()
	assert.Equal(t, StateLocal, state)
}

func TestManagerInitializesOnFirstAccess(t *testing.T) {
	_, src := newFixtures()
	m := NewManager(src, zap.NewNop(), Options{})
	t.Cleanup(m.Close)

	ws, err := m.Workspace(context.Background(), "u1")
	require.NoError(t, err)

	state, _ := ws.State()
	assert.Equal(t, StateReady, state)
}

func TestApplyPatchPairEncodedDate(t *testing.T) {
	due := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	reminder := models.Reminder{Title: "Restock", DueDate: time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)}

	err := applyPatch(&reminder, map[string]any{
		"dueDate": map[string]any{"seconds": due.Unix(), "nanoseconds": int64(0)},
	})
	require.NoError(t, err)

	assert.True(t, due.Equal(reminder.DueDate), "pair-encoded dates decode before merging")
	assert.Equal(t, "Restock", reminder.Title)
}

func TestApplyPatchSkipsImmutableFields(t *testing.T) {
	contact := models.Contact{Meta: models.Meta{ID: "c1", UserID: "u1"}, Name: "Rasoa"}

	err := applyPatch(&contact, map[string]any{
		"id":     "hacked",
		"userId": "u2",
		"name":   "Rasoa A.",
	})
	require.NoError(t, err)

	assert.Equal(t, "c1", contact.ID)
	assert.Equal(t, "u1", contact.UserID)
	assert.Equal(t, "Rasoa A.", contact.Name)
}
