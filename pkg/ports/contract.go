package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunLogStoreContract runs a suite of tests to verify that a LogStore implementation
// adheres to the defined interface contract.
func RunLogStoreContract(t *testing.T, store LogStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		cp := domain.NewCheckpoint(sessionID, "Order", []string{"yes", "42", "!literal"})

		err := store.Save(ctx, sessionID, cp)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.SessionID)
		assert.Equal(t, "Order", loaded.TypeName)
		assert.Equal(t, []string{"yes", "42", "!literal"}, loaded.Answers)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewCheckpoint(sessionID, "Order", []string{"no"})))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, []string{"no"}, loaded.Answers)
	})

	t.Run("Stored Copy Is Isolated", func(t *testing.T) {
		cp := domain.NewCheckpoint(sessionID, "Order", []string{"a"})
		require.NoError(t, store.Save(ctx, sessionID, cp))
		cp.Answers[0] = "mutated"

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, loaded.Answers)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewCheckpoint(sessionID, "", nil))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewCheckpoint(id1, "", nil))
		_ = store.Save(ctx, id2, domain.NewCheckpoint(id2, "", nil))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
