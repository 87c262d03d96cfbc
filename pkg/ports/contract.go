package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turlang/tur/pkg/domain"
)

// RunSessionStoreContract runs a suite of tests to verify that a
// SessionStore implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	program := &domain.Program{
		Name:         "contract",
		InitialState: "start",
		Tapes:        []string{"ab"},
		Heads:        []int{0},
		Blank:        ' ',
		Rules: map[string][]domain.Transition{
			"start": {{
				Read:       []rune{'a'},
				Write:      []rune{'b'},
				Directions: []domain.Direction{domain.Right},
				NextState:  domain.HaltState,
			}},
		},
	}

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession(sessionID, program)
		session.Snapshot.Steps = 7
		session.Snapshot.State = domain.HaltState

		require.NoError(t, store.Save(ctx, session), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.ID)
		assert.Equal(t, 7, loaded.Snapshot.Steps)
		assert.Equal(t, domain.HaltState, loaded.Snapshot.State)
		require.NotNil(t, loaded.Program)
		assert.Equal(t, program.Name, loaded.Program.Name)
		assert.Equal(t, program.Rules["start"], loaded.Program.Rules["start"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewSession(sessionID, program)))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, domain.NewSession(id1, program)))
		require.NoError(t, store.Save(ctx, domain.NewSession(id2, program)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
