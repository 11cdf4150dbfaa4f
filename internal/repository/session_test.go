package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/session"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshot(t *testing.T, id string) session.Snapshot {
	t.Helper()

	options := session.DefaultOptions()
	options.Seed = 1

	game, err := session.New(id, options)
	require.NoError(t, err)
	require.NoError(t, game.SubmitHumanMove(4))

	return game.Snapshot()
}

// testSessionRepository is the behaviour every SessionRepository shares.
func testSessionRepository(ctx context.Context, t *testing.T, repo SessionRepository) {
	t.Helper()

	t.Run("GetByID_Success", func(t *testing.T) {
		// Given: a stored snapshot
		snapshot := newSnapshot(t, "123")
		require.NoError(t, repo.CreateOrUpdate(ctx, snapshot))

		// When: it is read back
		stored, err := repo.GetByID(ctx, "123")

		// Then: it matches what was written
		require.NoError(t, err)
		assert.Equal(t, snapshot, stored)

		restored, err := session.Restore(stored, 1)
		require.NoError(t, err)
		assert.Equal(t, session.StateAwaitingMachineMove, restored.State())
	})

	t.Run("CreateOrUpdate_Overwrites", func(t *testing.T) {
		snapshot := newSnapshot(t, "456")
		require.NoError(t, repo.CreateOrUpdate(ctx, snapshot))

		snapshot.Difficulty = "random"
		require.NoError(t, repo.CreateOrUpdate(ctx, snapshot))

		stored, err := repo.GetByID(ctx, "456")
		require.NoError(t, err)
		assert.Equal(t, snapshot.Difficulty, stored.Difficulty)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_Success", func(t *testing.T) {
		snapshot := newSnapshot(t, "789")
		require.NoError(t, repo.CreateOrUpdate(ctx, snapshot))

		require.NoError(t, repo.DeleteByID(ctx, "789"))

		_, err := repo.GetByID(ctx, "789")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		err := repo.DeleteByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionRepository_Redis(t *testing.T) {
	ctx, st := suite.New(t)

	testSessionRepository(ctx, t, NewSessionRepository(st.Storage, time.Minute))

	t.Run("Client built from the configured address", func(t *testing.T) {
		// Given: a client created the way the application does it
		client, err := storage.New(ctx, st.RedisAddr)
		require.NoError(t, err)
		t.Cleanup(func() {
			if err := client.Close(); err != nil {
				st.Logger.Error("could not close redis client", "error", err)
			}
		})

		// When: a snapshot is written through the shared suite client
		snapshot := newSnapshot(t, "addr")
		require.NoError(t, NewSessionRepository(st.Storage, time.Minute).CreateOrUpdate(ctx, snapshot))

		// Then: the new client sees it
		stored, err := NewSessionRepository(client, time.Minute).GetByID(ctx, "addr")
		require.NoError(t, err)
		assert.Equal(t, snapshot, stored)
	})

	t.Run("Keys expire with the configured TTL", func(t *testing.T) {
		snapshot := newSnapshot(t, "ttl")
		require.NoError(t, NewSessionRepository(st.Storage, time.Minute).CreateOrUpdate(ctx, snapshot))

		ttl, err := st.Storage.TTL(ctx, sessionKeyPrefix+"ttl").Result()

		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})
}

func TestSessionRepository_Memory(t *testing.T) {
	testSessionRepository(context.Background(), t, NewMemorySessionRepository())
}
