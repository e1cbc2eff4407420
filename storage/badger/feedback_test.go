package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/loci/core"
	"github.com/poiesic/loci/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.FeedbackRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func TestAddFeedback(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	events, err := repo.AddFeedback(ctx,
		&core.Feedback{UserID: "alice", PlaceID: "osm:node:1", Action: core.ActionLike, CategoryHint: "amenity:cafe"},
		&core.Feedback{UserID: "alice", PlaceID: "osm:node:2", Action: core.ActionDislike},
	)
	require.NoError(t, err)
	require.Len(t, events, 2)

	for _, event := range events {
		assert.NotZero(t, event.Id, "sequence should assign a non-zero ID")
		assert.False(t, event.CreatedAt.IsZero(), "CreatedAt should be set")
	}
	assert.NotEqual(t, events[0].Id, events[1].Id)
}

func TestAddFeedbackInvalid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.AddFeedback(ctx, &core.Feedback{PlaceID: "osm:node:1", Action: core.ActionLike})
		assert.ErrorIs(t, err, core.ErrInvalidFeedback)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := repo.AddFeedback(ctx, &core.Feedback{UserID: "alice", PlaceID: "osm:node:1", Action: core.Action(99)})
		assert.ErrorIs(t, err, core.ErrInvalidAction)
	})

	t.Run("nil event", func(t *testing.T) {
		_, err := repo.AddFeedback(ctx, nil)
		assert.ErrorIs(t, err, core.ErrInvalidFeedback)
	})
}

func TestGetFeedback(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	events, err := repo.AddFeedback(ctx, &core.Feedback{
		UserID:       "bob",
		PlaceID:      "osm:way:7",
		Action:       core.ActionClick,
		CategoryHint: "leisure:park",
	})
	require.NoError(t, err)

	got, err := repo.GetFeedback(ctx, events[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.UserID)
	assert.Equal(t, "osm:way:7", got.PlaceID)
	assert.Equal(t, core.ActionClick, got.Action)
	assert.Equal(t, "leisure:park", got.CategoryHint)

	_, err = repo.GetFeedback(ctx, core.ID(999999))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetRecentFeedbackByUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)

	// Insert out of chronological order; the index must still return events
	// newest first.
	_, err := repo.AddFeedback(ctx,
		&core.Feedback{UserID: "alice", PlaceID: "p2", Action: core.ActionLike, CreatedAt: base.Add(20 * time.Minute)},
		&core.Feedback{UserID: "alice", PlaceID: "p1", Action: core.ActionLike, CreatedAt: base.Add(10 * time.Minute)},
		&core.Feedback{UserID: "alice", PlaceID: "p3", Action: core.ActionDislike, CreatedAt: base.Add(30 * time.Minute)},
		&core.Feedback{UserID: "carol", PlaceID: "p9", Action: core.ActionLike, CreatedAt: base.Add(40 * time.Minute)},
	)
	require.NoError(t, err)

	t.Run("descending by event time", func(t *testing.T) {
		events, err := repo.GetRecentFeedbackByUser(ctx, "alice", 50)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, "p3", events[0].PlaceID)
		assert.Equal(t, "p2", events[1].PlaceID)
		assert.Equal(t, "p1", events[2].PlaceID)
	})

	t.Run("limit applies", func(t *testing.T) {
		events, err := repo.GetRecentFeedbackByUser(ctx, "alice", 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "p3", events[0].PlaceID)
	})

	t.Run("unknown user is empty, not an error", func(t *testing.T) {
		events, err := repo.GetRecentFeedbackByUser(ctx, "nobody", 50)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestDeleteFeedbackByUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddFeedback(ctx,
		&core.Feedback{UserID: "alice", PlaceID: "p1", Action: core.ActionLike},
		&core.Feedback{UserID: "alice", PlaceID: "p2", Action: core.ActionClick},
		&core.Feedback{UserID: "bob", PlaceID: "p3", Action: core.ActionLike},
	)
	require.NoError(t, err)

	deleted, err := repo.DeleteFeedbackByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	events, err := repo.GetRecentFeedbackByUser(ctx, "alice", 50)
	require.NoError(t, err)
	assert.Empty(t, events)

	// Other users are untouched.
	events, err = repo.GetRecentFeedbackByUser(ctx, "bob", 50)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// Deleting again is a no-op.
	deleted, err = repo.DeleteFeedbackByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
