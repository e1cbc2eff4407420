package personalize

import (
	"context"
	"testing"

	"github.com/poiesic/loci/core"
	"github.com/poiesic/loci/storage"
	"github.com/poiesic/loci/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(t *testing.T) (*Aggregator, storage.FeedbackRepository) {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	agg, err := NewAggregator(repo)
	require.NoError(t, err)
	return agg, repo
}

func addEvents(t *testing.T, repo storage.FeedbackRepository, userID, hint string, action core.Action, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := repo.AddFeedback(context.Background(), &core.Feedback{
			UserID:       userID,
			PlaceID:      "osm:node:1",
			Action:       action,
			CategoryHint: hint,
		})
		require.NoError(t, err)
	}
}

func TestNewAggregator(t *testing.T) {
	t.Run("nil repository", func(t *testing.T) {
		_, err := NewAggregator(nil)
		assert.Equal(t, ErrFeedbackRepositoryRequired, err)
	})

	t.Run("valid", func(t *testing.T) {
		agg, _ := newTestAggregator(t)
		assert.NotNil(t, agg)
	})
}

func TestBoostsEmptyHistory(t *testing.T) {
	agg, _ := newTestAggregator(t)

	boosts, err := agg.Boosts(context.Background(), "nobody", DefaultHistoryLimit)
	require.NoError(t, err)
	assert.Empty(t, boosts)
}

func TestBoostsPositiveCapped(t *testing.T) {
	agg, repo := newTestAggregator(t)

	// 6 likes would give 0.12; capped at 0.10.
	addEvents(t, repo, "alice", "amenity:cafe", core.ActionLike, 6)

	boosts, err := agg.Boosts(context.Background(), "alice", DefaultHistoryLimit)
	require.NoError(t, err)
	assert.InDelta(t, 0.10, boosts["amenity:cafe"], 1e-12)
}

func TestBoostsClicksArePositive(t *testing.T) {
	agg, repo := newTestAggregator(t)

	addEvents(t, repo, "alice", "leisure:park", core.ActionClick, 2)

	boosts, err := agg.Boosts(context.Background(), "alice", DefaultHistoryLimit)
	require.NoError(t, err)
	assert.InDelta(t, 0.04, boosts["leisure:park"], 1e-12)
}

func TestBoostsMixedSignals(t *testing.T) {
	agg, repo := newTestAggregator(t)

	// 3 likes (+0.06) and 2 dislikes (-0.04) net to +0.02.
	addEvents(t, repo, "alice", "amenity:bar", core.ActionLike, 3)
	addEvents(t, repo, "alice", "amenity:bar", core.ActionDislike, 2)

	boosts, err := agg.Boosts(context.Background(), "alice", DefaultHistoryLimit)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, boosts["amenity:bar"], 1e-12)
}

func TestBoostsNegativeCapped(t *testing.T) {
	agg, repo := newTestAggregator(t)

	addEvents(t, repo, "alice", "amenity:fast_food", core.ActionDislike, 9)

	boosts, err := agg.Boosts(context.Background(), "alice", DefaultHistoryLimit)
	require.NoError(t, err)
	assert.InDelta(t, -0.10, boosts["amenity:fast_food"], 1e-12)
}

func TestBoostsIgnoresMissingHint(t *testing.T) {
	agg, repo := newTestAggregator(t)

	addEvents(t, repo, "alice", "", core.ActionLike, 4)
	addEvents(t, repo, "alice", "amenity:cafe", core.ActionLike, 1)

	boosts, err := agg.Boosts(context.Background(), "alice", DefaultHistoryLimit)
	require.NoError(t, err)
	require.Len(t, boosts, 1)
	assert.InDelta(t, 0.02, boosts["amenity:cafe"], 1e-12)
}

func TestBoostsHistoryLimit(t *testing.T) {
	agg, repo := newTestAggregator(t)

	// 10 likes, but only the 3 most recent are read with limit 3.
	addEvents(t, repo, "alice", "amenity:cafe", core.ActionLike, 10)

	boosts, err := agg.Boosts(context.Background(), "alice", 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.06, boosts["amenity:cafe"], 1e-12)
}
