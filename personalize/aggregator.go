package personalize

import (
	"context"
	"log/slog"

	"github.com/poiesic/loci/core"
	"github.com/poiesic/loci/storage"
)

const (
	// DefaultHistoryLimit is how many recent feedback events are read per user.
	DefaultHistoryLimit = 50

	// boostStep is the per-event contribution to a category boost.
	boostStep = 0.02

	// boostCap bounds each directional contribution. Positive and negative
	// contributions are capped independently before summing; the net value
	// is not re-capped.
	boostCap = 0.10
)

// Aggregator converts a user's recent feedback into per-category boosts.
type Aggregator struct {
	feedbackRepository storage.FeedbackRepository
	logger             *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAggregator creates a new aggregator.
func NewAggregator(feedbackRepository storage.FeedbackRepository, opts ...Option) (*Aggregator, error) {
	if feedbackRepository == nil {
		return nil, ErrFeedbackRepositoryRequired
	}

	a := &Aggregator{
		feedbackRepository: feedbackRepository,
		logger:             slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Boosts reads up to historyLimit of the user's most recent feedback events
// and converts them to per-category boosts. Likes and clicks count as
// positive signals, dislikes as negative; events without a category hint are
// ignored. Each direction contributes at most boostCap before summing.
//
// A user with no qualifying history yields an empty map, not an error.
// historyLimit values <= 0 fall back to DefaultHistoryLimit.
func (a *Aggregator) Boosts(ctx context.Context, userID string, historyLimit int) (core.BoostMap, error) {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}

	events, err := a.feedbackRepository.GetRecentFeedbackByUser(ctx, userID, historyLimit)
	if err != nil {
		a.logger.Error("failed to read feedback history", "userID", userID, "err", err)
		return nil, err
	}

	positive := make(map[string]int)
	negative := make(map[string]int)
	for _, event := range events {
		if event.CategoryHint == "" {
			continue
		}
		switch event.Action {
		case core.ActionLike, core.ActionClick:
			positive[event.CategoryHint]++
		case core.ActionDislike:
			negative[event.CategoryHint]++
		}
	}

	boosts := make(core.BoostMap, len(positive)+len(negative))
	for category, count := range positive {
		boosts[category] += min(boostCap, boostStep*float64(count))
	}
	for category, count := range negative {
		boosts[category] -= min(boostCap, boostStep*float64(count))
	}

	a.logger.Debug("computed personalization boosts",
		"userID", userID, "events", len(events), "categories", len(boosts))
	return boosts, nil
}
