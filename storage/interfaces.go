package storage

import (
	"context"

	"github.com/poiesic/loci/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// FeedbackRepository provides operations for managing user feedback events.
type FeedbackRepository interface {
	Repository
	// AddFeedback adds one or more feedback events to storage.
	// Generates new IDs from a sequence and sets CreatedAt when unset.
	// Events failing validation reject the whole batch.
	// Returns the events with generated IDs and timestamps populated.
	AddFeedback(ctx context.Context, events ...*core.Feedback) ([]*core.Feedback, error)

	// GetFeedback retrieves a single feedback event by ID.
	// Returns ErrNotFound if the event doesn't exist.
	GetFeedback(ctx context.Context, id core.ID) (*core.Feedback, error)

	// GetRecentFeedbackByUser retrieves up to limit feedback events for a
	// user, ordered by event time descending (most recent first).
	GetRecentFeedbackByUser(ctx context.Context, userID string, limit int) ([]*core.Feedback, error)

	// DeleteFeedbackByUser removes every feedback event for a user.
	// Returns the number of events removed; zero with no error when the
	// user has no history.
	DeleteFeedbackByUser(ctx context.Context, userID string) (int, error)
}
