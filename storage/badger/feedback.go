package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/loci/core"
	"github.com/poiesic/loci/storage"
)

// FeedbackRepository implements storage.FeedbackRepository for BadgerDB.
type FeedbackRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(backend *Backend) (*FeedbackRepository, error) {
	idSeq, err := backend.GetSequence(feedbackIDSeq)
	if err != nil {
		return nil, err
	}

	return &FeedbackRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *FeedbackRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *FeedbackRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddFeedback adds one or more feedback events to storage.
func (r *FeedbackRepository) AddFeedback(ctx context.Context, events ...*core.Feedback) ([]*core.Feedback, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, event := range events {
			if event != nil && event.CreatedAt.IsZero() {
				event.CreatedAt = time.Now().UTC()
			}
			if err := core.ValidateFeedback(event); err != nil {
				return err
			}

			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			event.Id = core.ID(nextID)

			// Store primary record
			key := makeFeedbackKey(event.Id)
			value := storage.MarshalFeedback(event)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update per-user time index
			userKey := makeFeedbackUserKey(event.UserID, event.CreatedAt, event.Id)
			if err := tx.Set(userKey, storage.MarshalID(event.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return events, err
}

// GetFeedback retrieves a single feedback event by ID.
func (r *FeedbackRepository) GetFeedback(ctx context.Context, id core.ID) (*core.Feedback, error) {
	var result *core.Feedback
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFeedbackKey(id)
		var err error
		result, err = r.readFeedback(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetRecentFeedbackByUser retrieves up to limit feedback events for a user,
// ordered by event time descending.
func (r *FeedbackRepository) GetRecentFeedbackByUser(ctx context.Context, userID string, limit int) ([]*core.Feedback, error) {
	var results []*core.Feedback
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent events first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible index key for this user
		startKey := makePartialFeedbackUserKey(userID, time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := feedbackUserKeyPrefix(userID)

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in this user's index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			// Read the ID from the index
			var eventID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				eventID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full event
			eventKey := makeFeedbackKey(eventID)
			event, err := r.readFeedback(tx, eventKey)
			if err != nil {
				return err
			}
			if event != nil {
				results = append(results, event)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteFeedbackByUser removes every feedback event for a user.
func (r *FeedbackRepository) DeleteFeedbackByUser(ctx context.Context, userID string) (int, error) {
	deleted := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := feedbackUserKeyPrefix(userID)

		// Collect keys first; deleting while iterating invalidates the iterator.
		var indexKeys [][]byte
		var eventIDs []core.ID

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().KeyCopy(nil)

			var eventID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				eventID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				iter.Close()
				return err
			}

			indexKeys = append(indexKeys, key)
			eventIDs = append(eventIDs, eventID)
		}
		iter.Close()

		for i, key := range indexKeys {
			if err := tx.Delete(key); err != nil {
				return err
			}
			if err := tx.Delete(makeFeedbackKey(eventIDs[i])); err != nil {
				return err
			}
			deleted++
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// readFeedback reads a feedback event from the transaction.
func (r *FeedbackRepository) readFeedback(tx *badger.Txn, key []byte) (*core.Feedback, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var event *core.Feedback
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		event, unmarshalErr = storage.UnmarshalFeedback(val)
		return unmarshalErr
	})
	return event, err
}
