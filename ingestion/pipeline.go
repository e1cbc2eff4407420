package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/loci/core"
	"github.com/poiesic/loci/storage"
)

// Pipeline orchestrates concurrent recording of feedback events.
type Pipeline struct {
	feedbackRepository storage.FeedbackRepository
	pool               *ants.Pool
	pending            sync.WaitGroup
	failures           atomic.Int64
	released           atomic.Bool
	logger             *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new feedback recording pipeline.
func NewPipeline(feedbackRepository storage.FeedbackRepository, opts ...Option) (*Pipeline, error) {
	if feedbackRepository == nil {
		return nil, ErrFeedbackRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		feedbackRepository: feedbackRepository,
		pool:               pool,
		logger:             slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Record validates the events synchronously and submits the batch for an
// asynchronous write. Validation failures reject the whole batch before
// anything is queued; write failures are logged and counted but do not
// surface here.
func (p *Pipeline) Record(ctx context.Context, events ...*core.Feedback) error {
	if p.released.Load() {
		return ErrPipelineReleased
	}
	if len(events) == 0 {
		return nil
	}

	for _, event := range events {
		if err := core.ValidateFeedback(event); err != nil {
			return err
		}
	}

	p.pending.Add(1)
	err := p.pool.Submit(func() {
		defer p.pending.Done()
		if _, err := p.feedbackRepository.AddFeedback(context.Background(), events...); err != nil {
			p.failures.Add(1)
			p.logger.Error("error recording feedback batch", "events", len(events), "err", err)
		}
	})
	if err != nil {
		p.pending.Done()
		return err
	}

	return nil
}

// Drain blocks until every submitted batch has been written and returns the
// number of batches that failed since the pipeline was created.
func (p *Pipeline) Drain() int64 {
	p.pending.Wait()
	return p.failures.Load()
}

// Release drains outstanding writes and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.released.Swap(true) {
		return
	}
	p.pending.Wait()
	if p.pool != nil {
		p.pool.Release()
	}
}
