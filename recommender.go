// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package loci

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/loci/ai"
	"github.com/poiesic/loci/ai/openai"
	"github.com/poiesic/loci/core"
	"github.com/poiesic/loci/ingestion"
	"github.com/poiesic/loci/overpass"
	"github.com/poiesic/loci/personalize"
	"github.com/poiesic/loci/ranking"
	"github.com/poiesic/loci/storage"
	"github.com/poiesic/loci/storage/badger"
)

const (
	// DefaultRadiusMeters is the search radius applied when a request
	// supplies none.
	DefaultRadiusMeters = 2000

	// DefaultMaxResults is how many ranked places a request returns when
	// it supplies no limit.
	DefaultMaxResults = 5
)

// Recommender ties place acquisition, ranking and feedback persistence
// together behind one handle.
type Recommender struct {
	backend      *badger.Backend
	feedbackRepo storage.FeedbackRepository
	aggregator   *personalize.Aggregator
	places       *overpass.Client
	aiConfig     *ai.Config
	logger       *slog.Logger

	// The embedding service is only contacted on the first Recommend call,
	// so feedback-only usage never needs it reachable.
	engineOnce sync.Once
	engineErr  error
	embedder   ai.Embedder
	engine     *ranking.Engine
}

// RecommenderOption configures a Recommender.
type RecommenderOption func(*recommenderOptions)

type recommenderOptions struct {
	aiConfig *ai.Config
	embedder ai.Embedder
	places   *overpass.Client
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(config *ai.Config) RecommenderOption {
	return func(o *recommenderOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithEmbedder injects a pre-built embedder, bypassing the embedding
// service configuration entirely.
func WithEmbedder(embedder ai.Embedder) RecommenderOption {
	return func(o *recommenderOptions) {
		o.embedder = embedder
	}
}

// WithPlacesClient injects a pre-built acquisition client.
// The recommender takes ownership and closes it on Close.
func WithPlacesClient(client *overpass.Client) RecommenderOption {
	return func(o *recommenderOptions) {
		o.places = client
	}
}

// NewRecommender opens (or creates) the feedback database at filePath and
// wires up the acquisition and personalization layers.
func NewRecommender(filePath string, opts ...RecommenderOption) (*Recommender, error) {
	// Apply options
	options := &recommenderOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create feedback repository
	feedbackRepo, err := badger.NewFeedbackRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	aggregator, err := personalize.NewAggregator(feedbackRepo)
	if err != nil {
		feedbackRepo.Close()
		backend.Close()
		return nil, err
	}

	places := options.places
	if places == nil {
		places, err = overpass.NewClient()
		if err != nil {
			feedbackRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Recommender{
		backend:      backend,
		feedbackRepo: feedbackRepo,
		aggregator:   aggregator,
		places:       places,
		aiConfig:     options.aiConfig,
		embedder:     options.embedder,
		logger:       slog.Default(),
	}, nil
}

// Close releases the acquisition client, repositories, and backend.
func (r *Recommender) Close() error {
	r.places.Close()

	if err := r.feedbackRepo.Close(); err != nil {
		r.logger.Error("error closing feedback repository", "err", err)
		return err
	}
	if err := r.backend.Close(); err != nil {
		r.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// RecommendRequest describes one recommendation query.
type RecommendRequest struct {
	Lat        float64
	Lng        float64
	Query      string   // Free-text intent, e.g. "quiet place to work"
	Radius     int      // Search radius in meters; DefaultRadiusMeters when <= 0
	MaxResults int      // DefaultMaxResults when <= 0
	Categories []string // Acquisition category keywords; acquisition defaults apply when empty
	UserID     string   // Optional; enables personalization boosts
}

// Recommend fetches candidate places around the request coordinate, ranks
// them against the query, and returns the top results.
func (r *Recommender) Recommend(ctx context.Context, req RecommendRequest) ([]core.ScoredPlace, error) {
	if req.Radius <= 0 {
		req.Radius = DefaultRadiusMeters
	}
	if req.MaxResults <= 0 {
		req.MaxResults = DefaultMaxResults
	}

	if err := r.initEngine(); err != nil {
		return nil, err
	}

	places, err := r.places.Fetch(ctx, req.Lat, req.Lng, req.Radius, req.Categories, overpass.DefaultLimit)
	if err != nil {
		return nil, err
	}

	var boosts core.BoostMap
	if req.UserID != "" {
		boosts, err = r.aggregator.Boosts(ctx, req.UserID, personalize.DefaultHistoryLimit)
		if err != nil {
			return nil, err
		}
	}

	ranked, err := r.engine.Rank(ctx, req.Lat, req.Lng, req.Query, places, req.Radius, boosts)
	if err != nil {
		return nil, err
	}

	if len(ranked) > req.MaxResults {
		ranked = ranked[:req.MaxResults]
	}
	return ranked, nil
}

// RecordFeedback persists feedback events for later personalization.
func (r *Recommender) RecordFeedback(ctx context.Context, events ...*core.Feedback) ([]*core.Feedback, error) {
	return r.feedbackRepo.AddFeedback(ctx, events...)
}

// ClearFeedback removes a user's entire feedback history and returns how
// many events were removed.
func (r *Recommender) ClearFeedback(ctx context.Context, userID string) (int, error) {
	return r.feedbackRepo.DeleteFeedbackByUser(ctx, userID)
}

// FeedbackRepository exposes the underlying feedback store.
func (r *Recommender) FeedbackRepository() storage.FeedbackRepository {
	return r.feedbackRepo
}

// NewPipeline creates a concurrent feedback recording pipeline backed by
// this recommender's store, for bulk imports.
func (r *Recommender) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(r.feedbackRepo, opts...)
}

func (r *Recommender) initEngine() error {
	r.engineOnce.Do(func() {
		if r.embedder == nil {
			embedder, err := openai.NewEmbedder(r.aiConfig)
			if err != nil {
				r.engineErr = err
				return
			}
			r.embedder = embedder
		}

		engine, err := ranking.NewEngine(r.embedder)
		if err != nil {
			r.engineErr = err
			return
		}
		r.engine = engine
	})
	return r.engineErr
}
