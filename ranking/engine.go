package ranking

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/poiesic/loci/ai"
	"github.com/poiesic/loci/core"
	"github.com/poiesic/loci/geo"
	"github.com/poiesic/loci/lexicon"
)

// Composite score weights. The personalization term is offset so that a
// neutral boost still contributes a small constant; see the package doc.
const (
	semanticWeight = 0.52
	distanceWeight = 0.33
	categoryWeight = 0.10
	personalWeight = 0.05
	personalOffset = 0.10

	// personalBoostCap bounds the summed per-place boost before weighting.
	personalBoostCap = 0.10
)

// Engine ranks place candidates against a free-text query.
type Engine struct {
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new ranking engine.
func NewEngine(embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		embedder: embedder,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Rank scores every candidate and returns them ordered by composite score
// descending. All candidates are scored and returned; callers truncate.
func (e *Engine) Rank(ctx context.Context, userLat, userLng float64, query string, places []core.Place, radiusMeters int, boosts core.BoostMap) ([]core.ScoredPlace, error) {
	return e.RankWithMonitor(ctx, userLat, userLng, query, places, radiusMeters, boosts, nil)
}

// RankWithMonitor ranks candidates with monitoring.
// The monitor receives callbacks at each stage of the ranking pass.
//
// Embedding failures propagate as-is; an empty candidate list yields an
// empty result, not an error. Ties keep the candidates' input order.
func (e *Engine) RankWithMonitor(ctx context.Context, userLat, userLng float64, query string, places []core.Place, radiusMeters int, boosts core.BoostMap, monitor RankMonitor) ([]core.ScoredPlace, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query, len(places))

	if len(places) == 0 {
		monitor.Finish(nil)
		return []core.ScoredPlace{}, nil
	}

	// 1. Semantic signal: one batched embedding call for the query plus
	// every place profile.
	profiles := make([]string, len(places))
	for i, place := range places {
		profiles[i] = profileText(place)
	}
	monitor.AfterProfileBuild(profiles)

	texts := make([]string, 0, len(profiles)+1)
	texts = append(texts, query)
	texts = append(texts, profiles...)

	vectors, err := e.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		e.logger.Error("error generating embeddings for ranking", "query", query, "candidates", len(places), "err", err)
		return nil, err
	}

	queryVector := vectors[0]
	rawSimilarities := make([]float64, len(places))
	for i, vector := range vectors[1:] {
		rawSimilarities[i] = cosineSimilarity(queryVector, vector)
	}
	semanticScores := minMaxNormalize(rawSimilarities)
	monitor.AfterSemanticScores(semanticScores)

	// 2. Keyword heuristic: which category tags does the query imply?
	wanted := lexicon.ExpectedCategories(query)

	results := make([]core.ScoredPlace, 0, len(places))
	for i, place := range places {
		distance := geo.DistanceMeters(userLat, userLng, place.Lat, place.Lng)
		distanceScore := scoreDistance(distance, radiusMeters)
		categoryScore := scoreCategoryMatch(place.Categories, wanted)

		var boost float64
		for _, category := range place.Categories {
			boost += boosts[category]
		}
		boost = clamp(boost, -personalBoostCap, personalBoostCap)

		scored := core.ScoredPlace{
			Place:          place,
			DistanceMeters: distance,
			SemanticScore:  semanticScores[i],
			CategoryScore:  categoryScore,
			PersonalBoost:  boost,
			Score: semanticWeight*semanticScores[i] +
				distanceWeight*distanceScore +
				categoryWeight*categoryScore +
				personalWeight*(boost+personalOffset),
		}
		monitor.Scored(&scored)
		results = append(results, scored)
	}

	// Stable sort keeps acquisition order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	monitor.Finish(results)

	return results, nil
}

// profileText renders a place as one text line for semantic matching.
func profileText(place core.Place) string {
	return strings.TrimSpace(place.Name + ". Categories: " + strings.Join(place.Categories, " ") + ". Address: " + place.Address)
}

// scoreDistance decays linearly from 1 at the query point to 0 at the
// radius edge. A non-positive radius scores 0 for every candidate.
func scoreDistance(distanceMeters float64, radiusMeters int) float64 {
	if radiusMeters <= 0 {
		return 0
	}
	return clamp(1-distanceMeters/float64(radiusMeters), 0, 1)
}

// scoreCategoryMatch is 1 when the place carries any of the wanted tags,
// else 0. An empty wanted set means the query had no opinion.
func scoreCategoryMatch(categories, wanted []string) float64 {
	for _, w := range wanted {
		if slices.Contains(categories, w) {
			return 1
		}
	}
	return 0
}
