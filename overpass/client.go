package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/poiesic/loci/core"
	"github.com/poiesic/loci/lexicon"
)

// DefaultEndpoints are the public Overpass interpreter instances tried, in
// randomized order, when no endpoints are configured explicitly.
var DefaultEndpoints = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
	"https://overpass.openstreetmap.ru/api/interpreter",
}

// DefaultCategories is the category filter applied when a caller supplies
// none.
var DefaultCategories = []string{"cafe", "restaurant", "park"}

const (
	// DefaultLimit is the result limit applied when a caller supplies none.
	DefaultLimit = 25

	// DefaultCacheTTL is how long a cached acquisition result stays fresh.
	DefaultCacheTTL = 60 * time.Second

	// DefaultCacheSize is the bounded entry count of the acquisition cache.
	DefaultCacheSize = 256

	// maxAttempts is the number of full passes over the endpoint list
	// before Fetch gives up.
	maxAttempts = 3

	// backoffUnit scales linearly with the attempt number: the sleep after
	// attempt n is n * backoffUnit. No sleep after the final attempt.
	backoffUnit = 600 * time.Millisecond

	// callTimeout bounds each individual request to one endpoint.
	callTimeout = 30 * time.Second
)

// Client fetches and normalizes place candidates from the Overpass API.
//
// A Client is safe for concurrent use. Close releases the cache when the
// client is no longer needed.
type Client struct {
	endpoints  []string
	httpClient *http.Client
	shuffle    func([]string)
	backoff    time.Duration
	cacheTTL   time.Duration
	cacheSize  int64
	cache      *resultCache
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithEndpoints replaces the default endpoint list.
func WithEndpoints(endpoints ...string) Option {
	return func(c *Client) error {
		if len(endpoints) == 0 {
			return ErrNoEndpoints
		}
		c.endpoints = slices.Clone(endpoints)
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client.
// Default is a client with a 30 second timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient != nil {
			c.httpClient = httpClient
		}
		return nil
	}
}

// WithShuffle sets the randomness source used to reorder endpoints per
// request. Tests inject a no-op or fixed permutation to make failover
// order deterministic.
func WithShuffle(shuffle func([]string)) Option {
	return func(c *Client) error {
		if shuffle != nil {
			c.shuffle = shuffle
		}
		return nil
	}
}

// WithBackoffUnit sets the linear backoff unit between retry attempts.
func WithBackoffUnit(unit time.Duration) Option {
	return func(c *Client) error {
		if unit > 0 {
			c.backoff = unit
		}
		return nil
	}
}

// WithCacheTTL sets how long cached results stay fresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) error {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
		return nil
	}
}

// WithCacheSize sets the bounded entry count of the result cache.
func WithCacheSize(size int64) Option {
	return func(c *Client) error {
		if size > 0 {
			c.cacheSize = size
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClient creates a new Overpass client.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		endpoints:  slices.Clone(DefaultEndpoints),
		httpClient: &http.Client{Timeout: callTimeout},
		shuffle: func(endpoints []string) {
			rand.Shuffle(len(endpoints), func(i, j int) {
				endpoints[i], endpoints[j] = endpoints[j], endpoints[i]
			})
		},
		backoff:   backoffUnit,
		cacheTTL:  DefaultCacheTTL,
		cacheSize: DefaultCacheSize,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	cache, err := newResultCache(c.cacheSize, c.cacheTTL)
	if err != nil {
		return nil, err
	}
	c.cache = cache

	return c, nil
}

// Close releases the result cache.
func (c *Client) Close() {
	c.cache.close()
}

// Fetch returns up to limit normalized places within radiusMeters of the
// coordinate matching the given categories.
//
// Results are cached per (rounded coordinate, radius, category set, limit);
// a cache hit returns immediately with no network access. On a miss the
// endpoint list is shuffled and each endpoint tried in order, for up to
// three full passes with linear backoff in between. The first endpoint to
// answer wins; if every endpoint fails on every pass, Fetch returns an
// *AcquisitionError carrying the last observed error.
//
// The context is honored between attempts only: an in-flight request and
// its cache write run to completion even if the caller has gone away.
func (c *Client) Fetch(ctx context.Context, lat, lng float64, radiusMeters int, categories []string, limit int) ([]core.Place, error) {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := cacheKey(lat, lng, radiusMeters, categories, limit)
	if places, ok := c.cache.get(key); ok {
		c.logger.Debug("acquisition cache hit", "lat", lat, "lng", lng, "radiusMeters", radiusMeters)
		return places, nil
	}

	query := buildQuery(lat, lng, radiusMeters, lexicon.FilterTags(categories))

	endpoints := slices.Clone(c.endpoints)
	c.shuffle(endpoints)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		for _, endpoint := range endpoints {
			places, err := c.fetchOne(endpoint, query)
			if err != nil {
				lastErr = err
				c.logger.Debug("endpoint failed", "endpoint", endpoint, "attempt", attempt, "err", err)
				continue
			}

			if len(places) > limit {
				places = places[:limit]
			}
			c.cache.set(key, places)
			c.logger.Debug("acquisition succeeded",
				"endpoint", endpoint, "attempt", attempt, "places", len(places))
			return places, nil
		}

		// No sleep after the last attempt
		if attempt == maxAttempts {
			break
		}

		timer := time.NewTimer(time.Duration(attempt) * c.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.Error("all endpoints exhausted", "attempts", maxAttempts, "endpoints", len(endpoints), "err", lastErr)
	return nil, &AcquisitionError{LastErr: lastErr}
}

// fetchOne posts the query to a single endpoint and normalizes the result.
// Any failure (transport, non-success status, unparseable body) is returned
// as-is for the caller to record and fail over.
func (c *Client) fetchOne(endpoint, query string) ([]core.Place, error) {
	resp, err := c.httpClient.PostForm(endpoint, url.Values{"data": {query}})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("endpoint %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	var body overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return normalizeElements(body.Elements), nil
}
