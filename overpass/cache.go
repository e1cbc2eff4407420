package overpass

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/poiesic/loci/core"
)

// cacheKey derives a stable 64-bit key for an acquisition request.
//
// Coordinates are rounded to 4 decimal places (roughly 11 meters) and the
// category set is lowercased and sorted, so nearby repeats of the same
// logical request share an entry regardless of category order or casing.
func cacheKey(lat, lng float64, radiusMeters int, categories []string, limit int) uint64 {
	normalized := make([]string, len(categories))
	for i, c := range categories {
		normalized[i] = strings.ToLower(c)
	}
	sort.Strings(normalized)

	canonical := fmt.Sprintf("%.4f|%.4f|%d|%s|%d",
		lat, lng, radiusMeters, strings.Join(normalized, ","), limit)
	return uint64(core.IDFromContent(canonical))
}

// resultCache is a bounded TTL cache of normalized acquisition results.
// It is the only shared mutable state in the package.
type resultCache struct {
	cache *ristretto.Cache[uint64, []core.Place]
	ttl   time.Duration
}

func newResultCache(maxEntries int64, ttl time.Duration) (*resultCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []core.Place]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &resultCache{cache: cache, ttl: ttl}, nil
}

func (c *resultCache) get(key uint64) ([]core.Place, bool) {
	return c.cache.Get(key)
}

// set stores a result and waits for the write buffer to drain, so a
// subsequent get on the same key observes the entry immediately.
func (c *resultCache) set(key uint64, places []core.Place) {
	c.cache.SetWithTTL(key, places, 1, c.ttl)
	c.cache.Wait()
}

func (c *resultCache) close() {
	c.cache.Close()
}
