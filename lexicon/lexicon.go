// Package lexicon holds the static category vocabulary shared by place
// acquisition and ranking.
//
// Two tables live here: one maps category keywords to the OSM tag pairs used
// to build acquisition filter queries, the other maps free-text query keywords
// to the category tags they imply for the keyword-match heuristic.
//
// Keyword matching is case-insensitive substring containment against the
// table keys, not tokenized word matching: a query containing "decaf" will
// not match "cafe" unless the substring literally appears. This is a known
// limitation of the heuristic, kept deliberately simple because the semantic
// signal carries most of the relevance weight.
package lexicon

import (
	"slices"
	"strings"
)

// Tag is a single OSM facet/value pair, e.g. {amenity cafe}.
type Tag struct {
	Facet string
	Value string
}

// String returns the canonical "facet:value" form used on Place records.
func (t Tag) String() string {
	return t.Facet + ":" + t.Value
}

// categoryToTags maps category keywords to the tag pairs used in
// acquisition filter queries.
var categoryToTags = map[string][]Tag{
	"coffee":      {{"amenity", "cafe"}},
	"cafe":        {{"amenity", "cafe"}},
	"restaurant":  {{"amenity", "restaurant"}},
	"fast_food":   {{"amenity", "fast_food"}},
	"park":        {{"leisure", "park"}},
	"gym":         {{"leisure", "fitness_centre"}},
	"bar":         {{"amenity", "bar"}},
	"pharmacy":    {{"amenity", "pharmacy"}},
	"hospital":    {{"amenity", "hospital"}},
	"library":     {{"amenity", "library"}},
	"supermarket": {{"shop", "supermarket"}},
}

// queryKeywords maps lowercase query substrings to the category tags they
// imply for the keyword-match heuristic.
var queryKeywords = map[string][]string{
	"coffee": {"amenity:cafe"},
	"cafe":   {"amenity:cafe"},
	"pizza":  {"amenity:restaurant"},
	"work":   {"amenity:cafe", "amenity:library"},
	"quiet":  {"amenity:library", "amenity:cafe"},
}

// defaultFilterTags covers cafes, restaurants and parks. Used when no
// requested category maps to a known tag.
var defaultFilterTags = []Tag{
	{"amenity", "cafe"},
	{"amenity", "restaurant"},
	{"leisure", "park"},
}

// CategoryTags returns the tag pairs for a single category keyword.
// Lookup is case-insensitive. Returns nil for unknown categories.
func CategoryTags(category string) []Tag {
	return categoryToTags[strings.ToLower(category)]
}

// FilterTags collects the tag pairs for a list of category keywords,
// preserving request order. When no category maps to any known tag, the
// default cafe/restaurant/park filter is returned so the acquisition query
// is never empty.
func FilterTags(categories []string) []Tag {
	var tags []Tag
	for _, c := range categories {
		tags = append(tags, CategoryTags(c)...)
	}
	if len(tags) == 0 {
		return slices.Clone(defaultFilterTags)
	}
	return tags
}

// ExpectedCategories returns the category tags a free-text query implies.
// A keyword matches when it appears as a substring of the lowercased query.
// Returns nil when the query implies nothing ("no opinion", not an error).
func ExpectedCategories(query string) []string {
	q := strings.ToLower(query)

	// Iterate keywords in sorted order so the result is deterministic.
	keywords := make([]string, 0, len(queryKeywords))
	for k := range queryKeywords {
		keywords = append(keywords, k)
	}
	slices.Sort(keywords)

	var wanted []string
	for _, k := range keywords {
		if strings.Contains(q, k) {
			wanted = append(wanted, queryKeywords[k]...)
		}
	}
	return wanted
}
