package overpass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestNormalizeElements(t *testing.T) {
	elements := []element{
		{
			Type: "node", ID: 1,
			Lat: floatPtr(47.61), Lon: floatPtr(-122.33),
			Tags: map[string]string{
				"name":             "Pioneer Coffee",
				"amenity":          "cafe",
				"addr:housenumber": "600",
				"addr:street":      "1st Ave",
				"addr:city":        "Seattle",
				"addr:state":       "WA",
				"addr:postcode":    "98104",
			},
		},
		{
			// Way with a center coordinate instead of lat/lon.
			Type: "way", ID: 2,
			Center: &centerCoordinate{Lat: 47.62, Lon: -122.34},
			Tags:   map[string]string{"name": "Denny Park", "leisure": "park"},
		},
		{
			// Nameless: dropped.
			Type: "node", ID: 3,
			Lat: floatPtr(47.6), Lon: floatPtr(-122.3),
			Tags: map[string]string{"amenity": "cafe"},
		},
		{
			// No coordinate at all: dropped.
			Type: "relation", ID: 4,
			Tags: map[string]string{"name": "Phantom Mall", "shop": "mall"},
		},
	}

	places := normalizeElements(elements)
	require.Len(t, places, 2)

	assert.Equal(t, "osm:node:1", places[0].ID)
	assert.Equal(t, "Pioneer Coffee", places[0].Name)
	assert.Equal(t, "600 1st Ave Seattle WA 98104", places[0].Address)
	assert.Equal(t, 47.61, places[0].Lat)
	assert.Equal(t, -122.33, places[0].Lng)
	assert.Equal(t, []string{"amenity:cafe"}, places[0].Categories)
	assert.Nil(t, places[0].Rating)
	assert.Nil(t, places[0].OpenNow)

	assert.Equal(t, "osm:way:2", places[1].ID)
	assert.Equal(t, 47.62, places[1].Lat)
	assert.Equal(t, "", places[1].Address)
}

func TestNormalizeElementsFacetOrder(t *testing.T) {
	places := normalizeElements([]element{{
		Type: "node", ID: 9,
		Lat: floatPtr(1), Lon: floatPtr(2),
		Tags: map[string]string{
			"name":    "Mixed Use",
			"tourism": "attraction",
			"shop":    "books",
			"amenity": "cafe",
		},
	}})

	require.Len(t, places, 1)
	// amenity > shop > leisure > tourism, regardless of map iteration order.
	assert.Equal(t, []string{"amenity:cafe", "shop:books", "tourism:attraction"}, places[0].Categories)
}

func TestNormalizeElementsDedup(t *testing.T) {
	places := normalizeElements([]element{
		{
			Type: "node", ID: 7,
			Lat: floatPtr(1), Lon: floatPtr(2),
			Tags: map[string]string{"name": "First Occurrence", "amenity": "bar"},
		},
		{
			Type: "node", ID: 8,
			Lat: floatPtr(3), Lon: floatPtr(4),
			Tags: map[string]string{"name": "Unrelated", "amenity": "bar"},
		},
		{
			// Same type:id as the first element; dropped, first wins.
			Type: "node", ID: 7,
			Lat: floatPtr(5), Lon: floatPtr(6),
			Tags: map[string]string{"name": "Second Occurrence", "amenity": "bar"},
		},
	})

	require.Len(t, places, 2)
	assert.Equal(t, "First Occurrence", places[0].Name)
	assert.Equal(t, "Unrelated", places[1].Name)
}

func TestNormalizeElementsEmpty(t *testing.T) {
	assert.Empty(t, normalizeElements(nil))
	assert.Empty(t, normalizeElements([]element{}))
}
