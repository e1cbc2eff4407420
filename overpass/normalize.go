package overpass

import (
	"fmt"
	"strings"

	"github.com/poiesic/loci/core"
)

// overpassResponse is the top-level JSON shape returned by the interpreter
// endpoint. Fields other than elements are ignored.
type overpassResponse struct {
	Elements []element `json:"elements"`
}

// element is one raw Overpass element. Nodes carry lat/lon directly; ways
// and relations carry a computed center instead.
type element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *centerCoordinate `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type centerCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// facetKeys are the tag keys collected as place categories, in priority
// order. One category per facet present on the element.
var facetKeys = [...]string{"amenity", "shop", "leisure", "tourism"}

// addressKeys are the address component tags, in the order they are joined.
var addressKeys = [...]string{
	"addr:housenumber",
	"addr:street",
	"addr:city",
	"addr:state",
	"addr:postcode",
}

// normalizeElements converts raw Overpass elements into canonical places.
//
// Elements without a name or without a resolvable coordinate are silently
// dropped. Duplicate identifiers keep the first occurrence, preserving the
// original relative order.
func normalizeElements(elements []element) []core.Place {
	places := make([]core.Place, 0, len(elements))
	seen := make(map[string]bool, len(elements))

	for _, el := range elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}

		var lat, lng float64
		switch {
		case el.Lat != nil && el.Lon != nil:
			lat, lng = *el.Lat, *el.Lon
		case el.Center != nil:
			lat, lng = el.Center.Lat, el.Center.Lon
		default:
			continue
		}

		var categories []string
		for _, facet := range facetKeys {
			if v := el.Tags[facet]; v != "" {
				categories = append(categories, facet+":"+v)
			}
		}

		var addressBits []string
		for _, key := range addressKeys {
			if v := el.Tags[key]; v != "" {
				addressBits = append(addressBits, v)
			}
		}

		id := fmt.Sprintf("osm:%s:%d", el.Type, el.ID)
		if seen[id] {
			continue
		}
		seen[id] = true

		places = append(places, core.Place{
			ID:         id,
			Name:       name,
			Address:    strings.Join(addressBits, " "),
			Lat:        lat,
			Lng:        lng,
			Categories: categories,
		})
	}

	return places
}
