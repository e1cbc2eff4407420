package overpass

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/poiesic/loci/lexicon"
)

// element shapes queried for every tag filter. Ways and relations have no
// point coordinate of their own, hence "out center" in the query footer.
var elementShapes = [...]string{"node", "way", "relation"}

// buildQuery renders an Overpass QL query selecting all elements within
// radiusMeters of the coordinate that match any of the given tag filters.
func buildQuery(lat, lng float64, radiusMeters int, tags []lexicon.Tag) string {
	around := fmt.Sprintf("(around:%d,%s,%s)",
		radiusMeters,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lng, 'f', -1, 64))

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, tag := range tags {
		for _, shape := range elementShapes {
			fmt.Fprintf(&b, "  %s[%q=%q]%s;\n", shape, tag.Facet, tag.Value, around)
		}
	}
	b.WriteString(");\nout center tags;\n")
	return b.String()
}
