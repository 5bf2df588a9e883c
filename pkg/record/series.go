package record

import (
	"fmt"
	"strings"
)

// Series identifies a record table by its one-letter code. The vocabulary
// series keeps its long code to stay distinguishable from entity tables.
type Series string

const (
	SeriesScheme       Series = "m"
	SeriesOrganization Series = "g"
	SeriesTool         Series = "t"
	SeriesMapping      Series = "c"
	SeriesEndorsement  Series = "e"
	SeriesDatatype     Series = "datatype"
)

// entitySeries lists the series that carry full catalog records, in the order
// the API exposes them.
var entitySeries = []Series{
	SeriesScheme,
	SeriesOrganization,
	SeriesTool,
	SeriesMapping,
	SeriesEndorsement,
}

// EntitySeries returns the entity series codes (everything except the
// vocabulary tables).
func EntitySeries() []Series {
	out := make([]Series, len(entitySeries))
	copy(out, entitySeries)
	return out
}

// AllSeries returns every series the store manages, entities first.
func AllSeries() []Series {
	return append(EntitySeries(), SeriesDatatype)
}

// ParseSeries validates a series code.
func ParseSeries(code string) (Series, error) {
	switch Series(strings.TrimSpace(code)) {
	case SeriesScheme:
		return SeriesScheme, nil
	case SeriesOrganization:
		return SeriesOrganization, nil
	case SeriesTool:
		return SeriesTool, nil
	case SeriesMapping:
		return SeriesMapping, nil
	case SeriesEndorsement:
		return SeriesEndorsement, nil
	case SeriesDatatype:
		return SeriesDatatype, nil
	default:
		return "", fmt.Errorf("record: unknown series %q", code)
	}
}

// Name returns the human-readable name of the series, as used in template
// names and flash messages.
func (s Series) Name() string {
	switch s {
	case SeriesScheme:
		return "scheme"
	case SeriesOrganization:
		return "organization"
	case SeriesTool:
		return "tool"
	case SeriesMapping:
		return "mapping"
	case SeriesEndorsement:
		return "endorsement"
	case SeriesDatatype:
		return "datatype"
	default:
		return string(s)
	}
}

// NameField returns the record key that carries the display name for this
// series. Schemes, tools and endorsements are titled; organizations and
// mappings are named.
func (s Series) NameField() string {
	switch s {
	case SeriesOrganization, SeriesMapping:
		return "name"
	case SeriesDatatype:
		return "label"
	default:
		return "title"
	}
}
