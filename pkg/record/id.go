package record

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// IDPrefix namespaces catalog identifiers.
const IDPrefix = "msc:"

var idPattern = regexp.MustCompile(`^msc:(?P<series>[a-z]+)(?P<doc>\d+)(#v(?P<version>.*))?$`)

// ID is a catalog identifier such as "msc:m13" or, for a specific version,
// "msc:m13#v2.1".
type ID struct {
	Series  Series
	DocID   int
	Version string
}

// NewID builds an identifier for a record.
func NewID(series Series, docID int) ID {
	return ID{Series: series, DocID: docID}
}

// ParseID parses a catalog identifier. The version fragment is optional.
func ParseID(raw string) (ID, error) {
	m := idPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return ID{}, fmt.Errorf("record: malformed catalog id %q", raw)
	}
	series, err := ParseSeries(m[idPattern.SubexpIndex("series")])
	if err != nil {
		return ID{}, fmt.Errorf("record: catalog id %q: %w", raw, err)
	}
	docID, err := strconv.Atoi(m[idPattern.SubexpIndex("doc")])
	if err != nil {
		return ID{}, fmt.Errorf("record: catalog id %q: %w", raw, err)
	}
	return ID{
		Series:  series,
		DocID:   docID,
		Version: m[idPattern.SubexpIndex("version")],
	}, nil
}

// String renders the identifier in msc: form.
func (id ID) String() string {
	s := IDPrefix + string(id.Series) + strconv.Itoa(id.DocID)
	if id.Version != "" {
		s += "#v" + id.Version
	}
	return s
}

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool {
	return id.Series == "" && id.DocID == 0
}

// sortKey pads the doc number to five digits so that msc:m2 orders before
// msc:m10. The digit boundary is located by scanning, since series names
// vary in length (msc:datatype2).
func sortKey(raw string) string {
	start := strings.IndexFunc(raw, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return raw
	}
	end := start
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	digits := raw[start:end]
	for len(digits) < 5 {
		digits = "0" + digits
	}
	return raw[:start] + digits + raw[end:]
}

// SortIDs orders catalog id strings in series-then-number order.
func SortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return sortKey(ids[i]) < sortKey(ids[j])
	})
}
