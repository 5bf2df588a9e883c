package record

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// Record is a catalog entry: a document id, the series it belongs to, and the
// free-form field map the data layer materialised. Every field is optional;
// accessors return zero values for absent keys so views can rely on presence
// checks alone.
type Record struct {
	DocID  int
	Series Series
	Fields map[string]any
}

// New returns a blank record in the given series. DocID zero marks a record
// that has not been persisted yet.
func New(series Series) Record {
	return Record{Series: series, Fields: map[string]any{}}
}

// ID returns the record's catalog identifier.
func (r Record) ID() ID {
	return NewID(r.Series, r.DocID)
}

// Exists reports whether the record has been persisted.
func (r Record) Exists() bool {
	return r.DocID > 0
}

// Get returns a raw field value.
func (r Record) Get(key string) any {
	if r.Fields == nil {
		return nil
	}
	return r.Fields[key]
}

// Has reports whether the record carries the given key.
func (r Record) Has(key string) bool {
	_, ok := r.Fields[key]
	return ok
}

// Name returns the display name for the record, falling back to "Untitled"
// for schemes so links never render empty.
func (r Record) Name() string {
	name := cast.ToString(r.Get(r.Series.NameField()))
	if name == "" && r.Series == SeriesScheme {
		return "Untitled"
	}
	return name
}

// Title returns the title field verbatim.
func (r Record) Title() string { return cast.ToString(r.Get("title")) }

// Description returns the stored (already sanitized) HTML description.
func (r Record) Description() string { return cast.ToString(r.Get("description")) }

// Keywords returns the subject-area keyword list.
func (r Record) Keywords() []string { return toStringSlice(r.Get("keywords")) }

// DataTypes returns the data-type labels or ids attached to the record.
func (r Record) DataTypes() []string { return toStringSlice(r.Get("dataTypes")) }

// Location is a link to material about the record.
type Location struct {
	URL  string `json:"url,omitempty"`
	Type string `json:"type,omitempty"`
}

// Namespace pairs an XML namespace prefix with its URI.
type Namespace struct {
	Prefix string `json:"prefix,omitempty"`
	URI    string `json:"uri,omitempty"`
}

// Identifier is an external identifier in a named scheme.
type Identifier struct {
	ID     string `json:"id,omitempty"`
	Scheme string `json:"scheme,omitempty"`
}

// Sample is a link to an example record conforming to a scheme.
type Sample struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Locations returns the record's link list.
func (r Record) Locations() []Location { return locationsFrom(r.Get("locations")) }

// Namespaces returns the record's namespace list.
func (r Record) Namespaces() []Namespace {
	var out []Namespace
	for _, item := range toMapSlice(r.Get("namespaces")) {
		out = append(out, Namespace{
			Prefix: cast.ToString(item["prefix"]),
			URI:    cast.ToString(item["uri"]),
		})
	}
	return out
}

// Identifiers returns the record's external identifiers.
func (r Record) Identifiers() []Identifier { return identifiersFrom(r.Get("identifiers")) }

// Samples returns the record's sample links.
func (r Record) Samples() []Sample { return samplesFrom(r.Get("samples")) }

// Creators returns the names credited on the record.
func (r Record) Creators() []Creator {
	var out []Creator
	for _, item := range toMapSlice(r.Get("creators")) {
		out = append(out, Creator{
			FullName:   cast.ToString(item["fullName"]),
			GivenName:  cast.ToString(item["givenName"]),
			FamilyName: cast.ToString(item["familyName"]),
		})
	}
	return out
}

// Creator credits a person on a record.
type Creator struct {
	FullName   string `json:"fullName,omitempty"`
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9 ]+`)
var slugSpace = regexp.MustCompile(` +`)

// Slug returns the stored slug, deriving one from the display name when the
// record has none yet.
func (r Record) Slug() string {
	if slug := cast.ToString(r.Get("slug")); slug != "" {
		return slug
	}
	name := r.Name()
	if name == "" {
		return ""
	}
	slug := strings.ToLower(name)
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugSpace.ReplaceAllString(strings.TrimSpace(slug), "-")
	return slug
}

func toStringSlice(v any) []string {
	switch vv := v.(type) {
	case nil:
		return nil
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s := cast.ToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := cast.ToString(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

func toMapSlice(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]map[string]any); ok {
			return typed
		}
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func locationsFrom(v any) []Location {
	var out []Location
	for _, item := range toMapSlice(v) {
		out = append(out, Location{
			URL:  cast.ToString(item["url"]),
			Type: cast.ToString(item["type"]),
		})
	}
	return out
}

func identifiersFrom(v any) []Identifier {
	var out []Identifier
	for _, item := range toMapSlice(v) {
		out = append(out, Identifier{
			ID:     cast.ToString(item["id"]),
			Scheme: cast.ToString(item["scheme"]),
		})
	}
	return out
}

func samplesFrom(v any) []Sample {
	var out []Sample
	for _, item := range toMapSlice(v) {
		out = append(out, Sample{
			Title: cast.ToString(item["title"]),
			URL:   cast.ToString(item["url"]),
		})
	}
	return out
}
