package record_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-catalog/pkg/record"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		raw     string
		want    record.ID
		wantErr bool
	}{
		{raw: "msc:m13", want: record.ID{Series: record.SeriesScheme, DocID: 13}},
		{raw: "msc:g2", want: record.ID{Series: record.SeriesOrganization, DocID: 2}},
		{raw: "msc:m13#v2.1", want: record.ID{Series: record.SeriesScheme, DocID: 13, Version: "2.1"}},
		{raw: "msc:datatype4", want: record.ID{Series: record.SeriesDatatype, DocID: 4}},
		{raw: "msc:x9", wantErr: true},
		{raw: "m13", wantErr: true},
		{raw: "msc:m", wantErr: true},
	}

	for _, tc := range cases {
		got, err := record.ParseID(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseID(%q): expected error, got %v", tc.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseID(%q): %v", tc.raw, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("ParseID(%q) mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
}

func TestIDRoundTrip(t *testing.T) {
	id := record.NewID(record.SeriesMapping, 7)
	if got := id.String(); got != "msc:c7" {
		t.Fatalf("unexpected id string %q", got)
	}
	parsed, err := record.ParseID(id.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != id {
		t.Fatalf("round trip mismatch: %v != %v", parsed, id)
	}
}

func TestSortIDs(t *testing.T) {
	ids := []string{"msc:m10", "msc:m2", "msc:g1", "msc:m1"}
	record.SortIDs(ids)

	want := []string{"msc:g1", "msc:m1", "msc:m2", "msc:m10"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("sort mismatch (-want +got):\n%s", diff)
	}
}

func TestSortIDsHandlesLongSeriesNames(t *testing.T) {
	ids := []string{"msc:datatype10", "msc:datatype2", "msc:datatype1"}
	record.SortIDs(ids)

	want := []string{"msc:datatype1", "msc:datatype2", "msc:datatype10"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("sort mismatch (-want +got):\n%s", diff)
	}
}

func TestCleanup(t *testing.T) {
	data := map[string]any{
		"title":       "Dublin Core",
		"description": "",
		"keywords":    []any{"", "Earth sciences"},
		"locations": []any{
			map[string]any{"url": "", "type": ""},
			map[string]any{"url": "https://example.com", "type": "website"},
		},
		"versions":      []any{},
		"count":         0,
		"flag":          false,
		"csrf_token":    "abc",
		"old_relations": "{}",
		"nested":        map[string]any{"empty": ""},
	}

	got := record.Cleanup(data)

	want := map[string]any{
		"title":    "Dublin Core",
		"keywords": []any{"Earth sciences"},
		"locations": []any{
			map[string]any{"url": "https://example.com", "type": "website"},
		},
		"count": 0,
		"flag":  false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cleanup mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordAccessors(t *testing.T) {
	rec := record.Record{
		DocID:  3,
		Series: record.SeriesScheme,
		Fields: map[string]any{
			"title": "ABCD",
			"locations": []any{
				map[string]any{"url": "https://example.com/spec", "type": "document"},
			},
			"identifiers": []any{
				map[string]any{"id": "10.1234/abcd", "scheme": "DOI"},
			},
			"namespaces": []any{
				map[string]any{"prefix": "abcd", "uri": "https://example.com/ns#"},
			},
		},
	}

	if got := rec.Name(); got != "ABCD" {
		t.Errorf("name: %q", got)
	}
	if got := rec.Locations(); len(got) != 1 || got[0].Type != "document" {
		t.Errorf("locations: %+v", got)
	}
	if got := rec.Identifiers(); len(got) != 1 || got[0].Scheme != "DOI" {
		t.Errorf("identifiers: %+v", got)
	}
	if got := rec.Namespaces(); len(got) != 1 || got[0].Prefix != "abcd" {
		t.Errorf("namespaces: %+v", got)
	}
	if got := rec.Slug(); got != "abcd" {
		t.Errorf("slug: %q", got)
	}
}

func TestUntitledScheme(t *testing.T) {
	rec := record.New(record.SeriesScheme)
	if got := rec.Name(); got != "Untitled" {
		t.Fatalf("blank scheme name %q", got)
	}
	org := record.New(record.SeriesOrganization)
	if got := org.Name(); got != "" {
		t.Fatalf("blank organization name %q", got)
	}
}

func TestVersionsInterpretation(t *testing.T) {
	rec := record.Record{
		DocID:  1,
		Series: record.SeriesScheme,
		Fields: map[string]any{
			"versions": []any{
				map[string]any{"number": "1.0", "issued": "2009-06-15", "valid_to": "2015-01-01"},
				map[string]any{"number": "2.0", "issued": "2015-01-01"},
				map[string]any{"number": "3.0-draft", "available": "2020-03-02"},
				map[string]any{"note": "entry without a number is dropped"},
			},
		},
	}

	versions := rec.Versions()
	if len(versions) != 3 {
		t.Fatalf("expected 3 versions, got %d: %+v", len(versions), versions)
	}
	if versions[0].Number != "3.0-draft" || versions[0].Status != record.StatusProposed {
		t.Errorf("newest: %+v", versions[0])
	}
	if versions[1].Number != "2.0" || versions[1].Status != record.StatusCurrent {
		t.Errorf("current: %+v", versions[1])
	}
	if versions[2].Number != "1.0" || versions[2].Status != record.StatusDeprecated {
		t.Errorf("deprecated: %+v", versions[2])
	}
}

func TestVersionsAbsent(t *testing.T) {
	rec := record.New(record.SeriesTool)
	if got := rec.Versions(); got != nil {
		t.Fatalf("expected nil versions, got %+v", got)
	}
}
