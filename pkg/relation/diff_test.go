package relation_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/relation"
)

func TestDiffForward(t *testing.T) {
	b, ok := relation.BindingFor(record.SeriesScheme, "maintainers")
	if !ok {
		t.Fatal("missing maintainers binding")
	}

	add, remove := relation.Diff("msc:m1", b,
		[]string{"msc:g1", "msc:g2"},
		[]string{"msc:g2", "msc:g3"})

	wantAdd := []relation.Triple{{Subject: "msc:m1", Predicate: relation.PredicateMaintainer, Object: "msc:g3"}}
	wantRemove := []relation.Triple{{Subject: "msc:m1", Predicate: relation.PredicateMaintainer, Object: "msc:g1"}}
	if diff := cmp.Diff(wantAdd, add); diff != "" {
		t.Errorf("additions (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantRemove, remove); diff != "" {
		t.Errorf("removals (-want +got):\n%s", diff)
	}
}

func TestDiffInverse(t *testing.T) {
	b, ok := relation.BindingFor(record.SeriesScheme, "tools")
	if !ok {
		t.Fatal("missing tools binding")
	}

	add, remove := relation.Diff("msc:m1", b, nil, []string{"msc:t4"})

	wantAdd := []relation.Triple{{Subject: "msc:t4", Predicate: relation.PredicateSupportedScheme, Object: "msc:m1"}}
	if diff := cmp.Diff(wantAdd, add); diff != "" {
		t.Errorf("additions (-want +got):\n%s", diff)
	}
	if len(remove) != 0 {
		t.Errorf("unexpected removals: %+v", remove)
	}
}

func TestDiffDropsSelfReference(t *testing.T) {
	b, _ := relation.BindingFor(record.SeriesScheme, "parent_schemes")

	add, remove := relation.Diff("msc:m1", b, nil, []string{"msc:m1", "msc:m2"})
	if len(remove) != 0 {
		t.Fatalf("unexpected removals: %+v", remove)
	}
	want := []relation.Triple{{Subject: "msc:m1", Predicate: relation.PredicateParentScheme, Object: "msc:m2"}}
	if diff := cmp.Diff(want, add); diff != "" {
		t.Fatalf("additions (-want +got):\n%s", diff)
	}
}

func TestDiffEmptySubmissionClears(t *testing.T) {
	b, _ := relation.BindingFor(record.SeriesScheme, "funders")

	add, remove := relation.Diff("msc:m1", b, []string{"msc:g9", "msc:g4"}, []string{""})
	if len(add) != 0 {
		t.Fatalf("unexpected additions: %+v", add)
	}
	objects := []string{remove[0].Object, remove[1].Object}
	sort.Strings(objects)
	if diff := cmp.Diff([]string{"msc:g4", "msc:g9"}, objects); diff != "" {
		t.Fatalf("removals (-want +got):\n%s", diff)
	}
}

func TestBindingsPerSeries(t *testing.T) {
	if got := relation.Bindings(record.SeriesScheme); len(got) != 9 {
		t.Errorf("scheme bindings: %d", len(got))
	}
	if got := relation.Bindings(record.SeriesDatatype); got != nil {
		t.Errorf("datatype bindings should be nil, got %+v", got)
	}
	if !relation.IsSchemeGrouping("parent_schemes") {
		t.Error("parent_schemes should group under related schemes")
	}
	if relation.IsSchemeGrouping("maintainers") {
		t.Error("maintainers should not group under related schemes")
	}
}
