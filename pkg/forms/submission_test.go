package forms

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/goliatone/go-catalog/internal/store"
	"github.com/goliatone/go-catalog/pkg/model"
	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/relation"
	"github.com/goliatone/go-catalog/pkg/vocab"
)

func schemeFormModel() model.FormModel {
	return model.FormModel{
		OperationID: "editScheme",
		Series:      "m",
		Endpoint:    "/edit/m",
		Method:      "POST",
		Fields: []model.Field{
			{Name: "title", Type: model.FieldTypeString, Required: true},
			{Name: "description", Type: model.FieldTypeString, Widget: model.WidgetTextarea},
			{Name: "keywords", Type: model.FieldTypeArray, Vocab: "unesco-thesaurus",
				Items: &model.Field{Type: model.FieldTypeString}},
			{Name: "maintainers", Type: model.FieldTypeArray, Widget: model.WidgetCheckboxes,
				Items: &model.Field{Type: model.FieldTypeString}},
		},
	}
}

func newPipeline(t *testing.T) (*Pipeline, *store.Store) {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	th, err := vocab.Embedded()
	if err != nil {
		t.Fatalf("embedded vocab: %v", err)
	}
	return NewPipeline(s, s, th, nil), s
}

func TestProcessCreatesRecord(t *testing.T) {
	pipeline, s := newPipeline(t)
	ctx := context.Background()

	values := url.Values{
		"title":       {"Dublin Core"},
		"description": {`<p>Metadata terms.</p><script>x()</script>`},
		"keywords":    {"Geology"},
	}

	result, errs, err := pipeline.Process(ctx, schemeFormModel(), record.SeriesScheme, 0, values)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !errs.Empty() {
		t.Fatalf("unexpected validation errors: %v", errs)
	}
	if !result.Created {
		t.Fatalf("expected created result")
	}
	if result.ID.String() != "msc:m1" {
		t.Fatalf("id = %s, want msc:m1", result.ID)
	}

	saved, err := s.Load(ctx, record.SeriesScheme, 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if saved.Description() != "<p>Metadata terms.</p>" {
		t.Fatalf("description not sanitized: %q", saved.Description())
	}
	keywords := saved.Keywords()
	if len(keywords) != 1 || keywords[0] != "http://vocabularies.unesco.org/thesaurus/concept158" {
		t.Fatalf("keywords not resolved to URIs: %v", keywords)
	}
}

func TestProcessRejectsInvalidSubmission(t *testing.T) {
	pipeline, s := newPipeline(t)
	ctx := context.Background()

	values := url.Values{"keywords": {"not a real subject"}}
	_, errs, err := pipeline.Process(ctx, schemeFormModel(), record.SeriesScheme, 0, values)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(errs["title"]) == 0 {
		t.Fatalf("missing title should fail validation: %v", errs)
	}
	if len(errs["keywords.0"]) == 0 {
		t.Fatalf("unknown keyword should fail validation: %v", errs)
	}

	if _, err := s.Load(ctx, record.SeriesScheme, 1); err == nil {
		t.Fatalf("invalid submission must not be stored")
	}
}

func TestProcessWritesRelations(t *testing.T) {
	pipeline, s := newPipeline(t)
	ctx := context.Background()

	org := record.New(record.SeriesOrganization)
	org.Fields["name"] = "DCMI"
	if err := s.Save(ctx, &org); err != nil {
		t.Fatalf("save org: %v", err)
	}

	values := url.Values{
		"title":       {"Dublin Core"},
		"maintainers": {org.ID().String()},
	}
	result, errs, err := pipeline.Process(ctx, schemeFormModel(), record.SeriesScheme, 0, values)
	if err != nil || !errs.Empty() {
		t.Fatalf("process: err=%v errs=%v", err, errs)
	}

	objects, err := s.Objects(ctx, result.ID.String(), relation.PredicateMaintainer)
	if err != nil {
		t.Fatalf("objects: %v", err)
	}
	if len(objects) != 1 || objects[0] != org.ID().String() {
		t.Fatalf("maintainer relation missing: %v", objects)
	}

	loaded, err := s.Load(ctx, record.SeriesScheme, result.ID.DocID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Has("maintainers") {
		t.Fatalf("relation selections must not be stored on the record body")
	}
}

func TestProcessDiffsAgainstOldRelations(t *testing.T) {
	pipeline, s := newPipeline(t)
	ctx := context.Background()

	org1 := record.New(record.SeriesOrganization)
	org1.Fields["name"] = "One"
	org2 := record.New(record.SeriesOrganization)
	org2.Fields["name"] = "Two"
	for _, org := range []*record.Record{&org1, &org2} {
		if err := s.Save(ctx, org); err != nil {
			t.Fatalf("save org: %v", err)
		}
	}

	// First save selects org1.
	values := url.Values{"title": {"Scheme"}, "maintainers": {org1.ID().String()}}
	result, errs, err := pipeline.Process(ctx, schemeFormModel(), record.SeriesScheme, 0, values)
	if err != nil || !errs.Empty() {
		t.Fatalf("first process: err=%v errs=%v", err, errs)
	}

	oldState, err := OldRelationsValue(ctx, s, result.ID, record.SeriesScheme)
	if err != nil {
		t.Fatalf("old relations: %v", err)
	}
	if oldState == "" {
		t.Fatalf("expected serialized relation state")
	}

	// Second save swaps the selection to org2.
	values = url.Values{
		"title":         {"Scheme"},
		"maintainers":   {org2.ID().String()},
		"old_relations": {oldState},
	}
	if _, errs, err = pipeline.Process(ctx, schemeFormModel(), record.SeriesScheme, result.ID.DocID, values); err != nil || !errs.Empty() {
		t.Fatalf("second process: err=%v errs=%v", err, errs)
	}

	objects, err := s.Objects(ctx, result.ID.String(), relation.PredicateMaintainer)
	if err != nil {
		t.Fatalf("objects: %v", err)
	}
	sort.Strings(objects)
	if len(objects) != 1 || objects[0] != org2.ID().String() {
		t.Fatalf("relations not swapped: %v", objects)
	}
}

func TestProcessEmptySelectionClearsRelations(t *testing.T) {
	pipeline, s := newPipeline(t)
	ctx := context.Background()

	values := url.Values{"title": {"Scheme"}, "maintainers": {"msc:g1"}}
	result, errs, err := pipeline.Process(ctx, schemeFormModel(), record.SeriesScheme, 0, values)
	if err != nil || !errs.Empty() {
		t.Fatalf("first process: err=%v errs=%v", err, errs)
	}

	// Submitting the field with only blank entries clears the stored triples.
	values = url.Values{"title": {"Scheme"}, "maintainers": {""}}
	if _, errs, err = pipeline.Process(ctx, schemeFormModel(), record.SeriesScheme, result.ID.DocID, values); err != nil || !errs.Empty() {
		t.Fatalf("second process: err=%v errs=%v", err, errs)
	}

	objects, err := s.Objects(ctx, result.ID.String(), relation.PredicateMaintainer)
	if err != nil {
		t.Fatalf("objects: %v", err)
	}
	if len(objects) != 0 {
		t.Fatalf("relations not cleared: %v", objects)
	}
}

// failingGraph errors on every read so tests can exercise error wrapping.
type failingGraph struct{}

func (failingGraph) Add(context.Context, []relation.Triple) error { return nil }
func (failingGraph) Remove(context.Context, []relation.Triple) ([]relation.Triple, error) {
	return nil, nil
}
func (failingGraph) Subjects(context.Context, string, string) ([]string, error) {
	return nil, errors.New("graph unavailable")
}
func (failingGraph) Objects(context.Context, string, string) ([]string, error) {
	return nil, errors.New("graph unavailable")
}

func TestOldRelationsValueWrapsGraphErrors(t *testing.T) {
	id := record.ID{Series: record.SeriesScheme, DocID: 3}

	_, err := OldRelationsValue(context.Background(), failingGraph{}, id, record.SeriesScheme)
	if err == nil {
		t.Fatalf("expected error from failing graph")
	}
	if !strings.Contains(err.Error(), id.String()) {
		t.Fatalf("error should name the record: %v", err)
	}
}
