package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-catalog/internal/store"
	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/relation"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	return s
}

func TestSaveAllocatesDocIDs(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	first := record.New(record.SeriesScheme)
	first.Fields["title"] = "Dublin Core"
	require.NoError(t, s.Save(ctx, &first))
	assert.Equal(t, 1, first.DocID)

	second := record.New(record.SeriesScheme)
	second.Fields["title"] = "DataCite"
	require.NoError(t, s.Save(ctx, &second))
	assert.Equal(t, 2, second.DocID)

	// Doc ids are allocated per series.
	org := record.New(record.SeriesOrganization)
	org.Fields["name"] = "DCMI"
	require.NoError(t, s.Save(ctx, &org))
	assert.Equal(t, 1, org.DocID)
}

func TestLoadRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec := record.New(record.SeriesTool)
	rec.Fields["title"] = "Validator"
	rec.Fields["locations"] = []any{
		map[string]any{"url": "https://example.com", "type": "website"},
	}
	require.NoError(t, s.Save(ctx, &rec))

	loaded, err := s.Load(ctx, record.SeriesTool, rec.DocID)
	require.NoError(t, err)
	assert.Equal(t, "Validator", loaded.Title())
	require.Len(t, loaded.Locations(), 1)
	assert.Equal(t, "website", loaded.Locations()[0].Type)

	byID, err := s.LoadID(ctx, loaded.ID().String())
	require.NoError(t, err)
	assert.Equal(t, loaded.DocID, byID.DocID)
}

func TestLoadMissing(t *testing.T) {
	s := openStore(t)

	_, err := s.Load(context.Background(), record.SeriesScheme, 99)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestUpdateReplacesPayload(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec := record.New(record.SeriesScheme)
	rec.Fields["title"] = "Old title"
	rec.Fields["description"] = "<p>kept?</p>"
	require.NoError(t, s.Save(ctx, &rec))

	rec.Fields = map[string]any{"title": "New title"}
	require.NoError(t, s.Save(ctx, &rec))

	loaded, err := s.Load(ctx, record.SeriesScheme, rec.DocID)
	require.NoError(t, err)
	assert.Equal(t, "New title", loaded.Title())
	assert.False(t, loaded.Has("description"), "stale fields must not survive an update")
}

func TestSaveCleansEmptyFields(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec := record.New(record.SeriesScheme)
	rec.Fields["title"] = "Tidy"
	rec.Fields["description"] = ""
	rec.Fields["keywords"] = []any{}
	require.NoError(t, s.Save(ctx, &rec))

	loaded, err := s.Load(ctx, record.SeriesScheme, rec.DocID)
	require.NoError(t, err)
	assert.False(t, loaded.Has("description"))
	assert.False(t, loaded.Has("keywords"))
}

func TestGraphAddIsIdempotent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	triples := []relation.Triple{
		{Subject: "msc:m1", Predicate: relation.PredicateMaintainer, Object: "msc:g1"},
		{Subject: "msc:m1", Predicate: relation.PredicateMaintainer, Object: "msc:g1"},
	}
	require.NoError(t, s.Add(ctx, triples))
	require.NoError(t, s.Add(ctx, triples[:1]))

	objects, err := s.Objects(ctx, "msc:m1", relation.PredicateMaintainer)
	require.NoError(t, err)
	assert.Equal(t, []string{"msc:g1"}, objects)
}

func TestGraphRemoveReportsRemoved(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	present := relation.Triple{Subject: "msc:m1", Predicate: relation.PredicateFunder, Object: "msc:g2"}
	absent := relation.Triple{Subject: "msc:m1", Predicate: relation.PredicateFunder, Object: "msc:g9"}
	require.NoError(t, s.Add(ctx, []relation.Triple{present}))

	removed, err := s.Remove(ctx, []relation.Triple{present, absent})
	require.NoError(t, err)
	assert.Equal(t, []relation.Triple{present}, removed)
}

func TestGraphOrdering(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, []relation.Triple{
		{Subject: "msc:m10", Predicate: relation.PredicateParentScheme, Object: "msc:m1"},
		{Subject: "msc:m2", Predicate: relation.PredicateParentScheme, Object: "msc:m1"},
	}))

	subjects, err := s.Subjects(ctx, relation.PredicateParentScheme, "msc:m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"msc:m2", "msc:m10"}, subjects)
}

func TestRelationsOf(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, []relation.Triple{
		{Subject: "msc:m1", Predicate: relation.PredicateMaintainer, Object: "msc:g2"},
		{Subject: "msc:m1", Predicate: relation.PredicateMaintainer, Object: "msc:g1"},
		{Subject: "msc:m1", Predicate: relation.PredicateFunder, Object: "msc:g3"},
	}))

	rels, err := s.RelationsOf(ctx, "msc:m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"msc:g1", "msc:g2"}, rels[relation.PredicateMaintainer])
	assert.Equal(t, []string{"msc:g3"}, rels[relation.PredicateFunder])
}

func TestDisconnectDropsBothSides(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, []relation.Triple{
		{Subject: "msc:m1", Predicate: relation.PredicateMaintainer, Object: "msc:g1"},
		{Subject: "msc:m2", Predicate: relation.PredicateParentScheme, Object: "msc:m1"},
		{Subject: "msc:m2", Predicate: relation.PredicateMaintainer, Object: "msc:g1"},
	}))

	require.NoError(t, s.Disconnect(ctx, "msc:m1"))

	subjects, err := s.RelationSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"msc:m2"}, subjects)

	rels, err := s.RelationsOf(ctx, "msc:m2")
	require.NoError(t, err)
	assert.Empty(t, rels[relation.PredicateParentScheme])
	assert.Equal(t, []string{"msc:g1"}, rels[relation.PredicateMaintainer])
}
