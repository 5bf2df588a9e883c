package testsupport

import (
	"testing"

	"github.com/goliatone/go-catalog/internal/store"
	"github.com/goliatone/go-catalog/pkg/record"
)

// MemoryStore opens a throwaway in-memory catalog store.
func MemoryStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	return s
}

// SeedRecord saves a record with the given fields into the next free doc slot
// of its series and returns the allocated identifier.
func SeedRecord(t *testing.T, s *store.Store, series record.Series, fields map[string]any) record.ID {
	t.Helper()

	rec := record.New(series)
	for key, value := range fields {
		rec.Fields[key] = value
	}
	if err := s.Save(Context(), &rec); err != nil {
		t.Fatalf("seed %s record: %v", series.Name(), err)
	}
	return rec.ID()
}
