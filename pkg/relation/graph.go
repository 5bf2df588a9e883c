package relation

import (
	"context"

	"github.com/goliatone/go-catalog/pkg/record"
)

// Triple is one statement in the relations graph. Subject and Object are
// catalog id strings.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// Graph is the storage contract for relation statements. Implementations
// return id lists sorted in catalog-id order and treat Add as idempotent.
type Graph interface {
	// Add inserts statements, ignoring triples that already exist.
	Add(ctx context.Context, triples []Triple) error

	// Remove deletes statements and returns the triples actually removed.
	Remove(ctx context.Context, triples []Triple) ([]Triple, error)

	// Subjects lists ids of records that are subjects of statements,
	// optionally filtered by predicate and/or object. Empty strings match
	// anything.
	Subjects(ctx context.Context, predicate, object string) ([]string, error)

	// Objects lists ids of records that are objects of statements, optionally
	// filtered by subject and/or predicate. Empty strings match anything.
	Objects(ctx context.Context, subject, predicate string) ([]string, error)
}

// Related resolves one binding for a record: the ids on the far side of the
// binding's statements.
func Related(ctx context.Context, g Graph, self record.ID, b Binding) ([]string, error) {
	if b.Inverse {
		return g.Subjects(ctx, b.Predicate, self.String())
	}
	return g.Objects(ctx, self.String(), b.Predicate)
}
