// Package relation models the named cross-references between catalog records:
// the predicate vocabulary, the per-series form-field bindings that map field
// names onto predicates and directions, and the diff logic that turns a form
// submission into graph additions and deletions.
package relation
