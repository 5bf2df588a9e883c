// Package forms turns submitted form data into stored catalog records. The
// pipeline decodes url.Values against a form model, validates field
// constraints, sanitizes rich text, resolves keyword labels against the
// subject vocabulary, and splits relation selections out of the record body
// so they can be written to the relation graph.
package forms
