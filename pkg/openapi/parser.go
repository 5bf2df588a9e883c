package openapi

import "context"

// Parser turns a loaded Document into the edit operations keyed by operation
// id that the form-model builder consumes.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions tunes reference handling.
type ParserOptions struct {
	// ResolveReferences follows $ref pointers while walking schemas. On by
	// default; the catalog document uses component references for the shared
	// location and identifier shapes.
	ResolveReferences bool

	// AllowPartialDocuments accepts documents without paths, useful when
	// inspecting component-only fragments.
	AllowPartialDocuments bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles $ref resolution.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments toggles acceptance of documents without operations.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// NewParserOptions folds a set of options into a configuration value.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{ResolveReferences: true}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
