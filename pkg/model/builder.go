package model

import (
	"github.com/goliatone/go-catalog/internal/model"
	pkgopenapi "github.com/goliatone/go-catalog/pkg/openapi"
)

// Builder turns an edit operation from the catalog description into the
// FormModel the renderers and the submission pipeline share.
type Builder interface {
	Build(op pkgopenapi.Operation) (FormModel, error)
}

// BuilderOption adjusts builder behaviour.
type BuilderOption func(*model.Options)

// WithLabeler replaces the default field-name-to-label conversion.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *model.Options) {
		if labeler != nil {
			opts.Labeler = labeler
		}
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	var opts model.Options
	for _, opt := range options {
		opt(&opts)
	}
	return model.New(opts)
}
