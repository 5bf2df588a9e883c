package template

import "io"

// Renderer is the seam between page renderers and the template engine that
// backs them. Implementations cache parsed templates and are safe for
// concurrent use.
type Renderer interface {
	// RenderTemplate executes a named template, returning the output and
	// optionally copying it to the given writers.
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	// RegisterFilter adds a value filter usable from template expressions.
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	// GlobalContext merges values into the data every template receives.
	GlobalContext(data any) error
}
