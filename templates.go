package catalog

import (
	"io/fs"

	pkgopenapi "github.com/goliatone/go-catalog/pkg/openapi"
	"github.com/goliatone/go-catalog/pkg/renderers/views"
)

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the views package directly.
func EmbeddedTemplates() fs.FS {
	return views.TemplatesFS()
}

// EmbeddedSpec exposes the bundled form specification document.
func EmbeddedSpec() fs.FS {
	return pkgopenapi.EmbeddedFS()
}
