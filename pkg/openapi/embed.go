package openapi

import "embed"

// EmbeddedDocumentName is the path of the bundled catalog description within
// EmbeddedFS.
const EmbeddedDocumentName = "catalog.yaml"

//go:embed catalog.yaml
var embeddedFS embed.FS

// EmbeddedFS exposes the bundled OpenAPI document for loaders configured with
// WithFileSystem.
func EmbeddedFS() embed.FS {
	return embeddedFS
}

// EmbeddedSource returns the Source for the bundled catalog description.
func EmbeddedSource() Source {
	return SourceFromFS(EmbeddedDocumentName)
}
