package views

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/catalog.css
var embeddedAssets embed.FS

// TemplatesFS exposes the embedded template bundle for consumers that want to
// serve the built-in pages out of the box.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the stylesheet the built-in pages link to, rooted so that
// catalog.css sits at the top of the tree.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
