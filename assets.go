package catalog

import (
	"io/fs"

	"github.com/goliatone/go-catalog/pkg/renderers/views"
)

// StaticAssetsFS exposes the stylesheet the built-in pages link to. The
// catalog handler already serves it under /static/; this accessor is for
// applications that mount the pages behind their own mux.
//
// Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(catalog.StaticAssetsFS()),
//	  ),
//	)
func StaticAssetsFS() fs.FS {
	return views.AssetsFS()
}
