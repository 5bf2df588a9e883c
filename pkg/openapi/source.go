package openapi

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// source is the common implementation behind the Source constructors; the
// kind tells the loader which resolution strategy applies.
type source struct {
	kind     SourceKind
	location string
}

func (s source) Location() string { return s.location }
func (s source) Kind() SourceKind { return s.kind }

// SourceFromFile identifies a document on the operating-system filesystem.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS identifies a document inside an fs.FS, such as the embedded
// catalog bundle.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// SourceFromURL identifies a document behind an HTTP or HTTPS endpoint. An
// unparseable URL panics so configuration mistakes surface at wiring time.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("openapi: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("openapi: invalid URL %q: %v", raw, err))
	}
	return source{kind: SourceKindURL, location: raw}
}
