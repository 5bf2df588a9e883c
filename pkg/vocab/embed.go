package vocab

import (
	"embed"
	"sync"
)

//go:embed unesco.yaml
var embeddedFS embed.FS

var (
	embeddedOnce sync.Once
	embedded     *Thesaurus
	embeddedErr  error
)

// Embedded returns the bundled UNESCO Thesaurus snapshot. The scheme is
// parsed once and shared; the Thesaurus is immutable after construction.
func Embedded() (*Thesaurus, error) {
	embeddedOnce.Do(func() {
		embedded, embeddedErr = Load(embeddedFS, "unesco.yaml")
	})
	return embedded, embeddedErr
}
