package catalog

import (
	"io/fs"
	"strings"
	"testing"
)

func TestStaticAssetsFSContainsStylesheet(t *testing.T) {
	fsys := StaticAssetsFS()
	data, err := fs.ReadFile(fsys, "catalog.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".form-field") {
		t.Fatalf("expected stylesheet to style form fields")
	}
}
