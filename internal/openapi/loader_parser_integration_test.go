package openapi_test

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	catalog "github.com/goliatone/go-catalog"
	pkgopenapi "github.com/goliatone/go-catalog/pkg/openapi"
)

func TestLoaderParserIntegration(t *testing.T) {
	ctx := context.Background()

	data, err := fs.ReadFile(pkgopenapi.EmbeddedFS(), "catalog.yaml")
	if err != nil {
		t.Fatalf("read embedded spec: %v", err)
	}

	tmp := t.TempDir()
	filePath := filepath.Join(tmp, "catalog.yaml")
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		t.Fatalf("write temp fixture: %v", err)
	}

	parser := catalog.NewParser()

	// File source
	loader := catalog.NewLoader()
	docFile, err := loader.Load(ctx, pkgopenapi.SourceFromFile(filePath))
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	opsFile, err := parser.Operations(ctx, docFile)
	if err != nil {
		t.Fatalf("parse file document: %v", err)
	}
	if _, ok := opsFile["editScheme"]; !ok {
		t.Fatalf("editScheme operation missing, got %d operations", len(opsFile))
	}

	// Embedded filesystem source
	loaderFS := catalog.NewLoader(pkgopenapi.WithFileSystem(pkgopenapi.EmbeddedFS()))
	docFS, err := loaderFS.Load(ctx, pkgopenapi.EmbeddedSource())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if _, err := parser.Operations(ctx, docFS); err != nil {
		t.Fatalf("parse embedded document: %v", err)
	}

	// HTTP source
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	loaderHTTP := catalog.NewLoader(pkgopenapi.WithHTTPFallback(0))
	docHTTP, err := loaderHTTP.Load(ctx, pkgopenapi.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	if _, err := parser.Operations(ctx, docHTTP); err != nil {
		t.Fatalf("parse http document: %v", err)
	}
}
