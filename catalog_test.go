package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-catalog/pkg/record"
)

func TestLoadFormModelsCoversEverySeries(t *testing.T) {
	forms, err := LoadFormModels(context.Background())
	if err != nil {
		t.Fatalf("load form models: %v", err)
	}

	for _, series := range record.AllSeries() {
		form, ok := forms[series]
		if !ok {
			t.Fatalf("no form model for series %q", series)
		}
		if form.Field(series.NameField()) == nil {
			t.Errorf("series %q form is missing its %q field", series, series.NameField())
		}
	}
}

func TestOpenRequiresDatabasePath(t *testing.T) {
	if _, err := Open(context.Background(), Options{}); err == nil {
		t.Fatal("expected an error for a missing database path")
	}
}

func TestOpenRendersPages(t *testing.T) {
	ctx := context.Background()
	c, err := Open(ctx, Options{
		DatabasePath: filepath.Join(t.TempDir(), "catalog.db"),
	})
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}

	rec := record.New(record.SeriesScheme)
	rec.Fields["title"] = "Darwin Core"
	if err := c.Store.Save(ctx, &rec); err != nil {
		t.Fatalf("save record: %v", err)
	}

	page, err := c.DisplayPage(ctx, rec.ID().String()[len(record.IDPrefix):])
	if err != nil {
		t.Fatalf("render display page: %v", err)
	}
	if !strings.Contains(string(page), "Darwin Core") {
		t.Fatalf("display page missing record title:\n%s", page)
	}

	blank, err := c.EditPage(ctx, "m0")
	if err != nil {
		t.Fatalf("render blank edit page: %v", err)
	}
	if !strings.Contains(string(blank), "<form") {
		t.Fatal("edit page missing form element")
	}
}

func TestHandlerServesIndex(t *testing.T) {
	ctx := context.Background()
	c, err := Open(ctx, Options{
		DatabasePath: filepath.Join(t.TempDir(), "catalog.db"),
	})
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get index: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("index status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	css, err := http.Get(srv.URL + "/static/catalog.css")
	if err != nil {
		t.Fatalf("get stylesheet: %v", err)
	}
	defer css.Body.Close()
	if css.StatusCode != http.StatusOK {
		t.Fatalf("stylesheet status = %d, want %d", css.StatusCode, http.StatusOK)
	}
}
