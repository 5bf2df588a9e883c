package catalog

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-catalog/internal/server"
	"github.com/goliatone/go-catalog/internal/store"
	"github.com/goliatone/go-catalog/pkg/model"
	pkgopenapi "github.com/goliatone/go-catalog/pkg/openapi"
	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/renderers/views"
	"github.com/goliatone/go-catalog/pkg/vocab"
)

// Options configures Open. DatabasePath is the only required field; the
// zero value of everything else yields a read-only catalog with quiet logs.
type Options struct {
	// DatabasePath locates the SQLite database. The file is created on first
	// open.
	DatabasePath string
	// Password is the shared curator password. Leave it empty to disable
	// sign-in and serve a read-only catalog.
	Password string
	// Logger receives request and pipeline logs. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Catalog bundles an opened store, the embedded form models, the subject
// thesaurus, and a ready-to-serve HTTP handler.
type Catalog struct {
	Store     *store.Store
	Forms     map[record.Series]model.FormModel
	Thesaurus *vocab.Thesaurus
	Views     *views.Views

	server *server.Server
}

// Open builds a catalog from the embedded form specification and subject
// vocabulary, backed by the SQLite database at opts.DatabasePath.
func Open(ctx context.Context, opts Options) (*Catalog, error) {
	if opts.DatabasePath == "" {
		return nil, fmt.Errorf("catalog: database path is required")
	}

	st, err := store.Open(opts.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("catalog: open store: %w", err)
	}

	thesaurus, err := vocab.Embedded()
	if err != nil {
		return nil, fmt.Errorf("catalog: load vocabulary: %w", err)
	}

	formModels, err := LoadFormModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: load form models: %w", err)
	}

	v, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("catalog: build views: %w", err)
	}

	srv, err := server.New(server.Config{
		Store:     st,
		Views:     v,
		Forms:     formModels,
		Thesaurus: thesaurus,
		Logger:    opts.Logger,
		Password:  opts.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: build server: %w", err)
	}

	return &Catalog{
		Store:     st,
		Forms:     formModels,
		Thesaurus: thesaurus,
		Views:     v,
		server:    srv,
	}, nil
}

// Handler returns the catalog's HTTP handler serving the HTML pages and the
// /api2 JSON endpoints.
func (c *Catalog) Handler() http.Handler {
	return c.server.Handler()
}

// DisplayPage renders the display page for a record identified by its bare
// catalog id, e.g. "m13". It carries no session state, which makes it useful
// for previews and static exports.
func (c *Catalog) DisplayPage(ctx context.Context, id string) ([]byte, error) {
	return c.server.DisplayPage(ctx, id)
}

// EditPage renders the edit form for a record identified by its bare catalog
// id. A doc number of zero, e.g. "m0", yields the blank add form.
func (c *Catalog) EditPage(ctx context.Context, id string) ([]byte, error) {
	return c.server.EditPage(ctx, id)
}

// LoadFormModels parses the embedded form specification and builds one form
// model per record series.
func LoadFormModels(ctx context.Context) (map[record.Series]model.FormModel, error) {
	loader := NewLoader(pkgopenapi.WithFileSystem(pkgopenapi.EmbeddedFS()))
	doc, err := loader.Load(ctx, pkgopenapi.EmbeddedSource())
	if err != nil {
		return nil, fmt.Errorf("load embedded spec: %w", err)
	}

	parser := NewParser()
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse operations: %w", err)
	}

	builder := model.NewBuilder()
	forms := make(map[record.Series]model.FormModel, len(operations))
	for id, op := range operations {
		form, err := builder.Build(op)
		if err != nil {
			return nil, fmt.Errorf("build form for %s: %w", id, err)
		}
		if form.Series == "" {
			continue
		}
		series, err := record.ParseSeries(form.Series)
		if err != nil {
			return nil, fmt.Errorf("form %s: %w", id, err)
		}
		forms[series] = form
	}
	if len(forms) == 0 {
		return nil, fmt.Errorf("embedded spec defines no record forms")
	}
	return forms, nil
}
