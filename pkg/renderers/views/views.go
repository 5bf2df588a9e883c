package views

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-catalog/pkg/model"
	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/render"
	rendertemplate "github.com/goliatone/go-catalog/pkg/render/template"
	gotemplate "github.com/goliatone/go-catalog/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.Renderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.Renderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Views renders catalog pages from the embedded template bundle.
type Views struct {
	templates rendertemplate.Renderer
}

// New constructs the page renderer applying any provided options.
func New(options ...Option) (*Views, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithTemplateFunc(templateGlobals()),
		)
		if err != nil {
			return nil, fmt.Errorf("views: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Views{templates: renderer}, nil
}

// RenderDisplay renders the display page for the record in data.
func (v *Views) RenderDisplay(_ context.Context, data DisplayData) ([]byte, error) {
	if v.templates == nil {
		return nil, fmt.Errorf("views: template renderer is nil")
	}
	series, err := record.ParseSeries(data.Record.Series)
	if err != nil {
		return nil, fmt.Errorf("views: display %q: %w", data.Record.ID, err)
	}
	name := fmt.Sprintf("templates/display-%s.tmpl", series.Name())
	result, err := v.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("views: render display page: %w", err)
	}
	return []byte(result), nil
}

// RenderEdit renders the edit page for the form in data. The template is
// picked by the form's series.
func (v *Views) RenderEdit(_ context.Context, data EditData) ([]byte, error) {
	if v.templates == nil {
		return nil, fmt.Errorf("views: template renderer is nil")
	}
	series, err := record.ParseSeries(data.Form.Series)
	if err != nil {
		return nil, fmt.Errorf("views: edit form %q: %w", data.Form.OperationID, err)
	}
	// Templates index into these maps by field name; keep them non-nil so
	// lookups resolve to empty values instead of failing.
	if data.Values == nil {
		data.Values = map[string]any{}
	}
	if data.Errors == nil {
		data.Errors = map[string][]string{}
	}
	if data.Hidden == nil {
		data.Hidden = map[string]string{}
	}
	if data.Choices == nil {
		data.Choices = map[string][]render.Choice{}
	}
	name := fmt.Sprintf("templates/edit-%s.tmpl", series.Name())
	result, err := v.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("views: render edit page: %w", err)
	}
	return []byte(result), nil
}

// FormRenderer adapts the edit templates to the render.Renderer contract so
// the page renderer can live in a render.Registry.
type FormRenderer struct {
	views *Views
}

var _ render.Renderer = (*FormRenderer)(nil)

// FormRenderer returns the render.Renderer adapter for edit pages.
func (v *Views) FormRenderer() *FormRenderer {
	return &FormRenderer{views: v}
}

func (r *FormRenderer) Name() string {
	return "views"
}

func (r *FormRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *FormRenderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	data := EditData{
		Form:    form,
		Action:  options.Action,
		Method:  options.Method,
		Values:  options.Values,
		Errors:  options.Errors,
		Hidden:  options.Hidden,
		Choices: options.Choices,
	}
	if data.Action == "" {
		data.Action = form.Endpoint
	}
	if data.Method == "" {
		data.Method = form.Method
	}
	return r.views.RenderEdit(ctx, data)
}
