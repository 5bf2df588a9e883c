package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-catalog/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*settings)

type settings struct {
	files     fs.FS
	extension string
	funcs     map[string]any
}

// WithFS points the engine at the template files, usually an embed.FS.
func WithFS(files fs.FS) Option {
	return func(s *settings) {
		s.files = files
	}
}

// WithExtension sets the suffix appended to template names that lack one.
func WithExtension(ext string) Option {
	return func(s *settings) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extension = ext
	}
}

// WithTemplateFunc makes the given helpers available inside every template.
// Values implementing pongo2.FilterFunction register as filters; plain
// functions land in the global context.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(s *settings) {
		if s.funcs == nil {
			s.funcs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			s.funcs[strings.TrimSpace(name)] = fn
		}
	}
}

// WithGoTemplateOptions exists for compatibility with earlier versions of
// this adapter and is currently a no-op.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*settings) {}
}

// Engine renders pongo2 templates from a filesystem, caching parsed
// templates across requests. It satisfies template.Renderer.
type Engine struct {
	mu     sync.RWMutex
	set    *pongo2.TemplateSet
	parsed map[string]*pongo2.Template
	ext    string
}

var _ template.Renderer = (*Engine)(nil)

// New builds an Engine. A template filesystem is required.
func New(options ...Option) (*Engine, error) {
	cfg := &settings{extension: ".tmpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.files == nil {
		return nil, errors.New("gotemplate: template filesystem is required")
	}

	e := &Engine{
		set:    pongo2.NewSet("catalog", pongo2.NewFSLoader(cfg.files)),
		parsed: make(map[string]*pongo2.Template),
		ext:    cfg.extension,
	}
	for name, fn := range cfg.funcs {
		if err := e.installFunc(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: install %q: %w", name, err)
		}
	}
	return e, nil
}

// RenderTemplate executes the named template with data. The extension is
// appended when missing. Output is returned and also copied to any writers.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}

	ctx, err := templateContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: context for %q: %w", name, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %q: %w", name, err)
	}

	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// RegisterFilter exposes fn inside templates as a pongo2 filter. Filter names
// are process-global in pongo2, so re-registering an existing name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter needs a name and a function")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data any) error {
	ctx, err := templateContext(data)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) installFunc(name string, fn any) error {
	if name == "" || fn == nil {
		return nil
	}
	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if pongo2.FilterExists(name) {
			return nil
		}
		return pongo2.RegisterFilter(name, filter)
	}
	if reflect.ValueOf(fn).Kind() != reflect.Func {
		return fmt.Errorf("not a function")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals[name] = fn
	return nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.parsed[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.parsed[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	e.parsed[name] = tmpl
	return tmpl, nil
}

// templateContext flattens data into a pongo2.Context. Struct values go
// through their JSON form so templates address fields by their json tags,
// matching the API payloads. Functions pass through untouched.
func templateContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}

	var fields map[string]any
	switch v := data.(type) {
	case pongo2.Context:
		fields = v
	case map[string]any:
		fields = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fields = map[string]any{}
		if err := json.Unmarshal(b, &fields); err != nil {
			return nil, err
		}
	}

	ctx := make(pongo2.Context, len(fields))
	for key, value := range fields {
		if key == "" {
			continue
		}
		if value != nil && reflect.ValueOf(value).Kind() == reflect.Func {
			ctx[key] = value
			continue
		}
		plain, err := jsonValue(value)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", key, err)
		}
		ctx[key] = plain
	}
	return ctx, nil
}

// jsonValue round-trips a value through JSON so nested structs become the
// maps and slices pongo2 dot-paths expect.
func jsonValue(v any) (any, error) {
	switch v.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
