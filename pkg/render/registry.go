package render

import (
	"fmt"
	"sync"
)

// Registry keeps named renderers so embedders hosting the catalog can swap
// in their own form renderer; the bundled pages resolve the views renderer
// directly. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{entries: map[string]Renderer{}}
}

// Register stores a renderer under its Name. Registering a second renderer
// with the same name is an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: nil renderer")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer has no name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.entries[name]; dup {
		return fmt.Errorf("render: %q already registered", name)
	}
	r.entries[name] = renderer
	return nil
}

// MustRegister is Register for init-time wiring; it panics on error.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("render: no renderer %q", name)
	}
	return renderer, nil
}

// MustGet is Get for wiring code that treats a missing renderer as fatal.
func (r *Registry) MustGet(name string) Renderer {
	renderer, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return renderer
}
