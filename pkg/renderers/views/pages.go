package views

import (
	"context"
	"fmt"
)

// IndexData is the context for the landing page.
type IndexData struct {
	Authenticated bool    `json:"authenticated"`
	Flashes       []Flash `json:"flashes,omitempty"`
	Schemes       []Link  `json:"schemes,omitempty"`
}

// LoginData is the context for the sign-in page.
type LoginData struct {
	Authenticated bool    `json:"authenticated"`
	Flashes       []Flash `json:"flashes,omitempty"`
	LoginError    string  `json:"loginError,omitempty"`
}

// RenderIndex renders the landing page with its scheme listing.
func (v *Views) RenderIndex(_ context.Context, data IndexData) ([]byte, error) {
	if v.templates == nil {
		return nil, fmt.Errorf("views: template renderer is nil")
	}
	result, err := v.templates.RenderTemplate("templates/index.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("views: render index page: %w", err)
	}
	return []byte(result), nil
}

// RenderLogin renders the sign-in page.
func (v *Views) RenderLogin(_ context.Context, data LoginData) ([]byte, error) {
	if v.templates == nil {
		return nil, fmt.Errorf("views: template renderer is nil")
	}
	result, err := v.templates.RenderTemplate("templates/login.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("views: render login page: %w", err)
	}
	return []byte(result), nil
}
