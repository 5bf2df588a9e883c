package render

import (
	"context"

	"github.com/goliatone/go-catalog/pkg/model"
)

// Renderer converts a FormModel into a byte representation (HTML, JSX, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, model model.FormModel, options RenderOptions) ([]byte, error)
}
