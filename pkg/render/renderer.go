package render

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Renderer turns the current step of a session into bytes (HTML, text).
// Renderers read the view only; input flows back through Session.Dispatch.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view wizard.View, options RenderOptions) ([]byte, error)
}
