package template

// TemplateRenderer is the seam between renderers and a template engine.
// Renderers own their templates and build the data; the engine only loads
// and executes them.
type TemplateRenderer interface {
	Render(name string, data map[string]any) (string, error)
}
