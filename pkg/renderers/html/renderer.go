// Package html renders the current wizard step as a server-side HTML form.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwizard/pkg/render"
	rendertemplate "github.com/goliatone/go-formwizard/pkg/render/template"
	"github.com/goliatone/go-formwizard/pkg/render/template/pongo"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	inlineStylesheet bool
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/step.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Files found
// there shadow the bundled ones, so a directory holding only
// templates/step.tmpl is enough.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = path
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies a go-theme configuration: its CSS variables are emitted
// in a style block and AssetURL resolves the stylesheet link.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithInlineStylesheet embeds the default stylesheet in the output.
func WithInlineStylesheet(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStylesheet = enabled
	}
}

// Renderer implements render.Renderer with pongo2 templates.
type Renderer struct {
	templates        rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	inlineStylesheet bool
}

var _ render.Renderer = (*Renderer)(nil)

// New builds the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithDir(cfg.templateDir),
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:        renderer,
		theme:            cfg.theme,
		inlineStylesheet: cfg.inlineStylesheet,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form markup for view.
func (r *Renderer) Render(ctx context.Context, view wizard.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	result, err := r.templates.Render("templates/step.tmpl", r.buildContext(view, opts))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) buildContext(view wizard.View, opts render.RenderOptions) map[string]any {
	fields := make([]any, 0, len(view.Fields))
	for _, group := range view.Groups() {
		fields = append(fields, fieldContext(group, opts.Errors))
	}

	hidden := make([]any, 0, len(opts.Hidden))
	for _, item := range render.SortedHiddenFields(opts.Hidden) {
		hidden = append(hidden, map[string]any{"name": item.Name, "value": item.Value})
	}

	formErrors := make([]any, 0, len(opts.FormErrors))
	for _, message := range render.MergeFormErrors(opts.FormErrors) {
		formErrors = append(formErrors, message)
	}

	return map[string]any{
		"app": map[string]any{
			"id":       view.ApplicationID,
			"category": string(view.Category),
			"title":    view.Title,
		},
		"step": map[string]any{
			"id":          view.Step.ID,
			"title":       view.Step.Title,
			"description": sanitizeDescription(view.Step.Description),
			"number":      view.StepIndex + 1,
			"count":       view.StepCount,
		},
		"fields":      fields,
		"hidden":      hidden,
		"form_errors": formErrors,
		"action":      strings.TrimSpace(opts.Action),
		"submitted":   view.Submitted,
		"nav": map[string]any{
			"back":   view.CanBack,
			"next":   view.CanNext,
			"submit": view.CanSubmit,
		},
		"theme": r.themeContext(),
	}
}

func fieldContext(group []wizard.FieldView, extra map[string][]string) map[string]any {
	first := group[0]
	base := first.Field.Base()

	messages := []string{}
	if first.Error != "" {
		messages = append(messages, first.Error)
	}
	errs := make([]any, 0, len(messages))
	for _, message := range render.MergeFormErrors(messages, extra[base.Name]...) {
		errs = append(errs, message)
	}

	out := map[string]any{
		"kind":        string(first.Kind()),
		"id":          base.ID,
		"name":        base.Name,
		"label":       base.Label,
		"description": sanitizeDescription(base.Description),
		"required":    base.Required,
		"disabled":    base.Disabled,
		"errors":      errs,
	}

	switch f := first.Field.(type) {
	case schema.TextField:
		out["value"] = validation.Stringify(first.Value)
		out["placeholder"] = f.Placeholder
		out["textarea"] = f.Type == schema.TextTypeTextarea
		out["input_type"] = inputType(f.Type)
	case schema.CheckboxField:
		checked, _ := first.Value.(bool)
		out["checked"] = checked
	case schema.RadioField:
		out["label"] = groupLabel(group)
		options := make([]any, 0, len(group))
		for _, member := range group {
			radio, ok := member.Field.(schema.RadioField)
			if !ok {
				continue
			}
			options = append(options, map[string]any{
				"id":       radio.ID,
				"label":    radio.Label,
				"value":    radio.Value,
				"checked":  member.Selected,
				"disabled": radio.Disabled,
			})
		}
		out["options"] = options
	}
	return out
}

// groupLabel uses the member description as the group legend when present,
// otherwise the shared name.
func groupLabel(group []wizard.FieldView) string {
	for _, member := range group {
		if description := strings.TrimSpace(member.Field.Base().Description); description != "" {
			return description
		}
	}
	return group[0].Name()
}

func inputType(t schema.TextType) string {
	if t == schema.TextTypeNumber {
		return "number"
	}
	return "text"
}

func (r *Renderer) themeContext() map[string]any {
	out := map[string]any{}
	if r.inlineStylesheet {
		out["inline_css"] = defaultStylesheet()
	}
	if r.theme == nil {
		return out
	}
	out["name"] = r.theme.Theme
	out["variant"] = r.theme.Variant
	out["css_vars"] = cssVarsStyle(r.theme.CSSVars)
	if r.theme.AssetURL != nil {
		out["stylesheet"] = r.theme.AssetURL(StylesheetName)
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(".formwizard {\n")
	for _, key := range keys {
		fmt.Fprintf(&b, "  %s: %s;\n", key, vars[key])
	}
	b.WriteString("}")
	return b.String()
}
