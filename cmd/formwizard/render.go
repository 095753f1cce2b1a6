package main

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/html"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type renderOptions struct {
	renderer    string
	step        int
	valuesFile  string
	errorsFile  string
	action      string
	csrfToken   string
	themeName   string
	variant     string
	cssVars     map[string]string
	assetPrefix string
	inlineCSS   bool
	templates   string
}

func (c *cli) renderCmd() *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [schema]",
		Short: "Render one step of an application",
		Long: `Prefills the session from --values, advances to --step and renders it.
If an earlier step does not validate, that step is rendered with its errors instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.render(cmd, args, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.renderer, "renderer", "r", "html", "Renderer: html, text")
	flags.IntVar(&opts.step, "step", 1, "Step to render (1-based)")
	flags.StringVar(&opts.valuesFile, "values", "", "JSON or YAML file of field values to prefill")
	flags.StringVar(&opts.errorsFile, "errors", "", "JSON or YAML backend error payload (path: [messages]) to display")
	flags.StringVar(&opts.action, "action", "", "Form action URL")
	flags.StringVar(&opts.csrfToken, "csrf-token", "", "CSRF token emitted as a hidden _csrf field")
	flags.StringVar(&opts.themeName, "theme", "", "Theme name")
	flags.StringVar(&opts.variant, "variant", "", "Theme variant")
	flags.StringToStringVar(&opts.cssVars, "css-var", nil, "Theme CSS variables (--css-var=--fw-accent=#0a84ff)")
	flags.StringVar(&opts.assetPrefix, "asset-prefix", "", "URL prefix used to link the stylesheet")
	flags.BoolVar(&opts.inlineCSS, "inline-css", false, "Embed the default stylesheet")
	flags.StringVar(&opts.templates, "templates", "", "Directory whose templates/step.tmpl replaces the bundled HTML template")
	return cmd
}

func (c *cli) render(cmd *cobra.Command, args []string, opts renderOptions) error {
	app, err := c.loadApplication(args)
	if err != nil {
		return err
	}
	if opts.step < 1 || opts.step > app.StepCount() {
		return fmt.Errorf("step %d out of range 1..%d", opts.step, app.StepCount())
	}

	session, err := wizard.New(app, wizard.WithLogger(c.logger))
	if err != nil {
		return err
	}
	if err := c.prefill(session, opts.valuesFile); err != nil {
		return err
	}
	for session.StepIndex() < opts.step-1 {
		err := session.Next()
		var stepErr *wizard.StepError
		if errors.As(err, &stepErr) {
			c.logger.Warn("rendering blocked step", "step", stepErr.StepID, "fields", stepErr.FieldNames())
			break
		}
		if err != nil {
			return err
		}
	}

	renderOpts, err := c.renderOptions(app, session, opts)
	if err != nil {
		return err
	}

	registry, err := c.renderers(opts)
	if err != nil {
		return err
	}
	renderer, err := registry.Get(opts.renderer)
	if err != nil {
		return err
	}
	out, err := renderer.Render(cmd.Context(), session.View(), renderOpts)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func (c *cli) renderers(opts renderOptions) (*render.Registry, error) {
	htmlOpts := []html.Option{html.WithInlineStylesheet(opts.inlineCSS)}
	if opts.templates != "" {
		htmlOpts = append(htmlOpts, html.WithTemplatesDir(opts.templates))
	}
	if cfg := themeConfig(opts); cfg != nil {
		htmlOpts = append(htmlOpts, html.WithTheme(cfg))
	}
	htmlRenderer, err := html.New(htmlOpts...)
	if err != nil {
		return nil, err
	}
	textRenderer, err := tui.New(tui.WithPromptDriver(c.promptDriver()), tui.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	for _, r := range []render.Renderer{htmlRenderer, textRenderer} {
		if err := registry.Register(r); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func themeConfig(opts renderOptions) *theme.RendererConfig {
	if opts.themeName == "" && opts.variant == "" && len(opts.cssVars) == 0 && opts.assetPrefix == "" {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   opts.themeName,
		Variant: opts.variant,
		CSSVars: opts.cssVars,
	}
	if opts.assetPrefix != "" {
		prefix := strings.TrimRight(opts.assetPrefix, "/")
		cfg.AssetURL = func(name string) string {
			return prefix + "/" + strings.TrimLeft(name, "/")
		}
	}
	return cfg
}

func (c *cli) renderOptions(app *schema.Application, session *wizard.Session, opts renderOptions) (render.RenderOptions, error) {
	hidden := []render.HiddenField{render.StepField(session.StepIndex())}
	if opts.csrfToken != "" {
		hidden = append(hidden, render.CSRFToken("_csrf", opts.csrfToken))
	}
	out := render.RenderOptions{
		Action: opts.action,
		Hidden: render.MergeHiddenFields(nil, hidden...),
	}
	if opts.errorsFile == "" {
		return out, nil
	}

	var payload map[string][]string
	if err := readDocument(opts.errorsFile, &payload); err != nil {
		return out, err
	}
	mapping := render.MapErrorPayload(app, payload)
	out.Errors = mapping.Fields
	out.FormErrors = mapping.Form
	return out, nil
}

// prefill applies the values document through Edit, in name order.
func (c *cli) prefill(session *wizard.Session, path string) error {
	if path == "" {
		return nil
	}
	var values map[string]any
	if err := readDocument(path, &values); err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(values)) {
		if err := session.Edit(name, values[name]); err != nil {
			return fmt.Errorf("prefill %s: %w", name, err)
		}
	}
	return nil
}

// readDocument decodes a JSON or YAML file; YAML is a superset of JSON.
func readDocument(path string, into any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
