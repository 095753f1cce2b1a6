// Package formwizard is the entry point for multi-step application forms:
// load a schema, start a session, then drive it from the terminal or render
// its current step as HTML.
package formwizard

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/html"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Application aliases schema.Application.
type Application = schema.Application

// Session aliases wizard.Session.
type Session = wizard.Session

// Submission aliases wizard.Submission.
type Submission = wizard.Submission

// RenderOptions aliases render.RenderOptions for callers rendering HTML.
type RenderOptions = render.RenderOptions

// LoadFile reads a JSON or YAML application schema from disk.
func LoadFile(path string) (*Application, error) {
	return schema.LoadFile(path)
}

// Parse loads an application schema from JSON or YAML bytes.
func Parse(data []byte) (*Application, error) {
	return schema.Parse(data)
}

// NewSession starts a session on the first step of app.
func NewSession(app *Application, options ...wizard.Option) (*Session, error) {
	return wizard.New(app, options...)
}

// RunTerminal walks a fresh session for app in the terminal and returns the
// submitted values. Session options such as loggers and hooks are passed with
// tui.WithSessionOptions.
func RunTerminal(ctx context.Context, app *Application, options ...tui.Option) (Submission, error) {
	renderer, err := tui.New(options...)
	if err != nil {
		return Submission{}, err
	}
	session, err := renderer.NewSession(app)
	if err != nil {
		return Submission{}, err
	}
	return renderer.Run(ctx, session)
}

// RenderHTML renders the current step of session with the built-in
// templates.
func RenderHTML(ctx context.Context, session *Session, opts RenderOptions, options ...html.Option) ([]byte, error) {
	renderer, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, session.View(), opts)
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// StylesheetFS exposes the default stylesheet for serving.
//
// Typical mount:
//
//	mux.Handle("/formwizard/",
//	  http.StripPrefix("/formwizard/",
//	    http.FileServerFS(formwizard.StylesheetFS()),
//	  ),
//	)
func StylesheetFS() fs.FS {
	return html.AssetsFS()
}
