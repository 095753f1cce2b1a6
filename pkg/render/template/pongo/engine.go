// Package pongo renders named templates with pongo2.
package pongo

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formwizard/pkg/render/template"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	dir       string
	files     fs.FS
	extension string
}

// WithDir loads templates from a directory on disk. It is searched before
// any fs.FS given with WithFS.
func WithDir(dir string) Option {
	return func(cfg *config) {
		cfg.dir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files, typically an embed.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension sets the extension appended to names that lack it.
// Defaults to ".tmpl".
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// Engine is a pongo2 template set. Compiled templates are cached by the set.
type Engine struct {
	set       *pongo2.TemplateSet
	extension string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine over a directory, an fs.FS, or both.
func New(options ...Option) (*Engine, error) {
	cfg := config{extension: ".tmpl"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.dir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.dir)
		if err != nil {
			return nil, fmt.Errorf("pongo: template dir %s: %w", cfg.dir, err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.files))
	}
	if len(loaders) == 0 {
		return nil, errors.New("pongo: need a template dir or an fs.FS")
	}

	return &Engine{
		set:       pongo2.NewSet("formwizard", loaders...),
		extension: cfg.extension,
	}, nil
}

// Render executes the template called name with data as its context.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	path := name
	if e.extension != "" && !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}

	tmpl, err := e.set.FromCache(path)
	if err != nil {
		return "", fmt.Errorf("pongo: load template %q: %w", path, err)
	}
	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("pongo: execute template %q: %w", path, err)
	}
	return out, nil
}
