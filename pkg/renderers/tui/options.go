package tui

import (
	"log/slog"

	"github.com/goliatone/go-formwizard/pkg/submission"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Theme holds the prefixes applied to prompts and printed messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// DefaultTheme marks errors with "!" and leaves the rest plain.
var DefaultTheme = Theme{ErrorPrefix: "! "}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects how Collect serializes the submission.
func WithOutputFormat(format submission.Format) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer lets callers rewrite collected values before
// serialization.
func WithSubmitTransformer(fn submission.Transformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLogger sets the renderer logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSessionOptions forwards options to the sessions NewSession and Collect
// create.
func WithSessionOptions(opts ...wizard.Option) Option {
	return func(r *Renderer) {
		r.sessionOptions = append(r.sessionOptions, opts...)
	}
}
