package submission

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Submitter delivers a finished submission. Transport, retries and
// persistence belong to implementations.
type Submitter interface {
	Submit(ctx context.Context, submission wizard.Submission) error
}

// Transformer rewrites values before encoding, for example to rename keys
// for a backend.
type Transformer func(map[string]any) (map[string]any, error)

// Option configures a WriterSubmitter.
type Option func(*WriterSubmitter)

// WithFormat selects the encoding. Empty keeps JSON.
func WithFormat(format Format) Option {
	return func(w *WriterSubmitter) {
		if format != "" {
			w.format = format
		}
	}
}

// WithTransformer sets a transformer applied before encoding.
func WithTransformer(fn Transformer) Option {
	return func(w *WriterSubmitter) {
		w.transform = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *WriterSubmitter) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WriterSubmitter encodes submissions onto an io.Writer (stdout, a file).
type WriterSubmitter struct {
	out       io.Writer
	format    Format
	transform Transformer
	logger    *slog.Logger
}

// NewWriterSubmitter builds a submitter that writes to out.
func NewWriterSubmitter(out io.Writer, opts ...Option) *WriterSubmitter {
	w := &WriterSubmitter{out: out, format: FormatJSON, logger: logging.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Submit encodes the submission values and writes them, newline terminated
// for JSON and form payloads.
func (w *WriterSubmitter) Submit(ctx context.Context, submission wizard.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.out == nil {
		return fmt.Errorf("submission: writer is nil")
	}

	values := submission.Values
	if w.transform != nil {
		transformed, err := w.transform(copyValues(values))
		if err != nil {
			return fmt.Errorf("submission: transform: %w", err)
		}
		values = transformed
	}

	payload, err := Encode(values, w.format)
	if err != nil {
		return err
	}
	if w.format != FormatPretty {
		payload = append(payload, '\n')
	}
	if _, err := w.out.Write(payload); err != nil {
		return fmt.Errorf("submission: write payload: %w", err)
	}

	w.logger.Info("submission written",
		"application", submission.ApplicationID,
		"format", string(w.format),
		"bytes", len(payload),
	)
	return nil
}

func copyValues(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
