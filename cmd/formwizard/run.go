package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/observability"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/submission"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type runOptions struct {
	format      string
	output      string
	metricsFile string
	verify      bool
}

func (c *cli) runCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run [schema]",
		Short: "Fill an application interactively in the terminal",
		Long:  `Walks the application step by step, re-asking invalid answers, and writes the submitted values once the last step passes validation.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Submission format: json, form, pretty")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the submission to a file instead of stdout")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write session metrics in Prometheus text format to this file")
	cmd.Flags().BoolVar(&opts.verify, "verify", true, "Check the submission against the payload contract before writing")
	return cmd
}

func (c *cli) run(cmd *cobra.Command, args []string, opts runOptions) error {
	format, err := submission.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	app, err := c.loadApplication(args)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(registry, observability.WithLogger(c.logger))
	if err != nil {
		return err
	}
	session, err := wizard.New(app, wizard.WithLogger(c.logger), metrics.Option())
	if err != nil {
		return err
	}

	renderer, err := tui.New(tui.WithPromptDriver(c.promptDriver()), tui.WithLogger(c.logger))
	if err != nil {
		return err
	}
	result, err := renderer.Run(cmd.Context(), session)
	if err != nil {
		return err
	}

	if opts.verify {
		if err := submission.Verify(app, result.Values); err != nil {
			return err
		}
	}

	if opts.output == "" {
		submitter := submission.NewWriterSubmitter(cmd.OutOrStdout(), submission.WithFormat(format), submission.WithLogger(c.logger))
		if err := submitter.Submit(cmd.Context(), result); err != nil {
			return err
		}
	} else {
		file, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		if err := c.submitToFile(cmd.Context(), file, format, result); err != nil {
			return err
		}
	}

	if opts.metricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsFile, registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// submitToFile writes result and closes file. A failed close means the
// submission may not be on disk, so it is reported like a write error.
func (c *cli) submitToFile(ctx context.Context, file io.WriteCloser, format submission.Format, result wizard.Submission) error {
	submitter := submission.NewWriterSubmitter(file, submission.WithFormat(format), submission.WithLogger(c.logger))
	submitErr := submitter.Submit(ctx, result)
	if err := file.Close(); err != nil {
		return errors.Join(submitErr, fmt.Errorf("close output: %w", err))
	}
	return submitErr
}
