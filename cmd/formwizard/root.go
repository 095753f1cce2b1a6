package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// cli carries the state shared by every command.
type cli struct {
	out    io.Writer
	errOut io.Writer
	driver tui.PromptDriver

	schemaPath string
	logLevel   string
	logger     *slog.Logger
}

// Execute runs the root command against the process streams and returns the
// exit code.
func Execute() int {
	c := &cli{out: os.Stdout, errOut: os.Stderr}
	if err := c.rootCmd().Execute(); err != nil {
		fmt.Fprintln(c.errOut, "Error:", err)
		return 1
	}
	return 0
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "formwizard",
		Short:         "Multi-step application forms driven by a declarative schema",
		Long:          `formwizard loads an application schema (JSON or YAML), checks it, walks it step by step in the terminal and renders steps as HTML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(c.logLevel)
			if err != nil {
				return err
			}
			c.logger = logging.NewWithWriter(c.errOut, level)
			return nil
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	root.PersistentFlags().StringVarP(&c.schemaPath, "schema", "s", "", "Path to the application schema (.json, .yaml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(
		c.validateCmd(),
		c.runCmd(),
		c.renderCmd(),
		c.contractCmd(),
	)
	return root
}

// loadApplication resolves the schema from the flag or the first argument.
func (c *cli) loadApplication(args []string) (*schema.Application, error) {
	path := c.schemaPath
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, errors.New("a schema path is required (--schema or first argument)")
	}
	app, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("schema loaded", "path", path, "application", app.ID(), "steps", app.StepCount())
	return app, nil
}

func (c *cli) promptDriver() tui.PromptDriver {
	if c.driver != nil {
		return c.driver
	}
	return tui.NewSurveyDriver(c.errOut)
}
