package main

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/submission"
)

func (c *cli) contractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contract [schema]",
		Short: "Print the OpenAPI schema of the submission payload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.loadApplication(args)
			if err != nil {
				return err
			}
			data, err := gojson.MarshalIndent(submission.ContractSchema(app), "", "  ")
			if err != nil {
				return fmt.Errorf("encode contract: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
