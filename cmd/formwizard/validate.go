package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [schema]",
		Short: "Load a schema and summarize its steps",
		Long:  `Loads the application schema, reporting structural problems (unknown kinds, duplicate names, dangling dependsOn references) and listing each step with its fields.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.loadApplication(args)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s): %d steps, %d fields\n", app.ID(), app.Category(), app.StepCount(), len(app.Fields()))
			for i, step := range app.Steps() {
				fmt.Fprintf(out, "  %d. %s [%s]\n", i+1, step.Title, step.ID)
				for _, field := range step.Fields {
					base := field.Base()
					marker := ""
					if base.Required {
						marker = " *"
					}
					if base.DependsOn != nil {
						marker += fmt.Sprintf(" (when %s = %v)", base.DependsOn.FieldName, base.DependsOn.FieldValue)
					}
					fmt.Fprintf(out, "     - %s %s%s\n", field.Kind(), base.Name, marker)
				}
			}
			fmt.Fprintln(out, "Schema is valid.")
			return nil
		},
	}
}
