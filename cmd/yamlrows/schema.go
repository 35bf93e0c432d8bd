package main

import (
	"github.com/spf13/cobra"

	"github.com/teaguesterling/yamlrows/internal/app"
)

func init() {
	flags := &readFlags{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the schema that would be inferred from the inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			opts.Logger = app.NewLogger()
			return app.RunSchema(cmd.Context(), cmd.OutOrStdout(), flags.inputs, opts)
		},
	}

	flags.register(cmd)
	rootCmd.AddCommand(cmd)
}
