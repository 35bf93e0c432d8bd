package main

import (
	"github.com/spf13/cobra"

	"github.com/teaguesterling/yamlrows/internal/app"
)

func init() {
	var op string

	cmd := &cobra.Command{
		Use:   "query PATH [FILE]",
		Short: "Evaluate a path expression against one document",
		Long: `Evaluate a literal path expression ($ followed by .key and [index]
segments) against the first document of FILE, or stdin.

A path that does not resolve exits with status 1 and no output; a malformed
path is an error.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 2 {
				input = args[1]
			}
			// ErrNotFound propagates as-is; main maps it to a bare
			// nonzero exit with no message.
			return app.RunQuery(cmd.OutOrStdout(), app.QueryConfig{
				Input: input,
				Path:  args[0],
				Op:    op,
			})
		},
	}

	cmd.Flags().StringVar(&op, "op", "extract", "operation: extract, exists, type, keys or length")
	rootCmd.AddCommand(cmd)
}
