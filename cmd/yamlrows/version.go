package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teaguesterling/yamlrows/internal/version"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the yamlrows version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Current)
		},
	})
}
