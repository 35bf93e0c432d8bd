package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teaguesterling/yamlrows/internal/app"
)

func init() {
	flags := &readFlags{}
	var (
		output      string
		format      string
		sqlitePath  string
		sqliteTable string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Read YAML inputs and write typed rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			opts.Logger = app.NewLogger()

			if sqlitePath != "" && sqliteTable == "" {
				return fmt.Errorf("--sqlite requires --table")
			}
			return app.RunConvert(cmd.Context(), app.ConvertConfig{
				Inputs:      flags.inputs,
				Output:      output,
				Format:      format,
				SQLitePath:  sqlitePath,
				SQLiteTable: sqliteTable,
				Options:     opts,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&output, "out", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv or jsonl")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "write rows into this SQLite database instead of a file")
	cmd.Flags().StringVar(&sqliteTable, "table", "", "SQLite table name")

	rootCmd.AddCommand(cmd)
}
