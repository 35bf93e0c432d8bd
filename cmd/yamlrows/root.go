package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teaguesterling/yamlrows/internal/app"
	"github.com/teaguesterling/yamlrows/internal/pipeline"
	"github.com/teaguesterling/yamlrows/pkg/infer"
)

var rootCmd = &cobra.Command{
	Use:   "yamlrows",
	Short: "Convert YAML documents into typed tabular rows",
	Long: `yamlrows infers a column schema from YAML documents and materializes
them as typed rows.

Conversion:
  yamlrows convert --in 'data/*.yaml' --out rows.csv
  yamlrows convert --in events.yaml --sqlite events.db --table events

Inspection:
  yamlrows schema --in 'data/*.yaml'
  yamlrows query '$.items[0].name' data.yaml`,

	SilenceUsage:  true,
	SilenceErrors: true,
}

// Flags shared by convert and schema.
type readFlags struct {
	inputs       []string
	ignoreErrors bool
	noDetect     bool
	noMultiDoc   bool
	noExpandRoot bool
	recordsPath  string
	sampleRows   int
	sampleFiles  int
	columns      []string
	strict       bool
	workers      int
	rateLimit    float64
}

func (f *readFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.inputs, "in", nil, "input files or glob patterns (required)")
	cmd.Flags().BoolVar(&f.ignoreErrors, "ignore-errors", false, "skip malformed documents and unreadable files")
	cmd.Flags().BoolVar(&f.noDetect, "no-detect", false, "disable type detection; every column becomes VARCHAR")
	cmd.Flags().BoolVar(&f.noMultiDoc, "single-document", false, "treat each input as one document, ignoring --- separators")
	cmd.Flags().BoolVar(&f.noExpandRoot, "no-expand-root", false, "keep a root sequence as one row instead of one row per element")
	cmd.Flags().StringVar(&f.recordsPath, "records-path", "", "dot path to the nested sequence holding the rows")
	cmd.Flags().IntVar(&f.sampleRows, "sample-rows", 20480, "row budget for schema inference, 0 for unlimited")
	cmd.Flags().IntVar(&f.sampleFiles, "sample-files", 32, "file budget for schema inference, 0 for unlimited")
	cmd.Flags().StringArrayVar(&f.columns, "column", nil, "pin a column type as name=TYPE (repeatable)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail on values that cannot be coerced instead of producing null")
	cmd.Flags().IntVar(&f.workers, "workers", 4, "materialization worker count")
	cmd.Flags().Float64Var(&f.rateLimit, "rate-limit", 0, "global rows-per-second throttle, 0 disables")
	_ = cmd.MarkFlagRequired("in")
}

func (f *readFlags) options() (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	opts.AutoDetectTypes = !f.noDetect
	opts.IgnoreErrors = f.ignoreErrors
	opts.MultiDocument = !f.noMultiDoc
	opts.ExpandRootSequence = !f.noExpandRoot
	opts.RecordsPath = f.recordsPath
	opts.SampleRows = f.sampleRows
	opts.SampleFiles = f.sampleFiles
	opts.StrictTypes = f.strict
	opts.Workers = f.workers
	opts.RateLimitPerSec = f.rateLimit

	if len(f.columns) > 0 {
		opts.Columns = make(map[string]infer.Type, len(f.columns))
		for _, spec := range f.columns {
			name, typeName, ok := strings.Cut(spec, "=")
			if !ok || name == "" {
				return opts, fmt.Errorf("--column %q: want name=TYPE", spec)
			}
			t, err := infer.ParseType(typeName)
			if err != nil {
				return opts, fmt.Errorf("--column %q: %w", spec, err)
			}
			opts.Columns[name] = t
		}
	}
	return opts, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// A query path that simply did not resolve exits nonzero
		// without a message.
		if !errors.Is(err, app.ErrNotFound) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
