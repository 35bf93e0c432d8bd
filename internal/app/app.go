// Package app wires sources, the reader, and sinks into the operations the
// CLI exposes.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/teaguesterling/yamlrows/internal/pipeline"
	"github.com/teaguesterling/yamlrows/pkg/materialize"
	"github.com/teaguesterling/yamlrows/pkg/pipeline/core"
	localio "github.com/teaguesterling/yamlrows/pkg/pipeline/io/local"
	sqliteio "github.com/teaguesterling/yamlrows/pkg/pipeline/io/sqlite"
)

// ConvertConfig describes one conversion run.
type ConvertConfig struct {
	Inputs []string
	Output string // file path, or "-" for stdout
	Format string // csv or jsonl

	// SQLitePath switches output to a SQLite table instead of a file.
	SQLitePath  string
	SQLiteTable string

	Options pipeline.Options
}

// RunConvert reads the inputs and writes typed rows to the configured sink.
func RunConvert(ctx context.Context, cfg ConvertConfig) error {
	logger := cfg.Options.Logger
	start := time.Now()

	src := newSource(cfg.Inputs, cfg.Options)
	reader := pipeline.NewReader(src, cfg.Options)

	sink, cleanup, err := newSink(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := reader.Run(ctx, sink); err != nil {
		return err
	}
	logger.Info().
		Int("columns", len(reader.Schema().Columns)).
		Dur("elapsed", time.Since(start)).
		Msg("conversion complete")
	return nil
}

// RunSchema binds a schema from the inputs and writes it as "name TYPE"
// lines.
func RunSchema(ctx context.Context, w io.Writer, inputs []string, opts pipeline.Options) error {
	reader := pipeline.NewReader(newSource(inputs, opts), opts)
	schema, err := reader.Bind(ctx)
	if err != nil {
		return err
	}
	for _, col := range schema.Columns {
		if _, err := fmt.Fprintf(w, "%s %s\n", col.Name, col.Type); err != nil {
			return err
		}
	}
	return nil
}

func newSource(inputs []string, opts pipeline.Options) core.Source {
	src := localio.NewFileSource(inputs...)
	src.IgnoreErrors = opts.IgnoreErrors
	src.Logger = opts.Logger
	return src
}

func newSink(cfg ConvertConfig) (core.RowSink, func(), error) {
	if cfg.SQLitePath != "" {
		sink, err := sqliteio.Open(cfg.SQLitePath, cfg.SQLiteTable)
		if err != nil {
			return nil, nil, err
		}
		return sink, func() {}, nil
	}

	out := os.Stdout
	cleanup := func() {}
	if cfg.Output != "" && cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return nil, nil, err
		}
		out = f
		cleanup = func() { _ = f.Close() }
	}

	switch strings.ToLower(cfg.Format) {
	case "", "csv":
		return localio.NewCSVSink(out), cleanup, nil
	case "jsonl", "json":
		return localio.NewJSONLSink(out), cleanup, nil
	default:
		cleanup()
		return nil, nil, fmt.Errorf("unknown output format %q", cfg.Format)
	}
}

// Rows is a convenience used by tests and embedders: full read into memory.
func Rows(ctx context.Context, inputs []string, opts pipeline.Options) ([]materialize.Row, error) {
	reader := pipeline.NewReader(newSource(inputs, opts), opts)
	if _, err := reader.Bind(ctx); err != nil {
		return nil, err
	}
	var rows []materialize.Row
	if err := reader.Rows(ctx, func(row materialize.Row) error {
		rows = append(rows, row)
		return nil
	}); err != nil {
		return nil, err
	}
	return rows, nil
}

// NewLogger builds the process logger from environment configuration:
// YAMLROWS_LOG_LEVEL and YAMLROWS_LOG_FORMAT (console or json).
func NewLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("YAMLROWS_LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}

	var out io.Writer = os.Stderr
	if strings.EqualFold(os.Getenv("YAMLROWS_LOG_FORMAT"), "console") {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().Timestamp().Logger().Level(level)
}
