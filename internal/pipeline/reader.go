// Package pipeline orchestrates the two-phase read: bind (sample row
// candidates into a schema) and execute (materialize every candidate against
// the frozen schema).
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/teaguesterling/yamlrows/internal/extract"
	"github.com/teaguesterling/yamlrows/pkg/infer"
	"github.com/teaguesterling/yamlrows/pkg/materialize"
	"github.com/teaguesterling/yamlrows/pkg/pipeline/core"
	"github.com/teaguesterling/yamlrows/pkg/pipeline/worker"
)

// Options configures a read. Zero values mean "unlimited" for the sampling
// budgets; use DefaultOptions for the documented defaults.
type Options struct {
	AutoDetectTypes    bool
	IgnoreErrors       bool
	MultiDocument      bool
	ExpandRootSequence bool
	RecordsPath        string

	// SampleRows and SampleFiles bound the bind-phase sample. Either may
	// be zero for unlimited. A shape that only appears beyond the budget
	// is not reflected in the schema; such rows later coerce through the
	// VARCHAR fallback or come out null.
	SampleRows  int
	SampleFiles int

	// Columns pins per-column types, bypassing inference for those names.
	Columns map[string]infer.Type

	// StrictTypes makes scalar coercion failures hard errors instead of
	// nulls. Combined with IgnoreErrors the failing row is dropped;
	// otherwise the read aborts.
	StrictTypes bool

	Workers         int
	RateLimitPerSec float64

	Logger zerolog.Logger
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		AutoDetectTypes:    true,
		MultiDocument:      true,
		ExpandRootSequence: true,
		SampleRows:         20480,
		SampleFiles:        32,
		Workers:            4,
		Logger:             zerolog.Nop(),
	}
}

// Reader binds a schema from a bounded sample and then streams materialized
// rows. Bind must complete before Rows; the schema is frozen in between,
// which is what makes row materialization safe to parallelize.
type Reader struct {
	opts      Options
	src       core.Source
	extractor *extract.Extractor

	payloads []core.Payload
	schema   infer.Schema
	bound    bool
}

// NewReader returns a reader over the given document source.
func NewReader(src core.Source, opts Options) *Reader {
	return &Reader{
		opts: opts,
		src:  src,
		extractor: extract.New(extract.Options{
			MultiDocument:      opts.MultiDocument,
			ExpandRootSequence: opts.ExpandRootSequence,
			RecordsPath:        opts.RecordsPath,
			IgnoreErrors:       opts.IgnoreErrors,
			Logger:             opts.Logger,
		}),
	}
}

// errSampleFull stops extraction scans once the sampling budget is reached.
var errSampleFull = errors.New("sample budget reached")

// Bind loads the source and infers the schema from a bounded sample of row
// candidates, honoring the SampleRows and SampleFiles budgets and any pinned
// column types.
func (r *Reader) Bind(ctx context.Context) (infer.Schema, error) {
	if r.bound {
		return r.schema, nil
	}
	start := time.Now()

	payloads, err := r.src.Load(ctx)
	if err != nil {
		return infer.Schema{}, fmt.Errorf("load source: %w", err)
	}
	r.payloads = payloads

	sampler := infer.NewSampler(infer.SamplerOptions{
		AutoDetectTypes: r.opts.AutoDetectTypes,
		MaxRows:         r.opts.SampleRows,
		Overrides:       r.opts.Columns,
	})

	for i, p := range r.payloads {
		if r.opts.SampleFiles > 0 && i >= r.opts.SampleFiles {
			break
		}
		if err := ctx.Err(); err != nil {
			return infer.Schema{}, err
		}
		err := r.extractor.Scan(p.Name, p.Data, func(c extract.Candidate) error {
			sampler.Add(c.Node)
			if sampler.Full() {
				return errSampleFull
			}
			return nil
		})
		if err != nil && !errors.Is(err, errSampleFull) {
			return infer.Schema{}, err
		}
		if sampler.Full() {
			break
		}
	}

	r.schema = sampler.Schema()
	r.bound = true
	r.opts.Logger.Debug().
		Int("columns", len(r.schema.Columns)).
		Int("sampled_rows", sampler.Rows()).
		Dur("elapsed", time.Since(start)).
		Msg("schema bound")
	return r.schema, nil
}

// Schema returns the bound schema. Valid only after Bind.
func (r *Reader) Schema() infer.Schema {
	return r.schema
}

// Rows materializes every row candidate against the bound schema and passes
// rows to fn in candidate order. Each call is one full pass over the source;
// materialization within a document batch runs on the worker pool. Cancelling
// ctx aborts mid-stream; rows already delivered stay valid.
func (r *Reader) Rows(ctx context.Context, fn func(materialize.Row) error) error {
	if !r.bound {
		if _, err := r.Bind(ctx); err != nil {
			return err
		}
	}

	mode := materialize.Lenient
	policy := worker.FailurePolicyFailFast
	if r.opts.StrictTypes {
		mode = materialize.Strict
		if r.opts.IgnoreErrors {
			policy = worker.FailurePolicyPartialOutput
		}
	}

	for _, p := range r.payloads {
		if err := ctx.Err(); err != nil {
			return err
		}
		candidates, err := r.extractor.Candidates(p.Name, p.Data)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			continue
		}

		results, err := worker.ProcessAll(ctx, candidates,
			func(_ context.Context, c extract.Candidate) (materialize.Row, error) {
				return materialize.RowFromNode(c.Node, r.schema, mode)
			},
			worker.Options{
				Workers:         r.opts.Workers,
				RateLimitPerSec: r.opts.RateLimitPerSec,
				FailurePolicy:   policy,
			})
		if err != nil {
			return err
		}

		for _, res := range results {
			if res.Err != nil {
				// Strict mode with IgnoreErrors: drop the row.
				r.opts.Logger.Warn().Str("source", res.Input.Source).
					Int("doc", res.Input.Doc).Err(res.Err).Msg("dropping row")
				continue
			}
			if err := fn(res.Output); err != nil {
				return err
			}
		}
	}
	return nil
}

// Run streams the whole read into a sink: bind, Begin with the schema, all
// rows, Close.
func (r *Reader) Run(ctx context.Context, sink core.RowSink) (err error) {
	schema, err := r.Bind(ctx)
	if err != nil {
		return err
	}
	if err := sink.Begin(ctx, schema); err != nil {
		return fmt.Errorf("begin sink: %w", err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close sink: %w", cerr)
		}
	}()
	return r.Rows(ctx, func(row materialize.Row) error {
		return sink.WriteRow(ctx, row)
	})
}
