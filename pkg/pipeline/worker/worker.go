// Package worker runs CPU-bound per-item work over a bounded goroutine
// pool. Row materialization has no shared mutable state across items, so the
// pool needs no locking beyond job distribution.
package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type FailurePolicy int

const (
	// FailurePolicyPartialOutput records per-item errors and keeps going.
	FailurePolicyPartialOutput FailurePolicy = iota
	// FailurePolicyFailFast cancels the run on the first item error.
	FailurePolicyFailFast
)

type Options struct {
	Workers int

	// RateLimitPerSec is a global throughput limit across all workers.
	// Set to <=0 to disable.
	RateLimitPerSec float64

	FailurePolicy FailurePolicy
}

// Result holds the output for one input item.
type Result[In any, Out any] struct {
	Input  In
	Output Out
	Err    error
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	return o
}

// ProcessAll runs fn over all items and returns results in input order.
// Under FailurePolicyFailFast the first item error aborts the whole run and
// is returned; under FailurePolicyPartialOutput item errors are recorded in
// their Result and the run continues. Context cancellation always aborts.
func ProcessAll[In any, Out any](
	ctx context.Context,
	items []In,
	fn func(context.Context, In) (Out, error),
	opts Options,
) ([]Result[In, Out], error) {
	opts = opts.withDefaults()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var limiter *rate.Limiter
	if opts.RateLimitPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitPerSec), 1)
	}

	out := make([]Result[In, Out], len(items))

	type job struct {
		idx int
		in  In
	}

	jobs := make(chan job)

	var mu sync.Mutex
	var firstErr error
	fail := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	var wg sync.WaitGroup
	workerFn := func() {
		defer wg.Done()
		for j := range jobs {
			if runCtx.Err() != nil {
				return
			}
			if limiter != nil {
				if err := limiter.Wait(runCtx); err != nil {
					return
				}
			}
			res, err := fn(runCtx, j.in)
			out[j.idx] = Result[In, Out]{Input: j.in, Output: res, Err: err}
			if err != nil && opts.FailurePolicy == FailurePolicyFailFast {
				fail(err)
				return
			}
		}
	}

	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go workerFn()
	}

	go func() {
		defer close(jobs)
		for i, item := range items {
			select {
			case jobs <- job{idx: i, in: item}:
			case <-runCtx.Done():
				return
			}
		}
	}()

	wg.Wait()

	mu.Lock()
	err := firstErr
	mu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
