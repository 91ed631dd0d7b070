// Package dispatcher solves grids by running the external solver under a
// latency bound, caching what it returns.
package dispatcher

import (
	"context"
	"time"

	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Solver = (*Dispatcher)(nil)

// Span attribute keys.
const (
	AttrGrid     = "squares.grid"
	AttrDepth    = "squares.depth"
	AttrCacheHit = "squares.cache_hit"
	AttrWords    = "squares.words"
)

// Dispatcher implements ports.Solver on top of a ports.SolverRunner.
type Dispatcher struct {
	runner  ports.SolverRunner
	cache   ports.ResultCache
	tracer  ports.Tracer
	logger  ports.Logger
	timeout time.Duration
}

type result struct {
	out string
	err error
}

// New creates a Dispatcher. A non-positive timeout means domain.DefaultSolverTimeout.
func New(
	runner ports.SolverRunner,
	cache ports.ResultCache,
	tracer ports.Tracer,
	logger ports.Logger,
	timeout time.Duration,
) *Dispatcher {
	if timeout <= 0 {
		timeout = domain.DefaultSolverTimeout
	}
	return &Dispatcher{
		runner:  runner,
		cache:   cache,
		tracer:  tracer,
		logger:  logger,
		timeout: timeout,
	}
}

// Solve returns the words of grid at depth.
//
// Invalid parameters fail with domain.ErrValidation before anything runs.
// A cached result is returned without running the solver. Otherwise a fresh
// solver process is raced against the timeout; when the timeout wins the
// process is left running and domain.ErrSolverTimeout is returned.
func (d *Dispatcher) Solve(ctx context.Context, grid string, depth int) ([]string, error) {
	job, err := domain.NewSolveJob(grid, depth)
	if err != nil {
		return nil, err
	}

	ctx, span := d.tracer.Start(ctx, "solve")
	defer span.End()
	span.SetAttribute(AttrGrid, string(job.Key))
	span.SetAttribute(AttrDepth, job.Depth)

	if words, ok := d.cache.Get(ctx, job.Key); ok {
		span.SetAttribute(AttrCacheHit, true)
		span.SetAttribute(AttrWords, len(words))
		return words, nil
	}
	span.SetAttribute(AttrCacheHit, false)

	out, err := d.race(ctx, job)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	words := domain.ParseWords(out)
	span.SetAttribute(AttrWords, len(words))
	d.cache.Put(ctx, job.Key, words)
	return words, nil
}

func (d *Dispatcher) race(ctx context.Context, job domain.SolveJob) (string, error) {
	// Buffered so a solver finishing after the timeout does not block forever.
	done := make(chan result, 1)
	runCtx := context.WithoutCancel(ctx)
	go func() {
		out, err := d.runner.Run(runCtx, job.Input())
		done <- result{out: out, err: err}
	}()

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.out, r.err
	case <-timer.C:
		if d.logger != nil {
			d.logger.Warn("solver exceeded " + d.timeout.String() + ", leaving it running for " + string(job.Key))
		}
		return "", zerr.With(zerr.Wrap(domain.ErrSolverTimeout, "solver did not finish in time"), "timeout", d.timeout.String())
	case <-ctx.Done():
		return "", zerr.Wrap(ctx.Err(), "solve abandoned")
	}
}
