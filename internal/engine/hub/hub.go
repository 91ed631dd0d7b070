// Package hub answers requests from observing contexts: solving grids,
// locating the active grid, and recording word outcomes.
package hub

import (
	"context"

	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/squares/internal/engine/classifier"
	"go.trai.ch/squares/internal/engine/retry"
	"go.trai.ch/zerr"
)

var _ ports.Solver = (*Hub)(nil)

// Hub is the background coordinator shared by all observing contexts.
type Hub struct {
	solver   ports.Solver
	retry    *retry.Coordinator
	cache    ports.ResultCache
	store    ports.StateStore
	registry ports.ContextRegistry
	logger   ports.Logger
}

// New creates a Hub. Solves go through solver, retried by rc.
func New(
	solver ports.Solver,
	rc *retry.Coordinator,
	cache ports.ResultCache,
	store ports.StateStore,
	registry ports.ContextRegistry,
	logger ports.Logger,
) *Hub {
	return &Hub{
		solver:   solver,
		retry:    rc,
		cache:    cache,
		store:    store,
		registry: registry,
		logger:   logger,
	}
}

// Handle dispatches req and returns its response. Failures are reported in
// the response, never as a Go error.
func (h *Hub) Handle(ctx context.Context, req domain.Request) domain.Response {
	switch r := req.(type) {
	case domain.SolveRequest:
		words, err := h.Solve(ctx, r.Grid, r.Depth)
		if err != nil {
			return h.fail(err)
		}
		return domain.Response{Success: true, Words: words}

	case domain.ExtractGridRequest:
		src, ok := h.registry.Active()
		if !ok {
			return h.fail(domain.ErrNoActiveContext)
		}
		key, err := src.ExtractGrid(ctx)
		if err != nil {
			return h.fail(err)
		}
		return domain.Response{Success: true, Grid: key}

	case domain.StoreInvalidWordRequest:
		return h.storeSets(ctx, func(sets domain.AttemptSets) { sets.MarkInvalid(r.Words...) })

	case domain.StoreFoundWordRequest:
		return h.storeSets(ctx, func(sets domain.AttemptSets) { sets.MarkFound(r.Words...) })

	default:
		return h.fail(zerr.Wrap(domain.ErrUnknownRequest, "cannot handle request"))
	}
}

// ShowResults sends words to every context together with the stored sets.
func (h *Hub) ShowResults(ctx context.Context, words []string) {
	sets, err := classifier.LoadSets(ctx, h.store)
	if err != nil {
		h.logError(zerr.Wrap(err, "showing results without word sets"))
	}
	h.registry.Publish(ctx, domain.ShowResults{
		Words:        words,
		FoundWords:   sets.Found.Sorted(),
		InvalidWords: sets.Invalid.Sorted(),
	})
}

// Solve validates the parameters, answers from the cache when it can, and
// otherwise asks the server, retrying network failures.
func (h *Hub) Solve(ctx context.Context, grid string, depth int) ([]string, error) {
	job, err := domain.NewSolveJob(grid, depth)
	if err != nil {
		return nil, err
	}

	if words, ok := h.cache.Get(ctx, job.Key); ok {
		return words, nil
	}

	words, err := retry.Do(ctx, h.retry, func(ctx context.Context) ([]string, error) {
		return h.solver.Solve(ctx, string(job.Key), job.Depth)
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "solve failed"), "grid", string(job.Key))
	}

	h.cache.Put(ctx, job.Key, words)
	return words, nil
}

// storeSets applies mutate to the persisted sets with an unguarded
// read-modify-write and broadcasts the result.
func (h *Hub) storeSets(ctx context.Context, mutate func(domain.AttemptSets)) domain.Response {
	sets, err := classifier.LoadSets(ctx, h.store)
	if err != nil {
		return h.fail(err)
	}
	mutate(sets)
	if err := classifier.SaveSets(ctx, h.store, sets); err != nil {
		return h.fail(err)
	}
	classifier.PublishSets(ctx, h.registry, sets)
	return domain.Response{Success: true}
}

func (h *Hub) fail(err error) domain.Response {
	h.logError(err)
	return domain.FailureResponse(err)
}

func (h *Hub) logError(err error) {
	if h.logger != nil {
		h.logger.Error(err)
	}
}
