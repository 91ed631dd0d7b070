// Package cache keeps solve results in the shared state store until the end
// of the local calendar day on which they were produced.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ResultCache = (*ResultCache)(nil)

// ResultCache implements ports.ResultCache over a ports.StateStore.
// All entries live under domain.CacheStateKey as one JSON object.
type ResultCache struct {
	store  ports.StateStore
	logger ports.Logger
	now    func() time.Time
	loc    *time.Location
}

// Option configures a ResultCache.
type Option func(*ResultCache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *ResultCache) { c.now = now }
}

// WithLocation sets the time zone that defines a calendar day.
func WithLocation(loc *time.Location) Option {
	return func(c *ResultCache) { c.loc = loc }
}

// New creates a ResultCache on store. Days follow time.Local unless
// WithLocation is given.
func New(store ports.StateStore, logger ports.Logger, opts ...Option) *ResultCache {
	c := &ResultCache{
		store:  store,
		logger: logger,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsValid reports whether entry is still usable at now.
func (c *ResultCache) IsValid(entry domain.CacheEntry, now time.Time) bool {
	return entry.ValidAt(now, c.loc)
}

// Get returns the cached words for key. An expired entry is deleted on the
// spot and reported as a miss. Storage faults are logged and reported as a miss.
func (c *ResultCache) Get(ctx context.Context, key domain.PuzzleKey) ([]string, bool) {
	entries, err := c.load(ctx)
	if err != nil {
		c.warn(err)
		return nil, false
	}

	entry, ok := entries[key]
	if !ok {
		return nil, false
	}

	if !c.IsValid(entry, c.now()) {
		delete(entries, key)
		if err := c.save(ctx, entries); err != nil {
			c.warn(err)
		}
		return nil, false
	}

	return slices.Clone(entry.Words), true
}

// Put stores words for key stamped with the current time, then purges every
// expired entry.
//
// A store that cannot be read is left untouched. An entry that no longer
// decodes is replaced.
func (c *ResultCache) Put(ctx context.Context, key domain.PuzzleKey, words []string) {
	entries, err := c.load(ctx)
	if err != nil {
		c.warn(err)
		if !errors.Is(err, errCorruptCache) {
			return
		}
		entries = make(domain.CacheEntries)
	}

	now := c.now()
	entries[key] = domain.CacheEntry{Words: slices.Clone(words), Timestamp: now}
	entries.Purge(now, c.loc)

	if err := c.save(ctx, entries); err != nil {
		c.warn(err)
	}
}

// Purge removes every expired entry and returns how many were removed.
func (c *ResultCache) Purge(ctx context.Context) (int, error) {
	entries, err := c.load(ctx)
	if err != nil {
		return 0, err
	}

	removed := entries.Purge(c.now(), c.loc)
	if removed == 0 {
		return 0, nil
	}
	return removed, c.save(ctx, entries)
}

var errCorruptCache = errors.New("result cache entry is malformed")

func (c *ResultCache) load(ctx context.Context) (domain.CacheEntries, error) {
	raw, err := c.store.Get(ctx, []string{domain.CacheStateKey})
	if err != nil {
		return nil, err
	}

	entries := make(domain.CacheEntries)
	data, ok := raw[domain.CacheStateKey]
	if !ok || len(data) == 0 || string(data) == "null" {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrStorage, errCorruptCache, err), "failed to decode result cache")
	}
	return entries, nil
}

func (c *ResultCache) save(ctx context.Context, entries domain.CacheEntries) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to encode result cache")
	}
	return c.store.Set(ctx, map[string]json.RawMessage{domain.CacheStateKey: data})
}

func (c *ResultCache) warn(err error) {
	if c.logger != nil {
		c.logger.Error(zerr.Wrap(err, "result cache unavailable, continuing without it"))
	}
}
