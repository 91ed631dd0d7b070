// Package broadcast delivers notifications to every open observing context.
package broadcast

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.ContextRegistry = (*Broadcaster)(nil)

// Broadcaster is an in-process publish/subscribe registry of observing contexts.
type Broadcaster struct {
	logger ports.Logger

	mu     sync.RWMutex
	subs   map[string]ports.Subscriber
	order  []string
	active string

	failures atomic.Int64
}

// New creates an empty Broadcaster.
func New(logger ports.Logger) *Broadcaster {
	return &Broadcaster{
		logger: logger,
		subs:   make(map[string]ports.Subscriber),
	}
}

// Subscribe registers s and makes it the active context.
// The returned function unsubscribes it.
func (b *Broadcaster) Subscribe(s ports.Subscriber) func() {
	id := s.ID()

	b.mu.Lock()
	if _, exists := b.subs[id]; !exists {
		b.order = append(b.order, id)
	}
	b.subs[id] = s
	b.active = id
	b.mu.Unlock()

	return func() { b.Unsubscribe(id) }
}

// Unsubscribe removes the context with the given id. When it was active,
// the most recently subscribed remaining context becomes active.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[id]; !ok {
		return
	}
	delete(b.subs, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	if b.active == id {
		b.active = ""
		if n := len(b.order); n > 0 {
			b.active = b.order[n-1]
		}
	}
}

// Activate marks a subscribed context as the one the user is looking at.
func (b *Broadcaster) Activate(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[id]; !ok {
		return false
	}
	b.active = id
	return true
}

// Active returns the active context when it can report a grid.
func (b *Broadcaster) Active() (ports.GridSource, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, ok := b.subs[b.active]
	if !ok {
		return nil, false
	}
	src, ok := s.(ports.GridSource)
	return src, ok
}

// Len returns the number of subscribed contexts.
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Failures returns the number of failed deliveries so far.
func (b *Broadcaster) Failures() int64 {
	return b.failures.Load()
}

// Publish delivers msg to every context concurrently and waits for all
// attempts. A failed delivery is logged and counted; it never stops the
// others and is not returned.
func (b *Broadcaster) Publish(ctx context.Context, msg domain.Message) {
	b.mu.RLock()
	targets := make([]ports.Subscriber, 0, len(b.subs))
	for _, id := range b.order {
		targets = append(targets, b.subs[id])
	}
	b.mu.RUnlock()

	var g errgroup.Group
	for _, s := range targets {
		g.Go(func() error {
			if err := s.Deliver(ctx, msg); err != nil {
				b.failures.Add(1)
				if b.logger != nil {
					b.logger.Error(zerr.With(
						zerr.Wrap(errors.Join(domain.ErrUndeliverable, err), "notification not delivered"),
						"context", s.ID(),
					))
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}
