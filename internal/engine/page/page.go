// Package page models one observing context: a view of a puzzle board that
// receives user signals and notifications from the hub.
package page

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/squares/internal/engine/classifier"
	"go.trai.ch/zerr"
)

// DefaultInboxSize is the number of notifications a context buffers.
const DefaultInboxSize = 64

var (
	_ ports.Subscriber = (*Context)(nil)
	_ ports.GridSource = (*Context)(nil)
)

// View is what a context currently displays.
type View struct {
	Words   []string
	Found   domain.WordSet
	Invalid domain.WordSet
}

// Groups returns the displayed words grouped by length.
func (v View) Groups() []domain.WordGroup {
	return domain.GroupByLength(v.Words)
}

// Context is one observing context. Signals and notifications are handled
// by the goroutine running Run, one at a time, in arrival order.
type Context struct {
	id         string
	classifier *classifier.Classifier
	logger     ports.Logger
	board      []string
	evidence   classifier.Evidence
	onChange   func(View)

	inbox chan domain.Message
	done  chan struct{}
	once  sync.Once

	mu   sync.RWMutex
	view View
}

// Option configures a Context.
type Option func(*Context)

// WithBoard sets the attributes of the board cells the context displays.
func WithBoard(attrs []string) Option {
	return func(c *Context) { c.board = slices.Clone(attrs) }
}

// WithEvidence sets the outcomes already displayed before the context attaches.
func WithEvidence(ev classifier.Evidence) Option {
	return func(c *Context) { c.evidence = ev }
}

// WithInboxSize sets how many notifications may wait for the loop.
func WithInboxSize(n int) Option {
	return func(c *Context) { c.inbox = make(chan domain.Message, max(n, 1)) }
}

// WithOnChange registers fn to be called from the loop after each view change.
func WithOnChange(fn func(View)) Option {
	return func(c *Context) { c.onChange = fn }
}

// New creates a Context identified by id that classifies its signals with cls.
func New(id string, cls *classifier.Classifier, logger ports.Logger, opts ...Option) *Context {
	c := &Context{
		id:         id,
		classifier: cls,
		logger:     logger,
		inbox:      make(chan domain.Message, DefaultInboxSize),
		done:       make(chan struct{}),
		view: View{
			Found:   domain.NewWordSet(),
			Invalid: domain.NewWordSet(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the context identifier.
func (c *Context) ID() string {
	return c.id
}

// Deliver queues msg for the loop without waiting. It fails with
// domain.ErrUndeliverable when the context has stopped or its inbox is full.
func (c *Context) Deliver(_ context.Context, msg domain.Message) error {
	select {
	case <-c.done:
		return zerr.Wrap(domain.ErrUndeliverable, "context closed")
	default:
	}

	select {
	case c.inbox <- msg:
		return nil
	default:
		return zerr.With(zerr.Wrap(domain.ErrUndeliverable, "inbox full"), "capacity", cap(c.inbox))
	}
}

// ExtractGrid returns the puzzle key of the displayed board.
func (c *Context) ExtractGrid(context.Context) (domain.PuzzleKey, error) {
	return domain.ExtractGrid(c.board)
}

// View returns a copy of what the context displays.
func (c *Context) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return View{
		Words:   slices.Clone(c.view.Words),
		Found:   c.view.Found.Clone(),
		Invalid: c.view.Invalid.Clone(),
	}
}

// Run attaches the classifier and then handles signals and notifications
// until ctx is done or signals is closed. Notifications already queued when
// signals closes are applied before Run returns.
func (c *Context) Run(ctx context.Context, signals <-chan domain.Signal) error {
	defer c.once.Do(func() { close(c.done) })

	c.classifier.Attach(ctx, c.evidence)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-c.inbox:
			c.apply(msg)
		case sig, ok := <-signals:
			if !ok {
				c.drain()
				return nil
			}
			c.handle(ctx, sig)
		}
	}
}

func (c *Context) drain() {
	for {
		select {
		case msg := <-c.inbox:
			c.apply(msg)
		default:
			return
		}
	}
}

func (c *Context) handle(ctx context.Context, sig domain.Signal) {
	switch s := sig.(type) {
	case domain.InputSignal:
		c.classifier.Input(s.Value)
	case domain.SubmitSignal:
		c.classifier.Submit(s.Token)
	case domain.OutcomeSignal:
		if err := c.classifier.Outcome(ctx, s); err != nil && c.logger != nil {
			c.logger.Error(zerr.With(zerr.Wrap(err, "outcome ignored"), "context", c.id))
		}
		// Outcome publishes updates that come back through the inbox.
		c.drain()
	}
}

func (c *Context) apply(msg domain.Message) {
	c.mu.Lock()
	switch m := msg.(type) {
	case domain.ShowResults:
		c.view.Words = slices.Clone(m.Words)
		if len(m.Words) > 0 {
			c.view.Found = domain.NewWordSet(m.FoundWords...)
			c.view.Invalid = domain.NewWordSet(m.InvalidWords...)
		}
	case domain.UpdateInvalidWords:
		c.view.Invalid = domain.NewWordSet(m.Words...)
	case domain.UpdateFoundWords:
		c.view.Found = domain.NewWordSet(m.Words...)
	}
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(c.View())
	}
}
