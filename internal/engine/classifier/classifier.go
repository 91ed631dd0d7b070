// Package classifier turns the signals of one observing context into found
// and invalid words.
//
// A Classifier is owned by a single observing context, which serializes its
// calls. Two contexts each hold their own sets and persist them whole, so
// concurrent updates from different contexts are last-write-wins.
package classifier

import (
	"context"
	"slices"

	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxPending bounds the submissions awaiting an outcome. The oldest is
// dropped first, since the game never answers it.
const maxPending = 64

// Evidence is what a context already displays when the classifier attaches.
type Evidence struct {
	Found   []string
	Invalid []string
}

// Classifier correlates outcome signals with submitted attempts.
type Classifier struct {
	store  ports.StateStore
	pub    ports.Publisher
	logger ports.Logger

	recency  bool
	newToken func() domain.AttemptToken

	current string
	pending map[domain.AttemptToken]string
	order   []domain.AttemptToken
	latest  domain.AttemptToken
	sets    domain.AttemptSets
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRecencyCorrelation attributes every outcome to whatever input is
// current when the outcome arrives, ignoring tokens. Two quickly overlapping
// submissions can then be credited to the wrong word.
func WithRecencyCorrelation() Option {
	return func(c *Classifier) { c.recency = true }
}

// WithTokenSource replaces domain.NewAttemptToken.
func WithTokenSource(fn func() domain.AttemptToken) Option {
	return func(c *Classifier) { c.newToken = fn }
}

// New creates a Classifier with empty sets. Call Attach before feeding signals.
func New(store ports.StateStore, pub ports.Publisher, logger ports.Logger, opts ...Option) *Classifier {
	c := &Classifier{
		store:    store,
		pub:      pub,
		logger:   logger,
		newToken: domain.NewAttemptToken,
		pending:  make(map[domain.AttemptToken]string),
		sets:     domain.NewAttemptSets(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach loads the persisted sets and merges evidence into them, with found
// evidence taking precedence. When the merge changes anything the result is
// persisted and broadcast.
func (c *Classifier) Attach(ctx context.Context, ev Evidence) {
	sets, err := LoadSets(ctx, c.store)
	if err != nil {
		c.logError(zerr.Wrap(err, "could not load word sets, starting empty"))
		sets = domain.NewAttemptSets()
	}
	c.sets = sets

	changed := c.sets.MarkInvalid(ev.Invalid...)
	if c.sets.MarkFound(ev.Found...) {
		changed = true
	}
	if changed {
		c.commit(ctx)
	}
}

// Input records the composed input, replacing the previous one.
func (c *Classifier) Input(value string) {
	c.current = value
}

// Current returns the composed input.
func (c *Classifier) Current() string {
	return c.current
}

// Submit snapshots the current input under token and returns it. An empty
// token is replaced with a fresh one. In recency mode nothing is recorded.
func (c *Classifier) Submit(token domain.AttemptToken) domain.AttemptToken {
	if token == "" {
		token = c.newToken()
	}
	if c.recency {
		return token
	}

	if _, ok := c.pending[token]; ok {
		c.forget(token)
	}
	if len(c.order) == maxPending {
		c.forget(c.order[0])
	}
	c.pending[token] = domain.NormalizeWord(c.current)
	c.order = append(c.order, token)
	c.latest = token
	return token
}

// Outcome applies an outcome signal. Success moves the attempt to the found
// set, failure to the invalid set; both persist the sets and broadcast them.
// Outcomes of kind domain.OutcomeNone are ignored.
//
// An outcome without a token belongs to the latest submission. In recency
// mode tokens are ignored and the current input is used.
func (c *Classifier) Outcome(ctx context.Context, sig domain.OutcomeSignal) error {
	if sig.Kind == domain.OutcomeNone {
		return nil
	}

	word, err := c.resolve(sig.Token)
	if err != nil {
		return err
	}

	switch sig.Kind {
	case domain.OutcomeSuccess:
		c.sets.MarkFound(word)
	case domain.OutcomeFailure:
		c.sets.MarkInvalid(word)
	}

	c.commit(ctx)
	return nil
}

// Sets returns a copy of the current sets.
func (c *Classifier) Sets() domain.AttemptSets {
	return domain.AttemptSets{Found: c.sets.Found.Clone(), Invalid: c.sets.Invalid.Clone()}
}

func (c *Classifier) resolve(token domain.AttemptToken) (string, error) {
	if c.recency {
		word := domain.NormalizeWord(c.current)
		if word == "" {
			return "", domain.ErrNoCurrentAttempt
		}
		return word, nil
	}

	if token == "" {
		token = c.latest
	}
	word, ok := c.pending[token]
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownAttempt, "cannot classify outcome"), "token", string(token))
	}
	c.forget(token)
	if word == "" {
		return "", domain.ErrNoCurrentAttempt
	}
	return word, nil
}

func (c *Classifier) forget(token domain.AttemptToken) {
	delete(c.pending, token)
	if i := slices.Index(c.order, token); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	if token == c.latest {
		c.latest = ""
	}
}

func (c *Classifier) commit(ctx context.Context) {
	if err := SaveSets(ctx, c.store, c.sets); err != nil {
		c.logError(zerr.Wrap(err, "could not persist word sets"))
	}
	PublishSets(ctx, c.pub, c.sets)
}

func (c *Classifier) logError(err error) {
	if c.logger != nil {
		c.logger.Error(err)
	}
}
