// Package retry runs a fallible operation a bounded number of times with a
// fixed pause between attempts.
package retry

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
)

// Coordinator holds the retry policy.
type Coordinator struct {
	attempts  int
	delay     time.Duration
	retryable func(error) bool
	logger    ports.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRetryable restricts retries to errors for which fn returns true.
// Other errors are returned after the attempt that produced them.
func WithRetryable(fn func(error) bool) Option {
	return func(c *Coordinator) { c.retryable = fn }
}

// WithLogger reports each failed attempt as a warning.
func WithLogger(logger ports.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// New creates a Coordinator making at most attempts calls, waiting delay
// between consecutive calls. Attempts below one are raised to one.
func New(attempts int, delay time.Duration, opts ...Option) *Coordinator {
	c := &Coordinator{
		attempts:  max(attempts, 1),
		delay:     max(delay, 0),
		retryable: func(error) bool { return true },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Default returns the policy used for the observer to server hop:
// three attempts one second apart, retrying only network failures.
func Default(logger ports.Logger) *Coordinator {
	return New(domain.DefaultRetryAttempts, domain.DefaultRetryDelay,
		WithRetryable(IsNetwork),
		WithLogger(logger),
	)
}

// IsNetwork reports whether err is a domain.ErrNetwork.
func IsNetwork(err error) bool {
	return errors.Is(err, domain.ErrNetwork)
}

// Attempts returns the attempt bound.
func (c *Coordinator) Attempts() int { return c.attempts }

// Delay returns the pause between attempts.
func (c *Coordinator) Delay() time.Duration { return c.delay }

// Do calls op until it succeeds, the attempt bound is reached, or op fails
// with an error the coordinator does not retry. It returns the first success
// or the last error. There is no pause after the final attempt.
func Do[T any](ctx context.Context, c *Coordinator, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if !c.retryable(err) || attempt == c.attempts {
			break
		}

		if c.logger != nil {
			c.logger.Warn("attempt " + strconv.Itoa(attempt) + " of " + strconv.Itoa(c.attempts) +
				" failed, retrying in " + c.delay.String() + ": " + err.Error())
		}

		if !wait(ctx, c.delay) {
			return zero, zerr.With(zerr.Wrap(errors.Join(ctx.Err(), lastErr), "retry aborted"), "attempts", attempt)
		}
	}

	return zero, lastErr
}

func wait(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
