package ports

import (
	"context"

	"go.trai.ch/squares/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=broadcast.go -destination=mocks/mock_broadcast.go -package=mocks

// Subscriber is an observing context that accepts notifications.
type Subscriber interface {
	// ID identifies the context in the subscriber registry.
	ID() string
	// Deliver hands msg to the context. It must not block on the context's own work.
	Deliver(ctx context.Context, msg domain.Message) error
}

// Publisher fans a message out to every open observing context.
type Publisher interface {
	// Publish attempts delivery to every subscriber. Individual delivery
	// failures are recorded, never returned.
	Publish(ctx context.Context, msg domain.Message)
}

// GridSource is an observing context that can report the grid it displays.
type GridSource interface {
	ExtractGrid(ctx context.Context) (domain.PuzzleKey, error)
}

// ContextRegistry tracks the open observing contexts.
type ContextRegistry interface {
	Publisher
	// Active returns the context the user is looking at, if it can report a grid.
	Active() (GridSource, bool)
}
