package ports

import (
	"context"

	"go.trai.ch/squares/internal/core/domain"
)

// ResultCache stores solve results until the end of the calendar day.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ResultCache interface {
	// Get returns the cached words for key. A storage fault is reported as a miss.
	Get(ctx context.Context, key domain.PuzzleKey) ([]string, bool)

	// Put caches words for key, stamped with the current time.
	Put(ctx context.Context, key domain.PuzzleKey, words []string)
}
