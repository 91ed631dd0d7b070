package ports

import (
	"context"
	"encoding/json"
)

// StateStore is the persisted key/value store shared by every observing context.
//
// Values are replaced whole: Set never merges with what is stored, and
// concurrent writers to the same key are last-write-wins.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// Get returns the stored values for keys. Missing keys are absent from the result.
	Get(ctx context.Context, keys []string) (map[string]json.RawMessage, error)

	// Set stores every value in values, replacing what was there.
	Set(ctx context.Context, values map[string]json.RawMessage) error
}
