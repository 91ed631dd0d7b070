package classifier

import (
	"context"
	"encoding/json"
	"errors"

	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
)

// LoadSets reads the persisted found and invalid sets. Missing keys are empty sets.
func LoadSets(ctx context.Context, store ports.StateStore) (domain.AttemptSets, error) {
	sets := domain.NewAttemptSets()

	raw, err := store.Get(ctx, []string{domain.FoundWordsKey, domain.InvalidWordsKey})
	if err != nil {
		return sets, err
	}

	for key, set := range map[string]domain.WordSet{
		domain.FoundWordsKey:   sets.Found,
		domain.InvalidWordsKey: sets.Invalid,
	} {
		data, ok := raw[key]
		if !ok || len(data) == 0 {
			continue
		}
		var words []string
		if err := json.Unmarshal(data, &words); err != nil {
			return domain.NewAttemptSets(), zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to decode word set"), "key", key)
		}
		set.Add(words...)
	}
	return sets, nil
}

// SaveSets replaces both persisted sets with sets.
func SaveSets(ctx context.Context, store ports.StateStore, sets domain.AttemptSets) error {
	found, err := json.Marshal(sets.Found.Sorted())
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to encode found words")
	}
	invalid, err := json.Marshal(sets.Invalid.Sorted())
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to encode invalid words")
	}
	return store.Set(ctx, map[string]json.RawMessage{
		domain.FoundWordsKey:   found,
		domain.InvalidWordsKey: invalid,
	})
}

// PublishSets sends the full invalid and found sets to every observing context.
func PublishSets(ctx context.Context, pub ports.Publisher, sets domain.AttemptSets) {
	pub.Publish(ctx, domain.UpdateInvalidWords{Words: sets.Invalid.Sorted()})
	pub.Publish(ctx, domain.UpdateFoundWords{Words: sets.Found.Sorted()})
}
