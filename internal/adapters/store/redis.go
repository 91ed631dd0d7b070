package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/zerr"
)

const redisPrefix = "squares:"

// RedisStore keeps state in Redis, one string key per state key.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis connects to the server at url.
func OpenRedis(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrInvalidConfig, err), "failed to parse redis url")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to connect to redis")
	}
	return &RedisStore{client: client}, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Get returns the stored values for keys.
func (s *RedisStore) Get(ctx context.Context, keys []string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = redisPrefix + k
	}

	vals, err := s.client.MGet(ctx, prefixed...).Result()
	if err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to read state")
	}
	for i, v := range vals {
		if str, ok := v.(string); ok {
			out[keys[i]] = json.RawMessage(str)
		}
	}
	return out, nil
}

// Set writes values with a single MSET.
func (s *RedisStore) Set(ctx context.Context, values map[string]json.RawMessage) error {
	if len(values) == 0 {
		return nil
	}

	pairs := make([]any, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, redisPrefix+k, string(v))
	}
	if err := s.client.MSet(ctx, pairs...).Err(); err != nil {
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to write state")
	}
	return nil
}
