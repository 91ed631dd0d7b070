package store_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/squares/internal/adapters/store"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/squares/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// exerciseStore checks the behavior every backend shares.
func exerciseStore(t *testing.T, s ports.StateStore) {
	t.Helper()
	ctx := t.Context()

	got, err := s.Get(ctx, []string{domain.FoundWordsKey})
	require.NoError(t, err)
	assert.Empty(t, got, "missing keys are absent")

	require.NoError(t, s.Set(ctx, map[string]json.RawMessage{
		domain.FoundWordsKey:   json.RawMessage(`["cat"]`),
		domain.InvalidWordsKey: json.RawMessage(`["xyz"]`),
	}))

	got, err = s.Get(ctx, []string{domain.FoundWordsKey, domain.InvalidWordsKey, domain.CacheStateKey})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.JSONEq(t, `["cat"]`, string(got[domain.FoundWordsKey]))
	assert.JSONEq(t, `["xyz"]`, string(got[domain.InvalidWordsKey]))

	// Set replaces only the keys it names.
	require.NoError(t, s.Set(ctx, map[string]json.RawMessage{
		domain.FoundWordsKey: json.RawMessage(`["cat","bat"]`),
	}))
	got, err = s.Get(ctx, []string{domain.FoundWordsKey, domain.InvalidWordsKey})
	require.NoError(t, err)
	assert.JSONEq(t, `["cat","bat"]`, string(got[domain.FoundWordsKey]))
	assert.JSONEq(t, `["xyz"]`, string(got[domain.InvalidWordsKey]))

	got, err = s.Get(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, store.NewMemoryStore())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := t.Context()
	require.NoError(t, s.Set(ctx, map[string]json.RawMessage{"k": json.RawMessage(`[1]`)}))

	got, err := s.Get(ctx, []string{"k"})
	require.NoError(t, err)
	got["k"][1] = '9'

	again, err := s.Get(ctx, []string{"k"})
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(again["k"]))
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	exerciseStore(t, store.NewFileStore(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestFileStore_SharedBetweenInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	a := store.NewFileStore(path)
	b := store.NewFileStore(path)
	ctx := t.Context()

	require.NoError(t, a.Set(ctx, map[string]json.RawMessage{domain.FoundWordsKey: json.RawMessage(`["cat"]`)}))

	got, err := b.Get(ctx, []string{domain.FoundWordsKey})
	require.NoError(t, err)
	assert.JSONEq(t, `["cat"]`, string(got[domain.FoundWordsKey]))
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := store.NewFileStore(path).Get(t.Context(), []string{"k"})
	require.ErrorIs(t, err, domain.ErrStorage)
}

func TestFileStore_SetReplacesCorruptFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrStorage)
	})

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	s := store.NewFileStore(path).WithLogger(log)
	ctx := t.Context()

	require.NoError(t, s.Set(ctx, map[string]json.RawMessage{
		domain.FoundWordsKey: json.RawMessage(`["crane"]`),
	}))

	got, err := s.Get(ctx, []string{domain.FoundWordsKey})
	require.NoError(t, err)
	assert.JSONEq(t, `["crane"]`, string(got[domain.FoundWordsKey]))
}

func TestFileStore_SetReadErrorIsReturned(t *testing.T) {
	// A directory at the state path cannot be read as a file.
	path := t.TempDir()

	err := store.NewFileStore(path).Set(t.Context(), map[string]json.RawMessage{"k": json.RawMessage(`1`)})
	require.ErrorIs(t, err, domain.ErrStorage)
}

func TestFileStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := store.NewFileStore(filepath.Join(t.TempDir(), "s.json")).Set(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteStore(t *testing.T) {
	s, err := store.OpenSQLite(t.Context(), filepath.Join(t.TempDir(), "db", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := t.Context()

	s, err := store.OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, map[string]json.RawMessage{"k": json.RawMessage(`"v"`)}))
	require.NoError(t, s.Close())

	s, err = store.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Get(ctx, []string{"k"})
	require.NoError(t, err)
	assert.JSONEq(t, `"v"`, string(got["k"]))
}

func TestSQLiteStore_EmptyPath(t *testing.T) {
	_, err := store.OpenSQLite(t.Context(), " ")
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	s, err := store.OpenRedis(t.Context(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestOpenRedis_BadURL(t *testing.T) {
	_, err := store.OpenRedis(t.Context(), "not-a-url")
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestOpen(t *testing.T) {
	ctx := t.Context()
	dir := t.TempDir()

	s, err := store.Open(ctx, domain.Settings{StoreBackend: domain.StoreMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, s)

	s, err = store.Open(ctx, domain.Settings{StoreBackend: domain.StoreFile, StorePath: filepath.Join(dir, "s.json")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &store.FileStore{}, s)

	s, err = store.Open(ctx, domain.Settings{StoreBackend: domain.StoreSQLite, StorePath: filepath.Join(dir, "s.db")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &store.SQLiteStore{}, s)
	_ = s.(*store.SQLiteStore).Close()

	_, err = store.Open(ctx, domain.Settings{StoreBackend: "etcd"}, nil)
	require.ErrorIs(t, err, domain.ErrUnknownStoreBackend)
}
