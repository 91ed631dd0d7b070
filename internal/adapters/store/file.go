package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

var errCorruptState = errors.New("state file is not a JSON object")

// FileStore keeps all keys in one JSON object on disk.
//
// Writes are serialized within a process. Separate processes sharing the
// file are last-write-wins per Set call.
//
// A file that no longer decodes is reported by Get. Set logs it and
// rewrites the file from the values it was given.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger ports.Logger
}

// NewFileStore creates a FileStore at path. The file is created on first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// WithLogger sets the logger that reports a corrupt file being replaced.
func (s *FileStore) WithLogger(logger ports.Logger) *FileStore {
	s.logger = logger
	return s
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the stored values for keys.
func (s *FileStore) Get(ctx context.Context, keys []string) (map[string]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	all, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if v, ok := all[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// Set merges values into the file, replacing the given keys.
func (s *FileStore) Set(ctx context.Context, values map[string]json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		if !errors.Is(err, errCorruptState) {
			return err
		}
		if s.logger != nil {
			s.logger.Error(zerr.Wrap(err, "replacing corrupt state file"))
		}
		all = make(map[string]json.RawMessage)
	}
	for k, v := range values {
		all[k] = bytes.Clone(v)
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to encode state")
	}
	return s.write(data)
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to read state"), "path", s.path)
	}

	all := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(data)) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, errCorruptState, err), "failed to decode state"), "path", s.path)
	}
	return all, nil
}

// write replaces the file atomically so readers never see a partial object.
func (s *FileStore) write(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to create state directory"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to create temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to write state")
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to set state permissions")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to close temp file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrStorage, err), "failed to replace state"), "path", s.path)
	}
	return nil
}
