package ports

import (
	"context"
	"iter"
)

// WatchEvent reports that a watched file changed content.
type WatchEvent struct {
	// Path is the absolute path of the file.
	Path string
	// Digest is the content hash after the change.
	Digest uint64
}

// Watcher defines the interface for watching a file for content changes.
type Watcher interface {
	// Start begins watching path. It returns an error if the watcher fails to start.
	Start(ctx context.Context, path string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of change events.
	Events() iter.Seq[WatchEvent]
}
