package ports

import (
	"context"
	"iter"
)

// WatchEvent is one relevant file system change under a watched tree.
type WatchEvent struct {
	// Path is the path of the file that changed.
	Path string
}

// Watcher produces a lazy, infinite, restartable sequence of relevant
// change notifications for one directory tree.
type Watcher interface {
	// Start begins watching the given root directory recursively.
	Start(ctx context.Context, root string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator over relevant file system events. The
	// iterator ends when the watcher stops; Err reports why.
	Events() iter.Seq[WatchEvent]
	// Err returns the fatal error that terminated the event stream, if
	// any. A nil result means the watcher stopped cleanly.
	Err() error
}
