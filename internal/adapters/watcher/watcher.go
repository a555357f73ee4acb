// Package watcher implements the restartable file-watch sessions that feed
// the rebuild loop.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/orcdev/internal/core/domain"
	"go.trai.ch/orcdev/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// shouldSkipDirectories are directories that should not be watched. The
// build-output tree in particular churns heavily while cargo runs.
var shouldSkipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
	"target":       true,
}

const eventChannelBuffer = 100

// relevantOps are the operations that count as a change; chmod-only events
// are noise.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher implements file system watching using fsnotify. Events are
// filtered to the accepted extension set before they are emitted.
//
// If the underlying watch handle fails because the directory is momentarily
// unreachable while it still exists on disk (build tools touching
// overlapping paths), the session silently restarts on the same root
// without emitting an event. Any other failure terminates the session and
// is reported by Err.
type Watcher struct {
	root   string
	exts   map[string]bool
	events chan ports.WatchEvent

	mu  sync.Mutex
	fsw *fsnotify.Watcher
	err error
}

// NewWatcher creates a watcher that accepts events for the given file
// extensions (without the leading dot).
func NewWatcher(extensions []string) *Watcher {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[e] = true
	}
	return &Watcher{
		exts:   exts,
		events: make(chan ports.WatchEvent, eventChannelBuffer),
	}
}

// Start begins watching the given root directory recursively.
func (w *Watcher) Start(ctx context.Context, root string) error {
	if _, err := os.Stat(root); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "root", root)
	}
	w.root = root

	if err := w.openHandle(); err != nil {
		return err
	}

	go w.run(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw == nil {
		return nil
	}
	return w.fsw.Close()
}

// Events returns an iterator over relevant file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// Err returns the fatal error that terminated the session, if any.
func (w *Watcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// openHandle creates a fresh fsnotify handle covering the whole tree and
// installs it as the current one, closing any predecessor.
func (w *Watcher) openHandle() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}

	for dir := range watchRecursively(w.root) {
		if addErr := fsw.Add(dir); addErr != nil {
			_ = fsw.Close()
			return zerr.With(zerr.Wrap(addErr, domain.ErrWatchFailed.Error()), "dir", dir)
		}
	}

	w.mu.Lock()
	old := w.fsw
	w.fsw = fsw
	w.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	return nil
}

func (w *Watcher) current() *fsnotify.Watcher {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fsw
}

func (w *Watcher) fail(err error) {
	w.mu.Lock()
	w.err = err
	w.mu.Unlock()
}

// run processes raw fsnotify events until the context is cancelled, the
// handle is closed, or a fatal error occurs.
func (w *Watcher) run(ctx context.Context) {
	defer close(w.events)

	for {
		fsw := w.current()
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				w.addCreatedDir(fsw, event.Name)
			}

			if !w.relevant(event) {
				continue
			}
			select {
			case w.events <- ports.WatchEvent{Path: event.Name}:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			if w.transient(err) {
				if restartErr := w.openHandle(); restartErr != nil {
					w.fail(restartErr)
					return
				}
				continue
			}
			w.fail(zerr.Wrap(err, domain.ErrWatchFailed.Error()))
			return
		}
	}
}

// relevant reports whether the event should reach the consumer: it must
// carry a path whose extension is in the accepted set.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&relevantOps == 0 {
		return false
	}
	if event.Name == "" {
		return false
	}
	return w.exts[extension(event.Name)]
}

// transient reports whether the watch failure is the recoverable
// directory-momentarily-unreachable case: the handle saw the path vanish
// but the root still exists on disk.
func (w *Watcher) transient(err error) bool {
	if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOENT) {
		return false
	}
	_, statErr := os.Stat(w.root)
	return statErr == nil
}

// addCreatedDir extends the watch to a newly created directory and its
// subdirectories.
func (w *Watcher) addCreatedDir(fsw *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || shouldSkipDirectories[info.Name()] {
		return
	}
	for dir := range watchRecursively(path) {
		_ = fsw.Add(dir)
	}
}

// watchRecursively walks the directory tree and yields all directories.
func watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Skip unreadable directories rather than aborting the walk.
				return nil //nolint:nilerr
			}
			if d.IsDir() {
				if path != root && shouldSkipDirectories[d.Name()] {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

// extension returns the substring after the last dot, or "" when the path
// has no dot.
func extension(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return ""
	}
	return path[idx+1:]
}
