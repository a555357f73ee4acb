package watcher

// Extension exposes the extension helper for tests.
var Extension = extension

// Transient exposes the transient-failure classification for tests.
func (w *Watcher) Transient(err error) bool {
	return w.transient(err)
}

// InjectError feeds an error into the current watch handle's error stream,
// as the OS watch primitive would on failure.
func (w *Watcher) InjectError(err error) {
	w.mu.Lock()
	fsw := w.fsw
	w.mu.Unlock()
	fsw.Errors <- err
}
