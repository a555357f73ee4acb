package domain

import "go.trai.ch/zerr"

var (
	// ErrBuildFailed is returned when a build command exits non-zero
	// without having been cancelled.
	ErrBuildFailed = zerr.New("build exited with non-zero status")

	// ErrPublishFailed is returned when copying the server artifact to the
	// publish path fails.
	ErrPublishFailed = zerr.New("failed to publish server artifact")

	// ErrWatchFailed is returned when the file watcher hits an
	// unrecoverable error that is not a transient handle loss.
	ErrWatchFailed = zerr.New("file watcher failed")

	// ErrFrontendStartFailed is returned when the front-end watch process
	// cannot be spawned.
	ErrFrontendStartFailed = zerr.New("failed to start front-end watch process")

	// ErrFrontendExited is returned when the front-end watch process exits
	// before printing its readiness marker.
	ErrFrontendExited = zerr.New("front-end watch process exited before becoming ready")

	// ErrConfigReadFailed is returned when the config file exists but
	// cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be
	// parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")
)
