// Package builder implements the cancellable single-flight build executor.
package builder

import (
	"context"
	"io"
	"os"
	"sync"

	"go.trai.ch/orcdev/internal/core/domain"
	"go.trai.ch/orcdev/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder runs one target's fixed build command with single-flight,
// last-request-wins semantics: at most one non-cancelled build per target
// is alive at any time, and a new request invalidates whatever is still
// running.
//
// Exactly one Builder exists per target for the process lifetime.
type Builder struct {
	target domain.Target
	exec   ports.Executor
	logger ports.Logger
	stdout io.Writer
	stderr io.Writer

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates the Builder for a target. Build output is relayed to the
// process's own stdout/stderr.
func New(target domain.Target, exec ports.Executor, logger ports.Logger) *Builder {
	return &Builder{
		target: target,
		exec:   exec,
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// WithOutput redirects the relayed build output. Used in tests.
func (b *Builder) WithOutput(stdout, stderr io.Writer) *Builder {
	b.stdout = stdout
	b.stderr = stderr
	return b
}

// Target returns the target this builder executes.
func (b *Builder) Target() domain.Target {
	return b.target
}

// Request starts a build of the target, first invalidating any build
// previously requested on this Builder that has not yet finished; that
// earlier invocation resolves as OutcomeSuperseded.
//
// The build runs under a fresh cancellation context derived from ctx, so
// cancelling ctx (shutdown) also supersedes the build. A non-zero exit of a
// build that was not cancelled is logged and reported as OutcomeFailed;
// it is never retried until the next independent trigger.
func (b *Builder) Request(ctx context.Context) domain.Outcome {
	b.mu.Lock()
	if b.cancel != nil {
		// Invalidate the in-flight build; it resolves as superseded.
		b.cancel()
	}
	buildCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.mu.Unlock()

	b.logger.Info("building " + b.target.Name)
	err := b.exec.Execute(buildCtx, b.target, b.stdout, b.stderr)

	// Cancellation wins over the exit status: a superseded build performs
	// no downstream action even if its process happened to exit zero.
	if buildCtx.Err() != nil {
		b.logger.Info(b.target.Name + " build superseded")
		return domain.OutcomeSuperseded
	}

	if err != nil {
		b.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "target", b.target.Name))
		return domain.OutcomeFailed
	}

	b.logger.Info(b.target.Name + " build succeeded")
	return domain.OutcomeSucceeded
}

// Shutdown cancels the builder's current in-flight build, if any.
func (b *Builder) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
}
