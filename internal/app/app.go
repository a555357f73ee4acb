// Package app implements the orchestrator that ties the build chain, the
// watch sessions, the front-end supervisor and the command loop together.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"go.trai.ch/orcdev/internal/adapters/frontend"
	"go.trai.ch/orcdev/internal/adapters/watcher"
	"go.trai.ch/orcdev/internal/core/domain"
	"go.trai.ch/orcdev/internal/core/ports"
	"go.trai.ch/orcdev/internal/engine/chain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App is the process-wide orchestrator.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger

	stdin      io.Reader
	stdout     io.Writer
	newWatcher func() ports.Watcher
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, executor ports.Executor, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		newWatcher: func() ports.Watcher {
			return watcher.NewWatcher(domain.WatchedExtensions)
		},
	}
}

// WithStdin replaces the keystroke source. Used in tests.
func (a *App) WithStdin(r io.Reader) *App {
	a.stdin = r
	return a
}

// WithStdout replaces the banner/front-end output sink. Used in tests.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithWatcherFactory replaces the watch-session constructor. Used in tests.
func (a *App) WithWatcherFactory(f func() ports.Watcher) *App {
	a.newWatcher = f
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// NoFrontend skips starting the front-end watch process, for
	// environments where only the backend toolchain needs watching.
	NoFrontend bool
	// Grace overrides the workspace's shutdown grace period when positive.
	Grace time.Duration
	// JSONLogs switches the logger to JSON output.
	JSONLogs bool
}

// Run drives one developer session until shutdown: front-end readiness,
// one initial full build chain, then the two watch loops and the
// interactive command loop.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if opts.JSONLogs {
		if j, ok := a.logger.(interface{ SetJSON(bool) }); ok {
			j.SetJSON(true)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to determine working directory")
	}

	ws, err := a.configLoader.Load(cwd)
	if err != nil {
		return err
	}
	if opts.Grace > 0 {
		ws.GracePeriod = opts.Grace
	}

	// The shared shutdown context: every long-lived task and every build
	// request derives from it.
	ctx, shutdown := context.WithCancel(ctx)
	defer shutdown()

	ch := chain.New(ws, a.executor, a.logger)
	defer ch.Shutdown()

	if !opts.NoFrontend {
		fe := frontend.NewSupervisor(ws.Frontend, ws.ReadinessMarker, a.logger, a.stdout)
		if err := fe.Start(ctx); err != nil {
			return err
		}
		if err := fe.AwaitReady(ctx); err != nil {
			return err
		}
		a.logger.Info("front-end ready")
	}

	// One initial full chain so the session starts from a fresh artifact.
	// Failures are already logged; the session continues regardless.
	ch.BuildLibrary(ctx)

	a.banner()

	var g errgroup.Group
	g.Go(func() error {
		return a.watchLoop(ctx, ws.Library.Dir, func() { go ch.BuildLibrary(ctx) })
	})
	g.Go(func() error {
		return a.watchLoop(ctx, ws.Server.Dir, func() { go ch.BuildServer(ctx) })
	})
	g.Go(func() error {
		return a.commandLoop(ctx, ch, shutdown)
	})
	_ = g.Wait()

	// Fixed grace period for in-flight subprocess teardown to be observed.
	time.Sleep(ws.GracePeriod)
	return nil
}

// watchLoop consumes one watch session, requesting the corresponding build
// chain entry point for every relevant event. Triggers are fire-and-forget:
// coalescing of rapid events comes from the builder's supersede-on-new-
// request semantics, not from any debounce buffer.
func (a *App) watchLoop(ctx context.Context, root string, trigger func()) error {
	w := a.newWatcher()
	if err := w.Start(ctx, root); err != nil {
		a.logger.Error(zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", root))
		return nil
	}
	defer func() { _ = w.Stop() }()

	for range w.Events() {
		trigger()
	}

	if err := w.Err(); err != nil && ctx.Err() == nil {
		// Degraded mode: this target no longer auto-rebuilds; the other
		// watcher and the command loop keep running.
		a.logger.Error(zerr.With(zerr.Wrap(err, "watcher terminated"), "dir", root))
	}
	return nil
}
