// Package chain wires the two build targets into their fixed dependency
// order: library success triggers a server rebuild, server success triggers
// the artifact publish.
package chain

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/orcdev/internal/core/domain"
	"go.trai.ch/orcdev/internal/core/ports"
	"go.trai.ch/orcdev/internal/engine/builder"
	"go.trai.ch/zerr"
)

// Chain holds the two Builders and the artifact publish step.
type Chain struct {
	library *builder.Builder
	server  *builder.Builder

	artifactPath string
	publishPath  string
	logger       ports.Logger
}

// New creates the build chain for a workspace.
func New(ws domain.Workspace, exec ports.Executor, logger ports.Logger) *Chain {
	return &Chain{
		library:      builder.New(ws.Library, exec, logger),
		server:       builder.New(ws.Server, exec, logger),
		artifactPath: ws.ArtifactPath,
		publishPath:  ws.PublishPath,
		logger:       logger,
	}
}

// Library exposes the upstream builder. Used in tests.
func (c *Chain) Library() *builder.Builder { return c.library }

// Server exposes the downstream builder. Used in tests.
func (c *Chain) Server() *builder.Builder { return c.server }

// BuildLibrary builds the upstream library target and, only on success,
// chains into a full server rebuild. It returns the library build's
// outcome.
func (c *Chain) BuildLibrary(ctx context.Context) domain.Outcome {
	outcome := c.library.Request(ctx)
	if outcome == domain.OutcomeSucceeded {
		c.BuildServer(ctx)
	}
	return outcome
}

// BuildServer builds the downstream server target and, only on success,
// copies the produced executable to the publish path the IDE extension
// consumes. Publish failures are logged and do not stop the loop.
func (c *Chain) BuildServer(ctx context.Context) domain.Outcome {
	outcome := c.server.Request(ctx)
	if outcome == domain.OutcomeSucceeded {
		if err := c.publish(); err != nil {
			c.logger.Error(err)
		}
	}
	return outcome
}

// Shutdown cancels both builders' in-flight builds.
func (c *Chain) Shutdown() {
	c.library.Shutdown()
	c.server.Shutdown()
}

// publish copies the built server executable to the publish location.
func (c *Chain) publish() error {
	src, err := os.Open(c.artifactPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "artifact", c.artifactPath)
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(filepath.Dir(c.publishPath), 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "publish", c.publishPath)
	}

	dst, err := os.OpenFile(c.publishPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755) //nolint:gosec // executable artifact
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "publish", c.publishPath)
	}

	_, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if copyErr != nil {
		return zerr.With(zerr.Wrap(copyErr, domain.ErrPublishFailed.Error()), "publish", c.publishPath)
	}
	if closeErr != nil {
		return zerr.With(zerr.Wrap(closeErr, domain.ErrPublishFailed.Error()), "publish", c.publishPath)
	}

	c.logger.Info("published " + filepath.Base(c.publishPath))
	return nil
}
