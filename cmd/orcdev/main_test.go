package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/orcdev/internal/app"
	"go.trai.ch/orcdev/internal/core/domain"
)

type stubLoader struct {
	err error
}

func (l stubLoader) Load(cwd string) (domain.Workspace, error) {
	if l.err != nil {
		return domain.Workspace{}, l.err
	}
	return domain.DefaultWorkspace(cwd), nil
}

type stubExecutor struct{}

func (stubExecutor) Execute(context.Context, domain.Target, io.Writer, io.Writer) error {
	return nil
}

type stubLogger struct{}

func (stubLogger) Info(string) {}
func (stubLogger) Warn(string) {}
func (stubLogger) Error(error) {}

func stubProvider(loadErr error) ComponentProvider {
	return func(_ context.Context) (*app.Components, func(), error) {
		application := app.New(stubLoader{err: loadErr}, stubExecutor{}, stubLogger{})
		return &app.Components{App: application, Logger: stubLogger{}}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, stubProvider(nil))
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"watch"}, stderr, stubProvider(errors.New("load failed")))
	assert.Equal(t, 1, exitCode)
}
