// Package shell provides the process-based executor for build commands.
package shell

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"time"

	"go.trai.ch/orcdev/internal/core/domain"
	"go.trai.ch/orcdev/internal/core/ports"
	"go.trai.ch/zerr"
)

// killEscalationDelay bounds how long a cancelled build may linger between
// the termination request and a forced kill. Rapid reload storms must not
// leak compiler subprocesses.
const killEscalationDelay = 5 * time.Second

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs the target's command in the target's directory and waits for
// it to exit. Output streams are wired straight through so diagnostics
// appear as the compiler produces them.
//
// Cancelling ctx sends a termination request to the child's process group;
// if the child has not exited after killEscalationDelay it is killed.
func (e *Executor) Execute(ctx context.Context, target domain.Target, stdout, stderr io.Writer) error {
	if len(target.Command) == 0 {
		return zerr.With(zerr.New("target has no build command"), "target", target.Name)
	}

	//nolint:gosec // the command comes from the workspace configuration
	cmd := exec.CommandContext(ctx, target.Command[0], target.Command[1:]...)
	cmd.Dir = target.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = killEscalationDelay
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		return terminate(cmd)
	}

	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start build command"), "target", target.Name)
	}

	if err := cmd.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}

	return nil
}
