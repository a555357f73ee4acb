package ports

import (
	"context"
	"io"

	"go.trai.ch/orcdev/internal/core/domain"
)

// Executor runs one build command to completion.
type Executor interface {
	// Execute runs the target's command in the target's directory,
	// relaying both output streams live to stdout and stderr so compiler
	// diagnostics appear as they are produced.
	//
	// Cancelling ctx terminates the child process: first a termination
	// request, escalating to a forced kill after a bounded wait.
	//
	// It returns an error if the command cannot be started or exits with
	// a non-zero status.
	Execute(ctx context.Context, target domain.Target, stdout, stderr io.Writer) error
}
