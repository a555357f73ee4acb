// Package frontend supervises the IDE extension's own watch/build process
// through a pseudo-terminal.
package frontend

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
	"go.trai.ch/orcdev/internal/core/domain"
	"go.trai.ch/orcdev/internal/core/ports"
	"go.trai.ch/zerr"
)

// killEscalationDelay bounds how long the supervised process may linger
// between the termination request and a forced kill.
const killEscalationDelay = 5 * time.Second

const relayBufferSize = 32 * 1024

// Supervisor owns one pty-backed front-end watch process. The pty keeps the
// bundler's interactive/colored output rendering correctly; all output is
// relayed to stdout as it arrives and scanned for the readiness marker.
type Supervisor struct {
	target domain.Target
	marker string
	logger ports.Logger
	stdout io.Writer

	scanner *markerScanner
	cmd     *exec.Cmd
	ptmx    *os.File
	done    chan struct{}
	waitErr error
}

// NewSupervisor creates a supervisor for the given watch command. Output is
// relayed to stdout; readiness is signalled by the first occurrence of
// marker in the combined output.
func NewSupervisor(target domain.Target, marker string, logger ports.Logger, stdout io.Writer) *Supervisor {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Supervisor{
		target:  target,
		marker:  marker,
		logger:  logger,
		stdout:  stdout,
		scanner: newMarkerScanner(marker),
		done:    make(chan struct{}),
	}
}

// Start spawns the watch command inside a pseudo-terminal and begins
// relaying its output. Cancelling ctx tears the process down.
func (s *Supervisor) Start(ctx context.Context) error {
	if len(s.target.Command) == 0 {
		return zerr.With(zerr.New("front-end has no watch command"), "target", s.target.Name)
	}

	s.logger.Info("starting front-end watch: " + strings.Join(s.target.Command, " "))

	//nolint:gosec // the command comes from the workspace configuration
	cmd := exec.CommandContext(ctx, s.target.Command[0], s.target.Command[1:]...)
	cmd.Dir = s.target.Dir
	cmd.WaitDelay = killEscalationDelay
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return cmd.Process.Signal(os.Interrupt)
	}

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return zerr.Wrap(err, domain.ErrFrontendStartFailed.Error())
	}
	s.cmd = cmd
	s.ptmx = ptmx

	ioDone := make(chan struct{})
	go s.relay(ioDone)

	go func() {
		s.waitErr = cmd.Wait()
		// Let the relay drain whatever the pty still buffers.
		_ = ptmx.Close()
		<-ioDone
		close(s.done)
	}()

	return nil
}

// relay copies pty output to stdout chunk by chunk, feeding each chunk to
// the readiness scanner. The pty merges the child's stdout and stderr.
func (s *Supervisor) relay(ioDone chan<- struct{}) {
	defer close(ioDone)

	buf := make([]byte, relayBufferSize)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			_, _ = s.stdout.Write(chunk)
			s.scanner.Scan(chunk)
		}
		if err != nil {
			// Reads fail with EIO or closed-file once the child exits.
			return
		}
	}
}

// AwaitReady blocks until the readiness marker has been observed, the
// process exits without printing it, or ctx is cancelled.
func (s *Supervisor) AwaitReady(ctx context.Context) error {
	select {
	case <-s.scanner.Found():
		return nil
	case <-s.done:
		return zerr.With(domain.ErrFrontendExited, "command", s.target.Command[0])
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready is closed once the readiness marker has been observed.
func (s *Supervisor) Ready() <-chan struct{} {
	return s.scanner.Found()
}

// Done is closed once the supervised process has exited and its output has
// been fully relayed.
func (s *Supervisor) Done() <-chan struct{} {
	return s.done
}

// Err returns the process exit error after Done is closed.
func (s *Supervisor) Err() error {
	return s.waitErr
}
