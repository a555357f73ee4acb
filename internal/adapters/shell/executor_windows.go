//go:build windows

package shell

import "os/exec"

// setProcessGroup is a no-op on Windows; there is no process-group signal
// delivery to set up.
func setProcessGroup(_ *exec.Cmd) {}

// terminate kills the child directly. Windows has no SIGTERM equivalent for
// a graceful request.
func terminate(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
