//go:build !windows

package shell

import (
	"os/exec"
	"syscall"
)

// setProcessGroup places the child in its own process group so the whole
// compiler tree can be signalled at once.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminate sends SIGTERM to the child's process group. Escalation to
// SIGKILL is handled by the command's WaitDelay.
func terminate(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
}
