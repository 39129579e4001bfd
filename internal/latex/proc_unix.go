//go:build unix

package latex

import (
	"os/exec"
	"syscall"
)

// killProcessGroup runs the toolchain in its own process group so a timeout
// also kills any helpers it spawned.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
