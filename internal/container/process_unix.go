// SPDX-License-Identifier: MPL-2.0

//go:build unix

package container

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// configureProcess starts cmd in its own process group and makes context
// cancellation kill the whole group, so children of a raw-shell script
// (and the pipes they hold) die with it. Commands not built with
// exec.CommandContext have no Cancel hook and keep it that way.
func configureProcess(cmd *exec.Cmd) {
	cmd.WaitDelay = waitDelay
	if cmd.Cancel == nil {
		return
	}
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	}
}
