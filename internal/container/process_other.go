// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package container

import "os/exec"

// configureProcess bounds how long Wait blocks on pipes still held by
// children after cmd is killed.
func configureProcess(cmd *exec.Cmd) {
	cmd.WaitDelay = waitDelay
}
