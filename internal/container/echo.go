// SPDX-License-Identifier: MPL-2.0

package container

import (
	"fmt"
	"io"
	"strings"
)

// Echo prints a run invocation the way an interactive caller expects:
// on success the captured stdout (if any); on failure "exit_status: <n>"
// followed by the captured stderr (if any). One trailing newline of the
// captured text is folded into the line Echo writes, so `echo hello` prints
// exactly "hello\n".
func Echo(w io.Writer, inv *Invocation) error {
	if inv.Succeeded() {
		return printCaptured(w, inv.Stdout())
	}
	if _, err := fmt.Fprintf(w, "exit_status: %d\n", inv.ExitCode()); err != nil {
		return err
	}
	return printCaptured(w, inv.Stderr())
}

func printCaptured(w io.Writer, text string) error {
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.TrimSuffix(text, "\n"))
	return err
}
