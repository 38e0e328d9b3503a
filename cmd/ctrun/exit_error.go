// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/invowk/ctrun/pkg/types"
)

// ExitError makes ctrun exit with Code. Err, when set, is printed like any
// other error; a nil Err exits silently because the output is already shown.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// newContainerExitError mirrors a container's exit status. Statuses the
// engine reserves for its own failures get an explanation attached.
func newContainerExitError(code types.ExitCode) *ExitError {
	e := &ExitError{Code: code}
	if code.IsEngineReserved() {
		e.Err = fmt.Errorf("container exited with status %d: %s", code, code.Hint())
	}
	return e
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("container exited with status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }
