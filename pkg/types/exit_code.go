// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared between the container facade and the CLI.
package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitCodeEngineFailure is returned by `docker run`/`podman run` when the
	// engine itself failed before the contained command started.
	ExitCodeEngineFailure ExitCode = 125
	// ExitCodeNotExecutable is returned when the contained command exists but
	// cannot be invoked.
	ExitCodeNotExecutable ExitCode = 126
	// ExitCodeNotFound is returned when the contained command cannot be found.
	ExitCodeNotFound ExitCode = 127
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// The zero value (0) means success. A process terminated by a signal
	// reports -1, mirroring os.ProcessState.ExitCode.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// POSIX range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// IsEngineReserved reports whether the code is one of the statuses the
// container engine reserves for its own failures (125, 126, 127).
func (c ExitCode) IsEngineReserved() bool {
	return c == ExitCodeEngineFailure || c == ExitCodeNotExecutable || c == ExitCodeNotFound
}

// Hint returns a short human explanation for engine-reserved codes and an
// empty string for everything else.
func (c ExitCode) Hint() string {
	switch c {
	case ExitCodeEngineFailure:
		return "the container engine failed before the command started"
	case ExitCodeNotExecutable:
		return "the command inside the container could not be invoked"
	case ExitCodeNotFound:
		return "the command was not found inside the container image"
	default:
		return ""
	}
}

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
