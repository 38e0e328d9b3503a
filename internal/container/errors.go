// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCommandFailed is the sentinel error wrapped by CommandFailedError.
	ErrCommandFailed = errors.New("container engine command failed")

	// ErrMalformedListing is the sentinel error wrapped by MalformedRowError and
	// returned for listing headers that cannot key a record.
	ErrMalformedListing = errors.New("malformed container listing")

	// ErrInvalidRunRequest is returned when a RunRequest mixes or omits modes.
	ErrInvalidRunRequest = errors.New("invalid run request")
)

type (
	// CommandFailedError is returned by operations whose result is meaningless
	// unless the engine command succeeds (list, prune, version). It carries the
	// full invocation so callers can show the captured stderr.
	CommandFailedError struct {
		Operation  string
		Invocation *Invocation
	}

	// MalformedRowError reports a listing row whose field count does not match
	// the column count. Rows are never truncated or padded.
	MalformedRowError struct {
		// Line is the 1-based line number within the listing output.
		Line int
		Want int
		Got  int
		Raw  string
	}
)

func newCommandFailedError(op string, inv *Invocation) *CommandFailedError {
	return &CommandFailedError{Operation: op, Invocation: inv}
}

// Error implements the error interface.
func (e *CommandFailedError) Error() string {
	msg := fmt.Sprintf("%s: %s exited with status %d", e.Operation, e.Invocation.CommandLine(), e.Invocation.ExitCode())
	if stderr := strings.TrimSpace(e.Invocation.Stderr()); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap returns ErrCommandFailed for errors.Is() compatibility.
func (e *CommandFailedError) Unwrap() error { return ErrCommandFailed }

// Error implements the error interface.
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("listing line %d has %d field(s), want %d: %q", e.Line, e.Got, e.Want, e.Raw)
}

// Unwrap returns ErrMalformedListing for errors.Is() compatibility.
func (e *MalformedRowError) Unwrap() error { return ErrMalformedListing }
