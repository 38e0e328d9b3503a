// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"time"

	"github.com/invowk/ctrun/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	// ErrInvocationFailed is the sentinel error wrapped by InvocationError.
	ErrInvocationFailed = errors.New("invocation failed")

	errEmptyCommand = errors.New("empty command")
)

// DefaultShell is the shell prefix used for raw-shell invocations: an explicit,
// non-login bash resolved through env.
var DefaultShell = []string{"/usr/bin/env", "bash", "-c"}

// waitDelay is how long an aborted invocation waits for its output pipes to
// close after the process group was killed.
const waitDelay = 500 * time.Millisecond

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// InvokerOption configures an Invoker.
	InvokerOption func(*Invoker)

	// Invoker runs external processes to completion, capturing their output.
	// It holds no per-call state and is safe for concurrent use: every call
	// gets its own stdout and stderr buffers.
	Invoker struct {
		execCommand ExecCommandFunc
		shell       []string
		logger      *log.Logger
		newID       func() string
	}

	// InvocationError is returned when a process could not be started or was
	// aborted by its context. It is never returned for a non-zero exit status.
	InvocationError struct {
		Argv []string
		Err  error
	}
)

// Error implements the error interface.
func (e *InvocationError) Error() string {
	if len(e.Argv) == 0 {
		return fmt.Sprintf("invocation failed: %v", e.Err)
	}
	return fmt.Sprintf("invocation of %s failed: %v", QuoteArgs(e.Argv), e.Err)
}

// Unwrap exposes both ErrInvocationFailed and the underlying cause (for
// example exec.ErrNotFound or context.DeadlineExceeded) to errors.Is.
func (e *InvocationError) Unwrap() []error { return []error{ErrInvocationFailed, e.Err} }

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) InvokerOption {
	return func(i *Invoker) {
		i.execCommand = fn
	}
}

// WithShell overrides the raw-shell prefix (default DefaultShell).
// The script is appended as the final argument.
func WithShell(prefix ...string) InvokerOption {
	return func(i *Invoker) {
		i.shell = slices.Clone(prefix)
	}
}

// WithLogger sets the logger used for per-invocation debug records.
func WithLogger(logger *log.Logger) InvokerOption {
	return func(i *Invoker) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewInvoker creates an Invoker that executes processes with exec.CommandContext.
func NewInvoker(opts ...InvokerOption) *Invoker {
	i := &Invoker{
		execCommand: exec.CommandContext,
		shell:       slices.Clone(DefaultShell),
		logger:      log.New(io.Discard),
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Logger returns the logger the invoker reports to.
func (i *Invoker) Logger() *log.Logger {
	return i.logger
}

// Exec runs name with args directly (no shell) and waits for it to exit.
func (i *Invoker) Exec(ctx context.Context, name string, args ...string) (*Invocation, error) {
	return i.run(ctx, nil, "", append([]string{name}, args...))
}

// ExecInput is Exec with stdin connected to r.
func (i *Invoker) ExecInput(ctx context.Context, r io.Reader, name string, args ...string) (*Invocation, error) {
	return i.run(ctx, r, "", append([]string{name}, args...))
}

// Shell runs script through the configured shell prefix
// (`/usr/bin/env bash -c <script>` by default). The script is passed verbatim;
// callers must only pass trusted input.
func (i *Invoker) Shell(ctx context.Context, script string) (*Invocation, error) {
	argv := append(slices.Clone(i.shell), script)
	return i.run(ctx, nil, script, argv)
}

// run executes argv and captures both output streams. A non-zero exit status
// is recorded in the Result; only start failures and context aborts are errors.
func (i *Invoker) run(ctx context.Context, stdin io.Reader, script string, argv []string) (*Invocation, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, &InvocationError{Argv: argv, Err: errEmptyCommand}
	}

	id := i.newID()
	cmd := i.execCommand(ctx, argv[0], argv[1:]...)
	configureProcess(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = stdin
	}

	i.logger.Debug("invoking", "id", id, "cmd", QuoteArgs(argv))
	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	inv := &Invocation{
		id:       id,
		argv:     slices.Clone(argv),
		script:   script,
		duration: elapsed,
		result: Result{
			Stdout: stdout.String(),
			Stderr: stderr.String(),
		},
	}

	if err != nil {
		// A process killed because its context ended also reports an
		// ExitError; that is an abort, not an exit status.
		if ctxErr := ctx.Err(); ctxErr != nil {
			i.logger.Debug("invocation aborted", "id", id, "err", ctxErr, "duration", elapsed)
			return nil, &InvocationError{Argv: inv.argv, Err: ctxErr}
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			i.logger.Debug("invocation failed to start", "id", id, "err", err)
			return nil, &InvocationError{Argv: inv.argv, Err: err}
		}
		inv.result.ExitCode = types.ExitCode(exitErr.ExitCode())
	}

	i.logger.Debug("invocation finished", "id", id, "exit", inv.result.ExitCode, "duration", elapsed)
	return inv, nil
}
