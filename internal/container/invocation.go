// SPDX-License-Identifier: MPL-2.0

package container

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/invowk/ctrun/pkg/types"

	"mvdan.cc/sh/v3/syntax"
)

const (
	// RemoveOnExit passes --rm so the engine deletes the container when it exits.
	RemoveOnExit RemovePolicy = iota
	// KeepAfterExit leaves the exited container behind (reclaimable with Prune).
	KeepAfterExit
)

type (
	// RemovePolicy decides whether a run container is deleted after it exits.
	RemovePolicy int

	// Result is the captured outcome of one process execution.
	Result struct {
		Stdout   string
		Stderr   string
		ExitCode types.ExitCode
	}

	// Invocation is the immutable record of one completed external-process
	// execution. It is created by the Invoker and never modified afterwards;
	// accessors return copies.
	Invocation struct {
		id       string
		argv     []string
		script   string
		policy   *RemovePolicy
		result   Result
		duration time.Duration
	}
)

// String returns "remove" or "keep".
func (p RemovePolicy) String() string {
	if p == KeepAfterExit {
		return "keep"
	}
	return "remove"
}

// ID returns the correlation ID assigned to this invocation.
func (i *Invocation) ID() string { return i.id }

// Argv returns a copy of the executed argument vector. For raw-shell
// invocations this is the shell prefix followed by the script.
func (i *Invocation) Argv() []string { return slices.Clone(i.argv) }

// Script returns the raw shell script, or "" for argument-vector invocations.
// For a raw-shell Facade.Run it is the caller's script; the composed engine
// command line is the last element of Argv.
func (i *Invocation) Script() string { return i.script }

// RemovePolicy returns the removal policy for run invocations.
// ok is false for invocations that did not start a container.
func (i *Invocation) RemovePolicy() (policy RemovePolicy, ok bool) {
	if i.policy == nil {
		return RemoveOnExit, false
	}
	return *i.policy, true
}

// Result returns the captured stdout, stderr and exit status.
func (i *Invocation) Result() Result { return i.result }

// Stdout returns the captured standard output.
func (i *Invocation) Stdout() string { return i.result.Stdout }

// Stderr returns the captured standard error.
func (i *Invocation) Stderr() string { return i.result.Stderr }

// ExitCode returns the process exit status.
func (i *Invocation) ExitCode() types.ExitCode { return i.result.ExitCode }

// Succeeded reports whether the process exited with status zero.
func (i *Invocation) Succeeded() bool { return i.result.ExitCode.IsSuccess() }

// Duration returns the wall-clock time the process ran for.
func (i *Invocation) Duration() time.Duration { return i.duration }

// CommandLine renders the invocation as a shell-quoted command line, suitable
// for logs and dry-run output.
func (i *Invocation) CommandLine() string {
	return QuoteArgs(i.argv)
}

// withRemovePolicy returns a copy of the invocation annotated with p.
func (i *Invocation) withRemovePolicy(p RemovePolicy) *Invocation {
	c := *i
	c.argv = slices.Clone(i.argv)
	c.policy = &p
	return &c
}

// QuoteArgs joins args into a single bash-compatible command line, quoting
// each argument only where needed.
func QuoteArgs(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, a := range args {
		quoted = append(quoted, quoteArg(a))
	}
	return strings.Join(quoted, " ")
}

func quoteArg(a string) string {
	q, err := syntax.Quote(a, syntax.LangBash)
	if err != nil {
		// Only strings containing NUL bytes are unquotable; they cannot be
		// passed to a process anyway.
		return strconv.Quote(a)
	}
	return q
}
