// SPDX-License-Identifier: MPL-2.0

// Package container is a small facade over a container engine's command-line
// interface (Docker or Podman).
//
// Every operation is one synchronous external-process invocation whose standard
// output, standard error and exit status are captured and handed back to the caller:
//
//   - Facade.Run starts a throwaway container (`run [--rm] <image> <command...>`).
//   - Facade.List enumerates all containers (`container ls -a`) into Records.
//   - Facade.Prune removes every stopped container (`container prune --force`).
//
// Commands are built as argument vectors and executed without a shell. The only
// exception is the raw-shell opt-in (RunRequest.RawShell), which concatenates the
// caller's script into a single string run by `/usr/bin/env bash -c`; that input
// must be trusted, it is never escaped or sanitized.
//
// A non-zero exit status of a contained command is data (Invocation.ExitCode), not
// an error. Errors are reserved for invocations that could not be started
// (ErrInvocationFailed), listing output that cannot be parsed into uniform records
// (ErrMalformedListing), and list/prune commands the engine rejected (ErrCommandFailed).
//
// No timeout is applied unless one is configured with WithTimeout or carried by the
// caller's context; a hung container blocks the caller.
package container
