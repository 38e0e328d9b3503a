// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/invowk/ctrun/internal/container"
	"github.com/invowk/ctrun/internal/issue"
)

// classifyError wraps a facade error into an ActionableError that names the
// operation, links the matching catalog issue and suggests a fix. Errors that
// are already actionable pass through unchanged.
func classifyError(err error, operation, resource string) error {
	if err == nil {
		return nil
	}
	if _, ok := issue.AsActionable(err); ok {
		return err
	}

	ec := issue.NewErrorContext().WithOperation(operation).WithResource(resource).Wrap(err)

	var (
		notAvail *container.ErrEngineNotAvailable
		cmdErr   *container.CommandFailedError
	)
	switch {
	case errors.As(err, &notAvail):
		ec.WithIssue(issue.EngineNotAvailableId).
			WithSuggestion("Install Docker or Podman and make sure it is on your PATH").
			WithSuggestion("Select an engine with --engine or the container_engine config key")
	case errors.Is(err, container.ErrInvalidRunRequest):
		ec.WithIssue(issue.InvalidRunRequestId).
			WithSuggestion("Pass the command after -- or a single script with --shell, not both")
	case errors.Is(err, container.ErrMalformedListing):
		ec.WithIssue(issue.ListingMalformedId).
			WithSuggestion("Check that every list_columns entry is a field the engine's --format understands")
	case errors.As(err, &cmdErr):
		if isPermissionDenied(cmdErr.Invocation.Stderr()) {
			ec.WithIssue(issue.PermissionDeniedId).
				WithSuggestion("Add your user to the docker group or use rootless Podman")
			break
		}
		ec.WithIssue(issue.CommandFailedId).
			WithSuggestion("Re-run with --verbose to log the engine invocation")
	case errors.Is(err, context.DeadlineExceeded):
		ec.WithIssue(issue.InvocationFailedId).
			WithSuggestion("Raise the timeout config value, or set it to \"0s\" to disable it")
	case errors.Is(err, container.ErrInvocationFailed):
		ec.WithIssue(issue.InvocationFailedId)
	}
	return ec.BuildError()
}

func isPermissionDenied(stderr string) bool {
	return strings.Contains(strings.ToLower(stderr), "permission denied")
}
