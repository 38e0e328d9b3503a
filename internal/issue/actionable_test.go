// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "list containers"},
			expected: "failed to list containers",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "run container", Resource: "ubuntu"},
			expected: "failed to run container: ubuntu",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "load config", Cause: errors.New("unexpected token")},
			expected: "failed to load config: unexpected token",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "prune containers",
				Resource:  "/usr/bin/docker",
				Cause:     errors.New("exit status 1"),
			},
			expected: "failed to prune containers: /usr/bin/docker: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if (&ActionableError{Operation: "test"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions as bullets",
			err: &ActionableError{
				Operation:   "list containers",
				Suggestions: []string{"Start the Docker daemon", "Try --engine podman"},
			},
			contains: []string{"failed to list containers", "• Start the Docker daemon", "• Try --engine podman"},
		},
		{
			name: "no error chain in non-verbose",
			err: &ActionableError{
				Operation: "load config",
				Cause:     errors.New("syntax error"),
			},
			contains: []string{"failed to load config: syntax error"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested error chain verbose",
			err: &ActionableError{
				Operation: "run container",
				Cause:     fmt.Errorf("invoke engine: %w", errors.New("executable file not found")),
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. invoke engine: executable file not found",
				"2. executable file not found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("boom")

	ae := NewErrorContext().
		WithOperation("prune containers").
		WithResource("docker").
		WithSuggestion("first").
		WithSuggestions("second", "third").
		WithIssue(CommandFailedId).
		Wrap(cause).
		Build()
	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "prune containers" || ae.Resource != "docker" {
		t.Errorf("Build() = %+v", ae)
	}
	if len(ae.Suggestions) != 3 || !ae.HasSuggestions() {
		t.Errorf("Suggestions = %v", ae.Suggestions)
	}
	if ae.Issue() == nil || ae.Issue().Id() != CommandFailedId {
		t.Errorf("Issue() = %v, want CommandFailedId", ae.Issue())
	}
	if !errors.Is(ae, cause) {
		t.Error("Build() lost the cause")
	}

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}
}

func TestAsActionable(t *testing.T) {
	ae := WrapWithOperation(errors.New("denied"), "run container")
	wrapped := fmt.Errorf("command run: %w", ae)

	got, ok := AsActionable(wrapped)
	if !ok || got != ae {
		t.Errorf("AsActionable() = %v, %v", got, ok)
	}
	if _, ok := AsActionable(errors.New("plain")); ok {
		t.Error("AsActionable() found an ActionableError in a plain error")
	}
	if WrapWithOperation(nil, "noop") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
	if (&ActionableError{Operation: "x"}).Issue() != nil {
		t.Error("Issue() should be nil without an IssueID")
	}
}
