// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type (
	// BaseCLIEngineOption configures a BaseCLIEngine.
	BaseCLIEngineOption func(*BaseCLIEngine)

	// BaseCLIEngine provides the common implementation for CLI-based container
	// engines. Docker and Podman engines embed this struct and only differ in
	// their name and version template.
	BaseCLIEngine struct {
		name          string // Engine name for error messages (e.g., "docker", "podman")
		binaryPath    string
		versionFormat string
		invoker       *Invoker
	}
)

// --- Option Functions ---

// WithName sets the engine name used in error messages.
func WithName(name string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.name = name
	}
}

// WithInvoker sets the process invoker (and thereby the exec function,
// shell prefix and logger) the engine executes through.
func WithInvoker(inv *Invoker) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		if inv != nil {
			e.invoker = inv
		}
	}
}

// WithVersionFormat sets the Go template passed to `version --format`.
func WithVersionFormat(format string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) {
		e.versionFormat = format
	}
}

// --- Constructor ---

// NewBaseCLIEngine creates a new base engine with the given binary path.
func NewBaseCLIEngine(binaryPath string, opts ...BaseCLIEngineOption) *BaseCLIEngine {
	e := &BaseCLIEngine{
		name:          string(EngineTypeDocker),
		binaryPath:    binaryPath,
		versionFormat: "{{.Server.Version}}",
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.invoker == nil {
		e.invoker = NewInvoker()
	}
	return e
}

// --- Accessor Methods ---

// Name returns the engine name used in error messages.
func (e *BaseCLIEngine) Name() string {
	return e.name
}

// BinaryPath returns the path to the container engine binary.
func (e *BaseCLIEngine) BinaryPath() string {
	return e.binaryPath
}

// Invoker returns the process invoker.
func (e *BaseCLIEngine) Invoker() *Invoker {
	return e.invoker
}

// --- Engine Methods ---

// Available checks that the binary was found and that `version` succeeds,
// which also proves the daemon (docker) or service (podman) answers.
func (e *BaseCLIEngine) Available() bool {
	if e.binaryPath == "" {
		return false
	}
	inv, err := e.Command(context.Background(), nil, "version", "--format", e.versionFormat)
	return err == nil && inv.Succeeded()
}

// Version returns the engine version.
func (e *BaseCLIEngine) Version(ctx context.Context) (string, error) {
	inv, err := e.Command(ctx, nil, "version", "--format", e.versionFormat)
	if err != nil {
		return "", fmt.Errorf("failed to get %s version: %w", e.name, err)
	}
	if !inv.Succeeded() {
		return "", fmt.Errorf("failed to get %s version: %w", e.name, newCommandFailedError("query version", inv))
	}
	return strings.TrimSpace(inv.Stdout()), nil
}

// Command runs the engine binary with args and captures the result.
func (e *BaseCLIEngine) Command(ctx context.Context, stdin io.Reader, args ...string) (*Invocation, error) {
	if e.binaryPath == "" {
		return nil, &ErrEngineNotAvailable{Engine: e.name, Reason: "binary not found in PATH"}
	}
	if stdin != nil {
		return e.invoker.ExecInput(ctx, stdin, e.binaryPath, args...)
	}
	return e.invoker.Exec(ctx, e.binaryPath, args...)
}
