// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	EngineTypePodman EngineType = "podman"
	EngineTypeDocker EngineType = "docker"
)

// lookPath resolves engine binaries; swapped in tests.
var lookPath = exec.LookPath

type (
	// Engine is a container engine reachable through its command-line interface.
	Engine interface {
		// Name returns the engine name (docker or podman)
		Name() string
		// BinaryPath returns the resolved path of the engine binary
		BinaryPath() string
		// Available checks if the engine is installed and its daemon/service answers
		Available() bool
		// Version returns the engine version
		Version(ctx context.Context) (string, error)
		// Command runs the engine binary with args, feeding stdin when non-nil
		Command(ctx context.Context, stdin io.Reader, args ...string) (*Invocation, error)
		// Invoker returns the process invoker the engine executes through
		Invoker() *Invoker
	}

	// EngineType identifies the container engine type
	EngineType string

	// ErrEngineNotAvailable is returned when a container engine is not available
	ErrEngineNotAvailable struct {
		Engine string
		Reason string
	}
)

func (e *ErrEngineNotAvailable) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// ParseEngineType converts a user-supplied engine name into an EngineType.
func ParseEngineType(s string) (EngineType, error) {
	switch t := EngineType(strings.ToLower(strings.TrimSpace(s))); t {
	case EngineTypeDocker, EngineTypePodman:
		return t, nil
	default:
		return "", fmt.Errorf("unknown container engine type: %q (valid: docker, podman)", s)
	}
}

// NewEngine creates a container engine based on preference, falling back to
// the other engine when the preferred one is unavailable.
func NewEngine(preferredType EngineType, opts ...BaseCLIEngineOption) (Engine, error) {
	var preferred, fallback Engine
	switch preferredType {
	case EngineTypePodman:
		preferred, fallback = NewPodmanEngine(opts...), NewDockerEngine(opts...)
	case EngineTypeDocker:
		preferred, fallback = NewDockerEngine(opts...), NewPodmanEngine(opts...)
	default:
		return nil, fmt.Errorf("unknown container engine type: %s", preferredType)
	}

	if preferred.Available() {
		return preferred, nil
	}
	if fallback.Available() {
		return fallback, nil
	}
	return nil, &ErrEngineNotAvailable{
		Engine: string(preferredType),
		Reason: fmt.Sprintf("%s is not installed or not accessible, and %s fallback is also not available",
			preferred.Name(), fallback.Name()),
	}
}

// AutoDetectEngine tries to find an available container engine
func AutoDetectEngine(opts ...BaseCLIEngineOption) (Engine, error) {
	// Podman first: it is the more common choice on rootless hosts.
	if podman := NewPodmanEngine(opts...); podman.Available() {
		return podman, nil
	}
	if docker := NewDockerEngine(opts...); docker.Available() {
		return docker, nil
	}
	return nil, &ErrEngineNotAvailable{
		Engine: "any",
		Reason: "no container engine (podman or docker) is available on this system",
	}
}

// NewEngineFromPath builds an engine around an explicit binary, skipping
// detection. The engine flavour is inferred from the file name; anything
// that is not podman is driven with docker's CLI dialect.
func NewEngineFromPath(path string, opts ...BaseCLIEngineOption) (Engine, error) {
	resolved, err := lookPath(path)
	if err != nil {
		return nil, &ErrEngineNotAvailable{Engine: path, Reason: err.Error()}
	}
	base := strings.TrimSuffix(filepath.Base(resolved), filepath.Ext(resolved))
	if base == string(EngineTypePodman) {
		return newPodmanEngineAt(resolved, opts...), nil
	}
	return newDockerEngineAt(resolved, opts...), nil
}
