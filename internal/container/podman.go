// SPDX-License-Identifier: MPL-2.0

package container

// PodmanEngine implements the Engine interface using Podman CLI.
// It embeds BaseCLIEngine for common CLI operations.
type PodmanEngine struct {
	*BaseCLIEngine
}

// NewPodmanEngine creates a new Podman engine.
func NewPodmanEngine(opts ...BaseCLIEngineOption) *PodmanEngine {
	path, _ := lookPath("podman")
	return newPodmanEngineAt(path, opts...)
}

func newPodmanEngineAt(path string, opts ...BaseCLIEngineOption) *PodmanEngine {
	// Podman has no client/server split in `version`, so the template differs.
	allOpts := append([]BaseCLIEngineOption{
		WithName(string(EngineTypePodman)),
		WithVersionFormat("{{.Version}}"),
	}, opts...)
	return &PodmanEngine{
		BaseCLIEngine: NewBaseCLIEngine(path, allOpts...),
	}
}
