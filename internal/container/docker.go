// SPDX-License-Identifier: MPL-2.0

package container

// DockerEngine implements the Engine interface using Docker CLI.
// It embeds BaseCLIEngine for common CLI operations.
type DockerEngine struct {
	*BaseCLIEngine
}

// NewDockerEngine creates a new Docker engine. The binary path is empty when
// docker is not on PATH, in which case Available reports false.
func NewDockerEngine(opts ...BaseCLIEngineOption) *DockerEngine {
	path, _ := lookPath("docker")
	return newDockerEngineAt(path, opts...)
}

func newDockerEngineAt(path string, opts ...BaseCLIEngineOption) *DockerEngine {
	allOpts := append([]BaseCLIEngineOption{
		WithName(string(EngineTypeDocker)),
		WithVersionFormat("{{.Server.Version}}"),
	}, opts...)
	return &DockerEngine{
		BaseCLIEngine: NewBaseCLIEngine(path, allOpts...),
	}
}
