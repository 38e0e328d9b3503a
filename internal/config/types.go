// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// ContainerEnginePodman uses Podman as the container engine.
	ContainerEnginePodman ContainerEngine = "podman"
	// ContainerEngineDocker uses Docker as the container engine.
	ContainerEngineDocker ContainerEngine = "docker"
)

var (
	// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
	ErrInvalidContainerEngine = errors.New("invalid container engine")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	columnNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
)

type (
	// ContainerEngine specifies which container engine to prefer.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value is not recognized.
	// It wraps ErrInvalidContainerEngine for errors.Is() compatibility.
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// every field-level error found.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// ContainerEngine is the preferred engine; the other one is the fallback.
		ContainerEngine ContainerEngine `json:"container_engine" mapstructure:"container_engine"`
		// BinaryPath names an explicit engine binary and skips detection.
		BinaryPath string `json:"binary_path" mapstructure:"binary_path"`
		// Image is the base image containers are started from.
		Image string `json:"image" mapstructure:"image"`
		// Remove selects --rm for run unless overridden on the command line.
		Remove bool `json:"remove" mapstructure:"remove"`
		// Shell is the prefix raw-shell scripts are appended to.
		Shell []string `json:"shell" mapstructure:"shell"`
		// Timeout bounds every engine invocation; zero disables it.
		Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
		// ListColumns are the columns requested by ls.
		ListColumns []string `json:"list_columns" mapstructure:"list_columns"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging and rendered issue pages
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ContainerEngine: ContainerEngineDocker,
		Image:           "ubuntu",
		Remove:          true,
		Shell:           []string{"/usr/bin/env", "bash", "-c"},
		ListColumns:     []string{"ID", "Image", "Command", "CreatedAt", "Status", "Ports", "Names"},
	}
}

// IsValid returns whether the ContainerEngine is one of the defined engine types,
// and a list of validation errors if it is not.
func (ce ContainerEngine) IsValid() (bool, []error) {
	switch ce {
	case ContainerEnginePodman, ContainerEngineDocker:
		return true, nil
	default:
		return false, []error{&InvalidContainerEngineError{Value: ce}}
	}
}

// String returns the string representation of the ContainerEngine.
func (ce ContainerEngine) String() string { return string(ce) }

// Error implements the error interface for InvalidContainerEngineError.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: podman, docker)", e.Value)
}

// Unwrap returns ErrInvalidContainerEngine for errors.Is() compatibility.
func (e *InvalidContainerEngineError) Unwrap() error { return ErrInvalidContainerEngine }

// Validate checks the constraints the CUE schema cannot see, because values
// may also come from defaults and environment variables.
func (c *Config) Validate() error {
	var errs []error
	if valid, fieldErrs := c.ContainerEngine.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.BinaryPath != "" && strings.TrimSpace(c.BinaryPath) == "" {
		errs = append(errs, errors.New("binary_path: must not be whitespace-only"))
	}
	if c.Image == "" || strings.ContainsFunc(c.Image, isSpace) {
		errs = append(errs, fmt.Errorf("image: %q is not a valid image reference", c.Image))
	}
	if len(c.Shell) == 0 || c.Shell[0] == "" {
		errs = append(errs, errors.New("shell: must name at least an interpreter"))
	} else if !filepath.IsAbs(c.Shell[0]) {
		errs = append(errs, fmt.Errorf("shell: interpreter %q must be an absolute path", c.Shell[0]))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout: %s must not be negative", c.Timeout))
	}
	errs = append(errs, validateColumns(c.ListColumns)...)

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

func validateColumns(columns []string) []error {
	if len(columns) == 0 {
		return []error{errors.New("list_columns: must not be empty")}
	}
	var errs []error
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if !columnNamePattern.MatchString(c) {
			errs = append(errs, fmt.Errorf("list_columns: %q is not a template field name", c))
		}
		if seen[c] {
			errs = append(errs, fmt.Errorf("list_columns: duplicate column %q", c))
		}
		seen[c] = true
	}
	return errs
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
