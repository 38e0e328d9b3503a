// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/invowk/ctrun/internal/cueutil"
	"github.com/invowk/ctrun/internal/issue"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "ctrun"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes every environment override (CTRUN_IMAGE, CTRUN_UI_VERBOSE, ...).
	EnvPrefix = "CTRUN"

	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the ctrun configuration directory:
// $XDG_CONFIG_HOME/ctrun, defaulting to ~/.config/ctrun.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions layers defaults, the CUE file and CTRUN_* environment
// variables, in increasing precedence. It returns the path of the file that
// was read, or "" when only defaults and the environment apply.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("container_engine", string(defaults.ContainerEngine))
	v.SetDefault("binary_path", defaults.BinaryPath)
	v.SetDefault("image", defaults.Image)
	v.SetDefault("remove", defaults.Remove)
	v.SetDefault("shell", defaults.Shell)
	v.SetDefault("timeout", defaults.Timeout.String())
	v.SetDefault("list_columns", defaults.ListColumns)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'ctrun config show' to see the default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir := opts.ConfigDirPath
		if cfgDir == "" {
			var err error
			if cfgDir, err = ConfigDir(); err != nil {
				return nil, "", err
			}
		}
		if cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt); fileExists(cuePath) {
			resolvedPath = cuePath
		}
		// No config file is not an error: defaults and environment apply.
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("parse configuration").
			WithSuggestion("Check CTRUN_* environment variables for malformed values").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Fix the listed fields in the config file or the CTRUN_* environment").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// loadCUEIntoViper validates a CUE file against the #Config schema and merges
// its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Concrete(false): every field is optional.
	configMap, err := cueutil.Decode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithMaxFileSize(maxConfigFileSize),
	)
	if err != nil {
		return err
	}

	// Merge rather than replace so defaults survive and env still overrides.
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GenerateCUE renders cfg as a config.cue document accepted by the schema.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// ctrun configuration\n\n")
	fmt.Fprintf(&sb, "container_engine: %q\n", cfg.ContainerEngine)
	if cfg.BinaryPath != "" {
		fmt.Fprintf(&sb, "binary_path: %q\n", cfg.BinaryPath)
	}
	fmt.Fprintf(&sb, "image: %q\n", cfg.Image)
	fmt.Fprintf(&sb, "remove: %t\n", cfg.Remove)
	fmt.Fprintf(&sb, "shell: %s\n", cueList(cfg.Shell))
	fmt.Fprintf(&sb, "timeout: %q\n", cfg.Timeout.String())
	fmt.Fprintf(&sb, "list_columns: %s\n", cueList(cfg.ListColumns))

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %t\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

func cueList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, it := range items {
		quoted = append(quoted, strconv.Quote(it))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
