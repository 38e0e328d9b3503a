// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/invowk/ctrun/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `ctrun config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect ctrun configuration",
		Long: `Inspect ctrun configuration.

Configuration is read from $XDG_CONFIG_HOME/ctrun/config.cue (default
~/.config/ctrun/config.cue) or the file given with --config. Every key can be
overridden with a CTRUN_ environment variable, e.g. CTRUN_IMAGE or
CTRUN_UI_VERBOSE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			source := path
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(app.stdout, "// source: %s\n", source)
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s/%s.%s\n", dir, config.ConfigFileName, config.ConfigFileExt)
			return nil
		},
	})

	return cfgCmd
}
