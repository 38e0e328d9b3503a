// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/ctrun/internal/container"
	"github.com/invowk/ctrun/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the ctrun command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ctrun",
		Short: "Run commands in throwaway containers",
		Long: TitleStyle.Render("ctrun") + SubtitleStyle.Render(" - Run commands in throwaway containers") + `

ctrun drives the docker or podman command line to run a command in a fresh
container, list containers, and prune the stopped ones.

` + SubtitleStyle.Render("Examples:") + `
  ctrun run -- echo "hello, world"    Run in a container removed on exit
  ctrun run --keep -- ls /             Keep the container after it exits
  ctrun run --shell 'echo a; echo b'   Pass a trusted script through bash
  ctrun ls                             List all containers
  ctrun prune --force                  Remove every stopped container
  ctrun config show                    Show the effective configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.setVerbose(app.flags.verbose)
			if app.flags.engine != "" {
				if _, err := container.ParseEngineType(app.flags.engine); err != nil {
					return err
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/ctrun/config.cue)")
	rootCmd.PersistentFlags().StringVar(&app.flags.engine, "engine", "", "container engine to prefer: docker or podman")

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newPruneCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with its status.
// This is called by main.main().
func Execute() {
	os.Exit(Main())
}

// Main runs the CLI against os.Args and returns the process exit status.
func Main() int {
	app := NewApp(Dependencies{})
	return run(context.Background(), app, os.Args[1:])
}

// run executes the command tree with args and maps the outcome to an exit
// status: the container's own status for `run`, 1 for any other failure.
func run(ctx context.Context, app *App, args []string) int {
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	// fang overrides rootCmd.Version, so the version is passed as an option.
	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			renderError(w, err, app.verbose)
		}),
	)
	return exitCodeFor(err)
}

// exitCodeFor maps a command error to the process exit status. Statuses
// outside 0-255, such as -1 for a signal-killed engine, become 1.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code.Validate() != nil || exitErr.Code.IsSuccess() {
			return 1
		}
		return int(exitErr.Code)
	}
	return 1
}

// renderError prints err for the user. Exit-status-only errors print nothing
// because the container's output has already been echoed; a status hint is a
// warning, not a ctrun failure.
func renderError(w io.Writer, err error, verbose bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintln(w, WarningStyle.Render(exitErr.Err.Error()))
		}
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	if !verbose {
		return
	}
	ae, ok := issue.AsActionable(err)
	if !ok || ae.Issue() == nil {
		return
	}
	rendered, renderErr := ae.Issue().Render("auto")
	if renderErr != nil {
		fmt.Fprintln(w, VerboseStyle.Render("could not render help: "+renderErr.Error()))
		return
	}
	fmt.Fprint(w, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	if ae, ok := issue.AsActionable(err); ok {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
