// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/invowk/ctrun/internal/container"

	"github.com/spf13/cobra"
)

type runFlags struct {
	keep   bool
	image  string
	script string
	quiet  bool
}

// newRunCommand creates the `ctrun run` command.
func newRunCommand(app *App) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run [flags] [--] [command [args...]]",
		Short: "Run a command in a new container and print its output",
		Long: `Run a command in a new container, wait for it to exit and print its output.

On success the container's stdout is printed. On failure ctrun prints
"exit_status: <n>" followed by the container's stderr, and exits with the
same status.

The command is passed to the engine as separate arguments and is never
interpreted by a shell on the host. With --shell, the script is instead
appended to the engine command line and run through the host's bash, so
pipes and ';' are interpreted on the host. Only pass scripts you trust.`,
		Example: `  ctrun run -- echo "hello, world"
  ctrun run --image alpine:3.20 -- cat /etc/os-release
  ctrun run --keep -- touch /marker
  ctrun run --shell 'echo hello | tr a-z A-Z'`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContainer(cmd, app, flags, args)
		},
	}
	// Everything after the first positional argument belongs to the container.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().BoolVar(&flags.keep, "keep", false, "keep the container after it exits (no --rm)")
	cmd.Flags().StringVar(&flags.image, "image", "", "image to run (default from the image config key)")
	cmd.Flags().StringVar(&flags.script, "shell", "", "run a trusted script through the host shell instead of an argument list")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "do not print the container's output, only exit with its status")

	return cmd
}

func runContainer(cmd *cobra.Command, app *App, flags runFlags, args []string) error {
	ctx := cmd.Context()
	f, cfg, err := app.facade(ctx)
	if err != nil {
		return err
	}

	req := container.RunRequest{Command: args, Image: flags.image}
	if cmd.Flags().Changed("shell") {
		req.RawShell = true
		req.Script = flags.script
	}
	if flags.keep || !cfg.Remove {
		req.Remove = container.KeepAfterExit
	}

	var out io.Writer = app.stdout
	if flags.quiet {
		out = io.Discard
	}

	image := req.Image
	if image == "" {
		image = f.Image()
	}
	inv, err := f.RunAndEcho(ctx, req, out)
	if err != nil {
		return classifyError(err, "run container", image)
	}
	app.logger.Debug("container exited",
		"id", inv.ID(), "image", image, "exit", inv.ExitCode(), "policy", req.Remove, "duration", inv.Duration())

	if !inv.Succeeded() {
		return newContainerExitError(inv.ExitCode())
	}
	return nil
}
