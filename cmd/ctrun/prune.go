// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/invowk/ctrun/internal/issue"

	"github.com/spf13/cobra"
)

// newPruneCommand creates the `ctrun prune` command.
func newPruneCommand(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove all stopped containers",
		Long: `Remove all stopped containers.

This removes every stopped container known to the engine, including ones
ctrun did not create, and cannot be undone. The engine is never left waiting
on a confirmation prompt; --force is required as the confirmation instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return issue.NewErrorContext().
					WithOperation("prune containers").
					WithSuggestion("Re-run with --force to remove every stopped container").
					Wrap(errors.New("refusing to prune without --force")).
					BuildError()
			}

			f, _, err := app.facade(cmd.Context())
			if err != nil {
				return err
			}
			report, err := f.Prune(cmd.Context())
			if err != nil {
				return classifyError(err, "prune containers", f.Engine().Name())
			}

			if len(report.Deleted) == 0 {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("No stopped containers."))
			} else {
				fmt.Fprintln(app.stdout, TitleStyle.Render("Deleted Containers:"))
				for _, id := range report.Deleted {
					fmt.Fprintln(app.stdout, id)
				}
			}
			// Podman reports no reclaimed space.
			if report.ReclaimedSpace != "" {
				fmt.Fprintln(app.stdout, SuccessStyle.Render("Total reclaimed space: "+report.HumanReclaimed()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "confirm removal of all stopped containers")
	return cmd
}
