// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invowk/ctrun/internal/container"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// newListCommand creates the `ctrun ls` command.
func newListCommand(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list", "ps"},
		Short:   "List all containers, running or stopped",
		Long: `List all containers, running or stopped.

The columns come from the list_columns config key. Values are requested from
the engine tab-separated, so commands and names containing spaces are kept
intact; a row that does not have one value per column aborts the listing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("invalid --output %q (valid: %s, %s)", output, outputTable, outputJSON)
			}

			f, _, err := app.facade(cmd.Context())
			if err != nil {
				return err
			}
			records, err := f.List(cmd.Context())
			if err != nil {
				return classifyError(err, "list containers", f.Engine().Name())
			}

			if output == outputJSON {
				return writeRecordsJSON(app.stdout, records)
			}
			writeRecordsTable(app.stdout, f.Columns(), records)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")
	return cmd
}

// writeRecordsJSON prints records as a JSON array of objects.
func writeRecordsJSON(w io.Writer, records []container.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// writeRecordsTable prints records as a bordered table in column order.
func writeRecordsTable(w io.Writer, columns []string, records []container.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("No containers."))
		return
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			row = append(row, rec.Get(c))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	fmt.Fprintln(w, t.Render())
}
