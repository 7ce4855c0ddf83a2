package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/teammap/internal/cli/formatter"
	"github.com/alexanderramin/teammap/internal/snapshot"
	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatXLSX = "xlsx"
)

// exportFormat picks the explicit --format, else the output extension.
func exportFormat(format, out string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(out), ".xlsx") {
			return formatXLSX, nil
		}
		return formatJSON, nil
	}
	switch format {
	case formatJSON, formatXLSX:
		return format, nil
	}
	return "", fmt.Errorf("invalid --format %q (expected json or xlsx)", format)
}

func newExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the chart as JSON, or the roster as a spreadsheet",
		Long: `Export the chart.

JSON exports contain nodes, verticals, positions and settings and can be
read back with 'import'. Without --out the JSON is written to stdout.
The xlsx format writes a one-sheet roster for sharing and needs --out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			f, err := exportFormat(format, out)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case f == formatXLSX && out == "":
				return fmt.Errorf("--out is required for xlsx exports")
			case f == formatXLSX:
				if err := app.Data.ExportRoster(ctx, out); err != nil {
					return err
				}
			case out == "" || out == "-":
				doc, err := app.Data.Export(ctx)
				if err != nil {
					return err
				}
				return snapshot.Encode(w, doc)
			default:
				if err := app.Data.ExportFile(ctx, out); err != nil {
					return err
				}
			}
			fmt.Fprintf(w, "Exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Output format (json|xlsx), default from --out extension")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the whole chart with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(app, yes, "Replace the chart?", "Every node, vertical and position is replaced by the file's contents.")
			if err != nil || !ok {
				return err
			}
			res, err := app.Data.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d node(s), %d vertical(s), %d position(s)\n",
				res.NodeCount, res.VerticalCount, res.PositionCount)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every node, vertical and position (settings are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(app, yes, "Clear the chart?", "Every node, vertical and position is deleted. Settings are kept.")
			if err != nil || !ok {
				return err
			}
			if err := app.Data.ClearAll(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Chart cleared."))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
