package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nao1215/quotecrawl/internal/database"
	"github.com/nao1215/quotecrawl/internal/report"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored quotes to CSV and XLSX",
		Long: `Export writes every stored quote to quotes_data.csv and quotes_data.xlsx.

Both files have the columns quote, author, tags and category_link; tags are
joined with " | ". Existing files are replaced. When no quote is stored,
nothing is written.

Examples:
  # Export into the current directory
  quotecrawl export

  # Export into ./out
  quotecrawl export --dir out`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("dir", "d", "",
		"Directory to write the files to (default: current directory)")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if cmd.Flags().Changed("dir") {
		if a.cfg.ExportDir, err = cmd.Flags().GetString("dir"); err != nil {
			return err
		}
	}

	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	return exportQuotes(cmd.Context(), cmd.OutOrStdout(), a, db)
}

// exportQuotes runs the exporter into the configured directory and reports
// where the files went.
func exportQuotes(ctx context.Context, out io.Writer, a *app, db *database.QuoteDB) error {
	result, err := report.NewExporter(db, report.WithExportLogger(a.logger)).Export(ctx, a.cfg.ExportDir)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if result.Skipped {
		fmt.Fprintln(out, "No data found to export.")
		return nil
	}

	fmt.Fprintf(out, "Exported %d quotes to %s and %s\n", result.Rows, result.CSVPath, result.XLSXPath)
	return nil
}
