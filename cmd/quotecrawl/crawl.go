package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/quotecrawl/internal/config"
	"github.com/nao1215/quotecrawl/internal/crawler"
	"github.com/nao1215/quotecrawl/internal/database"
	"github.com/nao1215/quotecrawl/internal/model"
	"github.com/nao1215/quotecrawl/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl pending categories within a request budget",
		Long: `Crawl loads every pending category from the database and walks its pages
with a pool of workers. All workers draw from one request budget; once it is
spent no further request is sent and unfinished categories stay pending for
the next run.

Quotes are stored as soon as each page is read. A category is marked done
when its last page has been reached. After the run a summary is printed and
all stored quotes are exported to quotes_data.csv and quotes_data.xlsx.

If the request budget or the worker count is not given by flag or config
file, you are asked for it.

Examples:
  # Ask for budget and workers interactively
  quotecrawl crawl

  # Send at most 100 requests with 4 workers
  quotecrawl crawl -n 100 -w 4

  # Show a progress bar and write a Markdown report
  quotecrawl crawl -n 100 -w 4 --progress -r report.md

  # Crawl politely, two requests per second across all workers
  quotecrawl crawl -n 500 -w 8 --rate 2`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	// Run size flags
	cmd.Flags().IntP("max-requests", "n", 0,
		"Maximum number of requests to send (asked for when not set)")
	cmd.Flags().IntP("workers", "w", 0,
		"Number of categories crawled concurrently (asked for when not set)")
	cmd.Flags().Int("pending-cap", config.DefaultPendingCap,
		"Maximum number of pending categories loaded per run")

	// Fetch flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each page fetch")
	cmd.Flags().Float64("rate", 0,
		"Requests per second across all workers (0 disables pacing)")

	// Output flags
	cmd.Flags().Bool("progress", false,
		"Show a progress bar instead of one line per request")
	cmd.Flags().Bool("no-export", false,
		"Do not export quotes after the run")
	cmd.Flags().String("export-dir", "",
		"Directory for quotes_data.csv and quotes_data.xlsx (default: current directory)")
	cmd.Flags().StringP("report", "r", "",
		"Write a run report to this file (.json for JSON, Markdown otherwise)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := applyCrawlFlags(cmd, a.cfg); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := resolveInteractive(cmd, a.cfg); err != nil {
		return err
	}

	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := signalContext(cmd.Context(), a.logger)
	defer cancel()

	return runCrawl(ctx, cmd, a, db)
}

// runCrawl performs the run and everything that follows it. The summary is
// printed even when workers failed; their joined error is returned last.
func runCrawl(ctx context.Context, cmd *cobra.Command, a *app, db *database.QuoteDB) error {
	cfg := a.cfg
	out := cmd.OutOrStdout()

	fetcher := crawler.NewHTTPFetcher(nil,
		crawler.WithTimeout(cfg.Timeout),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
		crawler.WithRate(cfg.RequestRate),
	)

	var progress crawler.Progress
	var bar *barProgress
	if cfg.Progress && cfg.MaxRequests > 0 {
		bar = newBarProgress(cmd.ErrOrStderr(), cfg.MaxRequests)
		progress = bar
	} else {
		progress = newLinePrinter(out)
	}

	coordinator := crawler.NewCoordinator(db, fetcher, crawler.NewQuoteExtractor(),
		crawler.WithConcurrency(cfg.Workers),
		crawler.WithPendingCap(cfg.PendingCap),
		crawler.WithLogger(a.logger),
		crawler.WithProgress(progress),
	)

	summary, runErr := coordinator.Run(ctx, cfg.MaxRequests)
	if bar != nil {
		bar.Close(cmd.ErrOrStderr())
	}
	if summary == nil {
		return runErr
	}

	if summary.NoWork() {
		fmt.Fprintln(out, "No pending categories found.")
	}
	if _, err := report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose)).Write(summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if cfg.ReportFile != "" {
		if err := writeReportFile(cfg.ReportFile, summary); err != nil {
			return errors.Join(runErr, err)
		}
		fmt.Fprintf(out, "Report saved to: %s\n", cfg.ReportFile)
	}

	if !cfg.NoExport {
		// A cancelled run still exports what it stored.
		if err := exportQuotes(context.WithoutCancel(ctx), out, a, db); err != nil {
			return errors.Join(runErr, err)
		}
	}

	return runErr
}

// applyCrawlFlags copies explicitly set flags over config file values.
func applyCrawlFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("max-requests") {
		if cfg.MaxRequests, err = flags.GetInt("max-requests"); err != nil {
			return err
		}
		if cfg.MaxRequests < 0 {
			return config.ErrInvalidMaxRequests
		}
	}
	if flags.Changed("workers") {
		if cfg.Workers, err = flags.GetInt("workers"); err != nil {
			return err
		}
		if cfg.Workers < 1 {
			return config.ErrInvalidWorkers
		}
	}
	if flags.Changed("pending-cap") {
		if cfg.PendingCap, err = flags.GetInt("pending-cap"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("rate") {
		if cfg.RequestRate, err = flags.GetFloat64("rate"); err != nil {
			return err
		}
	}
	if flags.Changed("export-dir") {
		if cfg.ExportDir, err = flags.GetString("export-dir"); err != nil {
			return err
		}
	}

	if cfg.Progress, err = flags.GetBool("progress"); err != nil {
		return err
	}
	if cfg.NoExport, err = flags.GetBool("no-export"); err != nil {
		return err
	}
	if cfg.ReportFile, err = flags.GetString("report"); err != nil {
		return err
	}

	return nil
}

// resolveInteractive asks for the settings that are still unset.
func resolveInteractive(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.Resolved() {
		return nil
	}

	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	var err error

	if cfg.MaxRequests == config.Unset {
		cfg.MaxRequests, err = p.askInt("Enter the maximum number of requests to send:", 0)
		if err != nil {
			return err
		}
	}
	if cfg.Workers == config.Unset {
		cfg.Workers, err = p.askInt("Enter the number of max workers (threads):", 1)
		if err != nil {
			return err
		}
	}

	return nil
}

// writeReportFile writes the run report in the format matching the extension.
func writeReportFile(path string, summary *model.RunSummary) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close report file: %w", closeErr)
		}
	}()

	if _, err := newReportWriter(path, f).Write(summary); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func newReportWriter(path string, w io.Writer) report.Writer {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return report.NewJSONWriter(w, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	}
	return report.NewMarkdownWriter(w)
}
