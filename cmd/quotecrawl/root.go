package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for quotecrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotecrawl",
		Short: "Resumable, budgeted crawler for paginated quote listings",
		Long: `quotecrawl crawls paginated quote listings ("categories") with a pool of
workers that share one request budget. Quotes are stored in a local SQLite
database as soon as each page is read, and a category is marked done only
when its last page has been reached, so an interrupted or budget-limited
run can simply be started again.

Typical workflow:
  quotecrawl seed https://quotes.toscrape.com/tag/love/ https://quotes.toscrape.com/tag/life/
  quotecrawl crawl --max-requests 100 --workers 4
  quotecrawl status`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("db-dir", "",
		"Directory holding the quote database (default: XDG data directory)")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .quotecrawl in current or home directory)")
	cmd.PersistentFlags().String("log-file", "",
		"Also write logs to this file, rotated by size")

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewResetCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
