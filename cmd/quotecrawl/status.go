package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show crawl progress stored in the database",
		Long: `Status prints how many categories are pending and done, and how many
quotes are stored.`,
		Args: cobra.NoArgs,
		RunE: runStatusCmd,
	}
}

// runStatusCmd executes the status command.
func runStatusCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	pending, done, err := db.CategoryCounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	quotes, err := db.QuoteCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count quotes: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database:   %s\n", db.Path())
	fmt.Fprintf(out, "Categories: %d pending, %d done\n", pending, done)
	fmt.Fprintf(out, "Quotes:     %d\n", quotes)
	return nil
}
