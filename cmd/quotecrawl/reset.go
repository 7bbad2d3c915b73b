package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResetCmd creates the reset command.
func NewResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Mark every category pending again",
		Long: `Reset marks all categories pending so the next crawl walks them from
page 1 again. Stored quotes are kept.`,
		Args: cobra.NoArgs,
		RunE: runResetCmd,
	}
}

// runResetCmd executes the reset command.
func runResetCmd(cmd *cobra.Command, _ []string) error {
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

	n, err := db.ResetCategories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to reset categories: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Reset %d categories to pending\n", n)
	return nil
}
