package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// NewSeedCmd creates the seed command.
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed [category-url...]",
		Short: "Add categories to crawl",
		Long: `Seed adds category listing URLs to the database as pending.

Page N of a category is fetched from {url}/page/N/. URLs already in the
database are left untouched, so seeding twice is harmless.

Without arguments or --file, the categories listed in the config file are
added.

Examples:
  # Add two categories
  quotecrawl seed https://quotes.toscrape.com/tag/love/ https://quotes.toscrape.com/tag/life/

  # Add categories from a file, one URL per line
  quotecrawl seed --file categories.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runSeedCmd,
	}

	cmd.Flags().StringP("file", "f", "",
		"Read category URLs from a file, one per line (# starts a comment)")

	return cmd
}

// runSeedCmd executes the seed command.
func runSeedCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	urls := append([]string(nil), args...)

	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}
	if file != "" {
		fromFile, err := readURLFile(file)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}

	if len(urls) == 0 {
		urls = a.cfg.Categories
	}
	if len(urls) == 0 {
		return fmt.Errorf("no category URLs given: pass them as arguments, with --file, or in the config file")
	}

	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	added, err := db.AddCategories(cmd.Context(), urls)
	if err != nil {
		return fmt.Errorf("failed to add categories: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %d new categories (%d given)\n", added, len(urls))
	return nil
}

// readURLFile reads one URL per line, skipping blank lines and comments.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open category file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category file: %w", err)
	}

	return urls, nil
}
