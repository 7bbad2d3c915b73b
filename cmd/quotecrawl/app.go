package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/quotecrawl/internal/config"
	"github.com/nao1215/quotecrawl/internal/database"
	applog "github.com/nao1215/quotecrawl/internal/log"
)

// app bundles what every subcommand needs: the merged configuration,
// a logger, and a handle to close the log file.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
}

// newApp builds the configuration from defaults, the config file and the
// global flags, then sets up logging.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closer, err := applog.NewLogger(applog.Options{
		Writer:  cmd.ErrOrStderr(),
		Verbose: cfg.Verbose,
		File:    cfg.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return &app{cfg: cfg, logger: logger, logCloser: closer}, nil
}

// Close flushes the log file.
func (a *app) Close() {
	if err := a.logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
}

// openDB opens the quote database, creating it if needed.
func (a *app) openDB() (*database.QuoteDB, error) {
	db, err := database.Open(a.cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.logger.Debug("database opened", "path", db.Path())
	return db, nil
}

// loadConfig merges the config file and the global flags onto the defaults.
// If the user names a config file explicitly, it must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.ConfigFilePath = stringFlag(cmd, "config")

	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.ApplyTo(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.Verbose = boolFlag(cmd, "verbose")
	if flagChanged(cmd, "db-dir") {
		cfg.DBDir = stringFlag(cmd, "db-dir")
	}
	if flagChanged(cmd, "log-file") {
		cfg.LogFile = stringFlag(cmd, "log-file")
	}

	return cfg, nil
}

// stringFlag returns the value of a local or inherited flag, or "" when the
// command was built without it (as in tests of a single subcommand).
func stringFlag(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func boolFlag(cmd *cobra.Command, name string) bool {
	return stringFlag(cmd, name) == "true"
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, stopping after in-flight requests")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}
