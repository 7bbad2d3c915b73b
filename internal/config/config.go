package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "quotecrawl"

	// Unset marks a numeric setting that must be asked for interactively.
	Unset = -1

	// DefaultPendingCap bounds how many pending categories one run loads.
	DefaultPendingCap = 900

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

	// DefaultMaxBodySize limits how much of a page is read.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultExportDir is where quotes_data.csv and quotes_data.xlsx are written.
	DefaultExportDir = "."
)

// Config holds all runtime options.
// It is built from defaults, the config file and CLI flags, and passed
// down explicitly rather than kept in global state.
type Config struct {
	// MaxRequests is the request budget for a crawl run.
	// Unset means the user is prompted for it.
	MaxRequests int

	// Workers is the number of categories crawled concurrently.
	// Unset means the user is prompted for it.
	Workers int

	// PendingCap is the maximum number of pending categories loaded per run.
	PendingCap int

	// Timeout bounds each page fetch, body included.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// MaxBodySize caps the bytes read from one response. 0 means the default.
	MaxBodySize int64

	// RequestRate paces requests across all workers, in requests per second.
	// 0 disables pacing.
	RequestRate float64

	// DBDir is the directory holding the SQLite database.
	// Defaults to the XDG data directory (~/.local/share/quotecrawl on Linux).
	DBDir string

	// ExportDir is the directory export files are written to.
	ExportDir string

	// LogFile, when set, receives a copy of the log with rotation.
	LogFile string

	// Verbose enables debug logging.
	Verbose bool

	// Progress shows a progress bar instead of one line per request.
	Progress bool

	// NoExport skips the export that normally follows a crawl.
	NoExport bool

	// ReportFile, when set, receives a Markdown report of the run.
	ReportFile string

	// ConfigFilePath is the path of the config file.
	// If empty, .quotecrawl is searched for in the current and home directories.
	ConfigFilePath string

	// Categories are category URLs listed in the config file.
	// The seed command adds them to the database.
	Categories []string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		MaxRequests: Unset,
		Workers:     Unset,
		PendingCap:  DefaultPendingCap,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		DBDir:       XDGDataDir(),
		ExportDir:   DefaultExportDir,
	}
}

// XDGDataDir returns the XDG data directory for quotecrawl.
// On Linux: ~/.local/share/quotecrawl
// On macOS: ~/Library/Application Support/quotecrawl
// On Windows: %LOCALAPPDATA%\quotecrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for quotecrawl.
// On Linux: ~/.config/quotecrawl
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// MaxRequests and Workers may still be Unset; callers resolve them before
// a run and call Validate again.
func (c *Config) Validate() error {
	if c.MaxRequests < Unset {
		return ErrInvalidMaxRequests
	}

	if c.Workers == 0 || c.Workers < Unset {
		return ErrInvalidWorkers
	}

	if c.PendingCap <= 0 {
		return ErrInvalidPendingCap
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.RequestRate < 0 {
		return ErrInvalidRequestRate
	}

	if c.DBDir == "" {
		return ErrNoDBDir
	}

	return nil
}

// Resolved reports whether every interactive setting has a value.
func (c *Config) Resolved() bool {
	return c.MaxRequests != Unset && c.Workers != Unset
}
