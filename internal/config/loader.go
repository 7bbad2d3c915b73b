package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".quotecrawl"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the structure of the .quotecrawl configuration file.
// Pointer fields distinguish "not set" from a zero value.
type File struct {
	MaxRequests *int           `yaml:"max_requests,omitempty"`
	Workers     *int           `yaml:"workers,omitempty"`
	PendingCap  *int           `yaml:"pending_cap,omitempty"`
	Timeout     *time.Duration `yaml:"timeout,omitempty"`
	UserAgent   string         `yaml:"user_agent,omitempty"`
	MaxBodySize *int64         `yaml:"max_body_size,omitempty"`
	RequestRate *float64       `yaml:"request_rate,omitempty"`
	DBDir       string         `yaml:"db_dir,omitempty"`
	ExportDir   string         `yaml:"export_dir,omitempty"`
	LogFile     string         `yaml:"log_file,omitempty"`

	// Categories are listing URLs to seed, e.g. https://quotes.toscrape.com/tag/love/.
	Categories []string `yaml:"categories,omitempty"`
}

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// ApplyTo copies every value set in the file onto cfg.
func (cf *File) ApplyTo(cfg *Config) {
	if cf.MaxRequests != nil {
		cfg.MaxRequests = *cf.MaxRequests
	}
	if cf.Workers != nil {
		cfg.Workers = *cf.Workers
	}
	if cf.PendingCap != nil {
		cfg.PendingCap = *cf.PendingCap
	}
	if cf.Timeout != nil {
		cfg.Timeout = *cf.Timeout
	}
	if cf.UserAgent != "" {
		cfg.UserAgent = cf.UserAgent
	}
	if cf.MaxBodySize != nil {
		cfg.MaxBodySize = *cf.MaxBodySize
	}
	if cf.RequestRate != nil {
		cfg.RequestRate = *cf.RequestRate
	}
	if cf.DBDir != "" {
		cfg.DBDir = cf.DBDir
	}
	if cf.ExportDir != "" {
		cfg.ExportDir = cf.ExportDir
	}
	if cf.LogFile != "" {
		cfg.LogFile = cf.LogFile
	}
	if len(cf.Categories) > 0 {
		cfg.Categories = append([]string(nil), cf.Categories...)
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .quotecrawl in the current directory
// 3. Look for .quotecrawl in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
