package log

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation settings for the log file sink.
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 3
	fileMaxAgeDays = 28
)

// Options configures NewLogger.
type Options struct {
	// Writer receives the console log. Defaults to os.Stderr.
	Writer io.Writer

	// Verbose lowers the level from Warn to Debug.
	Verbose bool

	// JSON selects JSON output instead of text.
	JSON bool

	// File, when set, also writes the log to this path with size based rotation.
	// The file always records Info and above, even without Verbose.
	File string
}

// NewLogger creates a sanitizing logger from opts. The returned closer
// flushes and closes the file sink; it is a no-op when File is empty.
func NewLogger(opts Options) (*slog.Logger, io.Closer, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	consoleLevel := slog.LevelWarn
	if opts.Verbose {
		consoleLevel = slog.LevelDebug
	}
	console := newHandler(w, consoleLevel, opts.JSON)

	if opts.File == "" {
		return slog.New(NewSecureHandler(console)), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
		return nil, nil, err
	}
	sink := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
	}
	fileLevel := min(consoleLevel, slog.LevelInfo)
	file := slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: fileLevel})

	return slog.New(NewSecureHandler(fanout{console, file})), sink, nil
}

// NewSecureLogger creates a text logger writing to w.
// Level is Debug when verbose, Warn otherwise.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	logger, _, _ := NewLogger(Options{Writer: w, Verbose: verbose}) //nolint:errcheck // no file sink, cannot fail
	return logger
}

// NewSecureJSONLogger is NewSecureLogger with JSON output.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	logger, _, _ := NewLogger(Options{Writer: w, Verbose: verbose, JSON: true}) //nolint:errcheck // no file sink, cannot fail
	return logger
}

func newHandler(w io.Writer, level slog.Level, json bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
