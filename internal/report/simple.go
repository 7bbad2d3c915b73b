package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/quotecrawl/internal/model"
)

// SimpleWriter prints the run summary as plain text for the terminal.
type SimpleWriter struct {
	baseWriter

	// verbose adds the run ID, start time and category breakdown.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the detailed summary.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements Writer.
func (w *SimpleWriter) Write(s *model.RunSummary) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Total Requests Sent: %d\n", s.RequestsSent)
	fmt.Fprintf(&sb, "Total Execution Time: %.2f sec\n", s.ElapsedSeconds())

	if w.verbose {
		sb.WriteString(strings.Repeat("-", 50))
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "Run ID:         %s\n", s.RunID)
		fmt.Fprintf(&sb, "Started:        %s\n", s.StartedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Fprintf(&sb, "Request Limit:  %d\n", s.RequestLimit)
		fmt.Fprintf(&sb, "Categories:     %d\n", s.Categories)
		fmt.Fprintf(&sb, "  completed:    %d\n", s.Completed)
		fmt.Fprintf(&sb, "  paused:       %d\n", s.Paused)
		fmt.Fprintf(&sb, "  failed:       %d\n", s.Failed)
		fmt.Fprintf(&sb, "Quotes Stored:  %d\n", s.QuotesStored)
		fmt.Fprintf(&sb, "Status:         %s\n", statusText(s))
	}

	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n")

	return io.WriteString(w.output, sb.String())
}
