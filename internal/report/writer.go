package report

import (
	"io"

	"github.com/nao1215/quotecrawl/internal/model"
)

// Writer renders a run summary.
type Writer interface {
	// Write outputs the summary and returns the number of bytes written.
	Write(summary *model.RunSummary) (int, error)
}

// MultiWriter writes the same summary to several Writers, for example the
// terminal and a report file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to every Writer in order and stops on the first error.
func (m *MultiWriter) Write(summary *model.RunSummary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// statusText describes how a run ended.
func statusText(s *model.RunSummary) string {
	switch {
	case s.NoWork():
		return "No pending categories"
	case s.Failed > 0:
		return "Finished with worker failures"
	case s.Paused > 0 && s.BudgetExhausted():
		return "Request limit reached"
	case s.Paused > 0:
		return "Stopped early"
	default:
		return "Complete"
	}
}
