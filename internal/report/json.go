package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/quotecrawl/internal/model"
)

// JSONWriter outputs the run summary as JSON for tool integration.
type JSONWriter struct {
	baseWriter

	// version is recorded in every document.
	version string

	// indent enables pretty-printed output.
	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion records the program version in the output.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport is the document JSONWriter produces.
type JSONReport struct {
	Version        string            `json:"version,omitempty"`
	Status         string            `json:"status"`
	ElapsedSeconds float64           `json:"elapsed_seconds"`
	Summary        *model.RunSummary `json:"summary"`
}

// Write implements Writer.
func (w *JSONWriter) Write(s *model.RunSummary) (int, error) {
	doc := JSONReport{
		Version:        w.version,
		Status:         statusText(s),
		ElapsedSeconds: s.ElapsedSeconds(),
		Summary:        s,
	}

	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(doc, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return 0, err
	}

	return w.output.Write(append(data, '\n'))
}
