package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/quotecrawl/internal/model"
)

func sampleSummary() *model.RunSummary {
	return &model.RunSummary{
		RunID:        "5b7c0a52-2f43-4d0e-a3f6-0c3b1f1f7e21",
		StartedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Elapsed:      2345 * time.Millisecond,
		RequestLimit: 10,
		RequestsSent: 10,
		Categories:   3,
		Completed:    1,
		Paused:       2,
		QuotesStored: 42,
	}
}

// TestSimpleWriter tests the terminal summary.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("prints requests and execution time", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(sampleSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"Total Requests Sent: 10", "Total Execution Time: 2.35 sec"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output:\n%s", want, output)
			}
		}
		if strings.Contains(output, "Run ID") {
			t.Errorf("expected no details without verbose:\n%s", output)
		}
	})

	t.Run("verbose adds breakdown", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(sampleSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"Run ID:", "Quotes Stored:  42", "Request limit reached"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output:\n%s", want, output)
			}
		}
	})
}

// TestMarkdownWriter tests the Markdown run report.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*model.RunSummary)
		want   []string
	}{
		{
			name:   "budget exhausted warning",
			modify: func(*model.RunSummary) {},
			want:   []string{"# Quote Crawl Report", "Requests Sent", "10 / 10", "[!WARNING]", "```mermaid"},
		},
		{
			name:   "failures are a caution",
			modify: func(s *model.RunSummary) { s.Failed = 1; s.Paused = 1 },
			want:   []string{"[!CAUTION]", "1 category worker(s) failed"},
		},
		{
			name: "all done is a tip",
			modify: func(s *model.RunSummary) {
				s.Completed, s.Paused, s.RequestsSent = 3, 0, 7
			},
			want: []string{"[!TIP]", "Complete"},
		},
		{
			name:   "no work",
			modify: func(s *model.RunSummary) { *s = model.RunSummary{RequestLimit: 5} },
			want:   []string{"No pending categories were found.", "[!NOTE]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := sampleSummary()
			tt.modify(s)

			var buf bytes.Buffer
			n, err := NewMarkdownWriter(&buf).Write(s)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n == 0 {
				t.Error("expected non-zero length")
			}
			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

// TestJSONWriter tests JSON output.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewJSONWriter(&buf, WithPrettyPrint(), WithVersion("v1.2.3"))
	if _, err := w.Write(sampleSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc JSONReport
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc.Version != "v1.2.3" {
		t.Errorf("unexpected version %q", doc.Version)
	}
	if doc.Summary == nil || doc.Summary.QuotesStored != 42 {
		t.Errorf("unexpected summary %+v", doc.Summary)
	}
	if doc.ElapsedSeconds != 2.35 {
		t.Errorf("unexpected elapsed %v", doc.ElapsedSeconds)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented output")
	}
}

type failingWriter struct{}

func (failingWriter) Write(*model.RunSummary) (int, error) {
	return 0, errors.New("disk full")
}

// TestMultiWriter tests fan-out and error propagation.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		n, err := NewMultiWriter(NewSimpleWriter(&a), NewMarkdownWriter(&b)).Write(sampleSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Len() == 0 || b.Len() == 0 || n == 0 {
			t.Errorf("expected both outputs written, got %d and %d", a.Len(), b.Len())
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after bytes.Buffer
		_, err := NewMultiWriter(failingWriter{}, NewSimpleWriter(&after)).Write(sampleSummary())
		if err == nil {
			t.Fatal("expected error")
		}
		if after.Len() != 0 {
			t.Error("writer after the failing one should not run")
		}
	})
}
