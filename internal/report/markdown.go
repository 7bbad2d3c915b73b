package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/quotecrawl/internal/model"
)

// MarkdownWriter outputs the run summary as GitHub flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(s *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Quote Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + s.RunID + "`"},
			{"Started", s.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Execution Time", strconv.FormatFloat(s.ElapsedSeconds(), 'f', 2, 64) + " sec"},
			{"Requests Sent", strconv.Itoa(s.RequestsSent) + " / " + strconv.Itoa(s.RequestLimit)},
			{"Quotes Stored", strconv.Itoa(s.QuotesStored)},
			{"Status", statusText(s)},
		},
	})
	md.PlainText("")

	w.writeCategories(md, s)
	w.writeAlert(md, s)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by quotecrawl*")

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeCategories(md *markdown.Markdown, s *model.RunSummary) {
	md.H2("Categories")
	md.PlainText("")

	if s.NoWork() {
		md.PlainText("No pending categories were found.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"Completed", strconv.Itoa(s.Completed)},
			{"Paused (still pending)", strconv.Itoa(s.Paused)},
			{"Failed", strconv.Itoa(s.Failed)},
			{"**Total**", "**" + strconv.Itoa(s.Categories) + "**"},
		},
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Category Outcomes"),
		piechart.WithShowData(true),
	)
	for _, part := range []struct {
		label string
		n     int
	}{
		{"Completed", s.Completed},
		{"Paused", s.Paused},
		{"Failed", s.Failed},
	} {
		if part.n > 0 {
			chart.LabelAndIntValue(part.label, uint64(part.n)) //nolint:gosec // counts are never negative
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, s *model.RunSummary) {
	switch {
	case s.Failed > 0:
		md.Cautionf("%d category worker(s) failed. Check the log for details.", s.Failed)
	case s.Paused > 0 && s.BudgetExhausted():
		md.Warningf("Request limit reached with %d category(ies) still pending. Run crawl again to continue.", s.Paused)
	case s.Paused > 0:
		md.Importantf("%d category(ies) stopped early and remain pending.", s.Paused)
	case s.NoWork():
		md.Note("Nothing to crawl. Seed categories or reset finished ones.")
	default:
		md.Tip("Every category was crawled to its last page.")
	}
	md.PlainText("")
}
