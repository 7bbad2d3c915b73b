package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/quotecrawl/internal/model"
)

// Export file names and layout.
const (
	CSVFileName  = "quotes_data.csv"
	XLSXFileName = "quotes_data.xlsx"

	// SheetName is the worksheet holding the quotes.
	SheetName = "Sheet1"
)

// ExportHeader is the column order of both export files.
var ExportHeader = []string{"quote", "author", "tags", "category_link"}

// QuoteSource provides every stored quote.
// *database.QuoteDB satisfies it.
type QuoteSource interface {
	Quotes(ctx context.Context) ([]model.Quote, error)
}

// ExportResult describes what Export wrote.
type ExportResult struct {
	// Skipped is true when there was nothing to export and no file was written.
	Skipped bool

	// Rows is the number of data rows in each file.
	Rows int

	CSVPath  string
	XLSXPath string
}

// Exporter writes all stored quotes to CSV and XLSX files.
type Exporter struct {
	source QuoteSource
	logger *slog.Logger
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithExportLogger sets the logger.
func WithExportLogger(logger *slog.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// NewExporter creates an Exporter reading from source.
func NewExporter(source QuoteSource, opts ...ExporterOption) *Exporter {
	e := &Exporter{source: source}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Export writes quotes_data.csv and quotes_data.xlsx into dir, replacing
// existing files. With no stored quotes it writes nothing, logs a warning and
// returns a result with Skipped set.
func (e *Exporter) Export(ctx context.Context, dir string) (*ExportResult, error) {
	quotes, err := e.source.Quotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read quotes: %w", err)
	}

	if len(quotes) == 0 {
		e.logger.Warn("no data found to export")
		return &ExportResult{Skipped: true}, nil
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	rows := exportRows(quotes)
	result := &ExportResult{
		Rows:     len(rows),
		CSVPath:  filepath.Join(dir, CSVFileName),
		XLSXPath: filepath.Join(dir, XLSXFileName),
	}

	if err := writeCSV(result.CSVPath, rows); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", CSVFileName, err)
	}
	if err := writeXLSX(result.XLSXPath, rows); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", XLSXFileName, err)
	}

	e.logger.Info("exported quotes", "rows", result.Rows, "csv", result.CSVPath, "xlsx", result.XLSXPath)
	return result, nil
}

func exportRows(quotes []model.Quote) [][]string {
	rows := make([][]string, len(quotes))
	for i, q := range quotes {
		rows[i] = []string{q.Text, q.Author, q.JoinedTags(), q.SourceURL}
	}
	return rows
}

func writeCSV(path string, rows [][]string) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is built from the configured export directory
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	w := csv.NewWriter(f)
	if err := w.Write(ExportHeader); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func writeXLSX(path string, rows [][]string) (err error) {
	f := excelize.NewFile()
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}

	if err := setRow(sw, 1, ExportHeader); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(sw, i+2, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func setRow(sw *excelize.StreamWriter, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return sw.SetRow(cell, cells)
}
