// Package report renders crawl results.
//
// Two kinds of output live here:
//   - Run summaries (Writer): SimpleWriter for the terminal, MarkdownWriter
//     and JSONWriter for report files
//   - Quote exports (Exporter): every stored quote written to
//     quotes_data.csv and quotes_data.xlsx
package report
