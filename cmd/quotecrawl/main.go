// Package main provides the entry point for the quotecrawl CLI.
//
// quotecrawl paginates through quote listing categories, stores every quote
// in a local SQLite database, and exports the collection to CSV and XLSX.
// A global request budget caps how many pages one run fetches; categories
// that were not finished stay pending for the next run.
//
// Usage:
//
//	quotecrawl seed https://quotes.toscrape.com/tag/love/
//	quotecrawl crawl --max-requests 50 --workers 4
//	quotecrawl export --dir ./out
//
// See --help for all available options.
package main

// main is the entry point for quotecrawl.
func main() {
	Execute()
}
