// Package database provides SQLite-based storage for quotecrawl.
//
// This package implements QuoteDB, which stores:
//   - Categories to crawl, with their pending/done completion state
//   - Quotes extracted from category pages
//
// The database is a single file opened through modernc.org/sqlite, a CGO-free
// driver. WAL mode is enabled by default and the pool is limited to a single
// connection because SQLite supports one writer at a time; concurrent workers
// queue on database/sql rather than on SQLITE_BUSY.
package database
