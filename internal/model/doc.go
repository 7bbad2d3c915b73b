// Package model defines the core data structures used throughout quotecrawl.
//
// This package contains the following main types:
//   - Category: A paginated listing whose pages are crawled, with its completion state
//   - Quote: A single record extracted from one listing page
//   - RunSummary: The aggregate result of one crawl run
//
// The models are shared by the crawler, database and report packages, so they
// live in their own package to avoid import cycles.
package model
