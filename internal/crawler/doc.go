// Package crawler paginates quote categories under a shared request budget.
//
// # Components
//
//   - Fetcher: retrieves one page over HTTP (HTTPFetcher)
//   - Extractor: turns a listing page into quotes and a next-page marker (QuoteExtractor)
//   - Worker: walks the pages of one category until it runs out of pages,
//     budget, or luck
//   - Coordinator: loads pending categories and runs one worker per category
//     on a bounded pool
//
// # Budget
//
// Every fetch is preceded by a successful budget.Budget.TryAcquire. A worker
// that is refused stops before fetching and leaves its category pending, so the
// next run picks it up again. Only a category whose last page has no "next"
// link is marked done.
//
// # Usage
//
//	c := crawler.NewCoordinator(db, crawler.NewHTTPFetcher(nil), crawler.NewQuoteExtractor(),
//		crawler.WithConcurrency(4),
//	)
//	summary, err := c.Run(ctx, 100)
package crawler
