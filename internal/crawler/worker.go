package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nao1215/quotecrawl/internal/budget"
	"github.com/nao1215/quotecrawl/internal/model"
)

// ErrInvalidCategory is returned for a category without a page URL.
var ErrInvalidCategory = errors.New("category has no page URL")

// Store is the persistence the crawler needs.
// *database.QuoteDB satisfies it.
type Store interface {
	// FindPending returns up to limit pending categories. limit <= 0 means all.
	FindPending(ctx context.Context, limit int) ([]model.Category, error)

	// InsertMany persists quotes best effort and returns how many were stored.
	InsertMany(ctx context.Context, quotes []model.Quote) (int, error)

	// MarkDone moves a category from pending to done.
	MarkDone(ctx context.Context, id int64) error
}

// Progress receives request notifications while a run is in flight.
// Implementations must be safe for concurrent use.
type Progress interface {
	// RequestSent is called after the budget grants request seq for url
	// and before the fetch starts.
	RequestSent(seq int, url string)

	// LimitReached is called once per run, the first time the budget
	// refuses a request.
	LimitReached()
}

type nopProgress struct{}

func (nopProgress) RequestSent(int, string) {}
func (nopProgress) LimitReached()           {}

// OutcomeStatus is how a worker left its category.
type OutcomeStatus string

const (
	// OutcomeDone means pagination ended naturally and the category is done.
	OutcomeDone OutcomeStatus = "done"

	// OutcomePaused means the worker stopped early; the category stays pending.
	OutcomePaused OutcomeStatus = "paused"

	// OutcomeFailed means the worker returned an error.
	OutcomeFailed OutcomeStatus = "failed"
)

// Reasons recorded for a paused or failed outcome.
const (
	ReasonBudget      = "request budget exhausted"
	ReasonCancelled   = "cancelled"
	ReasonFetchFailed = "fetch failed"
	ReasonParseFailed = "page could not be parsed"
	ReasonMarkFailed  = "could not mark category done"
	ReasonInvalid     = "invalid category"
	ReasonPanic       = "worker panic"
)

// Outcome summarizes one worker run over one category.
type Outcome struct {
	Status OutcomeStatus

	// Pages is the number of pages fetched successfully.
	Pages int

	// Quotes is the number of quotes the store accepted.
	Quotes int

	// Skipped is the number of malformed quote blocks ignored.
	Skipped int

	// Reason explains a paused or failed outcome.
	Reason string
}

// Worker paginates a single category.
// One Worker may process many categories concurrently; all of them share
// the same budget.
type Worker struct {
	budget    *budget.Budget
	fetcher   Fetcher
	extractor Extractor
	store     Store
	progress  Progress
	logger    *slog.Logger
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithWorkerLogger sets the logger.
func WithWorkerLogger(logger *slog.Logger) WorkerOption {
	return func(w *Worker) {
		w.logger = logger
	}
}

// WithWorkerProgress sets the progress receiver.
func WithWorkerProgress(p Progress) WorkerOption {
	return func(w *Worker) {
		w.progress = p
	}
}

// NewWorker creates a Worker drawing requests from b.
func NewWorker(b *budget.Budget, fetcher Fetcher, extractor Extractor, store Store, opts ...WorkerOption) *Worker {
	w := &Worker{
		budget:    b,
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = slog.Default()
	}
	if w.progress == nil {
		w.progress = nopProgress{}
	}

	return w
}

// Process walks the pages of category starting at page 1.
//
// A nil error with OutcomePaused means the category was left pending on
// purpose: the budget ran out, ctx was cancelled, or a page could not be
// fetched. A non-nil error always comes with OutcomeFailed.
func (w *Worker) Process(ctx context.Context, category model.Category) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			out.Status = OutcomeFailed
			out.Reason = ReasonPanic
			err = fmt.Errorf("category %d: %s: %v", category.ID, ReasonPanic, r)
		}
	}()

	if strings.TrimSpace(category.PageURL) == "" {
		return Outcome{Status: OutcomeFailed, Reason: ReasonInvalid},
			fmt.Errorf("category %d: %w", category.ID, ErrInvalidCategory)
	}

	logger := w.logger.With("category_id", category.ID, "category", category.PageURL)

	for page := 1; ; page++ {
		if ctx.Err() != nil {
			return w.pause(out, ReasonCancelled), nil
		}

		seq, ok := w.budget.TryAcquire()
		if !ok {
			logger.Debug("request budget exhausted", "page", page)
			return w.pause(out, ReasonBudget), nil
		}

		pageURL := category.PageURLFor(page)
		w.progress.RequestSent(seq, pageURL)

		resp, err := w.fetcher.Get(ctx, pageURL)
		if err == nil && resp.StatusCode != http.StatusOK {
			err = &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
		}
		if err != nil {
			if ctx.Err() != nil {
				return w.pause(out, ReasonCancelled), nil
			}
			logger.Warn("fetch failed, category stays pending", "url", pageURL, "error", err)
			return w.pause(out, ReasonFetchFailed), nil
		}
		out.Pages++

		extraction, err := w.extractor.Extract(pageURL, resp.Body)
		if err != nil {
			out.Status = OutcomeFailed
			out.Reason = ReasonParseFailed
			return out, fmt.Errorf("category %d: %w", category.ID, err)
		}
		if extraction.Skipped > 0 {
			out.Skipped += extraction.Skipped
			logger.Debug("skipped malformed quotes", "url", pageURL, "count", extraction.Skipped)
		}

		out.Quotes += w.persist(ctx, logger, category.ID, pageURL, extraction.Quotes)

		if !extraction.HasNext {
			if err := w.store.MarkDone(ctx, category.ID); err != nil {
				out.Status = OutcomeFailed
				out.Reason = ReasonMarkFailed
				return out, fmt.Errorf("category %d: %w", category.ID, err)
			}
			out.Status = OutcomeDone
			logger.Info("category completed", "pages", out.Pages, "quotes", out.Quotes)
			return out, nil
		}
	}
}

func (w *Worker) pause(out Outcome, reason string) Outcome {
	out.Status = OutcomePaused
	out.Reason = reason
	return out
}

// persist stores the quotes of one page and returns how many were accepted.
// Failures are logged; pagination carries on regardless.
func (w *Worker) persist(ctx context.Context, logger *slog.Logger, categoryID int64, pageURL string, quotes []model.Quote) int {
	if len(quotes) == 0 {
		return 0
	}
	for i := range quotes {
		quotes[i].CategoryID = categoryID
		if quotes[i].SourceURL == "" {
			quotes[i].SourceURL = pageURL
		}
	}

	n, err := w.store.InsertMany(ctx, quotes)
	if err != nil {
		logger.Warn("some quotes were not stored", "stored", n, "total", len(quotes), "error", err)
	}
	return n
}
