package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/quotecrawl/internal/budget"
	"github.com/nao1215/quotecrawl/internal/model"
)

// Coordinator defaults.
const (
	// DefaultConcurrency is the number of categories processed at once.
	DefaultConcurrency = 4

	// DefaultPendingCap is the maximum number of pending categories loaded
	// for one run.
	DefaultPendingCap = 900
)

// Coordinator runs one Worker per pending category on a bounded pool.
type Coordinator struct {
	store       Store
	fetcher     Fetcher
	extractor   Extractor
	concurrency int
	pendingCap  int
	logger      *slog.Logger
	progress    Progress
	now         func() time.Time
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithConcurrency sets how many categories are processed at once.
// Values below 1 are ignored.
func WithConcurrency(n int) CoordinatorOption {
	return func(c *Coordinator) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithPendingCap sets how many pending categories one run loads.
// Values below 1 are ignored.
func WithPendingCap(n int) CoordinatorOption {
	return func(c *Coordinator) {
		if n > 0 {
			c.pendingCap = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithProgress sets the receiver of per-request notifications.
func WithProgress(p Progress) CoordinatorOption {
	return func(c *Coordinator) {
		c.progress = p
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		c.now = now
	}
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(store Store, fetcher Fetcher, extractor Extractor, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		store:       store,
		fetcher:     fetcher,
		extractor:   extractor,
		concurrency: DefaultConcurrency,
		pendingCap:  DefaultPendingCap,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.progress == nil {
		c.progress = nopProgress{}
	}

	return c
}

// Run crawls every pending category with at most requestLimit fetches in total.
//
// Workers do not cancel each other: every task runs to its own end and all
// worker errors are joined into the returned error. The summary is returned
// whenever the pending categories could be loaded, including when the error
// is non-nil. No pending categories is not an error; see RunSummary.NoWork.
func (c *Coordinator) Run(ctx context.Context, requestLimit int) (*model.RunSummary, error) {
	summary := &model.RunSummary{
		RunID:        uuid.NewString(),
		StartedAt:    c.now(),
		RequestLimit: max(requestLimit, 0),
	}
	logger := c.logger.With("run_id", summary.RunID)

	categories, err := c.store.FindPending(ctx, c.pendingCap)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending categories: %w", err)
	}
	summary.Categories = len(categories)

	if len(categories) == 0 {
		logger.Warn("no pending categories found")
		summary.Elapsed = c.now().Sub(summary.StartedAt)
		return summary, nil
	}

	logger.Info("starting crawl",
		"categories", len(categories),
		"request_limit", summary.RequestLimit,
		"concurrency", c.concurrency,
	)

	b := budget.New(summary.RequestLimit, budget.WithOnExhausted(func() {
		logger.Info("request limit reached, stopping further requests")
		c.progress.LimitReached()
	}))
	worker := NewWorker(b, c.fetcher, c.extractor, c.store,
		WithWorkerLogger(logger),
		WithWorkerProgress(c.progress),
	)

	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	g.SetLimit(c.concurrency)

	for _, category := range categories {
		g.Go(func() error {
			out, err := worker.Process(ctx, category)

			mu.Lock()
			defer mu.Unlock()

			summary.QuotesStored += out.Quotes
			switch out.Status {
			case OutcomeDone:
				summary.Completed++
			case OutcomePaused:
				summary.Paused++
			default:
				summary.Failed++
			}
			if err != nil {
				logger.Error("worker failed", "category_id", category.ID, "reason", out.Reason, "error", err)
				errs = append(errs, err)
			}
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // tasks always return nil; errors are collected above

	summary.RequestsSent = b.Sent()
	summary.Elapsed = c.now().Sub(summary.StartedAt)

	logger.Info("crawl finished",
		"requests_sent", summary.RequestsSent,
		"completed", summary.Completed,
		"paused", summary.Paused,
		"failed", summary.Failed,
		"quotes", summary.QuotesStored,
		"elapsed", summary.Elapsed,
	)

	return summary, errors.Join(errs...)
}
