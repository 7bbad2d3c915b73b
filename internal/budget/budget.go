package budget

import "sync"

// Budget is a thread-safe request counter with a fixed ceiling.
// The zero value is not usable; create one with New.
type Budget struct {
	// mu guards sent and exhausted.
	mu sync.Mutex

	// sent is the number of granted acquisitions. Never exceeds limit.
	sent int

	// limit is the ceiling fixed at construction.
	limit int

	// exhausted is the one-shot latch set by the first denied caller.
	exhausted bool

	// onExhausted runs once, outside the lock, for the first denied caller.
	onExhausted func()
}

// Option configures a Budget.
type Option func(*Budget)

// WithOnExhausted registers a callback fired exactly once, by the first
// caller whose acquisition is denied.
func WithOnExhausted(fn func()) Option {
	return func(b *Budget) {
		b.onExhausted = fn
	}
}

// New creates a Budget allowing limit acquisitions. A negative limit is
// treated as zero.
func New(limit int, opts ...Option) *Budget {
	if limit < 0 {
		limit = 0
	}

	b := &Budget{limit: limit}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// TryAcquire reserves one request from the budget.
// On success it returns the 1-based sequence number of the request and true.
// When the budget is spent it returns 0 and false without changing any
// state other than the exhaustion latch.
func (b *Budget) TryAcquire() (int, bool) {
	b.mu.Lock()
	if b.sent < b.limit {
		b.sent++
		seq := b.sent
		b.mu.Unlock()
		return seq, true
	}

	first := !b.exhausted
	b.exhausted = true
	b.mu.Unlock()

	if first && b.onExhausted != nil {
		b.onExhausted()
	}
	return 0, false
}

// Sent returns the number of granted acquisitions.
func (b *Budget) Sent() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sent
}

// Limit returns the ceiling.
func (b *Budget) Limit() int {
	return b.limit
}

// Remaining returns how many acquisitions are still available.
func (b *Budget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.limit - b.sent
}

// Exhausted reports whether any caller has been denied.
func (b *Budget) Exhausted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.exhausted
}
