package model

import "time"

// RunSummary is the aggregate result of one crawl run.
// It is derived after every worker has finished and is never persisted.
type RunSummary struct {
	// RunID identifies the run in logs and reports.
	RunID string `json:"run_id"`

	// StartedAt is when the coordinator started loading work.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the wall-clock duration of the whole run.
	Elapsed time.Duration `json:"elapsed"`

	// RequestLimit is the request budget the run was given.
	RequestLimit int `json:"request_limit"`

	// RequestsSent is the number of fetches the budget granted.
	RequestsSent int `json:"requests_sent"`

	// Categories is the number of pending categories loaded for the run.
	Categories int `json:"categories"`

	// Completed is the number of categories marked done during the run.
	Completed int `json:"completed"`

	// Paused is the number of categories left pending by budget exhaustion,
	// cancellation or a failed fetch.
	Paused int `json:"paused"`

	// Failed is the number of categories whose worker returned an error.
	Failed int `json:"failed"`

	// QuotesStored is the number of quotes persisted during the run.
	QuotesStored int `json:"quotes_stored"`
}

// NoWork reports whether the run found nothing to crawl.
func (s *RunSummary) NoWork() bool {
	return s.Categories == 0
}

// BudgetExhausted reports whether every request of the budget was used.
func (s *RunSummary) BudgetExhausted() bool {
	return s.RequestsSent >= s.RequestLimit
}

// ElapsedSeconds returns the elapsed time in seconds rounded to two decimals.
func (s *RunSummary) ElapsedSeconds() float64 {
	return float64(s.Elapsed.Round(10*time.Millisecond)) / float64(time.Second)
}
