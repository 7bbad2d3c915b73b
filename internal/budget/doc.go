// Package budget provides the request budget shared by every worker of a
// crawl run.
//
// A Budget is a counter with a fixed ceiling. Workers call TryAcquire before
// every fetch; a grant is paired with exactly one fetch attempt and a denial
// means the run has spent its budget. The check and the increment happen
// under one lock, so the ceiling is never exceeded regardless of how many
// goroutines race for the last request.
//
// The first denial fires a one-shot latch so that the "limit reached" notice
// is emitted once per run even when many workers hit the ceiling together.
//
// # Usage
//
//	b := budget.New(1000, budget.WithOnExhausted(func() {
//	    fmt.Println("Request limit reached. Stopping further requests.")
//	}))
//	if seq, ok := b.TryAcquire(); ok {
//	    // send request number seq
//	}
package budget
