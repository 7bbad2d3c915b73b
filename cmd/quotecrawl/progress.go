package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// linePrinter reports every granted request on its own line.
type linePrinter struct {
	mu  sync.Mutex
	out io.Writer
}

func newLinePrinter(out io.Writer) *linePrinter {
	return &linePrinter{out: out}
}

func (p *linePrinter) RequestSent(seq int, url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "Request #%d: %s\n", seq, url)
}

// LimitReached is called once by the budget latch.
func (p *linePrinter) LimitReached() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, "Request limit reached. Stopping further requests.")
}

// barProgress drives a progress bar sized to the request budget.
type barProgress struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func newBarProgress(out io.Writer, limit int) *barProgress {
	bar := progressbar.NewOptions(limit,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("crawling"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &barProgress{bar: bar}
}

func (p *barProgress) RequestSent(int, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Add(1)
}

func (p *barProgress) LimitReached() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar.Describe("request limit reached")
}

// Close leaves the bar's last state on screen and moves to a new line.
func (p *barProgress) Close(out io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Exit()
	fmt.Fprintln(out)
}
