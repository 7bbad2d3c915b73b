package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/nao1215/quotecrawl/internal/model"
)

// listingPage renders a page of the quotes listing with the given number of
// quotes. Quote text embeds the page number so results can be traced.
func listingPage(page, quotes int, next bool) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><div class="col-md-8">`)
	for i := 1; i <= quotes; i++ {
		fmt.Fprintf(&sb, `<div class="quote">
			<span class="text">“Quote %d of page %d”</span>
			<span>by <small class="author">Author %d</small></span>
			<div class="tags">Tags: <a class="tag" href="/tag/one/">one</a><a class="tag" href="/tag/two/">two</a></div>
		</div>`, i, page, i)
	}
	sb.WriteString(`<nav><ul class="pager">`)
	if next {
		fmt.Fprintf(&sb, `<li class="next"><a href="/page/%d/">Next</a></li>`, page+1)
	}
	sb.WriteString(`</ul></nav></div></body></html>`)
	return sb.String()
}

// quotesServer serves listing pages for any category path of the form
// /{category}/page/{N}/. Each category has pages pages of perPage quotes.
type quotesServer struct {
	*httptest.Server
	pages    int
	perPage  int
	requests atomic.Int64
	status   atomic.Int64
}

func newQuotesServer(t *testing.T, pages, perPage int) *quotesServer {
	t.Helper()

	qs := &quotesServer{pages: pages, perPage: perPage}
	qs.Server = httptest.NewServer(http.HandlerFunc(qs.handle))
	t.Cleanup(qs.Close)
	return qs
}

func (qs *quotesServer) handle(w http.ResponseWriter, r *http.Request) {
	qs.requests.Add(1)

	if status := int(qs.status.Load()); status != 0 {
		w.WriteHeader(status)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] != "page" {
		http.NotFound(w, r)
		return
	}
	page, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || page < 1 || page > qs.pages {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, listingPage(page, qs.perPage, page < qs.pages))
}

// memStore is an in-memory Store.
type memStore struct {
	mu         sync.Mutex
	categories []model.Category
	quotes     []model.Quote
	markCalls  map[int64]int
	findErr    error
	insertErr  error
	markErr    error
}

func newMemStore(urls ...string) *memStore {
	s := &memStore{markCalls: make(map[int64]int)}
	for i, u := range urls {
		s.categories = append(s.categories, model.Category{
			ID:      int64(i + 1),
			PageURL: u,
			Status:  model.StatusPending,
		})
	}
	return s
}

func (s *memStore) FindPending(_ context.Context, limit int) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}
	var pending []model.Category
	for _, c := range s.categories {
		if c.Status != model.StatusPending {
			continue
		}
		pending = append(pending, c)
		if limit > 0 && len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *memStore) InsertMany(_ context.Context, quotes []model.Quote) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertErr != nil {
		return 0, s.insertErr
	}
	s.quotes = append(s.quotes, quotes...)
	return len(quotes), nil
}

func (s *memStore) MarkDone(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.markErr != nil {
		return s.markErr
	}
	s.markCalls[id]++
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].Status = model.StatusDone
			return nil
		}
	}
	return fmt.Errorf("category %d not found", id)
}

func (s *memStore) status(id int64) model.CategoryStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.ID == id {
			return c.Status
		}
	}
	return ""
}

func (s *memStore) quoteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.quotes)
}

// recordingProgress remembers every notification.
type recordingProgress struct {
	mu      sync.Mutex
	seqs    []int
	urls    []string
	reached atomic.Int64
}

func (p *recordingProgress) RequestSent(seq int, url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seqs = append(p.seqs, seq)
	p.urls = append(p.urls, url)
}

func (p *recordingProgress) LimitReached() {
	p.reached.Add(1)
}

// extractorFunc adapts a function to Extractor.
type extractorFunc func(pageURL string, body []byte) (*Extraction, error)

func (f extractorFunc) Extract(pageURL string, body []byte) (*Extraction, error) {
	return f(pageURL, body)
}
