package crawler

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"github.com/nao1215/quotecrawl/internal/model"
)

// Extractor turns a fetched listing page into quotes.
type Extractor interface {
	// Extract parses body, which was fetched from pageURL.
	// An error means the document as a whole could not be parsed.
	Extract(pageURL string, body []byte) (*Extraction, error)
}

// Extraction is the result of parsing one listing page.
type Extraction struct {
	// Quotes are the well-formed quotes in page order. SourceURL is set to
	// the page URL; CategoryID is left for the caller.
	Quotes []model.Quote

	// Skipped counts quote blocks missing text or author.
	Skipped int

	// HasNext reports whether the page links to a following page.
	HasNext bool

	// NextURL is the absolute URL of the following page when HasNext is true.
	NextURL string
}

// Selectors for the quotes listing markup.
var (
	quoteBlockExpr = xpath.MustCompile(`//div[@class="quote"]`)
	quoteTextExpr  = xpath.MustCompile(`span[@class="text"]`)
	authorExpr     = xpath.MustCompile(`span/small[@class="author"]`)
	tagExpr        = xpath.MustCompile(`div[@class="tags"]/a[@class="tag"]`)
	nextLinkExpr   = xpath.MustCompile(`//li[@class="next"]/a[@href]`)
)

// QuoteExtractor extracts quotes using XPath selectors.
// It holds no state and is safe for concurrent use.
type QuoteExtractor struct{}

// NewQuoteExtractor creates a QuoteExtractor.
func NewQuoteExtractor() *QuoteExtractor {
	return &QuoteExtractor{}
}

// Extract implements Extractor.
func (e *QuoteExtractor) Extract(pageURL string, body []byte) (*Extraction, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}

	result := &Extraction{}
	for _, block := range htmlquery.QuerySelectorAll(doc, quoteBlockExpr) {
		q, ok := extractQuote(block)
		if !ok {
			result.Skipped++
			continue
		}
		q.SourceURL = pageURL
		result.Quotes = append(result.Quotes, q)
	}

	if next := htmlquery.QuerySelector(doc, nextLinkExpr); next != nil {
		result.HasNext = true
		result.NextURL = resolveLink(pageURL, htmlquery.SelectAttr(next, "href"))
	}

	return result, nil
}

// extractQuote reads one quote block. ok is false when text or author is missing.
func extractQuote(block *html.Node) (model.Quote, bool) {
	text := selectText(block, quoteTextExpr)
	author := selectText(block, authorExpr)
	if text == "" || author == "" {
		return model.Quote{}, false
	}

	var tags []string
	for _, n := range htmlquery.QuerySelectorAll(block, tagExpr) {
		if tag := strings.TrimSpace(htmlquery.InnerText(n)); tag != "" {
			tags = append(tags, tag)
		}
	}

	return model.Quote{Text: text, Author: author, Tags: tags}, true
}

func selectText(n *html.Node, expr *xpath.Expr) string {
	found := htmlquery.QuerySelector(n, expr)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(htmlquery.InnerText(found))
}

// resolveLink makes href absolute relative to base. Unparseable input is
// returned unchanged.
func resolveLink(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
