package model

import (
	"errors"
	"strings"
)

// TagSeparator joins tags in flat exports.
const TagSeparator = " | "

// Errors returned by Quote.Validate.
var (
	// ErrEmptyQuoteText is returned when a quote has no text.
	ErrEmptyQuoteText = errors.New("quote text is empty")

	// ErrEmptyQuoteAuthor is returned when a quote has no author.
	ErrEmptyQuoteAuthor = errors.New("quote author is empty")

	// ErrEmptySourceURL is returned when a quote is not attributed to a page.
	ErrEmptySourceURL = errors.New("quote source URL is empty")
)

// Quote is a single record extracted from a listing page.
// It is created by a worker from one page and never modified afterwards.
type Quote struct {
	// Text is the quotation itself, as it appears on the page.
	Text string `json:"quote"`

	// Author is the attributed author.
	Author string `json:"author"`

	// Tags are the topic tags in page order.
	Tags []string `json:"tags"`

	// SourceURL is the page the quote was extracted from.
	SourceURL string `json:"category_link"`

	// CategoryID is the category whose pagination produced the quote.
	// Zero when unknown.
	CategoryID int64 `json:"category_id,omitempty"`
}

// JoinedTags returns the tags joined with TagSeparator.
func (q Quote) JoinedTags() string {
	return strings.Join(q.Tags, TagSeparator)
}

// Validate reports whether the quote can be persisted.
func (q Quote) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuoteText
	}
	if strings.TrimSpace(q.Author) == "" {
		return ErrEmptyQuoteAuthor
	}
	if strings.TrimSpace(q.SourceURL) == "" {
		return ErrEmptySourceURL
	}
	return nil
}
