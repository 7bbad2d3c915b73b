package model

import (
	"errors"
	"testing"
	"time"
)

// TestQuoteValidate tests record validation.
func TestQuoteValidate(t *testing.T) {
	t.Parallel()

	valid := Quote{
		Text:      "“A day without sunshine is like, you know, night.”",
		Author:    "Steve Martin",
		Tags:      []string{"humor", "obvious"},
		SourceURL: "http://quotes.test/tag/humor/page/1/",
	}

	testCases := []struct {
		name    string
		mutate  func(q *Quote)
		wantErr error
	}{
		{"valid quote", func(_ *Quote) {}, nil},
		{"empty text", func(q *Quote) { q.Text = "  " }, ErrEmptyQuoteText},
		{"empty author", func(q *Quote) { q.Author = "" }, ErrEmptyQuoteAuthor},
		{"empty source", func(q *Quote) { q.SourceURL = "" }, ErrEmptySourceURL},
		{"no tags is fine", func(q *Quote) { q.Tags = nil }, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			q := valid
			tc.mutate(&q)
			if err := q.Validate(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

// TestQuoteJoinedTags tests tag flattening.
func TestQuoteJoinedTags(t *testing.T) {
	t.Parallel()

	q := Quote{Tags: []string{"change", "deep-thoughts", "thinking"}}
	if got := q.JoinedTags(); got != "change | deep-thoughts | thinking" {
		t.Errorf("unexpected joined tags: %q", got)
	}
	if got := (Quote{}).JoinedTags(); got != "" {
		t.Errorf("expected empty string for no tags, got %q", got)
	}
}

// TestRunSummary tests the derived summary helpers.
func TestRunSummary(t *testing.T) {
	t.Parallel()

	t.Run("no work", func(t *testing.T) {
		t.Parallel()
		s := &RunSummary{}
		if !s.NoWork() {
			t.Error("expected NoWork for empty run")
		}
	})

	t.Run("budget exhausted", func(t *testing.T) {
		t.Parallel()
		s := &RunSummary{Categories: 2, RequestLimit: 5, RequestsSent: 5}
		if !s.BudgetExhausted() {
			t.Error("expected exhausted budget")
		}
		s.RequestsSent = 4
		if s.BudgetExhausted() {
			t.Error("expected budget not exhausted")
		}
	})

	t.Run("elapsed seconds", func(t *testing.T) {
		t.Parallel()
		s := &RunSummary{Elapsed: 1234 * time.Millisecond}
		if got := s.ElapsedSeconds(); got != 1.23 {
			t.Errorf("got %v, expected 1.23", got)
		}
	})
}
