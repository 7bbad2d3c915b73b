package model

import (
	"fmt"
	"strings"
)

// CategoryStatus is the completion state of a Category.
type CategoryStatus string

const (
	// StatusPending marks a category whose pagination has not finished.
	// Categories paused by the request budget or by a failed fetch stay pending
	// so that a later run resumes them.
	StatusPending CategoryStatus = "pending"

	// StatusDone marks a category whose last page has been crawled.
	// A category never leaves this state.
	StatusDone CategoryStatus = "done"
)

// String returns the stored representation of the status.
func (s CategoryStatus) String() string {
	return string(s)
}

// Valid reports whether s is a known status.
func (s CategoryStatus) Valid() bool {
	return s == StatusPending || s == StatusDone
}

// ParseCategoryStatus converts a stored value into a CategoryStatus.
func ParseCategoryStatus(s string) (CategoryStatus, error) {
	status := CategoryStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown category status %q", s)
	}
	return status, nil
}

// Category is one crawlable listing, identified by the URL of its first page.
type Category struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// PageURL is the base URL of the listing. Page N lives at
	// {PageURL}/page/{N}/.
	PageURL string `json:"page_url"`

	// Status is the completion state.
	Status CategoryStatus `json:"status"`
}

// PageURLFor returns the URL of the given 1-based page of the category.
// A trailing slash on PageURL is ignored so the result never contains "//page".
func (c Category) PageURLFor(page int) string {
	return fmt.Sprintf("%s/page/%d/", strings.TrimRight(c.PageURL, "/"), page)
}

// IsDone reports whether the category has been fully crawled.
func (c Category) IsDone() bool {
	return c.Status == StatusDone
}
