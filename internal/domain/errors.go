package domain

import (
	"errors"
	"fmt"
)

// Resolve errors. Callers should treat ErrNoStructuredData as an expected,
// retry-later condition: it means the source site served markup without the
// embedded post data, which happens routinely and is not a programming bug.
var (
	ErrInvalidURL       = errors.New("not a valid post URL")
	ErrFetchPage        = errors.New("failed to fetch post page")
	ErrNoStructuredData = errors.New("no post data found in page")
	ErrMissingAuthor    = errors.New("could not extract author from post data")
	ErrNoMediaFound     = errors.New("no media items found in post")
)

// Engine errors.
var (
	ErrDirectoryUnavailable = errors.New("download directory unavailable")
	ErrUnsupportedURL       = errors.New("no provider matches URL")
)

// FetchError reports a non-success HTTP status from an asset download.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d fetching %s", e.StatusCode, e.URL)
}
