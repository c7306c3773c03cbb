// Package content fetches article text. Sources read markdown files from a
// directory or an HTTP origin; CachedSource and Watch keep a warm copy, and
// Loader gives latest-wins navigation semantics.
package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
)

var (
	// ErrNotFound is wrapped by FetchError when the article does not exist
	// or the origin answered with a non-success status.
	ErrNotFound = errors.New("content not found")

	// ErrInvalidID is wrapped by FetchError for ids outside the id alphabet.
	ErrInvalidID = errors.New("invalid content id")

	// ErrTooLarge is wrapped by FetchError when an article exceeds the
	// source's size limit.
	ErrTooLarge = errors.New("content too large")

	// ErrSuperseded is returned by Loader.Load when a newer load started
	// before this one finished.
	ErrSuperseded = errors.New("content load superseded")
)

// FetchError is a failed fetch of one article.
type FetchError struct {
	ID     string
	Status int // HTTP status, 0 when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Failed to load content for %s.md", e.ID)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPStatus maps the failure to the status a page serving it should use.
func (e *FetchError) HTTPStatus() int {
	switch {
	case errors.Is(e.Err, ErrNotFound), errors.Is(e.Err, ErrInvalidID):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// Source returns the raw markdown of an article by id.
type Source interface {
	Fetch(ctx context.Context, id string) (string, error)
}

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidID reports whether id can name an article. Ids never contain path
// separators or dots.
func ValidID(id string) bool {
	return validID.MatchString(id)
}
