package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxArticleSize is the default limit on an article body.
const maxArticleSize = 8 << 20

// HTTPSource fetches GET <BaseURL>/<id>.md. Any non-2xx answer is reported
// as not found.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	// MaxBytes limits the body size; zero means 8 MiB. Larger bodies fail
	// with ErrTooLarge.
	MaxBytes int64
}

// NewHTTPSource returns a source with a client timing out after timeout.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{BaseURL: baseURL, Client: &http.Client{Timeout: timeout}}
}

// Fetch downloads the article.
func (s *HTTPSource) Fetch(ctx context.Context, id string) (string, error) {
	if !ValidID(id) {
		return "", &FetchError{ID: id, Status: http.StatusNotFound, Err: ErrInvalidID}
	}
	u := strings.TrimRight(s.BaseURL, "/") + "/" + url.PathEscape(id) + ".md"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", &FetchError{ID: id, Err: err}
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{ID: id, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &FetchError{ID: id, Status: resp.StatusCode, Err: fmt.Errorf("%w: status %d", ErrNotFound, resp.StatusCode)}
	}

	limit := s.MaxBytes
	if limit <= 0 {
		limit = maxArticleSize
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", &FetchError{ID: id, Status: resp.StatusCode, Err: err}
	}
	if int64(len(body)) > limit {
		return "", &FetchError{ID: id, Status: resp.StatusCode, Err: fmt.Errorf("%w: over %d bytes", ErrTooLarge, limit)}
	}
	return string(body), nil
}
