package content

import (
	"context"
	"sync"
)

// Article is a loaded article.
type Article struct {
	ID   string
	Text string
}

// Loader loads one article at a time. Starting a load cancels the one in
// flight, and a load that completes after a newer one started reports
// ErrSuperseded without touching Current.
type Loader struct {
	src Source

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	current Article
	err     error
}

// NewLoader returns a loader over src.
func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Load fetches id and makes it current.
func (l *Loader) Load(ctx context.Context, id string) (Article, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	l.cancel = cancel
	l.mu.Unlock()

	text, err := l.src.Fetch(ctx, id)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return Article{}, ErrSuperseded
	}
	l.cancel = nil
	if err != nil {
		l.current, l.err = Article{ID: id}, err
		return Article{}, err
	}
	l.current, l.err = Article{ID: id, Text: text}, nil
	return l.current, nil
}

// Current returns the outcome of the most recent load that was not
// superseded.
func (l *Loader) Current() (Article, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.err
}

// Stop cancels any load in flight.
func (l *Loader) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}
