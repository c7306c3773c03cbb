package content

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedSource memoizes a Source. Only successful fetches are cached, and a
// fetch that overlapped an invalidation of its id is not stored.
type CachedSource struct {
	src   Source
	cache *cache.Cache

	mu       sync.Mutex
	gens     map[string]uint64
	flushGen uint64
}

// NewCachedSource wraps src. A ttl of zero or less keeps entries until they
// are invalidated.
func NewCachedSource(src Source, ttl time.Duration) *CachedSource {
	c := &CachedSource{src: src, gens: make(map[string]uint64)}
	if ttl <= 0 {
		c.cache = cache.New(cache.NoExpiration, 0)
	} else {
		c.cache = cache.New(ttl, 2*ttl)
	}
	return c
}

// Fetch returns the cached text or fetches it from the wrapped source.
func (c *CachedSource) Fetch(ctx context.Context, id string) (string, error) {
	if v, ok := c.cache.Get(id); ok {
		if text, ok := v.(string); ok {
			return text, nil
		}
	}

	c.mu.Lock()
	gen, flushGen := c.gens[id], c.flushGen
	c.mu.Unlock()

	text, err := c.src.Fetch(ctx, id)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[id] == gen && c.flushGen == flushGen {
		c.cache.Set(id, text, cache.DefaultExpiration)
	}
	return text, nil
}

// Invalidate drops the cached copy of id, including one being fetched.
func (c *CachedSource) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[id]++
	c.cache.Delete(id)
}

// Flush drops every cached article.
func (c *CachedSource) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushGen++
	c.cache.Flush()
}

// Len returns the number of cached articles.
func (c *CachedSource) Len() int {
	return c.cache.ItemCount()
}
