package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/guttosm/investlens/internal/domain/models"
)

// CacheKey is the full parameter tuple a Result depends on.
type CacheKey struct {
	Ticker string
	Params Params
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%d|%g|%s|%s",
		k.Ticker,
		k.Params.Window.Start.Format(models.DateLayout),
		k.Params.Window.End.Format(models.DateLayout),
		k.Params.MAWindow,
		k.Params.Threshold,
		k.Params.Direction,
		k.Params.Basis,
	)
}

type cacheEntry struct {
	result   *Result
	storedAt time.Time
}

// Cache keeps the most recent results so re-renders with unchanged parameters
// skip recomputation.
//
// Behavior:
//   - Bounded by capacity; the oldest entry is evicted first.
//   - Entries older than ttl are ignored (ttl <= 0 keeps them until evicted).
//   - Concurrent misses on the same key compute once (singleflight); the
//     others share that result.
//   - capacity <= 0 disables storage but still deduplicates in-flight work.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]cacheEntry
	order    []string
	group    singleflight.Group
	now      func() time.Time
}

// NewCache builds a cache holding at most capacity results for ttl each.
func NewCache(capacity int, ttl time.Duration) *Cache {
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]cacheEntry),
		now:      time.Now,
	}
}

// Get returns a fresh cached result for key.
func (c *Cache) Get(key CacheKey) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookup(key.String())
}

// Do returns the cached result for key or runs compute and stores its result.
// Errors are never cached.
func (c *Cache) Do(key CacheKey, compute func() (*Result, error)) (*Result, error) {
	return c.DoContext(context.Background(), key, compute)
}

// DoContext is Do for a caller that may give up. When ctx ends first the
// caller gets ctx.Err() while the shared compute keeps running for the other
// waiters, so compute must not depend on any single caller's context.
func (c *Cache) DoContext(ctx context.Context, key CacheKey, compute func() (*Result, error)) (*Result, error) {
	k := key.String()
	if res, ok := c.Get(key); ok {
		return res, nil
	}

	ch := c.group.DoChan(k, func() (interface{}, error) {
		c.mu.Lock()
		res, ok := c.lookup(k)
		c.mu.Unlock()
		if ok {
			return res, nil
		}

		res, err := compute()
		if err != nil {
			return nil, err
		}
		c.store(k, res)
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Result), nil
	}
}

// Len reports how many entries are stored, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) lookup(k string) (*Result, bool) {
	e, ok := c.entries[k]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		return nil, false
	}
	return e.result, true
}

func (c *Cache) store(k string, res *Result) {
	if c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[k]; !exists {
		c.order = append(c.order, k)
	}
	c.entries[k] = cacheEntry{result: res, storedAt: c.now()}

	for len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}
