package recap

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"recapstream/internal/metrics"
	"recapstream/models"
)

// ResultCache holds finished recaps and coalesces concurrent work per key. It is built
// once per process and shared by every request.
type ResultCache struct {
	store *expirable.LRU[string, models.CacheEntry]
	group singleflight.Group
	now   func() time.Time
}

// NewResultCache creates a cache holding at most maxEntries recaps for ttl each.
// maxEntries of 0 means no size bound; ttl of 0 means entries never expire.
func NewResultCache(maxEntries int, ttl time.Duration) *ResultCache {
	return &ResultCache{
		store: expirable.NewLRU[string, models.CacheEntry](maxEntries, nil, ttl),
		now:   time.Now,
	}
}

func (c *ResultCache) Get(key string) (models.RecapResult, bool) {
	entry, ok := c.store.Get(key)
	if !ok {
		return models.RecapResult{}, false
	}
	return entry.Value, true
}

// Entry returns the stored entry including its creation time.
func (c *ResultCache) Entry(key string) (models.CacheEntry, bool) {
	return c.store.Get(key)
}

// Set stores value under key, replacing any previous entry.
func (c *ResultCache) Set(key string, value models.RecapResult) {
	c.store.Add(key, models.CacheEntry{Key: key, Value: value, CreatedAt: c.now()})
	metrics.CacheEntries.Set(float64(c.store.Len()))
}

// Do returns the cached recap for key, or runs fn and caches its result. Concurrent
// callers for the same key share a single run of fn and its outcome, error included.
// Errors are not cached. fn runs detached from the leader's cancellation so waiting
// callers are not failed by a client that went away.
func (c *ResultCache) Do(ctx context.Context, key string, fn func(context.Context) (models.RecapResult, error)) (models.RecapResult, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		res, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.Set(key, res)
		return res, nil
	})
	if err != nil {
		return models.RecapResult{}, false, err
	}
	return v.(models.RecapResult), false, nil
}

func (c *ResultCache) Len() int {
	return c.store.Len()
}

// Purge drops every cached recap.
func (c *ResultCache) Purge() {
	c.store.Purge()
	metrics.CacheEntries.Set(0)
}
