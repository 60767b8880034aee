package meta

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

const cacheLoadKey = "salary_item_meta"

// Cache is the process-local read-through view of the whitelist. Readers may
// see a stale map for at most one write: every metadata write and every bulk
// import calls Invalidate before acknowledging. The map returned by Lookup is
// shared and must not be mutated.
type Cache struct {
	repo Repository

	mu     sync.RWMutex
	loaded bool
	items  map[string]string

	sf singleflight.Group
}

func NewCache(repo Repository) *Cache {
	return &Cache{repo: repo}
}

func (c *Cache) Lookup(ctx context.Context) (map[string]string, error) {
	c.mu.RLock()
	if c.loaded {
		items := c.items
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()

	// Singleflight collapses concurrent cold-cache loads into one query.
	v, err, _ := c.sf.Do(cacheLoadKey, func() (interface{}, error) {
		items, err := c.repo.LoadMap(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.items = items
		c.loaded = true
		c.mu.Unlock()

		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(map[string]string), nil
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.items = nil
	c.mu.Unlock()
}
