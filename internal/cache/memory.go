package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache holds recently used documents for the duration of a run
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a memory cache. Expired items are purged every
// two TTLs.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		items: gocache.New(ttl, 2*ttl),
	}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.items.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	return data, ok
}

// Set stores value; a zero ttl uses the cache default
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.items.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Delete(key string) error {
	c.items.Delete(key)
	return nil
}

func (c *MemoryCache) Clear() error {
	c.items.Flush()
	return nil
}

// Len returns the number of cached items, expired ones included until the
// next purge
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}
