package cache

import (
	"errors"
	"time"
)

// LayeredCache puts a fast cache in front of a persistent one. The
// persistent layer is authoritative: it is written first, and a hit there
// is promoted into the fast layer.
type LayeredCache struct {
	fast       Cache
	persistent Cache
}

// NewLayeredCache combines two caches
func NewLayeredCache(fast, persistent Cache) *LayeredCache {
	return &LayeredCache{
		fast:       fast,
		persistent: persistent,
	}
}

// Get checks the fast layer first, then the persistent one
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.fast.Get(key); found {
		return val, true
	}

	val, found := c.persistent.Get(key)
	if !found {
		return nil, false
	}
	_ = c.fast.Set(key, val, 0)
	return val, true
}

// Set stores value in both layers
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.persistent.Set(key, value, ttl); err != nil {
		return err
	}
	return c.fast.Set(key, value, ttl)
}

// Delete removes key from both layers
func (c *LayeredCache) Delete(key string) error {
	return errors.Join(c.fast.Delete(key), c.persistent.Delete(key))
}

// Clear empties both layers
func (c *LayeredCache) Clear() error {
	return errors.Join(c.fast.Clear(), c.persistent.Clear())
}
