package service

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CooldownCache is an in-memory CooldownTracker. Entries expire on their own;
// nothing survives a restart.
type CooldownCache struct {
	cache *cache.Cache
}

// NewCooldownCache creates a tracker that purges expired entries every cleanupInterval
func NewCooldownCache(cleanupInterval time.Duration) *CooldownCache {
	return &CooldownCache{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (c *CooldownCache) Reserve(key string, d time.Duration) (time.Duration, bool) {
	if d <= 0 {
		return 0, true
	}

	// Add is atomic, so two spins racing for the same key cannot both win.
	// The second attempt covers an entry expiring between Add and Remaining.
	for attempt := 0; attempt < 2; attempt++ {
		if err := c.cache.Add(key, time.Now().Add(d), d); err == nil {
			return 0, true
		}
		if remaining := c.Remaining(key); remaining > 0 {
			return remaining, false
		}
		c.cache.Delete(key)
	}
	return 0, true
}

func (c *CooldownCache) Release(key string) {
	c.cache.Delete(key)
}

func (c *CooldownCache) Remaining(key string) time.Duration {
	_, expiration, found := c.cache.GetWithExpiration(key)
	if !found {
		return 0
	}
	remaining := time.Until(expiration)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Count returns the number of running cooldowns
func (c *CooldownCache) Count() int {
	return c.cache.ItemCount()
}
