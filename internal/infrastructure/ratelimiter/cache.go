package ratelimiter

import (
	"sync"
	"time"
)

type cacheEntry struct {
	state     bucketState
	expiresAt time.Time
}

// Cache holds per-source bucket state with a TTL so idle sources are dropped.
type Cache struct {
	entries map[string]cacheEntry
	ttl     time.Duration
	mu      sync.RWMutex

	stopClean chan struct{}
	cleanOnce sync.Once
}

func NewCache(ttl time.Duration) *Cache {
	c := &Cache{
		entries:   make(map[string]cacheEntry),
		ttl:       ttl,
		stopClean: make(chan struct{}),
	}

	go c.cleanupExpired()

	return c
}

func (c *Cache) Get(key string) (bucketState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return bucketState{}, false
	}

	return entry.state, true
}

func (c *Cache) Set(key string, state bucketState) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{
		state:     state,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

func (c *Cache) cleanupExpired() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopClean:
			return
		}
	}
}

func (c *Cache) removeExpired() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *Cache) Close() error {
	c.cleanOnce.Do(func() {
		close(c.stopClean)
	})
	return nil
}
