package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/supplens/backend/internal/domain"
)

// entry is a single cached value with its expiry deadline.
type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Memory is a thread-safe in-memory cache with per-key TTL. It memoizes
// deduplicated price comparisons so repeated lookups for the same canonical
// code do not hit the external feed inside the TTL window.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	stop    chan struct{}
}

// cleanupInterval is how often expired entries are swept out.
const cleanupInterval = 5 * time.Minute

// NewMemory creates a new in-memory cache and starts its sweep goroutine.
func NewMemory() *Memory {
	c := &Memory{
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Get retrieves a value from the cache.
func (c *Memory) Get(ctx context.Context, key string) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, domain.ErrCacheMiss
	}
	return e.value, nil
}

// Set stores a value with the given TTL. The value is passed through a JSON
// round trip so cached data has the same shape a remote cache would return.
func (c *Memory) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var stored interface{}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:     stored,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a value from the cache.
func (c *Memory) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired.
func (c *Memory) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return ok && !time.Now().After(e.expiresAt), nil
}

// Len returns the current number of entries, expired ones included until the
// next sweep.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the sweep goroutine.
func (c *Memory) Close() {
	close(c.stop)
}

// sweep periodically drops expired entries.
func (c *Memory) sweep() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
