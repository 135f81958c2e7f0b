package memcache

import (
	"sync"
	"time"

	"github.com/sanatanigyan/granthalaya/internal/core/ports"
)

// DefaultTTL applies when a caller does not supply one.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

func (e entry) expired(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// Cache implements ports.Cache with an unbounded in-process map.
// Expired entries are evicted lazily by the read that discovers them;
// there is no background sweep. Safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
}

// New creates a cache with the given default TTL (DefaultTTL when <=0).
func New(defaultTTL time.Duration) *Cache {
	return NewWithClock(defaultTTL, time.Now)
}

// NewWithClock creates a cache with an injectable clock.
func NewWithClock(defaultTTL time.Duration, now func() time.Time) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        now,
	}
}

// Set implements Cache.Set.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: c.now(), ttl: ttl}
	c.mu.Unlock()
}

// Get implements Cache.Get.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(c.now()) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Has implements Cache.Has by delegating to Get, so an expired-but-present
// entry reports false.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete implements Cache.Delete.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear implements Cache.Clear.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

var _ ports.Cache = (*Cache)(nil)
