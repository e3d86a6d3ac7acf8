package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// defaultMaxEntries bounds the in-memory cache when no size is given.
const defaultMaxEntries = 10000

// janitorInterval is how often expired entries are swept.
const janitorInterval = time.Minute

// MemoryClient is an in-process Client for development and tests.
type MemoryClient struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	maxSize int
	done    chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	value []byte
	// expiresAt is the zero time for entries without expiry.
	expiresAt time.Time
}

// NewMemoryClient constructs a MemoryClient holding at most maxSize entries.
// A non-positive maxSize selects a sensible default.
func NewMemoryClient(maxSize int) *MemoryClient {
	if maxSize <= 0 {
		maxSize = defaultMaxEntries
	}
	c := &MemoryClient{
		entries: make(map[string]memoryEntry),
		maxSize: maxSize,
		done:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get returns the value stored under key, or ErrCacheMiss.
func (c *MemoryClient) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[key]
	if !found || entry.expired(time.Now()) {
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

// Set stores value under key. A non-positive ttl means no expiry.
func (c *MemoryClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.entries[key] = entry
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (c *MemoryClient) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// DeleteByPrefix removes every key starting with prefix.
func (c *MemoryClient) DeleteByPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Close stops the janitor goroutine. The client must not be used afterwards.
func (c *MemoryClient) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

// Len reports the current number of entries, expired ones included.
func (c *MemoryClient) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// evictOldest drops the entry with the earliest expiry. Entries without
// expiry are only evicted when nothing expiring exists. Callers hold mu.
func (c *MemoryClient) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	for key, entry := range c.entries {
		if entry.expiresAt.IsZero() {
			if oldestKey == "" {
				oldestKey = key
			}
			continue
		}
		if oldestTime.IsZero() || entry.expiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.expiresAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// janitor sweeps expired entries until Close is called.
func (c *MemoryClient) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, entry := range c.entries {
				if entry.expired(now) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
