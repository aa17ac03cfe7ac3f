// Package tokens keeps the API tokens accepted by the service in memory.
package tokens

import (
	"errors"
	"sync"
)

var (
	// ErrInvalidAPIKey signals that the provided API key is not known.
	ErrInvalidAPIKey = errors.New("invalid api key")
	// ErrTokenStoreNotReady signals that tokens have not been loaded yet,
	// typically because the database was down at startup.
	ErrTokenStoreNotReady = errors.New("token store not ready")
)

// Entry is a token's settings. A zero RateLimit means unlimited.
type Entry struct {
	RateLimit int
}

// Cache is safe for concurrent use. It is not ready until the first Replace.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewCache() *Cache {
	return &Cache{}
}

// Replace swaps the whole token set.
func (c *Cache) Replace(m map[string]Entry) {
	entries := make(map[string]Entry, len(m))
	for k, v := range m {
		entries[k] = v
	}
	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
}

func (c *Cache) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries != nil
}

// Validate reports whether token may call the API.
func (c *Cache) Validate(token string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entries == nil {
		return ErrTokenStoreNotReady
	}
	if _, ok := c.entries[token]; !ok {
		return ErrInvalidAPIKey
	}
	return nil
}

// RateLimit returns the token's limit, 0 for unknown tokens.
func (c *Cache) RateLimit(token string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[token].RateLimit
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
