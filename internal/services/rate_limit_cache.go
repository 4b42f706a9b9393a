package services

import (
	"sync"
	"time"
)

// RateLimitCache tracks keys that must not hit the GitHub API again
// until their reset time passes. It is injected into the sync path
// rather than living as package state, so tests can use their own.
type RateLimitCache struct {
	mu      sync.Mutex
	resetAt map[string]time.Time
}

func NewRateLimitCache() *RateLimitCache {
	return &RateLimitCache{
		resetAt: make(map[string]time.Time),
	}
}

// Block records that the key is rate limited until resetAt
func (c *RateLimitCache) Block(key string, resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt[key] = resetAt
}

// IsBlocked reports whether the key is still rate limited. Expired
// entries are evicted on read.
func (c *RateLimitCache) IsBlocked(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	reset, ok := c.resetAt[key]
	if !ok {
		return false
	}
	if time.Now().After(reset) {
		delete(c.resetAt, key)
		return false
	}
	return true
}
