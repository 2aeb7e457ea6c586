package identity

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL matches the link service's own caching guidance.
const DefaultTTL = 15 * time.Minute

// Resolver is the lookup the cache wraps.
type Resolver interface {
	MemberForRoblox(ctx context.Context, robloxID int64) (string, error)
}

// Clock supplies the current time. Satisfied by clockwork clocks.
type Clock interface {
	Now() time.Time
}

type cacheEntry struct {
	memberID string
	expires  time.Time
}

// Cache memoizes successful lookups for a TTL. Misses and errors are
// never cached, so a member who links mid-season resolves on the next
// report instead of waiting out a negative entry.
type Cache struct {
	inner Resolver
	clock Clock
	ttl   time.Duration

	mu      sync.Mutex
	entries map[int64]cacheEntry
}

// NewCache wraps a resolver with TTL memoization. A non-positive ttl
// falls back to DefaultTTL.
func NewCache(inner Resolver, clock Clock, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		inner:   inner,
		clock:   clock,
		ttl:     ttl,
		entries: make(map[int64]cacheEntry),
	}
}

// MemberForRoblox returns the cached link when fresh, delegating to the
// wrapped resolver otherwise.
func (c *Cache) MemberForRoblox(ctx context.Context, robloxID int64) (string, error) {
	now := c.clock.Now()

	c.mu.Lock()
	if entry, ok := c.entries[robloxID]; ok && entry.expires.After(now) {
		c.mu.Unlock()
		return entry.memberID, nil
	}
	c.mu.Unlock()

	memberID, err := c.inner.MemberForRoblox(ctx, robloxID)
	if err != nil {
		return "", err
	}

	if memberID != "" {
		c.mu.Lock()
		c.entries[robloxID] = cacheEntry{memberID: memberID, expires: now.Add(c.ttl)}
		c.mu.Unlock()
	}
	return memberID, nil
}
