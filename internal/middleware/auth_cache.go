package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/caseflowhq/caseflow/internal/models"
)

const (
	userCacheTTL       = 5 * time.Minute
	negativeCacheTTL   = 30 * time.Second
	maxCacheEntries    = 10000
	cacheCleanupPeriod = 60 * time.Second
)

// errCachedNotFound is returned for negative cache hits.
var errCachedNotFound = errors.New("session not found (cached)")

// cachedUser holds one resolved token. A nil user marks a cached lookup
// failure so repeated bad tokens do not hammer the database.
type cachedUser struct {
	user      *models.User
	fetchedAt time.Time
}

func (cu cachedUser) ttl() time.Duration {
	if cu.user == nil {
		return negativeCacheTTL
	}
	return userCacheTTL
}

// hashToken returns a hex-encoded SHA-256 hash of the token so raw tokens
// are never stored in memory.
func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// CachedUserLookup wraps a UserLookup with a bounded in-memory cache. A
// cached user carries the role it had at fetch time; role changes take
// effect within userCacheTTL.
type CachedUserLookup struct {
	inner UserLookup
	mu    sync.RWMutex
	cache map[string]cachedUser
}

// NewCachedUserLookup creates a caching wrapper around the given UserLookup.
// The provided context controls the lifetime of the background eviction
// goroutine.
func NewCachedUserLookup(ctx context.Context, inner UserLookup) *CachedUserLookup {
	c := &CachedUserLookup{
		inner: inner,
		cache: make(map[string]cachedUser),
	}
	go c.cleanupLoop(ctx)
	return c
}

// GetUserByToken returns the cached user for a token or falls through to the
// inner lookup, caching both hits and misses.
func (c *CachedUserLookup) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	key := hashToken(token)

	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()

	if ok && time.Since(entry.fetchedAt) < entry.ttl() {
		if entry.user == nil {
			return nil, errCachedNotFound
		}
		return entry.user, nil
	}

	user, err := c.inner.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.store(key, cachedUser{fetchedAt: time.Now()})
		}
		return nil, err
	}

	c.store(key, cachedUser{user: user, fetchedAt: time.Now()})

	return user, nil
}

// Invalidate drops the cache entry for a token (call on logout).
func (c *CachedUserLookup) Invalidate(token string) {
	key := hashToken(token)
	c.mu.Lock()
	delete(c.cache, key)
	c.mu.Unlock()
}

func (c *CachedUserLookup) store(key string, entry cachedUser) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Simple bound: when full, drop the whole cache rather than track LRU
	// ordering. Entries repopulate on the next lookup.
	if len(c.cache) >= maxCacheEntries {
		c.cache = make(map[string]cachedUser)
	}

	c.cache[key] = entry
}

func (c *CachedUserLookup) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cacheCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			for k, entry := range c.cache {
				if time.Since(entry.fetchedAt) >= entry.ttl() {
					delete(c.cache, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
