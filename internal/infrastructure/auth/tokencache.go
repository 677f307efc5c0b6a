package auth

import (
	"sync"
	"time"
)

type cachedToken struct {
	token     string
	expiresAt time.Time
}

// TokenCache keeps verified bearer tokens keyed by session ID so repeated
// requests on the same session skip signature verification. Entries expire
// with the underlying token.
type TokenCache struct {
	mu      sync.RWMutex
	entries map[string]cachedToken
}

func NewTokenCache() *TokenCache {
	return &TokenCache{
		entries: make(map[string]cachedToken),
	}
}

// Get returns the cached token for the session, or false when absent or
// expired. Expired entries are removed lazily.
func (c *TokenCache) Get(sessionID string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[sessionID]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().UTC().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another request may have stored
		// a fresh token meanwhile.
		if cur, ok := c.entries[sessionID]; ok && time.Now().UTC().After(cur.expiresAt) {
			delete(c.entries, sessionID)
		}
		c.mu.Unlock()
		return "", false
	}

	return entry.token, true
}

// Put stores a verified token until expiresAt.
func (c *TokenCache) Put(sessionID, token string, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[sessionID] = cachedToken{token: token, expiresAt: expiresAt}
}

// Invalidate drops the session entry, e.g. on logout.
func (c *TokenCache) Invalidate(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sessionID)
}

// PurgeExpired removes all expired entries and reports how many were dropped.
func (c *TokenCache) PurgeExpired() int {
	now := time.Now().UTC()

	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for sessionID, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, sessionID)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of cached entries, expired included.
func (c *TokenCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
