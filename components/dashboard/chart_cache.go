package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache keeps rendered chart documents for a fixed TTL.
type ChartCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]cachedChart
}

type cachedChart struct {
	html    string
	expires time.Time
}

// NewChartCache builds a cache with the provided TTL. A TTL <= 0 disables
// storage; every call renders.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedChart),
	}
}

// GetOrRender returns the live entry for key or renders and stores a new one.
// Render errors are returned as-is and never cached.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}
	now := c.now()

	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && now.Before(entry.expires) {
		c.mu.Unlock()
		return entry.html, nil
	}
	delete(c.entries, key)
	c.mu.Unlock()

	html, err := render()
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = cachedChart{html: html, expires: now.Add(c.ttl)}
	c.mu.Unlock()
	return html, nil
}

// Purge drops expired entries and returns how many were removed.
func (c *ChartCache) Purge() int {
	if c == nil {
		return 0
	}
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expires) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired ones included.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// ChartKey identifies a rendered chart by kind, theme and a digest of the
// spec's data.
func ChartKey(spec ChartSpec, theme string) string {
	b, err := json.Marshal(spec)
	if err != nil {
		return spec.Type + ":" + theme + ":invalid"
	}
	sum := sha1.Sum(b)
	return spec.Type + ":" + theme + ":" + hex.EncodeToString(sum[:])
}
