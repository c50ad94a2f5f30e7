// Package cache holds transient copies of rendered API responses.
package cache

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vitrine-studio/vitrine/pkg/metrics"
)

// DefaultTTL applies when Set is called without a positive TTL.
const DefaultTTL = 5 * time.Minute

// Entry is a stored response.
type Entry struct {
	Body        []byte
	StatusCode  int
	ContentType string
	TTL         time.Duration
	ExpiresAt   time.Time
}

// Remaining reports how long the entry stays fresh at now.
func (e Entry) Remaining(now time.Time) time.Duration {
	if d := e.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Option customises a ResponseCache.
type Option func(*ResponseCache)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *ResponseCache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDefaultTTL overrides the fallback TTL.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *ResponseCache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// ResponseCache is an in-memory TTL map keyed by request path and query.
// Entries are only visible while now < ExpiresAt. Expired entries are removed
// when a read finds them and by Cleanup.
type ResponseCache struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	defaultTTL time.Duration
	now        func() time.Time
}

// New constructs an empty cache.
func New(opts ...Option) *ResponseCache {
	c := &ResponseCache{
		entries:    make(map[string]Entry),
		defaultTTL: DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultTTL returns the TTL used when callers do not provide one.
func (c *ResponseCache) DefaultTTL() time.Duration {
	return c.defaultTTL
}

// Now exposes the cache clock.
func (c *ResponseCache) Now() time.Time {
	return c.now()
}

// GenerateKey builds the cache key for path and params. Parameter names are
// sorted so permutations of the same query map to one key; repeated values
// keep their request order. Empty params yield the bare path.
func GenerateKey(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(path)
	b.WriteByte('?')
	first := true
	for _, name := range names {
		values := params[name]
		if len(values) == 0 {
			values = []string{""}
		}
		for _, value := range values {
			if !first {
				b.WriteByte('&')
			}
			first = false
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(value)
		}
	}
	return b.String()
}

// Get returns the cached body for key while it is fresh.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	entry, ok := c.Lookup(key)
	if !ok {
		return nil, false
	}
	return entry.Body, true
}

// Lookup returns the full entry for key while it is fresh. An expired entry
// is deleted and reported absent.
func (c *ResponseCache) Lookup(key string) (Entry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}

	now := c.now()
	if now.Before(entry.ExpiresAt) {
		return entry, true
	}

	c.mu.Lock()
	// another writer may have refreshed the key since the read lock was released
	if current, ok := c.entries[key]; ok && !now.Before(current.ExpiresAt) {
		delete(c.entries, key)
		metrics.CacheEvictions.Inc()
		metrics.CacheEntries.Set(float64(len(c.entries)))
	}
	c.mu.Unlock()
	return Entry{}, false
}

// Set stores body as a 200 JSON response. A non-positive ttl uses the default.
func (c *ResponseCache) Set(key string, body []byte, ttl time.Duration) {
	c.SetEntry(key, Entry{
		Body:        body,
		StatusCode:  http.StatusOK,
		ContentType: "application/json; charset=utf-8",
	}, ttl)
}

// SetEntry stores or overwrites the entry under key. TTL and ExpiresAt are
// computed from ttl; a non-positive ttl uses the default.
func (c *ResponseCache) SetEntry(key string, entry Entry, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if entry.StatusCode == 0 {
		entry.StatusCode = http.StatusOK
	}
	entry.TTL = ttl
	entry.ExpiresAt = c.now().Add(ttl)

	c.mu.Lock()
	c.entries[key] = entry
	size := len(c.entries)
	c.mu.Unlock()

	metrics.CacheEntries.Set(float64(size))
}

// Delete removes key.
func (c *ResponseCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	size := len(c.entries)
	c.mu.Unlock()

	metrics.CacheEntries.Set(float64(size))
}

// DeletePattern removes every key containing substr and returns how many
// entries were dropped. Matching is plain containment: "/api/articles" also
// matches "/api/articles-archive".
func (c *ResponseCache) DeletePattern(substr string) int {
	c.mu.Lock()
	removed := 0
	for key := range c.entries {
		if strings.Contains(key, substr) {
			delete(c.entries, key)
			removed++
		}
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.CacheEntries.Set(float64(size))
	return removed
}

// Clear drops every entry.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	metrics.CacheEntries.Set(0)
}

// Cleanup removes entries whose expiry has passed and returns how many were dropped.
func (c *ResponseCache) Cleanup() int {
	now := c.now()

	c.mu.Lock()
	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.CacheEvictions.Add(float64(removed))
	metrics.CacheEntries.Set(float64(size))
	return removed
}

// Size returns the number of stored entries, expired or not.
func (c *ResponseCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns a snapshot of the stored keys in sorted order.
func (c *ResponseCache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return keys
}
