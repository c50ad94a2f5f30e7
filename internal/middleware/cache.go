package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vitrine-studio/vitrine/internal/cache"
	"github.com/vitrine-studio/vitrine/pkg/logger"
	"github.com/vitrine-studio/vitrine/pkg/metrics"
)

const (
	// DefaultBypassParam forces a fresh response when present in the query.
	DefaultBypassParam = "_t"

	HeaderXCache = "X-Cache"
	cacheHit     = "HIT"
	cacheMiss    = "MISS"
)

// CacheOptions configures ResponseCache.
type CacheOptions struct {
	TTL         time.Duration
	SkipCache   bool
	BypassParam string
}

// ResponseCache serves GET responses from store and records successful
// responses into it. Failures inside the store are logged and treated as a
// miss; they never reach the client.
func ResponseCache(store *cache.ResponseCache, opts CacheOptions) gin.HandlerFunc {
	if store == nil || opts.SkipCache {
		return func(c *gin.Context) { c.Next() }
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = store.DefaultTTL()
	}
	bypass := opts.BypassParam
	if bypass == "" {
		bypass = DefaultBypassParam
	}
	log := logger.WithModule("cache")

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		query := c.Request.URL.Query()
		if query.Has(bypass) {
			metrics.CacheLookups.WithLabelValues("bypass").Inc()
			c.Next()
			return
		}

		key := cache.GenerateKey(c.Request.URL.Path, query)

		entry, hit, ok := guardedLookup(store, key, log)
		if !ok {
			metrics.CacheLookups.WithLabelValues("error").Inc()
		}
		if hit {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			setCacheHeaders(c, cacheHit, freshSeconds(entry.Remaining(store.Now()), ttl))
			if len(entry.Body) == 0 {
				c.Status(entry.StatusCode)
				c.Abort()
				return
			}
			contentType := entry.ContentType
			if contentType == "" {
				contentType = gin.MIMEJSON + "; charset=utf-8"
			}
			c.Data(entry.StatusCode, contentType, entry.Body)
			c.Abort()
			return
		}
		if ok {
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		}

		original := c.Writer
		buffered := &bufferedWriter{ResponseWriter: original, status: http.StatusOK}
		c.Writer = buffered
		defer func() { c.Writer = original }()

		c.Next()

		c.Writer = original
		status := buffered.status
		body := buffered.body.Bytes()

		if status >= http.StatusOK && status < http.StatusMultipleChoices {
			stored := guardedStore(store, key, cache.Entry{
				Body:        bytes.Clone(body),
				StatusCode:  status,
				ContentType: original.Header().Get("Content-Type"),
			}, ttl, log)
			if stored {
				setCacheHeaders(c, cacheMiss, freshSeconds(ttl, ttl))
			}
		}

		original.WriteHeader(status)
		if len(body) > 0 {
			if _, err := original.Write(body); err != nil {
				log.Debug("write cached response", zap.String("key", key), zap.Error(err))
			}
		}
	}
}

func setCacheHeaders(c *gin.Context, outcome string, seconds int) {
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d, s-maxage=%d", seconds, seconds))
	c.Header(HeaderXCache, outcome)
}

// freshSeconds converts a remaining lifetime into whole seconds capped at ttl.
func freshSeconds(remaining, ttl time.Duration) int {
	if remaining > ttl {
		remaining = ttl
	}
	if remaining < 0 {
		remaining = 0
	}
	return int(remaining / time.Second)
}

func guardedLookup(store *cache.ResponseCache, key string, log *zap.Logger) (entry cache.Entry, hit bool, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("cache lookup failed", zap.String("key", key), zap.Any("panic", r))
			entry, hit, ok = cache.Entry{}, false, false
		}
	}()
	entry, hit = store.Lookup(key)
	return entry, hit, true
}

func guardedStore(store *cache.ResponseCache, key string, entry cache.Entry, ttl time.Duration, log *zap.Logger) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("cache store failed", zap.String("key", key), zap.Any("panic", r))
			ok = false
		}
	}()
	store.SetEntry(key, entry, ttl)
	return true
}

// bufferedWriter holds the handler's response until the middleware decides
// what to do with it.
type bufferedWriter struct {
	gin.ResponseWriter
	body    bytes.Buffer
	status  int
	written bool
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 && !w.written {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {
	w.written = true
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	w.written = true
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.written = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	if !w.written {
		return -1
	}
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.written
}

func (w *bufferedWriter) Flush() {}
