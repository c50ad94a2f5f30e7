package cache

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vitrine-studio/vitrine/pkg/logger"
	"github.com/vitrine-studio/vitrine/pkg/metrics"
)

// Invalidator purges cached reads after a successful write. A nil
// Invalidator, or one without a cache, does nothing.
type Invalidator struct {
	cache *ResponseCache
	log   *zap.Logger
}

// NewInvalidator binds an invalidator to cache.
func NewInvalidator(cache *ResponseCache) *Invalidator {
	return &Invalidator{
		cache: cache,
		log:   logger.WithModule("cache"),
	}
}

// Invalidate removes every entry whose key contains one of patterns. Empty
// patterns are ignored since they would match the whole cache.
func (i *Invalidator) Invalidate(patterns ...string) int {
	if i == nil || i.cache == nil {
		return 0
	}

	total := 0
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		total += i.cache.DeletePattern(pattern)
	}

	if total > 0 {
		metrics.CacheInvalidations.Add(float64(total))
	}
	i.log.Debug("cache invalidated", zap.Strings("patterns", patterns), zap.Int("removed", total))
	return total
}

// Resource invalidates the collection path, the id addressed item path and
// every non-empty slug addressed path of one entity.
func (i *Invalidator) Resource(collection string, id uint, slugs ...string) int {
	collection = strings.TrimRight(collection, "/")
	patterns := []string{collection}
	if id > 0 {
		patterns = append(patterns, collection+"/"+strconv.FormatUint(uint64(id), 10))
	}
	for _, s := range slugs {
		if s != "" {
			patterns = append(patterns, collection+"/"+s)
		}
	}
	return i.Invalidate(patterns...)
}

// Flush drops every cached response.
func (i *Invalidator) Flush() {
	if i == nil || i.cache == nil {
		return
	}
	i.cache.Clear()
	i.log.Info("response cache flushed")
}
