package lookup

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/heartmarshall/wordlens/internal/provider"
)

type cacheKey struct {
	langCode string
	word     string
}

// entryCache is the process-wide read-through cache for dictionary API
// results, keyed by (language code, lookup word). Dictionary entries are
// near-static, so there is no eviction and no TTL. Negative results (word not
// in dictionary) are cached as nil values. Concurrent writers racing to
// populate the same key overwrite idempotently.
type entryCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]*provider.DictionaryResult

	hits   atomic.Int64
	misses atomic.Int64
}

func newEntryCache() *entryCache {
	return &entryCache{entries: make(map[cacheKey]*provider.DictionaryResult)}
}

// get returns the cached result and whether the key was present. The result
// itself may be nil (cached not-found).
func (c *entryCache) get(langCode, word string) (*provider.DictionaryResult, bool) {
	c.mu.RLock()
	result, ok := c.entries[cacheKey{langCode, word}]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return result, ok
}

func (c *entryCache) put(langCode, word string, result *provider.DictionaryResult) {
	c.mu.Lock()
	c.entries[cacheKey{langCode, word}] = result
	c.mu.Unlock()
}

func (c *entryCache) logStats(log *slog.Logger) {
	log.Debug("entry cache stats",
		slog.Int64("hits", c.hits.Load()),
		slog.Int64("misses", c.misses.Load()),
	)
}
