package toolregistry

import (
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/June01/ToolUniverse/pkg/types"
)

const (
	defaultCacheMaxSize = 128
	defaultCacheTTL     = 5 * time.Minute
)

// CacheConfig configures the definition-file cache.
type CacheConfig struct {
	// MaxSize is the maximum number of files kept in the LRU cache.
	MaxSize int
	// TTL is how long a parsed file remains valid.
	TTL time.Duration
}

// DefaultCacheConfig returns sensible defaults for file caching.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		MaxSize: defaultCacheMaxSize,
		TTL:     defaultCacheTTL,
	}
}

// cacheEntry holds one parsed definition file and when it was stored.
type cacheEntry struct {
	defs     []types.ToolDefinition
	storedAt time.Time
}

// fileCache memoizes parsed tool-definition files keyed by absolute
// path, so repeated loads of the same catalogs stay cheap.
type fileCache struct {
	cache *lru.Cache[string, cacheEntry]
	ttl   time.Duration
	load  func(string) ([]types.ToolDefinition, error)
}

// newFileCache wraps load with an LRU cache. Zero config values fall
// back to DefaultCacheConfig.
func newFileCache(config CacheConfig, load func(string) ([]types.ToolDefinition, error)) *fileCache {
	if config.MaxSize <= 0 {
		config.MaxSize = defaultCacheMaxSize
	}
	if config.TTL <= 0 {
		config.TTL = defaultCacheTTL
	}
	cache, err := lru.New[string, cacheEntry](config.MaxSize)
	if err != nil {
		// lru.New only errors on non-positive size which we guard above.
		return &fileCache{ttl: config.TTL, load: load}
	}
	return &fileCache{cache: cache, ttl: config.TTL, load: load}
}

func (c *fileCache) get(path string) ([]types.ToolDefinition, error) {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	if c.cache != nil {
		if entry, ok := c.cache.Get(key); ok {
			if time.Since(entry.storedAt) < c.ttl {
				return cloneDefs(entry.defs), nil
			}
			// Expired — evict so the LRU bookkeeping stays clean.
			c.cache.Remove(key)
		}
	}

	defs, err := c.load(path)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Add(key, cacheEntry{defs: cloneDefs(defs), storedAt: time.Now()})
	}
	return defs, nil
}

// cloneDefs copies the slice so cached entries do not alias caller
// slices.
func cloneDefs(defs []types.ToolDefinition) []types.ToolDefinition {
	if defs == nil {
		return nil
	}
	cp := make([]types.ToolDefinition, len(defs))
	copy(cp, defs)
	return cp
}
