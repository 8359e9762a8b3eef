package multi

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-ao-staking/internal/interfaces"
	"go-ao-staking/internal/models"
)

// Ensure MultiCache implements interfaces.LevelAwareCache
var _ interfaces.LevelAwareCache = (*MultiCache)(nil)

var levelNames = []models.CacheLevel{models.CacheLevelL1, models.CacheLevelL2}

// MultiCache implements a composite cache that tries multiple cache implementations.
// Caches are ordered fastest first: index 0 is L1, index 1 is L2.
type MultiCache struct {
	caches            []interfaces.Cache
	enablePropagation bool
	clock             clock.Clock
	logger            *zap.Logger
}

// NewMultiCache creates a new MultiCache instance with provided cache implementations
func NewMultiCache(caches []interfaces.Cache, enablePropagation bool, clk clock.Clock, logger *zap.Logger) *MultiCache {
	return &MultiCache{
		caches:            caches,
		enablePropagation: enablePropagation,
		clock:             clk,
		logger:            logger,
	}
}

// Get retrieves value from the first cache that has a live entry for the key
func (mc *MultiCache) Get(key string) (*models.CacheEntry, bool) {
	result := mc.GetWithLevel(key)
	return result.Entry, result.Found
}

// GetWithLevel retrieves value and reports which level served it.
// Hits from slower levels are copied into faster ones when propagation is enabled.
func (mc *MultiCache) GetWithLevel(key string) interfaces.LevelResult {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for get operation", zap.String("key", key))
		return interfaces.LevelResult{Level: models.CacheLevelMiss}
	}

	for i, cache := range mc.caches {
		entry, found := cache.Get(key)
		if !found {
			continue
		}

		if mc.enablePropagation && i > 0 {
			mc.propagate(key, entry, i)
		}

		return interfaces.LevelResult{
			Entry: entry,
			Found: true,
			Level: levelName(i),
			Age:   entry.Age(mc.clock.Now()),
		}
	}

	return interfaces.LevelResult{Level: models.CacheLevelMiss}
}

// propagate writes entry into every level faster than the one that served it,
// keeping the remaining lifetime
func (mc *MultiCache) propagate(key string, entry *models.CacheEntry, servedBy int) {
	remaining := time.Duration(entry.ExpiresAt - mc.clock.Now().UnixNano())
	if remaining <= 0 {
		return
	}

	for i := 0; i < servedBy; i++ {
		mc.caches[i].Set(key, entry.Data, remaining)
	}

	mc.logger.Debug("Propagated cache entry",
		zap.String("key", key),
		zap.String("from", string(levelName(servedBy))),
		zap.Duration("remaining", remaining))
}

// Set stores value in all available caches
func (mc *MultiCache) Set(key string, val []byte, ttl time.Duration) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for set operation", zap.String("key", key))
		return
	}

	for _, cache := range mc.caches {
		cache.Set(key, val, ttl)
	}
}

// Delete removes entry from all available caches
func (mc *MultiCache) Delete(key string) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for delete operation", zap.String("key", key))
		return
	}

	for _, cache := range mc.caches {
		cache.Delete(key)
	}
}

// GetCacheCount returns the number of caches in the multi-cache
func (mc *MultiCache) GetCacheCount() int {
	return len(mc.caches)
}

func levelName(i int) models.CacheLevel {
	if i < len(levelNames) {
		return levelNames[i]
	}
	return models.CacheLevelL2
}
