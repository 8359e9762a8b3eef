package l1

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-ao-staking/internal/interfaces"
	"go-ao-staking/internal/metrics"
	"go-ao-staking/internal/models"
)

// Ensure BigCache implements interfaces.Cache
var _ interfaces.Cache = (*BigCache)(nil)

const metricsInterval = 30 * time.Second

// BigCache implements L1 cache using BigCache
type BigCache struct {
	cache  *bigcache.BigCache
	clock  clock.Clock
	logger *zap.Logger

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewBigCache creates a new BigCache instance.
// sizeMB bounds memory, lifeWindow must outlive the longest TTL stored.
func NewBigCache(sizeMB int, lifeWindow time.Duration, clk clock.Clock, logger *zap.Logger) (interfaces.Cache, error) {
	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.HardMaxCacheSize = sizeMB
	cfg.Verbose = false
	cfg.MaxEntrySize = 1024 * 1024 // 1MB max entry size
	// expiry is enforced on read
	cfg.CleanWindow = 0

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	bc := &BigCache{
		cache:  cache,
		clock:  clk,
		logger: logger,
		stop:   make(chan struct{}),
	}

	bc.startMetricsCollection()

	return bc, nil
}

// Get retrieves a live entry, expired entries are deleted and reported as a miss
func (bc *BigCache) Get(key string) (*models.CacheEntry, bool) {
	data, err := bc.cache.Get(key)
	if err != nil {
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		bc.logger.Warn("Failed to unmarshal L1 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "decode")
		_ = bc.cache.Delete(key) // Remove corrupted entry
		return nil, false
	}

	if entry.IsExpiredAt(bc.clock.Now()) {
		_ = bc.cache.Delete(key)
		return nil, false
	}

	return &entry, true
}

// Set stores value in cache with TTL, replacing any previous entry
func (bc *BigCache) Set(key string, val []byte, ttl time.Duration) {
	entry := models.NewCacheEntry(val, bc.clock.Now(), ttl)

	data, err := json.Marshal(entry)
	if err != nil {
		bc.logger.Error("Failed to marshal cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "encode")
		return
	}

	if err := bc.cache.Set(key, data); err != nil {
		bc.logger.Error("Failed to set cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "upstream")
	}
}

// Delete removes entry from cache
func (bc *BigCache) Delete(key string) {
	_ = bc.cache.Delete(key)
}

// Close stops metrics collection and releases the cache
func (bc *BigCache) Close() error {
	close(bc.stop)
	bc.wg.Wait()
	bc.logger.Debug("Stopped L1 cache metrics collection")

	return bc.cache.Close()
}

func (bc *BigCache) startMetricsCollection() {
	bc.updateMetrics()

	ticker := bc.clock.Ticker(metricsInterval)
	bc.wg.Add(1)
	go func() {
		defer bc.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				bc.updateMetrics()
			case <-bc.stop:
				return
			}
		}
	}()

	bc.logger.Debug("Started L1 cache metrics collection")
}

func (bc *BigCache) updateMetrics() {
	metrics.UpdateL1CacheCapacity(int64(bc.cache.Capacity()))
	metrics.UpdateCacheKeys("l1", int64(bc.cache.Len()))
}
