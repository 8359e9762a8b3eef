package interfaces

import (
	"time"

	"go-ao-staking/internal/models"
)

//go:generate mockgen -package=mock -source=cache.go -destination=mock/cache.go

// Cache interface defines the contract for cache implementations
type Cache interface {
	Get(key string) (*models.CacheEntry, bool) // returns entry and found flag, expired entries are misses
	Set(key string, val []byte, ttl time.Duration)
	Delete(key string)
}

// LevelResult is a cache hit annotated with the level that served it
type LevelResult struct {
	Entry *models.CacheEntry
	Found bool
	Level models.CacheLevel
	// Age is how long ago the entry was stored
	Age time.Duration
}

// LevelAwareCache is a cache composed of several levels
type LevelAwareCache interface {
	Cache
	GetWithLevel(key string) LevelResult
}
