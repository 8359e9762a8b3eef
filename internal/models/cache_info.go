package models

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TTL presets shared by every service. Balances and protocol metrics change
// slowly, per-user rewards move with every distribution.
const (
	TTLMinute      = time.Minute
	TTLFiveMinutes = 5 * time.Minute
	TTLHour        = time.Hour
)

// TTLPreset names one of the TTL presets in cache rules
type TTLPreset string

const (
	TTLPresetMinute      TTLPreset = "minute"
	TTLPresetFiveMinutes TTLPreset = "five_minutes"
	TTLPresetHour        TTLPreset = "hour"
	TTLPresetNone        TTLPreset = "none"
)

// UnmarshalYAML implements custom YAML unmarshaling for TTLPreset
func (p *TTLPreset) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	switch TTLPreset(str) {
	case TTLPresetMinute, TTLPresetFiveMinutes, TTLPresetHour, TTLPresetNone:
		*p = TTLPreset(str)
		return nil
	default:
		return fmt.Errorf("invalid ttl preset '%s': must be one of 'minute', 'five_minutes', 'hour', 'none'", str)
	}
}

// Duration returns the TTL behind the preset, zero for "none" and unknown presets
func (p TTLPreset) Duration() time.Duration {
	switch p {
	case TTLPresetMinute:
		return TTLMinute
	case TTLPresetFiveMinutes:
		return TTLFiveMinutes
	case TTLPresetHour:
		return TTLHour
	default:
		return 0
	}
}

// CacheEntry is a stored response together with its lifetime.
// Timestamps are unix nanoseconds.
type CacheEntry struct {
	Data      []byte `json:"data"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// NewCacheEntry creates an entry stored at now that lives for ttl
func NewCacheEntry(data []byte, now time.Time, ttl time.Duration) CacheEntry {
	return CacheEntry{
		Data:      data,
		CreatedAt: now.UnixNano(),
		ExpiresAt: now.Add(ttl).UnixNano(),
	}
}

// IsExpiredAt reports whether the entry is no longer valid at now.
// An entry is valid while now - created < ttl.
func (e *CacheEntry) IsExpiredAt(now time.Time) bool {
	return now.UnixNano() >= e.ExpiresAt
}

// Age returns how long ago the entry was stored
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return time.Duration(now.UnixNano() - e.CreatedAt)
}

// CacheLevel identifies the cache level that served a hit
type CacheLevel string

const (
	CacheLevelL1   CacheLevel = "L1"
	CacheLevelL2   CacheLevel = "L2"
	CacheLevelMiss CacheLevel = "MISS"
)
