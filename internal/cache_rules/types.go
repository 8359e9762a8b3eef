package cache_rules

import (
	"time"

	"go-ao-staking/internal/models"
)

// CacheRulesConfig represents the cache rules configuration
type CacheRulesConfig struct {
	// TTLOverrides replaces the built-in duration of a preset, e.g. "minute: 30s"
	TTLOverrides map[models.TTLPreset]time.Duration `yaml:"ttl_overrides"`
	CacheRules   map[string]models.TTLPreset         `yaml:"cache_rules"`
}

// DefaultRules returns the built-in action rules.
// Balances and protocol metrics change slowly, per-user rewards move with every distribution.
func DefaultRules() *CacheRulesConfig {
	return &CacheRulesConfig{
		TTLOverrides: map[models.TTLPreset]time.Duration{},
		CacheRules: map[string]models.TTLPreset{
			models.ActionGetProtocolMetrics: models.TTLPresetHour,
			models.ActionBalance:            models.TTLPresetHour,
			models.ActionGetUserRewards:     models.TTLPresetFiveMinutes,
			models.ActionGetRewardsSummary:  models.TTLPresetFiveMinutes,
			models.ActionClaimRewards:       models.TTLPresetNone,
		},
	}
}
