package cache_rules

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"go-ao-staking/internal/interfaces"
	"go-ao-staking/internal/models"
)

// CacheConfig implements the CacheRulesConfig interface
type CacheConfig struct {
	config *CacheRulesConfig
	logger *zap.Logger
}

// Ensure CacheConfig implements the CacheRulesConfig interface
var _ interfaces.CacheRulesConfig = (*CacheConfig)(nil)

// NewCacheConfig creates a new CacheConfig instance
func NewCacheConfig(config *CacheRulesConfig, logger *zap.Logger) *CacheConfig {
	if config == nil {
		panic("config cannot be nil")
	}
	return &CacheConfig{
		config: config,
		logger: logger,
	}
}

// GetTtlForPreset implements CacheRulesConfig interface
func (cr *CacheConfig) GetTtlForPreset(preset models.TTLPreset) time.Duration {
	if preset == models.TTLPresetNone {
		return 0
	}
	if ttl, ok := cr.config.TTLOverrides[preset]; ok {
		return ttl
	}
	return preset.Duration()
}

// GetPresetForAction implements CacheRulesConfig interface
func (cr *CacheConfig) GetPresetForAction(action string) models.TTLPreset {
	if action == "" {
		if cr.logger != nil {
			cr.logger.Warn("Empty action provided, returning none preset")
		}
		return models.TTLPresetNone
	}

	if preset, exists := cr.config.CacheRules[action]; exists {
		return preset
	}

	if cr.logger != nil {
		cr.logger.Debug("Action not found in cache rules, returning none preset",
			zap.String("action", action))
	}
	return models.TTLPresetNone
}

// GetAllActions returns all configured actions, sorted
func (cr *CacheConfig) GetAllActions() []string {
	actions := make([]string, 0, len(cr.config.CacheRules))
	for action := range cr.config.CacheRules {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	return actions
}
