package cache_rules

import (
	"time"

	"go.uber.org/zap"

	"go-ao-staking/internal/interfaces"
	"go-ao-staking/internal/models"
)

// Classifier implements the CacheRulesClassifier interface
type Classifier struct {
	logger    *zap.Logger
	configTTL interfaces.CacheRulesConfig
}

// Ensure Classifier implements the CacheRulesClassifier interface
var _ interfaces.CacheRulesClassifier = (*Classifier)(nil)

// NewClassifier creates a new Classifier instance
func NewClassifier(logger *zap.Logger, configTTL interfaces.CacheRulesConfig) *Classifier {
	return &Classifier{
		logger:    logger,
		configTTL: configTTL,
	}
}

// PresetForAction implements CacheRulesClassifier interface
func (c *Classifier) PresetForAction(action string) models.TTLPreset {
	return c.configTTL.GetPresetForAction(action)
}

// TTLForAction implements CacheRulesClassifier interface
func (c *Classifier) TTLForAction(action string) time.Duration {
	preset := c.configTTL.GetPresetForAction(action)
	if preset == models.TTLPresetNone {
		return 0
	}

	ttl := c.configTTL.GetTtlForPreset(preset)
	if ttl <= 0 {
		if c.logger != nil {
			c.logger.Debug("Preset resolved to no ttl",
				zap.String("action", action),
				zap.String("preset", string(preset)))
		}
		return 0
	}

	return ttl
}
