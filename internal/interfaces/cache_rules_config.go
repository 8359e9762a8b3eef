package interfaces

import (
	"time"

	"go-ao-staking/internal/models"
)

//go:generate mockgen -package=mock -source=cache_rules_config.go -destination=mock/cache_rules_config.go

// CacheRulesConfig gives access to the loaded cache rules
type CacheRulesConfig interface {
	// GetPresetForAction returns the preset configured for an action
	GetPresetForAction(action string) models.TTLPreset
	// GetTtlForPreset returns the duration of a preset, honoring overrides
	GetTtlForPreset(preset models.TTLPreset) time.Duration
}
