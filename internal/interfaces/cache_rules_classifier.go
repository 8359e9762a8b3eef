package interfaces

import (
	"time"

	"go-ao-staking/internal/models"
)

// CacheRulesClassifier decides how long the result of a process action may be cached
type CacheRulesClassifier interface {
	// TTLForAction returns the TTL for an action, zero means the action is not cached
	TTLForAction(action string) time.Duration
	// PresetForAction returns the preset name configured for an action
	PresetForAction(action string) models.TTLPreset
}
