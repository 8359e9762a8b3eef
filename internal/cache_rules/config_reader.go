package cache_rules

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"go-ao-staking/internal/models"
)

// LoadCacheRulesConfig loads cache rules from a YAML file on top of the built-in defaults.
// An empty path yields the defaults.
func LoadCacheRulesConfig(rulesPath string, logger *zap.Logger) (*CacheConfig, error) {
	rules := DefaultRules()
	if rulesPath == "" {
		logger.Info("No cache rules file configured, using built-in rules")
		return NewCacheConfig(rules, logger), nil
	}

	logger.Info("Loading cache rules config", zap.String("path", rulesPath))

	file, err := os.Open(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache rules file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var fileRules CacheRulesConfig
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&fileRules); err != nil {
		return nil, fmt.Errorf("failed to decode YAML cache rules: %w", err)
	}

	if err := validateConfig(&fileRules); err != nil {
		return nil, fmt.Errorf("cache rules validation failed: %w", err)
	}

	for preset, ttl := range fileRules.TTLOverrides {
		rules.TTLOverrides[preset] = ttl
	}
	for action, preset := range fileRules.CacheRules {
		rules.CacheRules[action] = preset
	}

	logger.Info("Cache rules config loaded successfully",
		zap.Int("rules", len(rules.CacheRules)),
		zap.Int("overrides", len(rules.TTLOverrides)))

	return NewCacheConfig(rules, logger), nil
}

// validateConfig validates the cache rules configuration structure
func validateConfig(config *CacheRulesConfig) error {
	for preset, ttl := range config.TTLOverrides {
		if preset == models.TTLPresetNone {
			return fmt.Errorf("preset 'none' cannot be overridden")
		}
		if ttl <= 0 {
			return fmt.Errorf("ttl override for '%s' must be positive, got %s", preset, ttl)
		}
	}

	for action := range config.CacheRules {
		if action == "" {
			return fmt.Errorf("cache_rules contains an empty action")
		}
	}

	return nil
}
