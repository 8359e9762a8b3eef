package main

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultConfigPath    = "/app/staking_config.yaml"
	defaultKeyDBURLFile  = "/app/.keydb-url"
	defaultKeyDBURL      = "redis://keydb:6379"
	envConfigFile        = "STAKING_CONFIG_FILE"
	envCacheRulesFile    = "CACHE_RULES_FILE"
	envKeyDBURL          = "KEYDB_URL"
	envKeyDBURLFile      = "CACHE_KEYDB_URL_FILE"
	envJWTSecret         = "JWT_SECRET"
	envTokenIssuerSecret = "TOKEN_ISSUER_SECRET"
	envSignerJWTSecret   = "SIGNER_JWT_SECRET"
)

// GetKeyDBURL returns KeyDB URL with the following priority:
// 1. KEYDB_URL environment variable
// 2. CACHE_KEYDB_URL_FILE file content
// 3. Default value
func GetKeyDBURL(logger *zap.Logger) string {
	if keydbURL := os.Getenv(envKeyDBURL); keydbURL != "" {
		logger.Debug("Using KeyDB URL from environment variable")
		return keydbURL
	}

	connectionFile := os.Getenv(envKeyDBURLFile)
	if connectionFile == "" {
		connectionFile = defaultKeyDBURLFile
	}

	if content, err := os.ReadFile(connectionFile); err == nil {
		keydbURL := strings.TrimSpace(string(content))
		if len(keydbURL) > 0 {
			logger.Debug("Using KeyDB URL from connection file", zap.String("file", connectionFile))
			return keydbURL
		}
	} else {
		logger.Debug("KeyDB connection file not found or empty", zap.String("file", connectionFile))
	}

	logger.Debug("Using default KeyDB URL")
	return defaultKeyDBURL
}

// GetConfigPath returns the staking config path from STAKING_CONFIG_FILE or the default
func GetConfigPath() string {
	if path := os.Getenv(envConfigFile); path != "" {
		return path
	}
	return defaultConfigPath
}

// GetCacheRulesPath returns CACHE_RULES_FILE; empty means built-in rules
func GetCacheRulesPath() string {
	return os.Getenv(envCacheRulesFile)
}
