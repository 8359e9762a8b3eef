package config

import (
	"os"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func createTestConfigFile(t *testing.T, content string) string {
	tmpFile, err := os.CreateTemp("", "staking_config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}

	if err := tmpFile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	return tmpFile.Name()
}

const minimalProcesses = `
processes:
  staking: "staking-pid"
  rewards: "rewards-pid"
  token: "token-pid"

transport:
  mu_url: "https://mu.ao-testnet.xyz"
  cu_url: "https://cu.ao-testnet.xyz"
`

func TestLoadConfig(t *testing.T) {
	logger := zaptest.NewLogger(t)

	validConfig := minimalProcesses + `
  read_mode: message
  poll_interval: 250
  poll_timeout: 5000

retry:
  attempts: 5
  base_delay: 50

l1:
  enabled: true
  size: 200

l2:
  enabled: true
  connection:
    connect_timeout: 2000
    send_timeout: 2000
    read_timeout: 2000
  keepalive:
    pool_size: 20
    max_idle_timeout: 20000
  cache:
    max_ttl: 172800

poller:
  protocol_metrics_interval: 60

http:
  addr: ":9090"
`

	configFile := createTestConfigFile(t, validConfig)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, logger)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Processes.Staking != "staking-pid" {
		t.Errorf("LoadConfig() Processes.Staking = %v, want staking-pid", config.Processes.Staking)
	}
	if config.Transport.ReadMode != "message" {
		t.Errorf("LoadConfig() Transport.ReadMode = %v, want message", config.Transport.ReadMode)
	}
	if config.GetPollInterval() != 250*time.Millisecond {
		t.Errorf("LoadConfig() PollInterval = %v, want 250ms", config.GetPollInterval())
	}
	if config.Retry.Attempts != 5 {
		t.Errorf("LoadConfig() Retry.Attempts = %v, want 5", config.Retry.Attempts)
	}

	// Test L1 config
	if !config.L1.Enabled {
		t.Errorf("LoadConfig() L1.Enabled = false, want true")
	}
	if config.L1.Size != 200 {
		t.Errorf("LoadConfig() L1.Size = %v, want 200", config.L1.Size)
	}

	// Test L2 config
	if !config.L2.Enabled {
		t.Errorf("LoadConfig() L2.Enabled = false, want true")
	}
	if config.L2.Connection.ConnectTimeout != 2000 {
		t.Errorf("LoadConfig() L2.Connection.ConnectTimeout = %v, want 2000", config.L2.Connection.ConnectTimeout)
	}
	if config.L2.Keepalive.PoolSize != 20 {
		t.Errorf("LoadConfig() L2.Keepalive.PoolSize = %v, want 20", config.L2.Keepalive.PoolSize)
	}
	if config.L2.Cache.MaxTTL != 172800 {
		t.Errorf("LoadConfig() L2.Cache.MaxTTL = %v, want 172800", config.L2.Cache.MaxTTL)
	}

	if config.GetProtocolMetricsInterval() != time.Minute {
		t.Errorf("LoadConfig() ProtocolMetricsInterval = %v, want 1m", config.GetProtocolMetricsInterval())
	}
	if config.HTTP.Addr != ":9090" {
		t.Errorf("LoadConfig() HTTP.Addr = %v, want :9090", config.HTTP.Addr)
	}
}

func TestLoadConfig_WithDefaults(t *testing.T) {
	logger := zaptest.NewLogger(t)

	configFile := createTestConfigFile(t, minimalProcesses)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, logger)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Transport.ReadMode != "dryrun" {
		t.Errorf("LoadConfig() Transport.ReadMode = %v, want dryrun (default)", config.Transport.ReadMode)
	}
	if config.Retry.Attempts != 3 {
		t.Errorf("LoadConfig() Retry.Attempts = %v, want 3 (default)", config.Retry.Attempts)
	}
	if config.L1.Size != 100 {
		t.Errorf("LoadConfig() L1.Size = %v, want 100 (default)", config.L1.Size)
	}
	if config.L2.Connection.ConnectTimeout != 1000 {
		t.Errorf("LoadConfig() L2.Connection.ConnectTimeout = %v, want 1000 (default)", config.L2.Connection.ConnectTimeout)
	}
	if config.GetRewardsSummaryInterval() != 5*time.Minute {
		t.Errorf("LoadConfig() RewardsSummaryInterval = %v, want 5m (default)", config.GetRewardsSummaryInterval())
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	logger := zaptest.NewLogger(t)

	_, err := LoadConfig("/nonexistent/file.yaml", logger)
	if err == nil {
		t.Fatal("LoadConfig() should return error for nonexistent file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	logger := zaptest.NewLogger(t)

	invalidConfig := `
l1:
  enabled: true
  invalid yaml syntax [
`

	configFile := createTestConfigFile(t, invalidConfig)
	defer os.Remove(configFile)

	_, err := LoadConfig(configFile, logger)
	if err == nil {
		t.Fatal("LoadConfig() should return error for invalid YAML")
	}
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	logger := zaptest.NewLogger(t)

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing processes",
			content: `
transport:
  mu_url: "https://mu.ao-testnet.xyz"
  cu_url: "https://cu.ao-testnet.xyz"
`,
		},
		{
			name: "invalid cu url",
			content: `
processes:
  staking: "a"
  rewards: "b"
  token: "c"
transport:
  mu_url: "https://mu.ao-testnet.xyz"
  cu_url: "not a url"
`,
		},
		{
			name:    "unknown read mode",
			content: minimalProcesses + "  read_mode: websocket\n",
		},
		{
			name:    "too many attempts",
			content: minimalProcesses + "retry:\n  attempts: 50\n",
		},
		{
			name:    "signer enabled without url",
			content: minimalProcesses + "signer:\n  enabled: true\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := createTestConfigFile(t, tt.content)
			defer os.Remove(configFile)

			if _, err := LoadConfig(configFile, logger); err == nil {
				t.Fatalf("LoadConfig() should return a validation error")
			}
		})
	}
}

func TestConfig_TimeoutMethods(t *testing.T) {
	config := &Config{
		Transport: TransportConfig{
			RequestTimeout: 4000,
			PollInterval:   100,
			PollTimeout:    9000,
		},
		Retry: RetryConfig{
			BaseDelay: 10,
			MaxDelay:  90,
		},
		L2: L2Config{
			Connection: ConnectionConfig{
				ConnectTimeout: 1500,
				SendTimeout:    2500,
				ReadTimeout:    3500,
			},
			Keepalive: KeepaliveConfig{
				MaxIdleTimeout: 15000,
			},
			Cache: CacheConfig{
				MaxTTL: 86400,
			},
		},
	}

	tests := []struct {
		name     string
		method   func() time.Duration
		expected time.Duration
	}{
		{name: "GetConnectTimeout", method: config.GetConnectTimeout, expected: 1500 * time.Millisecond},
		{name: "GetSendTimeout", method: config.GetSendTimeout, expected: 2500 * time.Millisecond},
		{name: "GetReadTimeout", method: config.GetReadTimeout, expected: 3500 * time.Millisecond},
		{name: "GetMaxIdleTimeout", method: config.GetMaxIdleTimeout, expected: 15000 * time.Millisecond},
		{name: "GetMaxTTL", method: config.GetMaxTTL, expected: 86400 * time.Second},
		{name: "GetRequestTimeout", method: config.GetRequestTimeout, expected: 4 * time.Second},
		{name: "GetPollInterval", method: config.GetPollInterval, expected: 100 * time.Millisecond},
		{name: "GetPollTimeout", method: config.GetPollTimeout, expected: 9 * time.Second},
		{name: "GetRetryBaseDelay", method: config.GetRetryBaseDelay, expected: 10 * time.Millisecond},
		{name: "GetRetryMaxDelay", method: config.GetRetryMaxDelay, expected: 90 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.method()
			if result != tt.expected {
				t.Errorf("%s() = %v, want %v", tt.name, result, tt.expected)
			}
		})
	}
}

func TestConfig_PartialDefaults(t *testing.T) {
	config := &Config{
		L1: L1Config{
			Size: 250, // Custom value
		},
		L2: L2Config{
			Connection: ConnectionConfig{
				ConnectTimeout: 2000, // Custom value
			},
		},
	}

	config.applyDefaults()

	// Custom values should be preserved
	if config.L1.Size != 250 {
		t.Errorf("applyDefaults() should preserve custom L1.Size = %v", config.L1.Size)
	}
	if config.L2.Connection.ConnectTimeout != 2000 {
		t.Errorf("applyDefaults() should preserve custom L2.Connection.ConnectTimeout = %v", config.L2.Connection.ConnectTimeout)
	}

	// Missing values should get defaults
	if config.L2.Connection.SendTimeout != 1000 {
		t.Errorf("applyDefaults() L2.Connection.SendTimeout = %v, want 1000 (default)", config.L2.Connection.SendTimeout)
	}
	if config.Operations.HistorySize != 256 {
		t.Errorf("applyDefaults() Operations.HistorySize = %v, want 256 (default)", config.Operations.HistorySize)
	}
}
