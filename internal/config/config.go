package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config represents the main configuration structure
type Config struct {
	Processes  ProcessesConfig  `yaml:"processes"`
	Transport  TransportConfig  `yaml:"transport"`
	Signer     SignerConfig     `yaml:"signer"`
	Retry      RetryConfig      `yaml:"retry"`
	L1         L1Config         `yaml:"l1"`
	L2         L2Config         `yaml:"l2"`
	MultiCache MultiCacheConfig `yaml:"multi_cache"`
	Poller     PollerConfig     `yaml:"poller"`
	HTTP       HTTPConfig       `yaml:"http"`
	Operations OperationsConfig `yaml:"operations"`
}

// ProcessesConfig holds the ids of the processes the dashboard talks to
type ProcessesConfig struct {
	Staking string `yaml:"staking" validate:"required"`
	Rewards string `yaml:"rewards" validate:"required"`
	Token   string `yaml:"token" validate:"required"`
}

// TransportConfig configures the messenger and compute unit endpoints
type TransportConfig struct {
	MUURL          string `yaml:"mu_url" validate:"required,url"`
	CUURL          string `yaml:"cu_url" validate:"required,url"`
	ReadMode       string `yaml:"read_mode" validate:"oneof=dryrun message"`
	DryRunOwner    string `yaml:"dry_run_owner"`
	RequestTimeout int    `yaml:"request_timeout"` // milliseconds
	PollInterval   int    `yaml:"poll_interval"`   // milliseconds
	PollTimeout    int    `yaml:"poll_timeout"`    // milliseconds
}

// SignerConfig configures the remote signing relay used for writes
type SignerConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url" validate:"omitempty,url"`
	Timeout int    `yaml:"timeout"` // milliseconds
}

// RetryConfig configures the retry policy for network round trips
type RetryConfig struct {
	Attempts  int `yaml:"attempts" validate:"min=1,max=10"`
	BaseDelay int `yaml:"base_delay"` // milliseconds
	MaxDelay  int `yaml:"max_delay"`  // milliseconds
}

// L1Config configures the in-process cache
type L1Config struct {
	Enabled    bool `yaml:"enabled"`
	Size       int  `yaml:"size"`        // megabytes
	LifeWindow int  `yaml:"life_window"` // seconds
}

// ConnectionConfig holds KeyDB connection timeouts in milliseconds
type ConnectionConfig struct {
	ConnectTimeout int `yaml:"connect_timeout"`
	SendTimeout    int `yaml:"send_timeout"`
	ReadTimeout    int `yaml:"read_timeout"`
}

// KeepaliveConfig holds KeyDB pool settings
type KeepaliveConfig struct {
	PoolSize       int `yaml:"pool_size"`
	MaxIdleTimeout int `yaml:"max_idle_timeout"` // milliseconds
}

// CacheConfig bounds what is written to KeyDB
type CacheConfig struct {
	MaxTTL int `yaml:"max_ttl"` // seconds
}

// L2Config configures the shared KeyDB cache
type L2Config struct {
	Enabled    bool             `yaml:"enabled"`
	Connection ConnectionConfig `yaml:"connection"`
	Keepalive  KeepaliveConfig  `yaml:"keepalive"`
	Cache      CacheConfig      `yaml:"cache"`
}

// MultiCacheConfig configures how cache levels interact
type MultiCacheConfig struct {
	EnablePropagation bool `yaml:"enable_propagation"`
}

// PollerConfig holds refresh intervals in seconds
type PollerConfig struct {
	ProtocolMetricsInterval int `yaml:"protocol_metrics_interval"`
	RewardsSummaryInterval  int `yaml:"rewards_summary_interval"`
}

// HTTPConfig configures the API server
type HTTPConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// OperationsConfig configures pending operation tracking
type OperationsConfig struct {
	HistorySize int `yaml:"history_size" validate:"min=1"`
	Timeout     int `yaml:"timeout"` // milliseconds
}

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	// Apply defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Signer.Enabled && c.Signer.URL == "" {
		return fmt.Errorf("invalid configuration: signer.url is required when the signer is enabled")
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Transport.ReadMode == "" {
		c.Transport.ReadMode = "dryrun"
	}
	if c.Transport.DryRunOwner == "" {
		c.Transport.DryRunOwner = "1234"
	}
	if c.Transport.RequestTimeout == 0 {
		c.Transport.RequestTimeout = 10000
	}
	if c.Transport.PollInterval == 0 {
		c.Transport.PollInterval = 500
	}
	if c.Transport.PollTimeout == 0 {
		c.Transport.PollTimeout = 15000
	}

	if c.Signer.Timeout == 0 {
		c.Signer.Timeout = 5000
	}

	if c.Retry.Attempts == 0 {
		c.Retry.Attempts = 3
	}
	if c.Retry.BaseDelay == 0 {
		c.Retry.BaseDelay = 200
	}
	if c.Retry.MaxDelay == 0 {
		c.Retry.MaxDelay = 2000
	}

	if c.L1.Size == 0 {
		c.L1.Size = 100
	}
	if c.L1.LifeWindow == 0 {
		c.L1.LifeWindow = 7200
	}

	if c.L2.Connection.ConnectTimeout == 0 {
		c.L2.Connection.ConnectTimeout = 1000
	}
	if c.L2.Connection.SendTimeout == 0 {
		c.L2.Connection.SendTimeout = 1000
	}
	if c.L2.Connection.ReadTimeout == 0 {
		c.L2.Connection.ReadTimeout = 1000
	}
	if c.L2.Keepalive.PoolSize == 0 {
		c.L2.Keepalive.PoolSize = 10
	}
	if c.L2.Keepalive.MaxIdleTimeout == 0 {
		c.L2.Keepalive.MaxIdleTimeout = 10000
	}
	if c.L2.Cache.MaxTTL == 0 {
		c.L2.Cache.MaxTTL = 86400
	}

	if c.Poller.ProtocolMetricsInterval == 0 {
		c.Poller.ProtocolMetricsInterval = 300
	}
	if c.Poller.RewardsSummaryInterval == 0 {
		c.Poller.RewardsSummaryInterval = 300
	}

	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}

	if c.Operations.HistorySize == 0 {
		c.Operations.HistorySize = 256
	}
	if c.Operations.Timeout == 0 {
		c.Operations.Timeout = 60000
	}
}

// GetConnectTimeout returns the KeyDB connect timeout
func (c *Config) GetConnectTimeout() time.Duration {
	return time.Duration(c.L2.Connection.ConnectTimeout) * time.Millisecond
}

// GetSendTimeout returns the KeyDB send timeout
func (c *Config) GetSendTimeout() time.Duration {
	return time.Duration(c.L2.Connection.SendTimeout) * time.Millisecond
}

// GetReadTimeout returns the KeyDB read timeout
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.L2.Connection.ReadTimeout) * time.Millisecond
}

// GetMaxIdleTimeout returns the KeyDB idle connection timeout
func (c *Config) GetMaxIdleTimeout() time.Duration {
	return time.Duration(c.L2.Keepalive.MaxIdleTimeout) * time.Millisecond
}

// GetMaxTTL returns the longest TTL written to KeyDB
func (c *Config) GetMaxTTL() time.Duration {
	return time.Duration(c.L2.Cache.MaxTTL) * time.Second
}

// GetLifeWindow returns the bigcache eviction window
func (c *Config) GetLifeWindow() time.Duration {
	return time.Duration(c.L1.LifeWindow) * time.Second
}

// GetRequestTimeout returns the per-request HTTP timeout for the transport
func (c *Config) GetRequestTimeout() time.Duration {
	return time.Duration(c.Transport.RequestTimeout) * time.Millisecond
}

// GetPollInterval returns the delay between result polls
func (c *Config) GetPollInterval() time.Duration {
	return time.Duration(c.Transport.PollInterval) * time.Millisecond
}

// GetPollTimeout returns how long a result is polled before giving up
func (c *Config) GetPollTimeout() time.Duration {
	return time.Duration(c.Transport.PollTimeout) * time.Millisecond
}

// GetSignerTimeout returns the signer relay request timeout
func (c *Config) GetSignerTimeout() time.Duration {
	return time.Duration(c.Signer.Timeout) * time.Millisecond
}

// GetRetryBaseDelay returns the first backoff delay
func (c *Config) GetRetryBaseDelay() time.Duration {
	return time.Duration(c.Retry.BaseDelay) * time.Millisecond
}

// GetRetryMaxDelay returns the backoff cap
func (c *Config) GetRetryMaxDelay() time.Duration {
	return time.Duration(c.Retry.MaxDelay) * time.Millisecond
}

// GetProtocolMetricsInterval returns the protocol metrics refresh interval
func (c *Config) GetProtocolMetricsInterval() time.Duration {
	return time.Duration(c.Poller.ProtocolMetricsInterval) * time.Second
}

// GetRewardsSummaryInterval returns the rewards summary refresh interval
func (c *Config) GetRewardsSummaryInterval() time.Duration {
	return time.Duration(c.Poller.RewardsSummaryInterval) * time.Second
}

// GetOperationTimeout returns how long a pending operation may run
func (c *Config) GetOperationTimeout() time.Duration {
	return time.Duration(c.Operations.Timeout) * time.Millisecond
}
