package main

import (
	"context"
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/go-redis/redis/v8"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"go-ao-staking/internal/cache"
	"go-ao-staking/internal/cache/l1"
	"go-ao-staking/internal/cache/l2"
	"go-ao-staking/internal/cache/multi"
	"go-ao-staking/internal/cache/noop"
	"go-ao-staking/internal/cache_rules"
	"go-ao-staking/internal/client"
	"go-ao-staking/internal/config"
	"go-ao-staking/internal/httpserver"
	"go-ao-staking/internal/interfaces"
	"go-ao-staking/internal/retry"
	"go-ao-staking/internal/services"
	"go-ao-staking/internal/signer"
	"go-ao-staking/internal/store"
	"go-ao-staking/internal/transport"
)

// CompositionRoot holds all application dependencies and is the single place
// where they are created, wired and closed.
type CompositionRoot struct {
	// Configuration
	Config     *config.Config
	Logger     *zap.Logger
	Clock      clock.Clock
	CacheRules interfaces.CacheRulesClassifier

	// Cache components
	L1Cache    interfaces.Cache
	L2Cache    interfaces.Cache
	Cache      interfaces.Cache
	KeyBuilder interfaces.KeyBuilder

	// Network
	Signer    interfaces.Signer
	Transport interfaces.Transport
	Client    interfaces.MessageClient

	// Services
	ProtocolMetrics *services.ProtocolMetricsService
	Rewards         *services.RewardsService
	Store           *store.Store
	HTTPServer      *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration and cache rules
// 3. Cache components (L1, L2, multi-level cache, KeyBuilder)
// 4. Network (signer, transport, message client)
// 5. Services and the store
// 6. HTTP Server
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{Clock: clock.New()}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.loadCacheRules(); err != nil {
		return nil, fmt.Errorf("failed to load cache rules: %w", err)
	}

	if err := root.initCacheComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}

	if err := root.initNetwork(); err != nil {
		return nil, fmt.Errorf("failed to initialize network: %w", err)
	}

	if err := root.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	root.initHTTPServer()

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	redis.SetLogger(NewRedisLogger(logger))
	return nil
}

// loadConfig loads the application configuration
func (r *CompositionRoot) loadConfig() error {
	cfg, err := config.LoadConfig(GetConfigPath(), r.Logger)
	if err != nil {
		return err
	}
	r.Config = cfg
	return nil
}

// loadCacheRules loads cache rules configuration
func (r *CompositionRoot) loadCacheRules() error {
	cacheRules, err := cache_rules.LoadCacheRulesConfig(GetCacheRulesPath(), r.Logger)
	if err != nil {
		return err
	}
	r.CacheRules = cache_rules.NewClassifier(r.Logger, cacheRules)
	r.Logger.Info("Cache rules loaded", zap.Strings("actions", cacheRules.GetAllActions()))
	return nil
}

// initCacheComponents initializes all cache-related components
func (r *CompositionRoot) initCacheComponents() error {
	if err := r.initL1Cache(); err != nil {
		return fmt.Errorf("failed to initialize L1 cache: %w", err)
	}

	r.initL2Cache()

	multiCache := multi.NewMultiCache(
		[]interfaces.Cache{r.L1Cache, r.L2Cache},
		r.Config.MultiCache.EnablePropagation,
		r.Clock,
		r.Logger,
	)
	r.Cache = multiCache
	r.Logger.Info("Multi-level cache initialized",
		zap.Int("levels", multiCache.GetCacheCount()),
		zap.Bool("propagation", r.Config.MultiCache.EnablePropagation))
	r.KeyBuilder = cache.NewKeyBuilder()
	return nil
}

// initL1Cache initializes the L1 cache (BigCache)
func (r *CompositionRoot) initL1Cache() error {
	if !r.Config.L1.Enabled {
		r.L1Cache = noop.NewNoOpCache()
		r.Logger.Info("BigCache (L1) disabled")
		return nil
	}

	l1Cache, err := l1.NewBigCache(r.Config.L1.Size, r.Config.GetLifeWindow(), r.Clock, r.Logger)
	if err != nil {
		return err
	}
	r.L1Cache = l1Cache
	r.Logger.Info("BigCache (L1) initialized", zap.Int("size_mb", r.Config.L1.Size))
	return nil
}

// initL2Cache initializes the L2 cache (KeyDB). An unreachable KeyDB degrades to L1 only.
func (r *CompositionRoot) initL2Cache() {
	if !r.Config.L2.Enabled {
		r.L2Cache = noop.NewNoOpCache()
		r.Logger.Info("KeyDB (L2) disabled")
		return
	}

	keydbURL := GetKeyDBURL(r.Logger)
	keydbClient, err := l2.NewRedisKeyDbClient(r.Config, keydbURL, r.Logger)
	if err != nil {
		r.Logger.Warn("Failed to connect to KeyDB, falling back to no L2 cache",
			zap.String("keydb_url", keydbURL),
			zap.Error(err))
		r.L2Cache = noop.NewNoOpCache()
		return
	}

	r.L2Cache = l2.NewKeyDBCache(r.Config, keydbClient, r.Clock, r.Logger)
	r.Logger.Info("KeyDB (L2) initialized", zap.String("keydb_url", keydbURL))
}

// initNetwork initializes the signer, the transport and the message client
func (r *CompositionRoot) initNetwork() error {
	if r.Config.Signer.Enabled {
		r.Signer = signer.NewRemoteSigner(
			r.Config.Signer.URL,
			os.Getenv(envSignerJWTSecret),
			r.Config.GetSignerTimeout(),
			r.Logger,
		)
		r.Logger.Info("Remote signer enabled", zap.String("url", r.Config.Signer.URL))
	} else {
		r.Logger.Info("No signer configured, writes are disabled")
	}

	httpTransport, err := transport.NewHTTPTransport(r.Config, nil, r.Signer, r.Logger)
	if err != nil {
		return err
	}
	r.Transport = httpTransport

	ctx, cancel := context.WithTimeout(context.Background(), r.Config.GetSignerTimeout())
	defer cancel()
	if err := httpTransport.UseSignerOwner(ctx); err != nil {
		r.Logger.Warn("Signer address unavailable, dry-run reads use the configured owner",
			zap.String("owner", r.Config.Transport.DryRunOwner),
			zap.Error(err))
	}

	r.Client = client.NewClient(
		r.Transport,
		r.Cache,
		r.KeyBuilder,
		retry.NewPolicyFromConfig(r.Config, r.Logger),
		r.Config.GetPollInterval(),
		r.Config.GetPollTimeout(),
		r.Logger,
	)
	return nil
}

// initServices initializes the domain services and the store
func (r *CompositionRoot) initServices() error {
	r.ProtocolMetrics = services.NewProtocolMetricsService(
		r.Client,
		r.CacheRules,
		r.Config.Processes.Staking,
		r.Config.Processes.Token,
		r.Logger,
	)
	r.Rewards = services.NewRewardsService(r.Client, r.CacheRules, r.Config.Processes.Rewards, r.Logger)

	operations, err := store.NewOperations(r.Config.Operations.HistorySize, r.Config.GetOperationTimeout(), r.Clock, r.Logger)
	if err != nil {
		return err
	}

	r.Store = store.New(
		store.Config{
			ProtocolMetricsInterval: r.Config.GetProtocolMetricsInterval(),
			RewardsSummaryInterval:  r.Config.GetRewardsSummaryInterval(),
		},
		r.ProtocolMetrics,
		r.Rewards,
		operations,
		r.Clock,
		r.Logger,
	)
	return nil
}

// initHTTPServer initializes the HTTP server
func (r *CompositionRoot) initHTTPServer() {
	r.HTTPServer = httpserver.NewServer(r.Store, httpserver.AuthConfig{
		Secret:       os.Getenv(envJWTSecret),
		IssuerSecret: os.Getenv(envTokenIssuerSecret),
	}, r.Logger)
}

// Cleanup closes every resource and returns all close errors combined
func (r *CompositionRoot) Cleanup() error {
	var err error

	if closer, ok := r.L1Cache.(*l1.BigCache); ok {
		if closeErr := closer.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close L1 cache: %w", closeErr))
		}
	}

	if closer, ok := r.L2Cache.(*l2.KeyDBCache); ok {
		if closeErr := closer.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close L2 cache: %w", closeErr))
		}
	}

	if r.Logger != nil {
		_ = r.Logger.Sync()
	}

	return err
}
