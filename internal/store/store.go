package store

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-ao-staking/internal/interfaces"
	"go-ao-staking/internal/models"
	"go-ao-staking/internal/poller"
)

// OperationClaim is the kind of a rewards claim operation
const OperationClaim = "claim"

// Config holds the store refresh intervals
type Config struct {
	ProtocolMetricsInterval time.Duration
	RewardsSummaryInterval  time.Duration
}

// Store is the state the dashboard reads: periodically refreshed protocol
// metrics and rewards summary, per-user reads and tracked claims
type Store struct {
	protocolMetrics *poller.Poller[*models.ProtocolMetrics]
	rewardsSummary  *poller.Poller[*models.RewardsSummary]
	rewards         interfaces.RewardsService
	operations      *Operations
	logger          *zap.Logger
}

// New creates a store whose pollers are not yet started
func New(
	cfg Config,
	metricsService interfaces.ProtocolMetricsService,
	rewardsService interfaces.RewardsService,
	operations *Operations,
	clk clock.Clock,
	logger *zap.Logger,
) *Store {
	return &Store{
		protocolMetrics: poller.New[*models.ProtocolMetrics]("protocol_metrics", cfg.ProtocolMetricsInterval, metricsService.GetProtocolMetrics, clk, logger),
		rewardsSummary:  poller.New[*models.RewardsSummary]("rewards_summary", cfg.RewardsSummaryInterval, rewardsService.GetRewardsSummary, clk, logger),
		rewards:         rewardsService,
		operations:      operations,
		logger:          logger,
	}
}

// Warm fetches every polled value concurrently. A failing fetch does not
// cancel the others; all failures are returned together.
func (s *Store) Warm(ctx context.Context) error {
	var (
		g    errgroup.Group
		errs [2]error
	)
	g.Go(func() error {
		if err := s.protocolMetrics.Refresh(ctx); err != nil {
			errs[0] = fmt.Errorf("protocol metrics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.rewardsSummary.Refresh(ctx); err != nil {
			errs[1] = fmt.Errorf("rewards summary: %w", err)
		}
		return nil
	})
	_ = g.Wait()
	return multierr.Combine(errs[:]...)
}

// Start starts both pollers
func (s *Store) Start(ctx context.Context) {
	s.protocolMetrics.Start(ctx)
	s.rewardsSummary.Start(ctx)
}

// Stop stops both pollers and waits for tracked operations to settle
func (s *Store) Stop() {
	s.protocolMetrics.Stop()
	s.rewardsSummary.Stop()
	s.operations.Wait()
}

// ProtocolMetrics returns the current protocol metrics snapshot
func (s *Store) ProtocolMetrics() poller.Snapshot[*models.ProtocolMetrics] {
	return s.protocolMetrics.Snapshot()
}

// RewardsSummary returns the current rewards summary snapshot
func (s *Store) RewardsSummary() poller.Snapshot[*models.RewardsSummary] {
	return s.rewardsSummary.Snapshot()
}

// UserRewards reads the rewards of address through the message client cache
func (s *Store) UserRewards(ctx context.Context, address string) (*models.UserRewards, error) {
	return s.rewards.GetUserRewards(ctx, address)
}

// Claim submits a rewards claim for address and returns the pending operation
func (s *Store) Claim(ctx context.Context, address string) Operation {
	return s.operations.Track(ctx, OperationClaim, address, func(ctx context.Context) (any, error) {
		return s.rewards.ClaimRewards(ctx, address)
	})
}

// Operation returns a tracked operation by id
func (s *Store) Operation(id string) (Operation, bool) {
	return s.operations.Get(id)
}
