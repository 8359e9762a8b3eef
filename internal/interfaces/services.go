package interfaces

import (
	"context"

	"go-ao-staking/internal/models"
)

//go:generate mockgen -package=mock -source=services.go -destination=mock/services.go

// ProtocolMetricsService reads protocol wide metrics
type ProtocolMetricsService interface {
	GetProtocolMetrics(ctx context.Context) (*models.ProtocolMetrics, error)
	GetTreasuryBalance(ctx context.Context) (*models.TreasuryBalance, error)
}

// RewardsService reads and claims rewards
type RewardsService interface {
	GetUserRewards(ctx context.Context, address string) (*models.UserRewards, error)
	GetRewardsSummary(ctx context.Context) (*models.RewardsSummary, error)
	ClaimRewards(ctx context.Context, address string) (*models.ClaimResult, error)
}
