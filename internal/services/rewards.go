package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"go-ao-staking/internal/interfaces"
	"go-ao-staking/internal/models"
	"go-ao-staking/internal/utils"
)

// RewardsService reads and claims staking rewards
type RewardsService struct {
	client         interfaces.MessageClient
	rules          interfaces.CacheRulesClassifier
	rewardsProcess string
	logger         *zap.Logger
}

// NewRewardsService creates a new RewardsService
func NewRewardsService(client interfaces.MessageClient, rules interfaces.CacheRulesClassifier, rewardsProcess string, logger *zap.Logger) *RewardsService {
	return &RewardsService{
		client:         client,
		rules:          rules,
		rewardsProcess: rewardsProcess,
		logger:         logger,
	}
}

// GetUserRewards returns the rewards of address, nil when the process knows nothing about it
func (s *RewardsService) GetUserRewards(ctx context.Context, address string) (*models.UserRewards, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", models.ErrInvalidRequest)
	}

	req := &models.Request{
		ProcessID: s.rewardsProcess,
		Tags: models.Tags{
			{Name: models.TagAction, Value: models.ActionGetUserRewards},
			{Name: models.TagUser, Value: address},
		},
		TTL:           s.rules.TTLForAction(models.ActionGetUserRewards),
		Discriminator: address,
	}

	resp, err := s.client.SendAndGetResult(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user rewards: %w", err)
	}

	var rewards models.UserRewards
	if err := utils.DecodeMessageData(resp, &rewards); err != nil {
		if errors.Is(err, models.ErrMissingData) {
			s.logger.Info("No rewards data for user", zap.String("address", address))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse user rewards: %w", err)
	}

	if rewards.Address == "" {
		rewards.Address = address
	}
	if err := formatUserRewards(&rewards); err != nil {
		return nil, fmt.Errorf("failed to format user rewards: %w", err)
	}

	return &rewards, nil
}

// GetRewardsSummary returns the protocol wide rewards summary, nil when none is available
func (s *RewardsService) GetRewardsSummary(ctx context.Context) (*models.RewardsSummary, error) {
	req := &models.Request{
		ProcessID: s.rewardsProcess,
		Tags:      models.Tags{{Name: models.TagAction, Value: models.ActionGetRewardsSummary}},
		TTL:       s.rules.TTLForAction(models.ActionGetRewardsSummary),
	}

	resp, err := s.client.SendAndGetResult(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rewards summary: %w", err)
	}

	var summary models.RewardsSummary
	if err := utils.DecodeMessageData(resp, &summary); err != nil {
		if errors.Is(err, models.ErrMissingData) {
			s.logger.Info("No rewards summary data", zap.String("process", s.rewardsProcess))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse rewards summary: %w", err)
	}

	if summary.FormattedTotalDistributed, err = utils.FormatAmount(summary.TotalDistributed, models.ProtocolDenomination); err != nil {
		return nil, fmt.Errorf("failed to format total distributed: %w", err)
	}
	if summary.FormattedCurrentRewardRate, err = utils.FormatAmount(summary.CurrentRewardRate, models.ProtocolDenomination); err != nil {
		return nil, fmt.Errorf("failed to format reward rate: %w", err)
	}

	return &summary, nil
}

// ClaimRewards sends a claim for address and returns the claimed amount.
// An Error tag in the reply is returned as models.ErrProcess.
func (s *RewardsService) ClaimRewards(ctx context.Context, address string) (*models.ClaimResult, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", models.ErrInvalidRequest)
	}

	req := &models.Request{
		ProcessID: s.rewardsProcess,
		Tags: models.Tags{
			{Name: models.TagAction, Value: models.ActionClaimRewards},
			{Name: models.TagUser, Value: address},
		},
		IsWrite: true,
	}

	resp, err := s.client.SendAndGetResult(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to claim rewards: %w", err)
	}

	if reason, failed := utils.ProcessError(resp); failed {
		return nil, fmt.Errorf("%w: %s", models.ErrProcess, reason)
	}

	msg, ok := resp.First()
	if !ok {
		return nil, fmt.Errorf("claim reply has no messages: %w", models.ErrMissingData)
	}
	amount, ok := msg.Tags.Get(models.TagAmount)
	if !ok {
		return nil, fmt.Errorf("claim reply has no %s tag: %w", models.TagAmount, models.ErrMissingData)
	}

	formatted, err := utils.FormatAmount(amount, models.ProtocolDenomination)
	if err != nil {
		return nil, fmt.Errorf("invalid claimed amount: %w", err)
	}

	s.logger.Info("Rewards claimed",
		zap.String("address", address),
		zap.String("amount", amount))

	return &models.ClaimResult{
		Address:         address,
		Amount:          amount,
		FormattedAmount: formatted,
	}, nil
}

func formatUserRewards(r *models.UserRewards) error {
	var err error
	if r.FormattedPendingRewards, err = utils.FormatAmount(r.PendingRewards, models.ProtocolDenomination); err != nil {
		return fmt.Errorf("pending rewards: %w", err)
	}
	if r.FormattedClaimedRewards, err = utils.FormatAmount(r.ClaimedRewards, models.ProtocolDenomination); err != nil {
		return fmt.Errorf("claimed rewards: %w", err)
	}
	for token, stake := range r.Stakes {
		if stake.FormattedStaked, err = utils.FormatAmount(stake.Staked, models.ProtocolDenomination); err != nil {
			return fmt.Errorf("stake %s: %w", token, err)
		}
		if stake.FormattedPending, err = utils.FormatAmount(stake.Pending, models.ProtocolDenomination); err != nil {
			return fmt.Errorf("stake %s: %w", token, err)
		}
		r.Stakes[token] = stake
	}
	return nil
}
