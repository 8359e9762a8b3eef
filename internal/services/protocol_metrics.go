package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"go-ao-staking/internal/interfaces"
	"go-ao-staking/internal/models"
	"go-ao-staking/internal/utils"
)

// ProtocolMetricsService reads protocol wide staking metrics and the treasury balance
type ProtocolMetricsService struct {
	client         interfaces.MessageClient
	rules          interfaces.CacheRulesClassifier
	stakingProcess string
	tokenProcess   string
	logger         *zap.Logger
}

// NewProtocolMetricsService creates a new ProtocolMetricsService
func NewProtocolMetricsService(
	client interfaces.MessageClient,
	rules interfaces.CacheRulesClassifier,
	stakingProcess string,
	tokenProcess string,
	logger *zap.Logger,
) *ProtocolMetricsService {
	return &ProtocolMetricsService{
		client:         client,
		rules:          rules,
		stakingProcess: stakingProcess,
		tokenProcess:   tokenProcess,
		logger:         logger,
	}
}

// GetProtocolMetrics returns the protocol metrics merged with the treasury balance.
// A response without data is an error. A treasury that reports no balance leaves the treasury fields empty.
func (s *ProtocolMetricsService) GetProtocolMetrics(ctx context.Context) (*models.ProtocolMetrics, error) {
	resp, err := s.client.SendAndGetResult(ctx, s.request(models.ActionGetProtocolMetrics, s.stakingProcess))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch protocol metrics: %w", err)
	}

	var metrics models.ProtocolMetrics
	if err := utils.DecodeMessageData(resp, &metrics); err != nil {
		if errors.Is(err, models.ErrMissingData) {
			return nil, fmt.Errorf("protocol metrics response from %s has no Messages[0].Data: %w", s.stakingProcess, err)
		}
		return nil, fmt.Errorf("failed to parse protocol metrics: %w", err)
	}

	if err := formatProtocolMetrics(&metrics); err != nil {
		return nil, fmt.Errorf("failed to format protocol metrics: %w", err)
	}

	treasury, err := s.GetTreasuryBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch treasury balance: %w", err)
	}
	if treasury != nil {
		metrics.TreasuryBalance = treasury.Balance
		metrics.TreasuryDenomination = treasury.Denomination
		metrics.FormattedTreasuryBalance = treasury.FormattedBalance
	}

	return &metrics, nil
}

// GetTreasuryBalance returns the token balance held by the staking process, nil when the token process reports none
func (s *ProtocolMetricsService) GetTreasuryBalance(ctx context.Context) (*models.TreasuryBalance, error) {
	req := s.request(models.ActionBalance, s.tokenProcess)
	req.Tags = append(req.Tags, models.Tag{Name: models.TagTarget, Value: s.stakingProcess})

	resp, err := s.client.SendAndGetResult(ctx, req)
	if err != nil {
		return nil, err
	}

	msg, ok := resp.First()
	if !ok {
		s.logger.Warn("Treasury balance response has no messages", zap.String("token_process", s.tokenProcess))
		return nil, nil
	}

	balance, ok := msg.Tags.Get(models.TagBalance)
	if !ok {
		// some token processes only answer with the balance as data
		balance = strings.TrimSpace(msg.Data)
	}
	if balance == "" {
		s.logger.Warn("Treasury balance response has no balance", zap.String("token_process", s.tokenProcess))
		return nil, nil
	}

	denomination, found, err := utils.TagInt(msg.Tags, models.TagDenomination)
	if err != nil {
		return nil, err
	}
	if !found {
		denomination = models.ProtocolDenomination
	}

	formatted, err := utils.FormatAmount(balance, denomination)
	if err != nil {
		return nil, fmt.Errorf("invalid treasury balance: %w", err)
	}

	ticker, _ := msg.Tags.Get(models.TagTicker)
	return &models.TreasuryBalance{
		Balance:          balance,
		Denomination:     denomination,
		Ticker:           ticker,
		FormattedBalance: formatted,
	}, nil
}

func (s *ProtocolMetricsService) request(action, process string) *models.Request {
	return &models.Request{
		ProcessID: process,
		Tags:      models.Tags{{Name: models.TagAction, Value: action}},
		TTL:       s.rules.TTLForAction(action),
	}
}

func formatProtocolMetrics(m *models.ProtocolMetrics) error {
	for name, token := range m.TokenMetrics {
		denomination := token.Denomination
		if denomination == 0 {
			denomination = models.ProtocolDenomination
		}
		formatted, err := utils.FormatAmount(token.TotalStaked, denomination)
		if err != nil {
			return fmt.Errorf("token %s: %w", name, err)
		}
		token.FormattedTotalStaked = formatted
		m.TokenMetrics[name] = token
	}

	var err error
	if m.ProtocolSettings.FormattedMinStakeAmount, err = utils.FormatAmount(m.ProtocolSettings.MinStakeAmount, models.ProtocolDenomination); err != nil {
		return fmt.Errorf("min stake amount: %w", err)
	}
	if m.ImpermanentLoss.FormattedTotalCompensatedAmount, err = utils.FormatAmount(m.ImpermanentLoss.TotalCompensatedAmount, models.ProtocolDenomination); err != nil {
		return fmt.Errorf("compensated amount: %w", err)
	}
	return nil
}
