package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"go-ao-staking/internal/cache_rules"
	"go-ao-staking/internal/interfaces/mock"
	"go-ao-staking/internal/models"
)

const (
	stakingPID = "staking-pid"
	rewardsPID = "rewards-pid"
	tokenPID   = "token-pid"
)

const metricsData = `{"timestamp":100,"totalStakingPositions":5,
 "tokenMetrics":{"wAR-pid":{"name":"wAR","totalStaked":"1000000000000","activePositions":3,"denomination":12}},
 "protocolSettings":{"stakingEnabled":true,"minStakeAmount":"100000000","lockPeriod":86400,"ilCompensationEnabled":true},
 "impermanentLoss":{"totalCompensations":2,"totalCompensatedAmount":"300000000"}}`

func testRules() *cache_rules.Classifier {
	return cache_rules.NewClassifier(zap.NewNop(), cache_rules.NewCacheConfig(cache_rules.DefaultRules(), zap.NewNop()))
}

// actionIs matches requests by their Action tag
type actionIs string

func (a actionIs) Matches(x any) bool {
	req, ok := x.(*models.Request)
	return ok && req.Tags.Action() == string(a)
}

func (a actionIs) String() string {
	return "request with Action " + string(a)
}

func balanceResponse(balance, denomination string) *models.Response {
	return &models.Response{Messages: []models.Message{{
		Data: "",
		Tags: models.Tags{
			{Name: models.TagBalance, Value: balance},
			{Name: models.TagDenomination, Value: denomination},
		},
	}}}
}

func TestGetProtocolMetrics_MergesTreasury(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockMessageClient(ctrl)
	client.EXPECT().
		SendAndGetResult(gomock.Any(), actionIs(models.ActionGetProtocolMetrics)).
		DoAndReturn(func(_ context.Context, req *models.Request) (*models.Response, error) {
			assert.Equal(t, stakingPID, req.ProcessID)
			assert.Equal(t, models.TTLHour, req.TTL)
			assert.False(t, req.IsWrite)
			return &models.Response{Messages: []models.Message{{Data: metricsData}}}, nil
		})
	client.EXPECT().
		SendAndGetResult(gomock.Any(), actionIs(models.ActionBalance)).
		DoAndReturn(func(_ context.Context, req *models.Request) (*models.Response, error) {
			assert.Equal(t, tokenPID, req.ProcessID)
			assert.Equal(t, models.TTLHour, req.TTL)
			target, _ := req.Tags.Get(models.TagTarget)
			assert.Equal(t, stakingPID, target)
			return balanceResponse("500000000", "8"), nil
		})

	svc := NewProtocolMetricsService(client, testRules(), stakingPID, tokenPID, zaptest.NewLogger(t))
	metrics, err := svc.GetProtocolMetrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(100), metrics.Timestamp)
	assert.Equal(t, 5, metrics.TotalStakingPositions)
	assert.Equal(t, "500000000", metrics.TreasuryBalance)
	assert.Equal(t, 8, metrics.TreasuryDenomination)
	assert.Equal(t, "5", metrics.FormattedTreasuryBalance)

	token := metrics.TokenMetrics["wAR-pid"]
	assert.Equal(t, "1000000000000", token.TotalStaked)
	assert.Equal(t, "1", token.FormattedTotalStaked)
	assert.Equal(t, "1", metrics.ProtocolSettings.FormattedMinStakeAmount)
	assert.Equal(t, "3", metrics.ImpermanentLoss.FormattedTotalCompensatedAmount)
}

func TestGetProtocolMetrics_MissingData(t *testing.T) {
	responses := map[string]*models.Response{
		"no messages": {Messages: []models.Message{}},
		"empty data":  {Messages: []models.Message{{Data: ""}}},
	}

	for name, resp := range responses {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockMessageClient(ctrl)
			client.EXPECT().SendAndGetResult(gomock.Any(), actionIs(models.ActionGetProtocolMetrics)).Return(resp, nil)

			svc := NewProtocolMetricsService(client, testRules(), stakingPID, tokenPID, zaptest.NewLogger(t))
			metrics, err := svc.GetProtocolMetrics(context.Background())

			assert.Nil(t, metrics)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrMissingData)
			assert.Contains(t, err.Error(), "Messages[0].Data")
		})
	}
}

func TestGetProtocolMetrics_Malformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockMessageClient(ctrl)
	client.EXPECT().
		SendAndGetResult(gomock.Any(), actionIs(models.ActionGetProtocolMetrics)).
		Return(&models.Response{Messages: []models.Message{{Data: "{not json"}}}, nil)

	svc := NewProtocolMetricsService(client, testRules(), stakingPID, tokenPID, zaptest.NewLogger(t))
	_, err := svc.GetProtocolMetrics(context.Background())

	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}

func TestGetProtocolMetrics_TreasuryFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failure := errors.New("compute unit unavailable")
	client := mock.NewMockMessageClient(ctrl)
	client.EXPECT().
		SendAndGetResult(gomock.Any(), actionIs(models.ActionGetProtocolMetrics)).
		Return(&models.Response{Messages: []models.Message{{Data: metricsData}}}, nil)
	client.EXPECT().SendAndGetResult(gomock.Any(), actionIs(models.ActionBalance)).Return(nil, failure)

	svc := NewProtocolMetricsService(client, testRules(), stakingPID, tokenPID, zaptest.NewLogger(t))
	_, err := svc.GetProtocolMetrics(context.Background())

	assert.ErrorIs(t, err, failure)
}

func TestGetProtocolMetrics_TreasuryAbsentDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockMessageClient(ctrl)
	client.EXPECT().
		SendAndGetResult(gomock.Any(), actionIs(models.ActionGetProtocolMetrics)).
		Return(&models.Response{Messages: []models.Message{{Data: metricsData}}}, nil)
	client.EXPECT().SendAndGetResult(gomock.Any(), actionIs(models.ActionBalance)).Return(&models.Response{}, nil)

	svc := NewProtocolMetricsService(client, testRules(), stakingPID, tokenPID, zaptest.NewLogger(t))
	metrics, err := svc.GetProtocolMetrics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, metrics.TotalStakingPositions)
	assert.Empty(t, metrics.TreasuryBalance)
	assert.Empty(t, metrics.FormattedTreasuryBalance)
}

func TestGetProtocolMetrics_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockMessageClient(ctrl)
	client.EXPECT().SendAndGetResult(gomock.Any(), gomock.Any()).Return(nil, models.ErrResultNotReady)

	svc := NewProtocolMetricsService(client, testRules(), stakingPID, tokenPID, zaptest.NewLogger(t))
	_, err := svc.GetProtocolMetrics(context.Background())

	assert.ErrorIs(t, err, models.ErrResultNotReady)
}

func TestGetTreasuryBalance(t *testing.T) {
	tests := []struct {
		name      string
		resp      *models.Response
		expected  *models.TreasuryBalance
		wantError bool
	}{
		{
			name:     "balance and denomination tags",
			resp:     balanceResponse("123400000000", "8"),
			expected: &models.TreasuryBalance{Balance: "123400000000", Denomination: 8, FormattedBalance: "1.23K"},
		},
		{
			name: "first matching tag wins, ticker kept",
			resp: &models.Response{Messages: []models.Message{{Tags: models.Tags{
				{Name: "Balance", Value: "700000000000000000"},
				{Name: "Balance", Value: "1"},
				{Name: "Denomination", Value: "8"},
				{Name: "Ticker", Value: "STAKE"},
			}}}},
			expected: &models.TreasuryBalance{Balance: "700000000000000000", Denomination: 8, Ticker: "STAKE", FormattedBalance: "7B"},
		},
		{
			name:     "default denomination",
			resp:     &models.Response{Messages: []models.Message{{Tags: models.Tags{{Name: "Balance", Value: "450000000000000"}}}}},
			expected: &models.TreasuryBalance{Balance: "450000000000000", Denomination: 8, FormattedBalance: "4.5M"},
		},
		{
			name:     "balance in data",
			resp:     &models.Response{Messages: []models.Message{{Data: "200000000"}}},
			expected: &models.TreasuryBalance{Balance: "200000000", Denomination: 8, FormattedBalance: "2"},
		},
		{
			name:     "no messages",
			resp:     &models.Response{},
			expected: nil,
		},
		{
			name:     "no balance",
			resp:     &models.Response{Messages: []models.Message{{Tags: models.Tags{{Name: "Ticker", Value: "STAKE"}}}}},
			expected: nil,
		},
		{
			name:      "bad denomination",
			resp:      balanceResponse("1", "eight"),
			wantError: true,
		},
		{
			name:      "bad balance",
			resp:      balanceResponse("lots", "8"),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockMessageClient(ctrl)
			client.EXPECT().SendAndGetResult(gomock.Any(), actionIs(models.ActionBalance)).Return(tt.resp, nil)

			svc := NewProtocolMetricsService(client, testRules(), stakingPID, tokenPID, zaptest.NewLogger(t))
			balance, err := svc.GetTreasuryBalance(context.Background())

			if tt.wantError {
				assert.ErrorIs(t, err, models.ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, balance)
		})
	}
}

func TestGetUserRewards(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockMessageClient(ctrl)
	client.EXPECT().
		SendAndGetResult(gomock.Any(), actionIs(models.ActionGetUserRewards)).
		DoAndReturn(func(_ context.Context, req *models.Request) (*models.Response, error) {
			assert.Equal(t, rewardsPID, req.ProcessID)
			assert.Equal(t, models.TTLFiveMinutes, req.TTL)
			assert.Equal(t, "addr-1", req.Discriminator)
			user, _ := req.Tags.Get(models.TagUser)
			assert.Equal(t, "addr-1", user)
			return &models.Response{Messages: []models.Message{{
				Data: `{"pendingRewards":"150000000","claimedRewards":"100000000000","lastClaimTimestamp":42,
				        "stakes":{"wAR":{"staked":"500000000","pending":"50000000"}}}`,
			}}}, nil
		})

	svc := NewRewardsService(client, testRules(), rewardsPID, zaptest.NewLogger(t))
	rewards, err := svc.GetUserRewards(context.Background(), "addr-1")

	require.NoError(t, err)
	require.NotNil(t, rewards)
	assert.Equal(t, "addr-1", rewards.Address)
	assert.Equal(t, "150000000", rewards.PendingRewards)
	assert.Equal(t, "1.5", rewards.FormattedPendingRewards)
	assert.Equal(t, "1K", rewards.FormattedClaimedRewards)
	assert.Equal(t, int64(42), rewards.LastClaimTimestamp)
	assert.Equal(t, "5", rewards.Stakes["wAR"].FormattedStaked)
	assert.Equal(t, "0.5", rewards.Stakes["wAR"].FormattedPending)
}

func TestGetUserRewards_EmptyMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockMessageClient(ctrl)
	client.EXPECT().SendAndGetResult(gomock.Any(), gomock.Any()).Return(&models.Response{Messages: []models.Message{}}, nil)

	svc := NewRewardsService(client, testRules(), rewardsPID, zaptest.NewLogger(t))
	rewards, err := svc.GetUserRewards(context.Background(), "addr-1")

	assert.NoError(t, err)
	assert.Nil(t, rewards)
}

func TestGetUserRewards_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockMessageClient(ctrl)
	svc := NewRewardsService(client, testRules(), rewardsPID, zaptest.NewLogger(t))

	_, err := svc.GetUserRewards(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrInvalidRequest)

	client.EXPECT().SendAndGetResult(gomock.Any(), gomock.Any()).Return(&models.Response{Messages: []models.Message{{Data: "[1,2"}}}, nil)
	_, err = svc.GetUserRewards(context.Background(), "addr-1")
	assert.ErrorIs(t, err, models.ErrMalformedResponse)

	client.EXPECT().SendAndGetResult(gomock.Any(), gomock.Any()).Return(&models.Response{Messages: []models.Message{{Data: `{"pendingRewards":"x"}`}}}, nil)
	_, err = svc.GetUserRewards(context.Background(), "addr-1")
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}

func TestGetRewardsSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockMessageClient(ctrl)
	gomock.InOrder(
		client.EXPECT().
			SendAndGetResult(gomock.Any(), actionIs(models.ActionGetRewardsSummary)).
			Return(&models.Response{Messages: []models.Message{{
				Data: `{"totalDistributed":"450000000000000","currentRewardRate":"1000000","totalUsers":12,"lastDistributionTimestamp":7}`,
			}}}, nil),
		client.EXPECT().
			SendAndGetResult(gomock.Any(), actionIs(models.ActionGetRewardsSummary)).
			Return(&models.Response{}, nil),
	)

	svc := NewRewardsService(client, testRules(), rewardsPID, zaptest.NewLogger(t))

	summary, err := svc.GetRewardsSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, summary.TotalUsers)
	assert.Equal(t, "4.5M", summary.FormattedTotalDistributed)
	assert.Equal(t, "0.01", summary.FormattedCurrentRewardRate)

	summary, err = svc.GetRewardsSummary(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, summary)
}

func TestClaimRewards(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockMessageClient(ctrl)
	client.EXPECT().
		SendAndGetResult(gomock.Any(), actionIs(models.ActionClaimRewards)).
		DoAndReturn(func(_ context.Context, req *models.Request) (*models.Response, error) {
			assert.True(t, req.IsWrite)
			assert.Zero(t, req.TTL)
			return &models.Response{Messages: []models.Message{{
				Tags: models.Tags{{Name: models.TagAction, Value: "Claim-Success"}, {Name: models.TagAmount, Value: "250000000"}},
			}}}, nil
		})

	svc := NewRewardsService(client, testRules(), rewardsPID, zaptest.NewLogger(t))
	result, err := svc.ClaimRewards(context.Background(), "addr-1")

	require.NoError(t, err)
	assert.Equal(t, &models.ClaimResult{Address: "addr-1", Amount: "250000000", FormattedAmount: "2.5"}, result)
}

func TestClaimRewards_ProcessError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockMessageClient(ctrl)
	client.EXPECT().
		SendAndGetResult(gomock.Any(), actionIs(models.ActionClaimRewards)).
		Return(&models.Response{Messages: []models.Message{{
			Tags: models.Tags{{Name: models.TagError, Value: "No rewards to claim"}},
		}}}, nil)

	svc := NewRewardsService(client, testRules(), rewardsPID, zaptest.NewLogger(t))
	_, err := svc.ClaimRewards(context.Background(), "addr-1")

	assert.ErrorIs(t, err, models.ErrProcess)
	assert.Contains(t, err.Error(), "No rewards to claim")
}

func TestClaimRewards_MissingAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock.NewMockMessageClient(ctrl)
	client.EXPECT().SendAndGetResult(gomock.Any(), gomock.Any()).Return(&models.Response{Messages: []models.Message{{}}}, nil)

	svc := NewRewardsService(client, testRules(), rewardsPID, zaptest.NewLogger(t))
	_, err := svc.ClaimRewards(context.Background(), "addr-1")

	assert.ErrorIs(t, err, models.ErrMissingData)
}
