package models

// Rewards actions
const (
	ActionGetUserRewards    = "Get-User-Rewards"
	ActionGetRewardsSummary = "Get-Rewards-Summary"
	ActionClaimRewards      = "Claim-Rewards"
)

// TokenRewards is a user's position and rewards for one staked token
type TokenRewards struct {
	Staked  string `json:"staked"`
	Pending string `json:"pending"`

	FormattedStaked  string `json:"formattedStaked"`
	FormattedPending string `json:"formattedPending"`
}

// UserRewards is the rewards state of a single address
type UserRewards struct {
	Address            string                  `json:"address"`
	PendingRewards     string                  `json:"pendingRewards"`
	ClaimedRewards     string                  `json:"claimedRewards"`
	LastClaimTimestamp int64                   `json:"lastClaimTimestamp"`
	Stakes             map[string]TokenRewards `json:"stakes,omitempty"`

	FormattedPendingRewards string `json:"formattedPendingRewards"`
	FormattedClaimedRewards string `json:"formattedClaimedRewards"`
}

// RewardsSummary is the protocol-wide rewards distribution state
type RewardsSummary struct {
	TotalDistributed          string `json:"totalDistributed"`
	CurrentRewardRate         string `json:"currentRewardRate"`
	TotalUsers                int    `json:"totalUsers"`
	LastDistributionTimestamp int64  `json:"lastDistributionTimestamp"`

	FormattedTotalDistributed  string `json:"formattedTotalDistributed"`
	FormattedCurrentRewardRate string `json:"formattedCurrentRewardRate"`
}

// ClaimResult is the outcome of a successful claim
type ClaimResult struct {
	Address         string `json:"address"`
	Amount          string `json:"amount"`
	FormattedAmount string `json:"formattedAmount"`
}
