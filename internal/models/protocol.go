package models

// Protocol actions
const (
	ActionGetProtocolMetrics = "Get-Protocol-Metrics"
	ActionBalance            = "Balance"
)

// ProtocolDenomination is the decimal denomination of the protocol token
const ProtocolDenomination = 8

// TokenMetric describes staking activity for a single staked token
type TokenMetric struct {
	Name            string `json:"name"`
	TotalStaked     string `json:"totalStaked"`
	ActivePositions int    `json:"activePositions"`
	Denomination    int    `json:"denomination,omitempty"`

	FormattedTotalStaked string `json:"formattedTotalStaked"`
}

// ProtocolSettings mirrors the staking process configuration
type ProtocolSettings struct {
	StakingEnabled        bool   `json:"stakingEnabled"`
	MinStakeAmount        string `json:"minStakeAmount"`
	LockPeriod            int64  `json:"lockPeriod"`
	ILCompensationEnabled bool   `json:"ilCompensationEnabled"`

	FormattedMinStakeAmount string `json:"formattedMinStakeAmount"`
}

// ImpermanentLossMetrics summarises impermanent loss compensation
type ImpermanentLossMetrics struct {
	TotalCompensations     int    `json:"totalCompensations"`
	TotalCompensatedAmount string `json:"totalCompensatedAmount"`

	FormattedTotalCompensatedAmount string `json:"formattedTotalCompensatedAmount"`
}

// ProtocolMetrics is the protocol-wide snapshot served to the dashboard
type ProtocolMetrics struct {
	Timestamp             int64                  `json:"timestamp"`
	TotalStakingPositions int                    `json:"totalStakingPositions"`
	TokenMetrics          map[string]TokenMetric `json:"tokenMetrics"`
	ProtocolSettings      ProtocolSettings       `json:"protocolSettings"`
	ImpermanentLoss       ImpermanentLossMetrics `json:"impermanentLoss"`

	TreasuryBalance          string `json:"treasuryBalance,omitempty"`
	TreasuryDenomination     int    `json:"treasuryDenomination,omitempty"`
	FormattedTreasuryBalance string `json:"formattedTreasuryBalance,omitempty"`
}

// TreasuryBalance is the token balance held by the staking process
type TreasuryBalance struct {
	Balance          string `json:"balance"`
	Denomination     int    `json:"denomination"`
	Ticker           string `json:"ticker,omitempty"`
	FormattedBalance string `json:"formattedBalance"`
}
