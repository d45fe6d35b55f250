package types

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// Price fixed-point scales used across the engine. Prices carry 8 decimal
// places (Pyth's native USD exponent); pools and stakes are lamports.
const (
	PriceScale = 1e8
	PoolScale  = 1e9
)

// MarketState is the lifecycle position of a market as observed off-chain.
type MarketState string

const (
	MarketOpen     MarketState = "open"
	MarketExpired  MarketState = "expired"
	MarketResolved MarketState = "resolved"
)

// Market is a decoded market account. It is read-only from the engine's
// perspective: the only mutations go through ResolveMarket and Claim
// transactions, which the ledger program validates itself.
type Market struct {
	Pubkey      solana.PublicKey `json:"pubkey"`
	Admin       solana.PublicKey `json:"admin"`
	Question    string           `json:"question"`
	AssetSymbol string           `json:"assetSymbol"`
	FeedID      [32]byte         `json:"-"`

	// Fixed-point prices at PriceScale.
	TargetPrice int64  `json:"targetPrice"`
	StartPrice  int64  `json:"startPrice"`
	EndPrice    int64  `json:"endPrice"`
	PriceConf   uint64 `json:"priceConf"`

	StartTime int64 `json:"startTime"`
	EndTime   int64 `json:"endTime"`

	// Pools in lamports. Monotonically non-decreasing until resolution.
	TotalUpPool   uint64 `json:"totalUpPool"`
	TotalDownPool uint64 `json:"totalDownPool"`

	Resolved bool  `json:"resolved"`
	Outcome  *bool `json:"outcome,omitempty"`

	VaultBump uint8 `json:"-"`

	// Inverted flips the winning condition to "final price below target".
	Inverted bool `json:"inverted"`
}

// State classifies the market relative to now.
func (m *Market) State(now time.Time) MarketState {
	if m.Resolved {
		return MarketResolved
	}

	if now.Unix() >= m.EndTime {
		return MarketExpired
	}

	return MarketOpen
}

// ExpiredUnresolved reports whether the market is past its betting window
// and still awaiting resolution.
func (m *Market) ExpiredUnresolved(now time.Time) bool {
	return m.State(now) == MarketExpired
}

// Pools returns the winning and losing pool for a resolved market.
// The second return is false until the market is resolved.
func (m *Market) Pools() (winning uint64, losing uint64, ok bool) {
	if !m.Resolved || m.Outcome == nil {
		return 0, 0, false
	}

	if *m.Outcome {
		return m.TotalUpPool, m.TotalDownPool, true
	}

	return m.TotalDownPool, m.TotalUpPool, true
}
