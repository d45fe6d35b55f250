package cmd

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/solpredict/resolver/internal/settlement"
	"github.com/solpredict/resolver/pkg/types"
)

func boolPtr(b bool) *bool { return &b }

func TestClaimStatus(t *testing.T) {
	calc, err := settlement.NewCalculator(200)
	if err != nil {
		t.Fatalf("NewCalculator() error = %v", err)
	}

	marketPubkey := solana.NewWallet().PublicKey()

	tests := []struct {
		name     string
		market   *types.Market
		bet      *types.Bet
		expected string
	}{
		{
			name:     "unresolved_market_pending",
			market:   &types.Market{Pubkey: marketPubkey},
			bet:      &types.Bet{Market: marketPubkey, Direction: true, Amount: 1_000_000_000},
			expected: "PENDING",
		},
		{
			name: "already_claimed",
			market: &types.Market{
				Pubkey:        marketPubkey,
				Resolved:      true,
				Outcome:       boolPtr(true),
				TotalUpPool:   1_000_000_000,
				TotalDownPool: 500_000_000,
			},
			bet:      &types.Bet{Market: marketPubkey, Direction: true, Amount: 1_000_000_000, Claimed: true},
			expected: "CLAIMED",
		},
		{
			name: "losing_bet",
			market: &types.Market{
				Pubkey:        marketPubkey,
				Resolved:      true,
				Outcome:       boolPtr(true),
				TotalUpPool:   1_000_000_000,
				TotalDownPool: 500_000_000,
			},
			bet:      &types.Bet{Market: marketPubkey, Direction: false, Amount: 500_000_000},
			expected: "LOST",
		},
		{
			name: "sole_winner_claims_net_pool",
			market: &types.Market{
				Pubkey:        marketPubkey,
				Resolved:      true,
				Outcome:       boolPtr(true),
				TotalUpPool:   1_000_000_000,
				TotalDownPool: 500_000_000,
			},
			bet:      &types.Bet{Market: marketPubkey, Direction: true, Amount: 1_000_000_000},
			expected: "CLAIMABLE 1.47 SOL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := claimStatus(calc, tt.market, tt.bet)
			if got != tt.expected {
				t.Errorf("claimStatus() = %q, want %q", got, tt.expected)
			}
		})
	}
}
