// Package settlement computes claim payouts from resolved market pools.
//
// Everything here is exact integer arithmetic. Intermediates go through
// 128-bit multiplication so 1e9-scale lamport pools cannot overflow, and the
// only truncation is the documented floor in the fee and share divisions.
// This is the same math the ledger program runs, so client-side previews
// match on-chain payouts to the lamport.
package settlement

import (
	"fmt"
	"math/bits"

	"github.com/solpredict/resolver/pkg/types"
)

// DefaultFeeRateBps is the protocol fee observed on this deployment.
// It is a protocol-level setting, not a constant of the math.
const DefaultFeeRateBps = 200

const bpsDenominator = 10_000

// Calculator computes payouts for a configured fee rate.
type Calculator struct {
	feeRateBps uint32
}

// NewCalculator creates a calculator. feeRateBps must be below 10000.
func NewCalculator(feeRateBps uint32) (*Calculator, error) {
	if feeRateBps >= bpsDenominator {
		return nil, fmt.Errorf("fee rate %d bps must be below %d", feeRateBps, bpsDenominator)
	}

	return &Calculator{feeRateBps: feeRateBps}, nil
}

// FeeRateBps returns the configured fee rate.
func (c *Calculator) FeeRateBps() uint32 { return c.feeRateBps }

// ComputePayout returns the payout for a winning stake given the two pools.
//
//	totalPool = winningPool + losingPool
//	netPool   = totalPool * (10000 - feeBps) / 10000
//	payout    = userStake * netPool / winningPool
//
// Both divisions floor, which guarantees the sum of all winners' payouts
// never exceeds netPool.
func (c *Calculator) ComputePayout(userStake, winningPool, losingPool uint64) (uint64, error) {
	if winningPool == 0 {
		return 0, types.ErrNoWinningPool
	}

	if userStake == 0 {
		return 0, nil
	}

	totalPool, carry := bits.Add64(winningPool, losingPool, 0)
	if carry != 0 {
		return 0, fmt.Errorf("pool total overflows: up=%d down=%d", winningPool, losingPool)
	}

	netPool := mulDiv64(totalPool, bpsDenominator-uint64(c.feeRateBps), bpsDenominator)

	// userStake <= winningPool holds for any real bet, which bounds the
	// quotient by netPool. Reject inconsistent inputs instead of panicking
	// in Div64.
	hi, lo := bits.Mul64(userStake, netPool)
	if hi >= winningPool {
		return 0, fmt.Errorf("stake %d exceeds winning pool %d", userStake, winningPool)
	}

	payout, _ := bits.Div64(hi, lo, winningPool)

	ComputationsTotal.Inc()

	return payout, nil
}

// PreviewClaim validates claim eligibility and computes the payout a claim
// transaction would release. It returns ErrMarketNotResolved,
// ErrAlreadyClaimed, ErrNotAWinningBet or ErrNoWinningPool; callers surface
// these directly to the user.
func (c *Calculator) PreviewClaim(market *types.Market, bet *types.Bet) (uint64, error) {
	if !market.Resolved || market.Outcome == nil {
		ClaimRejectionsTotal.WithLabelValues("not_resolved").Inc()
		return 0, types.ErrMarketNotResolved
	}

	if bet.Claimed {
		ClaimRejectionsTotal.WithLabelValues("already_claimed").Inc()
		return 0, types.ErrAlreadyClaimed
	}

	if bet.Direction != *market.Outcome {
		ClaimRejectionsTotal.WithLabelValues("losing_bet").Inc()
		return 0, types.ErrNotAWinningBet
	}

	winning, losing, _ := market.Pools()

	return c.ComputePayout(bet.Amount, winning, losing)
}

// mulDiv64 computes a*b/d with a 128-bit intermediate. d must be non-zero
// and larger than the high word, which holds for all callers here (d is
// 10000 and b < 10000).
func mulDiv64(a, b, d uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	quo, _ := bits.Div64(hi, lo, d)
	return quo
}
