package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the resolution and settlement paths. Callers match
// with errors.Is after any number of fmt.Errorf %w wraps.
var (
	// ErrOracleUnavailable indicates a network or parse failure talking to
	// the price service. Retryable on the next tick.
	ErrOracleUnavailable = errors.New("oracle unavailable")

	// ErrNoQuoteForFeed indicates the price service returned no entry for
	// the requested feed. Retryable, but may indicate misconfiguration.
	ErrNoQuoteForFeed = errors.New("no quote published for feed")

	// ErrLedgerRejected indicates the ledger program rejected a transaction
	// during its own validation (already resolved, stale price, bad account).
	ErrLedgerRejected = errors.New("ledger rejected transaction")

	// ErrIncompatibleLayout indicates an account blob does not match the
	// expected program layout. Such accounts are skipped at the list
	// boundary and never reach business logic.
	ErrIncompatibleLayout = errors.New("incompatible account layout")

	// Settlement-calculator errors. Non-retryable; surfaced to the caller.
	ErrMarketNotResolved = errors.New("market not resolved")
	ErrAlreadyClaimed    = errors.New("bet already claimed")
	ErrNotAWinningBet    = errors.New("bet is not on the winning side")
	ErrNoWinningPool     = errors.New("winning pool is empty")
)

// LedgerError carries context for a rejected ledger transaction.
type LedgerError struct {
	Op     string // instruction name, e.g. "resolve_market"
	Market string // market address if known
	Err    error
}

func (e *LedgerError) Error() string {
	if e.Market != "" {
		return fmt.Sprintf("%s on market %s: %v", e.Op, e.Market, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *LedgerError) Unwrap() error { return ErrLedgerRejected }

// Cause returns the underlying transport or program error.
func (e *LedgerError) Cause() error { return e.Err }
