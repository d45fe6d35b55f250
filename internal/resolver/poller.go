// Package resolver drives market resolution. A single periodic poller
// lists markets, picks out the expired unresolved ones, and fans each out
// to a bounded set of workers that fetch an authoritative price and submit
// the resolution transaction. Failures are isolated per market; the tick
// schedule is the retry mechanism.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/solpredict/resolver/internal/outcome"
	"github.com/solpredict/resolver/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Ledger is the slice of the ledger client the poller needs.
type Ledger interface {
	ListMarkets(ctx context.Context) ([]*types.Market, error)
	ResolveMarket(ctx context.Context, market *types.Market, finalPrice int64) (solana.Signature, error)
}

// Oracle fetches live quotes for resolution. No cached view is acceptable
// here; settlement always pays for a fresh read.
type Oracle interface {
	LatestQuote(ctx context.Context, feedID [32]byte) (types.PriceQuote, error)
}

// Storage records completed resolutions.
type Storage interface {
	StoreResolution(ctx context.Context, res *Resolution) error
	Close() error
}

// Breaker gates transaction submission on the resolver wallet's ability
// to pay fees.
type Breaker interface {
	IsEnabled() bool
	RecordFee(feeLamports uint64)
}

// baseFeeLamports is Solana's base fee per signature; our resolution
// transactions carry a single signature.
const baseFeeLamports = 5000

// Resolution is the record of one successful resolution.
type Resolution struct {
	ID          string
	Market      string
	AssetSymbol string
	Question    string
	FinalPrice  int64
	Outcome     bool
	TxSignature string
	ResolvedAt  time.Time
}

// Poller is the resolution orchestrator.
type Poller struct {
	ledger      Ledger
	oracle      Oracle
	storage     Storage
	breaker     Breaker
	interval    time.Duration
	concurrency int
	logger      *zap.Logger

	onPoll func()

	mu       sync.Mutex
	inflight map[solana.PublicKey]struct{}

	snapMu   sync.RWMutex
	snapshot []*types.Market
}

// Config holds poller configuration.
type Config struct {
	Ledger      Ledger
	Oracle      Oracle
	Storage     Storage
	Breaker     Breaker
	Interval    time.Duration
	Concurrency int
	Logger      *zap.Logger

	// OnPoll, when set, is called after every completed poll cycle.
	OnPoll func()
}

// New creates a poller.
func New(cfg *Config) *Poller {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Poller{
		ledger:      cfg.Ledger,
		oracle:      cfg.Oracle,
		storage:     cfg.Storage,
		breaker:     cfg.Breaker,
		interval:    cfg.Interval,
		concurrency: concurrency,
		logger:      cfg.Logger,
		onPoll:      cfg.OnPoll,
		inflight:    make(map[solana.PublicKey]struct{}),
	}
}

// Run starts the polling loop and blocks until ctx is cancelled. In-flight
// resolution attempts finish (or time out) before Run returns.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("resolver-starting",
		zap.Duration("poll-interval", p.interval),
		zap.Int("concurrency", p.concurrency))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Initial tick so a restart doesn't wait a full interval.
	err := p.Tick(ctx)
	if err != nil && !errors.Is(err, ctx.Err()) {
		p.logger.Error("initial-tick-failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("resolver-stopping")
			return ctx.Err()
		case <-ticker.C:
			err := p.Tick(ctx)
			if err != nil && !errors.Is(err, ctx.Err()) {
				p.logger.Error("tick-failed", zap.Error(err))
			}
		}
	}
}

// Tick performs one poll cycle: list, partition, resolve expired markets.
// Listing failures abort the tick (nothing to work on); per-market
// resolution failures are logged, counted and swallowed.
func (p *Poller) Tick(ctx context.Context) error {
	start := time.Now()
	defer func() {
		TickDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	markets, err := p.ledger.ListMarkets(ctx)
	if err != nil {
		TickErrorsTotal.Inc()
		return fmt.Errorf("list markets: %w", err)
	}

	p.setSnapshot(markets)
	MarketsListed.Set(float64(len(markets)))

	if p.onPoll != nil {
		defer p.onPoll()
	}

	now := time.Now()
	expired := make([]*types.Market, 0, len(markets))

	for _, m := range markets {
		if m.ExpiredUnresolved(now) {
			expired = append(expired, m)
		}
	}

	ExpiredMarkets.Set(float64(len(expired)))

	if len(expired) == 0 {
		p.logger.Debug("tick-complete",
			zap.Int("markets", len(markets)),
			zap.Int("expired", 0))
		return nil
	}

	p.logger.Info("expired-markets-found",
		zap.Int("count", len(expired)),
		zap.Int("total-markets", len(markets)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, market := range expired {
		g.Go(func() error {
			p.resolveOne(gctx, market)
			// Per-market failures never propagate: the next tick retries.
			return nil
		})
	}

	_ = g.Wait()

	p.logger.Debug("tick-complete",
		zap.Int("markets", len(markets)),
		zap.Int("expired", len(expired)),
		zap.Duration("duration", time.Since(start)))

	return nil
}

// resolveOne runs a single resolution attempt for one market.
func (p *Poller) resolveOne(ctx context.Context, market *types.Market) {
	// Terminal state: never resubmit a resolved market.
	if market.Resolved {
		return
	}

	if p.breaker != nil && !p.breaker.IsEnabled() {
		ResolutionAttemptsTotal.WithLabelValues("skipped_breaker").Inc()
		p.logger.Warn("resolution-skipped-low-balance",
			zap.String("market", market.Pubkey.String()))
		return
	}

	if !p.begin(market.Pubkey) {
		// An attempt for this market is already in flight.
		ResolutionAttemptsTotal.WithLabelValues("skipped_inflight").Inc()
		return
	}
	defer p.end(market.Pubkey)

	start := time.Now()
	defer func() {
		ResolutionDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	logger := p.logger.With(
		zap.String("market", market.Pubkey.String()),
		zap.String("asset", market.AssetSymbol),
		zap.String("question", market.Question))

	quote, err := p.oracle.LatestQuote(ctx, market.FeedID)
	if err != nil {
		ResolutionAttemptsTotal.WithLabelValues("oracle_error").Inc()
		logger.Warn("resolution-oracle-fetch-failed", zap.Error(err))
		return
	}

	finalPrice := quote.ScaledPrice()
	predicted := outcome.Evaluate(market.StartPrice, market.TargetPrice, finalPrice, market.Inverted)

	sig, err := p.ledger.ResolveMarket(ctx, market, finalPrice)
	if err != nil {
		// Ledger rejections (already resolved by a racing caller, stale
		// price) are recoverable; the market is retried next tick.
		ResolutionAttemptsTotal.WithLabelValues("ledger_rejected").Inc()
		logger.Warn("resolution-rejected", zap.Error(err))
		return
	}

	ResolutionAttemptsTotal.WithLabelValues("resolved").Inc()
	if p.breaker != nil {
		p.breaker.RecordFee(baseFeeLamports)
	}
	logger.Info("market-resolved",
		zap.Int64("final-price", finalPrice),
		zap.Int64("target-price", market.TargetPrice),
		zap.Bool("inverted", market.Inverted),
		zap.Bool("outcome", predicted),
		zap.String("tx", sig.String()))

	if p.storage == nil {
		return
	}

	err = p.storage.StoreResolution(ctx, &Resolution{
		ID:          uuid.New().String(),
		Market:      market.Pubkey.String(),
		AssetSymbol: market.AssetSymbol,
		Question:    market.Question,
		FinalPrice:  finalPrice,
		Outcome:     predicted,
		TxSignature: sig.String(),
		ResolvedAt:  time.Now(),
	})
	if err != nil {
		// Recording is best-effort; the resolution itself succeeded.
		logger.Warn("resolution-record-failed", zap.Error(err))
	}
}

// begin marks a market as having an in-flight attempt.
func (p *Poller) begin(market solana.PublicKey) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.inflight[market]; exists {
		return false
	}

	p.inflight[market] = struct{}{}

	return true
}

func (p *Poller) end(market solana.PublicKey) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.inflight, market)
}

// setSnapshot atomically replaces the last-listed markets. The slice is
// never mutated after publication.
func (p *Poller) setSnapshot(markets []*types.Market) {
	p.snapMu.Lock()
	defer p.snapMu.Unlock()

	p.snapshot = markets
}

// Snapshot returns the markets from the most recent tick.
func (p *Poller) Snapshot() []*types.Market {
	p.snapMu.RLock()
	defer p.snapMu.RUnlock()

	return p.snapshot
}
