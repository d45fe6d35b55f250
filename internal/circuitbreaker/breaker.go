package circuitbreaker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// BalanceFetcher reports the lamport balance of an account. Both
// ledger.Client and test mocks implement this interface.
type BalanceFetcher interface {
	Balance(ctx context.Context, account solana.PublicKey) (uint64, error)
}

// FeeBalanceBreaker monitors the resolver wallet's SOL balance and halts
// transaction submission when it can no longer cover fees. It dynamically
// scales the cutoff from recently observed transaction fees and uses
// hysteresis to prevent rapid state changes.
type FeeBalanceBreaker struct {
	enabled atomic.Bool // Atomic for lock-free reads

	// Configuration
	checkInterval   time.Duration
	ledger          BalanceFetcher
	wallet          solana.PublicKey
	logger          *zap.Logger
	feeMultiplier   uint64 // Multiplier for avg observed fee
	minAbsolute     uint64 // Absolute minimum balance, lamports
	hysteresisRatio float64 // Re-enable at ratio * disable threshold

	// Protected by mutex
	mu               sync.RWMutex
	lastBalance      uint64    // Last checked balance, lamports
	lastCheck        time.Time // When we last checked
	recentFees       []uint64  // Rolling window of observed fees
	disableThreshold uint64    // Current disable threshold, lamports
	enableThreshold  uint64    // Current enable threshold, lamports
}

// Config holds circuit breaker configuration.
type Config struct {
	CheckInterval   time.Duration
	FeeMultiplier   uint64
	MinAbsolute     uint64
	HysteresisRatio float64
	Ledger          BalanceFetcher
	Wallet          solana.PublicKey
	Logger          *zap.Logger
}

// Status holds current circuit breaker status for debugging.
type Status struct {
	Enabled          bool
	LastBalance      uint64
	LastCheck        time.Time
	DisableThreshold uint64
	EnableThreshold  uint64
	AvgFee           uint64
	RecentFeeCount   int
}

// New creates a new circuit breaker with the given configuration.
func New(cfg *Config) (*FeeBalanceBreaker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Ledger == nil {
		return nil, fmt.Errorf("balance fetcher cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg.CheckInterval <= 0 {
		return nil, fmt.Errorf("check interval must be positive")
	}
	if cfg.FeeMultiplier == 0 {
		return nil, fmt.Errorf("fee multiplier must be positive")
	}
	if cfg.MinAbsolute == 0 {
		return nil, fmt.Errorf("min absolute must be positive")
	}
	if cfg.HysteresisRatio < 1.0 {
		return nil, fmt.Errorf("hysteresis ratio must be >= 1.0")
	}

	breaker := &FeeBalanceBreaker{
		checkInterval:    cfg.CheckInterval,
		ledger:           cfg.Ledger,
		wallet:           cfg.Wallet,
		logger:           cfg.Logger,
		feeMultiplier:    cfg.FeeMultiplier,
		minAbsolute:      cfg.MinAbsolute,
		hysteresisRatio:  cfg.HysteresisRatio,
		recentFees:       make([]uint64, 0, 20),
		disableThreshold: cfg.MinAbsolute, // Start with minimum
		enableThreshold:  scale(cfg.MinAbsolute, cfg.HysteresisRatio),
	}

	// Start enabled by default
	breaker.enabled.Store(true)

	// Initialize metrics
	BreakerEnabled.Set(1)
	BreakerDisableThreshold.Set(float64(breaker.disableThreshold))
	BreakerEnableThreshold.Set(float64(breaker.enableThreshold))
	BreakerAvgFee.Set(0)

	return breaker, nil
}

// IsEnabled returns true if resolution transactions should be submitted.
// This is lock-free and safe to call from hot paths.
func (b *FeeBalanceBreaker) IsEnabled() bool {
	return b.enabled.Load()
}

// RecordFee adds an observed transaction fee to the rolling window and
// recalculates thresholds. Call this after successful submission.
func (b *FeeBalanceBreaker) RecordFee(feeLamports uint64) {
	if feeLamports == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Keep the last 20 observed fees
	b.recentFees = append(b.recentFees, feeLamports)
	if len(b.recentFees) > 20 {
		b.recentFees = b.recentFees[1:]
	}

	avgFee := average(b.recentFees)

	b.disableThreshold = max(avgFee*b.feeMultiplier, b.minAbsolute)
	b.enableThreshold = scale(b.disableThreshold, b.hysteresisRatio)

	// Update metrics
	BreakerAvgFee.Set(float64(avgFee))
	BreakerDisableThreshold.Set(float64(b.disableThreshold))
	BreakerEnableThreshold.Set(float64(b.enableThreshold))

	b.logger.Debug("thresholds-updated",
		zap.Uint64("avg_fee_lamports", avgFee),
		zap.Int("fee_count", len(b.recentFees)),
		zap.Uint64("disable_threshold", b.disableThreshold),
		zap.Uint64("enable_threshold", b.enableThreshold))
}

// CheckBalance checks the current wallet balance and updates the enabled
// state based on thresholds.
func (b *FeeBalanceBreaker) CheckBalance(ctx context.Context) error {
	start := time.Now()
	defer func() {
		BreakerCheckDuration.Observe(time.Since(start).Seconds())
	}()

	balance, err := b.ledger.Balance(ctx, b.wallet)
	if err != nil {
		b.logger.Error("failed-to-check-balance",
			zap.Error(err),
			zap.String("wallet", b.wallet.String()))
		return fmt.Errorf("get balance: %w", err)
	}

	b.mu.RLock()
	disableThreshold := b.disableThreshold
	enableThreshold := b.enableThreshold
	b.mu.RUnlock()

	currentlyEnabled := b.enabled.Load()

	b.mu.Lock()
	b.lastBalance = balance
	b.lastCheck = time.Now()
	b.mu.Unlock()

	BreakerBalance.Set(float64(balance))

	// State transition logic with hysteresis
	shouldDisable := currentlyEnabled && balance < disableThreshold
	shouldEnable := !currentlyEnabled && balance >= enableThreshold

	if shouldDisable {
		b.enabled.Store(false)
		BreakerEnabled.Set(0)
		BreakerStateChanges.Inc()

		b.logger.Warn("circuit-breaker-disabled",
			zap.Uint64("balance_lamports", balance),
			zap.Uint64("disable_threshold", disableThreshold),
			zap.Uint64("enable_threshold", enableThreshold))
	} else if shouldEnable {
		b.enabled.Store(true)
		BreakerEnabled.Set(1)
		BreakerStateChanges.Inc()

		b.logger.Info("circuit-breaker-enabled",
			zap.Uint64("balance_lamports", balance),
			zap.Uint64("disable_threshold", disableThreshold),
			zap.Uint64("enable_threshold", enableThreshold))
	} else {
		b.logger.Debug("balance-checked",
			zap.Uint64("balance_lamports", balance),
			zap.Bool("enabled", currentlyEnabled),
			zap.Uint64("disable_threshold", disableThreshold),
			zap.Uint64("enable_threshold", enableThreshold))
	}

	return nil
}

// Start begins the background monitoring loop that periodically checks
// the wallet balance. It runs until the context is cancelled.
func (b *FeeBalanceBreaker) Start(ctx context.Context) {
	b.logger.Info("circuit-breaker-started",
		zap.Duration("check_interval", b.checkInterval),
		zap.Uint64("fee_multiplier", b.feeMultiplier),
		zap.Uint64("min_absolute_lamports", b.minAbsolute),
		zap.Float64("hysteresis_ratio", b.hysteresisRatio))

	// Check balance immediately on startup
	if err := b.CheckBalance(ctx); err != nil {
		b.logger.Error("initial-balance-check-failed", zap.Error(err))
	}

	go b.monitorLoop(ctx)
}

// monitorLoop is the background goroutine that periodically checks balance.
func (b *FeeBalanceBreaker) monitorLoop(ctx context.Context) {
	ticker := time.NewTicker(b.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("circuit-breaker-stopped")
			return
		case <-ticker.C:
			if err := b.CheckBalance(ctx); err != nil {
				// Log error but continue monitoring
				b.logger.Error("balance-check-error", zap.Error(err))
			}
		}
	}
}

// GetStatus returns current circuit breaker status for debugging.
func (b *FeeBalanceBreaker) GetStatus() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return Status{
		Enabled:          b.enabled.Load(),
		LastBalance:      b.lastBalance,
		LastCheck:        b.lastCheck,
		DisableThreshold: b.disableThreshold,
		EnableThreshold:  b.enableThreshold,
		AvgFee:           average(b.recentFees),
		RecentFeeCount:   len(b.recentFees),
	}
}

func average(fees []uint64) uint64 {
	if len(fees) == 0 {
		return 0
	}

	var sum uint64
	for _, fee := range fees {
		sum += fee
	}

	return sum / uint64(len(fees))
}

func scale(v uint64, ratio float64) uint64 {
	return uint64(float64(v) * ratio)
}
