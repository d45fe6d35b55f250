package app

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/solpredict/resolver/internal/circuitbreaker"
	"github.com/solpredict/resolver/internal/feeds"
	"github.com/solpredict/resolver/internal/ledger"
	"github.com/solpredict/resolver/internal/oracle"
	"github.com/solpredict/resolver/internal/resolver"
	"github.com/solpredict/resolver/internal/storage"
	"github.com/solpredict/resolver/pkg/cache"
	"github.com/solpredict/resolver/pkg/config"
	"github.com/solpredict/resolver/pkg/healthprobe"
	"github.com/solpredict/resolver/pkg/httpserver"
	"github.com/solpredict/resolver/pkg/wallet"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := healthprobe.New()

	quoteCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	oracleClient := setupOracle(cfg, logger)

	ledgerClient, err := setupLedger(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup ledger: %w", err)
	}

	resolutionStorage, err := setupStorage(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	breaker, err := setupBreaker(cfg, logger, ledgerClient)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup circuit breaker: %w", err)
	}

	poller := resolver.New(&resolver.Config{
		Ledger:      ledgerClient,
		Oracle:      oracleClient,
		Storage:     resolutionStorage,
		Breaker:     breaker,
		Interval:    cfg.PollInterval,
		Concurrency: cfg.ResolveConcurrency,
		Logger:      logger,
		OnPoll:      healthChecker.MarkPoll,
	})

	displayClient := oracle.NewCachedDisplayClient(oracleClient, quoteCache, cfg.QuoteCacheTTL)

	feedTable, err := feeds.TableWithOverrides(cfg.FeedIDs)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("parse FEED_IDS: %w", err)
	}

	httpServer := setupHTTPServer(cfg, logger, healthChecker, poller, displayClient, feedTable)

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		quoteCache:    quoteCache,
		oracleClient:  oracleClient,
		ledgerClient:  ledgerClient,
		breaker:       breaker,
		poller:        poller,
		storage:       resolutionStorage,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	poller *resolver.Poller,
	displayClient *oracle.CachedDisplayClient,
	feedTable *feeds.Table,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		MarketSource:  poller,
		QuoteSource:   displayClient,
		FeedTable:     feedTable,
	})
}

func setupCache(logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 10000, // 10x expected max items (1000 feeds)
		MaxCost:     1000,  // Maximum 1000 items in cache
		BufferItems: 64,    // Buffer size for Get operations
		Logger:      logger,
	})
}

func setupOracle(cfg *config.Config, logger *zap.Logger) *oracle.Client {
	return oracle.NewClient(cfg.HermesURL, cfg.OracleTimeout, logger)
}

func setupLedger(cfg *config.Config, logger *zap.Logger) (*ledger.Client, error) {
	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("parse PROGRAM_ID: %w", err)
	}

	receiverID, err := solana.PublicKeyFromBase58(cfg.PythReceiverProgramID)
	if err != nil {
		return nil, fmt.Errorf("parse PYTH_RECEIVER_PROGRAM_ID: %w", err)
	}

	if cfg.WalletKeypairPath == "" {
		return nil, fmt.Errorf("WALLET_KEYPAIR_PATH is required to submit resolutions")
	}

	signer, err := wallet.LoadFromFile(cfg.WalletKeypairPath)
	if err != nil {
		return nil, fmt.Errorf("load keypair: %w", err)
	}

	logger.Info("resolver-wallet-loaded",
		zap.String("pubkey", signer.PublicKey().String()))

	return ledger.NewClient(&ledger.Config{
		RPCURL:            cfg.RPCURL,
		ProgramID:         programID,
		ReceiverProgramID: receiverID,
		ShardID:           uint16(cfg.PythShardID),
		Signer:            signer,
		Timeout:           cfg.RPCTimeout,
		Logger:            logger,
	}), nil
}

func setupBreaker(cfg *config.Config, logger *zap.Logger, ledgerClient *ledger.Client) (*circuitbreaker.FeeBalanceBreaker, error) {
	return circuitbreaker.New(&circuitbreaker.Config{
		CheckInterval:   cfg.BalanceCheckInterval,
		FeeMultiplier:   100, // keep runway for ~100 resolutions
		MinAbsolute:     uint64(cfg.MinBalanceLamports),
		HysteresisRatio: 2.0,
		Ledger:          ledgerClient,
		Wallet:          ledgerClient.Signer().PublicKey(),
		Logger:          logger,
	})
}

func setupStorage(cfg *config.Config, logger *zap.Logger) (resolver.Storage, error) {
	if cfg.StorageMode == "postgres" {
		pgStorage, err := storage.NewPostgresStorage(&storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		return pgStorage, nil
	}

	return storage.NewConsoleStorage(logger), nil
}
