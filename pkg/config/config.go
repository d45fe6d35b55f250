package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/solpredict/resolver/internal/feeds"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Solana
	RPCURL                string
	ProgramID             string
	PythReceiverProgramID string
	PythShardID           int
	WalletKeypairPath     string
	RPCTimeout            time.Duration

	// Hermes price service
	HermesURL     string
	OracleTimeout time.Duration
	QuoteCacheTTL time.Duration

	// Feed table overrides, "SYMBOL=hex,SYMBOL=hex". Applied on top of the
	// built-in table.
	FeedIDs string

	// Resolution
	PollInterval       time.Duration
	ResolveConcurrency int
	FeeRateBps         int

	// Fee balance circuit breaker
	BalanceCheckInterval time.Duration
	MinBalanceLamports   int

	// Storage
	StorageMode  string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Solana defaults
		RPCURL:                getEnvOrDefault("RPC_URL", "https://api.devnet.solana.com"),
		ProgramID:             os.Getenv("PROGRAM_ID"),
		PythReceiverProgramID: getEnvOrDefault("PYTH_RECEIVER_PROGRAM_ID", "rec5EKMGg6MxZYaMdyBfgwp4d5rB9T1VQH5pJv5LtFJ"),
		PythShardID:           getIntOrDefault("PYTH_SHARD_ID", 0),
		WalletKeypairPath:     os.Getenv("WALLET_KEYPAIR_PATH"),
		RPCTimeout:            getDurationOrDefault("RPC_TIMEOUT", 30*time.Second),

		// Hermes defaults
		HermesURL:     getEnvOrDefault("HERMES_URL", "https://hermes.pyth.network"),
		OracleTimeout: getDurationOrDefault("ORACLE_TIMEOUT", 15*time.Second),
		QuoteCacheTTL: getDurationOrDefault("QUOTE_CACHE_TTL", 10*time.Second),
		FeedIDs:       os.Getenv("FEED_IDS"),

		// Resolution defaults
		PollInterval:       getDurationOrDefault("POLL_INTERVAL", 120*time.Second),
		ResolveConcurrency: getIntOrDefault("RESOLVE_CONCURRENCY", 8),
		FeeRateBps:         getIntOrDefault("FEE_RATE_BPS", 200),

		// Circuit breaker defaults: 0.01 SOL floor, checked every minute
		BalanceCheckInterval: getDurationOrDefault("BALANCE_CHECK_INTERVAL", 60*time.Second),
		MinBalanceLamports:   getIntOrDefault("MIN_BALANCE_LAMPORTS", 10_000_000),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "resolver"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "resolver123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "market_resolver"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.RPCURL == "" {
		return fmt.Errorf("RPC_URL cannot be empty")
	}

	if c.ProgramID == "" {
		return fmt.Errorf("PROGRAM_ID is required")
	}

	if c.HermesURL == "" {
		return fmt.Errorf("HERMES_URL cannot be empty")
	}

	if c.FeedIDs != "" {
		if _, err := feeds.ParseOverrides(c.FeedIDs); err != nil {
			return fmt.Errorf("FEED_IDS invalid: %w", err)
		}
	}

	if c.PythShardID < 0 || c.PythShardID > 65535 {
		return fmt.Errorf("PYTH_SHARD_ID must fit in uint16, got %d", c.PythShardID)
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}

	if c.ResolveConcurrency < 1 {
		return fmt.Errorf("RESOLVE_CONCURRENCY must be at least 1, got %d", c.ResolveConcurrency)
	}

	if c.FeeRateBps < 0 || c.FeeRateBps >= 10000 {
		return fmt.Errorf("FEE_RATE_BPS must be between 0 and 9999, got %d", c.FeeRateBps)
	}

	if c.BalanceCheckInterval <= 0 {
		return fmt.Errorf("BALANCE_CHECK_INTERVAL must be positive, got %s", c.BalanceCheckInterval)
	}

	if c.MinBalanceLamports < 1 {
		return fmt.Errorf("MIN_BALANCE_LAMPORTS must be positive, got %d", c.MinBalanceLamports)
	}

	if c.StorageMode != "console" && c.StorageMode != "postgres" {
		return fmt.Errorf("STORAGE_MODE must be 'console' or 'postgres', got %q", c.StorageMode)
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
