package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/solpredict/resolver/internal/resolver"
	"go.uber.org/zap"
)

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage creates a new PostgreSQL storage.
func NewPostgresStorage(cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Test connection
	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStorage{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// StoreResolution records a market resolution in PostgreSQL.
func (p *PostgresStorage) StoreResolution(ctx context.Context, res *resolver.Resolution) error {
	query := `
		INSERT INTO market_resolutions (
			id, market, asset_symbol, question,
			final_price, outcome, tx_signature, resolved_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := p.db.ExecContext(ctx, query,
		res.ID,
		res.Market,
		res.AssetSymbol,
		res.Question,
		res.FinalPrice,
		res.Outcome,
		res.TxSignature,
		res.ResolvedAt,
	)

	if err != nil {
		return fmt.Errorf("insert resolution: %w", err)
	}

	p.logger.Debug("resolution-stored",
		zap.String("resolution-id", res.ID),
		zap.String("market", res.Market),
		zap.String("tx", res.TxSignature))

	return nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}
