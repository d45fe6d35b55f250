package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/solpredict/resolver/internal/resolver"
	"go.uber.org/zap"
)

// priceDecimals is the number of fractional digits in a fixed-point price.
const priceDecimals = 8

// ConsoleStorage implements Storage by pretty-printing to console.
type ConsoleStorage struct {
	logger *zap.Logger
}

// NewConsoleStorage creates a new console storage.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	logger.Info("console-storage-initialized")
	return &ConsoleStorage{
		logger: logger,
	}
}

// StoreResolution pretty-prints a market resolution to console.
func (c *ConsoleStorage) StoreResolution(ctx context.Context, res *resolver.Resolution) error {
	price := decimal.New(res.FinalPrice, -priceDecimals).Round(2).StringFixed(2)

	outcome := "DOWN"
	if res.Outcome {
		outcome = "UP"
	}

	fmt.Println("\n" + "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("⚖️  MARKET RESOLVED\n")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("ID:       %s\n", res.ID[:8])
	fmt.Printf("Market:   %s\n", res.Market)
	fmt.Printf("Question: %s\n", res.Question)
	fmt.Printf("Asset:    %s\n", res.AssetSymbol)
	fmt.Printf("Time:     %s\n", res.ResolvedAt.Format("2006-01-02 15:04:05"))
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("📊 RESULT\n")
	fmt.Printf("  Final Price:  $%s\n", price)
	fmt.Printf("  Outcome:      %s\n", outcome)
	fmt.Printf("  Transaction:  %s\n", res.TxSignature)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	return nil
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	c.logger.Info("closing-console-storage")
	return nil
}
