package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/solpredict/resolver/pkg/types"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var placeBetCmd = &cobra.Command{
	Use:   "place-bet <market-pubkey> <up|down> <amount-sol>",
	Short: "Place a bet on a market",
	Long: `Places a bet on an open market. The amount is given in SOL and
transferred into the market vault.

Example:
  resolver place-bet 7nYa...Qx4 up 0.5`,
	Args: cobra.ExactArgs(3),
	RunE: runPlaceBet,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(placeBetCmd)
}

func runPlaceBet(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found\n")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg, logger, err := setupEnv()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	market, err := solana.PublicKeyFromBase58(args[0])
	if err != nil {
		return fmt.Errorf("invalid market pubkey %q: %w", args[0], err)
	}

	direction, err := parseDirection(args[1])
	if err != nil {
		return err
	}

	lamports, err := parseSOL(args[2])
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}
	if lamports == 0 {
		return fmt.Errorf("bet amount must be positive")
	}

	client, err := newLedgerClient(cfg, logger, true)
	if err != nil {
		return err
	}

	state, err := client.GetMarket(ctx, market)
	if err != nil {
		return fmt.Errorf("fetch market: %w", err)
	}
	if state.State(time.Now()) != types.MarketOpen {
		return fmt.Errorf("betting window for market %s has closed", market)
	}

	bet, sig, err := client.PlaceBet(ctx, state, direction, lamports)
	if err != nil {
		return fmt.Errorf("place bet: %w", err)
	}

	fmt.Printf("Bet placed:  %s\n", bet)
	fmt.Printf("Market:      %s\n", state.Question)
	fmt.Printf("Direction:   %s\n", outcomeLabel(direction))
	fmt.Printf("Amount:      %s SOL\n", displayLamports(lamports))
	fmt.Printf("Transaction: %s\n", sig)

	return nil
}

func parseDirection(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "up", "yes":
		return true, nil
	case "down", "no":
		return false, nil
	default:
		return false, fmt.Errorf("direction must be 'up' or 'down', got %q", s)
	}
}

// parseSOL converts a decimal SOL amount to lamports.
func parseSOL(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative")
	}

	scaled := d.Shift(9).Truncate(0)
	if !scaled.BigInt().IsUint64() {
		return 0, fmt.Errorf("amount %s out of range", s)
	}

	return scaled.BigInt().Uint64(), nil
}
