package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/solpredict/resolver/internal/feeds"
	"github.com/solpredict/resolver/internal/ledger"
	"github.com/solpredict/resolver/internal/oracle"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var createMarketCmd = &cobra.Command{
	Use:   "create-market",
	Short: "Create a new prediction market",
	Long: `Creates a new market account on the program. The starting price is
read from the oracle at creation time; the target price is given as a
decimal USD value.

Example:
  resolver create-market --asset BTC --target 55000 --duration 24h \
    --question "Will BTC go above $55,000?"`,
	RunE: runCreateMarket,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(createMarketCmd)
	createMarketCmd.Flags().StringP("asset", "a", "", "Asset symbol (BTC, ETH, SOL)")
	createMarketCmd.Flags().StringP("question", "q", "", "Market question")
	createMarketCmd.Flags().StringP("target", "t", "", "Target price in USD (decimal)")
	createMarketCmd.Flags().StringP("duration", "d", "24h", "Betting window duration")
	createMarketCmd.Flags().Bool("inverted", false, "Market wins when the final price is below the target")
	_ = createMarketCmd.MarkFlagRequired("asset")
	_ = createMarketCmd.MarkFlagRequired("target")
}

func runCreateMarket(cmd *cobra.Command, args []string) error {
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

	asset, _ := cmd.Flags().GetString("asset")
	question, _ := cmd.Flags().GetString("question")
	targetStr, _ := cmd.Flags().GetString("target")
	durationStr, _ := cmd.Flags().GetString("duration")
	inverted, _ := cmd.Flags().GetBool("inverted")

	asset = strings.ToUpper(asset)

	table, err := feeds.TableWithOverrides(cfg.FeedIDs)
	if err != nil {
		return fmt.Errorf("parse FEED_IDS: %w", err)
	}

	feedID, ok := table.Lookup(asset)
	if !ok {
		return fmt.Errorf("unknown asset %q; known assets: %s",
			asset, strings.Join(table.Symbols(), ", "))
	}

	target, err := parsePrice(targetStr)
	if err != nil {
		return fmt.Errorf("parse target price: %w", err)
	}

	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %s", duration)
	}

	if question == "" {
		direction := "above"
		if inverted {
			direction = "below"
		}
		question = fmt.Sprintf("Will %s go %s $%s?", asset, direction, displayPrice(target))
	}

	oracleClient := oracle.NewClient(cfg.HermesURL, cfg.OracleTimeout, logger)

	quote, err := oracleClient.LatestQuote(ctx, feedID)
	if err != nil {
		return fmt.Errorf("fetch starting price: %w", err)
	}

	client, err := newLedgerClient(cfg, logger, true)
	if err != nil {
		return err
	}

	market, sig, err := client.CreateMarket(ctx, &ledger.CreateMarketParams{
		Question:        question,
		AssetSymbol:     asset,
		DurationSeconds: int64(duration.Seconds()),
		FeedID:          feedID,
		StartPrice:      quote.ScaledPrice(),
		PriceConf:       quote.Conf,
		TargetPrice:     target,
		Inverted:        inverted,
	})
	if err != nil {
		return fmt.Errorf("create market: %w", err)
	}

	fmt.Printf("Market created: %s\n", market)
	fmt.Printf("Question:       %s\n", question)
	fmt.Printf("Start Price:    $%s\n", displayPrice(quote.ScaledPrice()))
	fmt.Printf("Target Price:   $%s\n", displayPrice(target))
	fmt.Printf("Closes:         %s\n", time.Now().Add(duration).UTC().Format(time.RFC3339))
	fmt.Printf("Transaction:    %s\n", sig)

	return nil
}

// parsePrice converts a decimal USD string to the 8-decimal fixed-point
// representation used on-chain.
func parsePrice(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	scaled := d.Shift(8)
	if !scaled.IsInteger() {
		scaled = scaled.Truncate(0)
	}

	if !scaled.BigInt().IsInt64() {
		return 0, fmt.Errorf("price %s out of range", s)
	}

	return scaled.BigInt().Int64(), nil
}
