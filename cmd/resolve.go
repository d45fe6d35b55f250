package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/solpredict/resolver/internal/oracle"
	"github.com/solpredict/resolver/internal/outcome"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var resolveCmd = &cobra.Command{
	Use:   "resolve <market-pubkey>",
	Short: "Resolve a single expired market",
	Long: `Fetches the market account, reads the latest oracle price for its
feed and submits a resolve_market transaction. Fails if the market is not
yet expired or is already resolved.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolP("force", "f", false, "Submit even if the market has not expired yet")
}

func runResolve(cmd *cobra.Command, args []string) error {
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

	marketPubkey, err := solana.PublicKeyFromBase58(args[0])
	if err != nil {
		return fmt.Errorf("parse market pubkey: %w", err)
	}

	force, _ := cmd.Flags().GetBool("force")

	client, err := newLedgerClient(cfg, logger, true)
	if err != nil {
		return err
	}

	market, err := client.GetMarket(ctx, marketPubkey)
	if err != nil {
		return fmt.Errorf("fetch market: %w", err)
	}

	if market.Resolved {
		return fmt.Errorf("market %s is already resolved", marketPubkey)
	}

	if !market.ExpiredUnresolved(time.Now()) && !force {
		return fmt.Errorf("market %s has not expired yet (ends %s); use --force to override",
			marketPubkey, time.Unix(market.EndTime, 0).UTC().Format(time.RFC3339))
	}

	oracleClient := oracle.NewClient(cfg.HermesURL, cfg.OracleTimeout, logger)

	quote, err := oracleClient.LatestQuote(ctx, market.FeedID)
	if err != nil {
		return fmt.Errorf("fetch quote: %w", err)
	}

	finalPrice := quote.ScaledPrice()
	predicted := outcome.Evaluate(market.StartPrice, market.TargetPrice, finalPrice, market.Inverted)

	fmt.Printf("Market:      %s\n", marketPubkey)
	fmt.Printf("Question:    %s\n", market.Question)
	fmt.Printf("Target:      $%s\n", displayPrice(market.TargetPrice))
	fmt.Printf("Final Price: $%s\n", displayPrice(finalPrice))
	fmt.Printf("Outcome:     %s\n\n", outcomeLabel(predicted))

	sig, err := client.ResolveMarket(ctx, market, finalPrice)
	if err != nil {
		return fmt.Errorf("resolve market: %w", err)
	}

	fmt.Printf("Resolution submitted: %s\n", sig)

	return nil
}
