package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/solpredict/resolver/internal/settlement"
	"github.com/solpredict/resolver/pkg/types"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var claimCmd = &cobra.Command{
	Use:   "claim <bet-pubkey>",
	Short: "Claim the payout for a winning bet",
	Long: `Claims the payout for a winning bet on a resolved market. Prints the
expected payout before submitting the transaction.

Example:
  resolver claim 4mQe...Jr9`,
	Args: cobra.ExactArgs(1),
	RunE: runClaim,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(claimCmd)
	claimCmd.Flags().Bool("dry-run", false, "Preview the payout without submitting")
}

func runClaim(cmd *cobra.Command, args []string) error {
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

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	betPubkey, err := solana.PublicKeyFromBase58(args[0])
	if err != nil {
		return fmt.Errorf("invalid bet pubkey %q: %w", args[0], err)
	}

	client, err := newLedgerClient(cfg, logger, !dryRun)
	if err != nil {
		return err
	}

	bet, err := client.GetBet(ctx, betPubkey)
	if err != nil {
		return fmt.Errorf("fetch bet: %w", err)
	}

	market, err := client.GetMarket(ctx, bet.Market)
	if err != nil {
		return fmt.Errorf("fetch market: %w", err)
	}

	calc, err := settlement.NewCalculator(uint32(cfg.FeeRateBps))
	if err != nil {
		return err
	}

	payout, err := calc.PreviewClaim(market, bet)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrMarketNotResolved):
			return fmt.Errorf("market %s has not been resolved yet", bet.Market)
		case errors.Is(err, types.ErrAlreadyClaimed):
			return fmt.Errorf("bet %s has already been claimed", betPubkey)
		case errors.Is(err, types.ErrNotAWinningBet):
			return fmt.Errorf("bet %s did not win: market resolved %s",
				betPubkey, outcomeLabel(*market.Outcome))
		default:
			return fmt.Errorf("preview claim: %w", err)
		}
	}

	fmt.Printf("Market:   %s\n", market.Question)
	fmt.Printf("Stake:    %s SOL (%s)\n", displayLamports(bet.Amount), outcomeLabel(bet.Direction))
	fmt.Printf("Payout:   %s SOL\n", displayLamports(payout))

	if dryRun {
		return nil
	}

	sig, err := client.Claim(ctx, bet, market)
	if err != nil {
		return fmt.Errorf("claim payout: %w", err)
	}

	fmt.Printf("Transaction: %s\n", sig)

	return nil
}
