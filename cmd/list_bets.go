package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/solpredict/resolver/internal/settlement"
	"github.com/solpredict/resolver/pkg/types"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listBetsCmd = &cobra.Command{
	Use:   "list-bets",
	Short: "List bets and their claim status",
	Long: `Fetches the bet accounts owned by a wallet and shows the claim
status of each. Defaults to the configured signer wallet; use --owner to
inspect another wallet.`,
	RunE: runListBets,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(listBetsCmd)
	listBetsCmd.Flags().StringP("owner", "o", "", "Wallet pubkey to list bets for (default: signer)")
}

func runListBets(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found\n")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, logger, err := setupEnv()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	ownerFlag, _ := cmd.Flags().GetString("owner")

	client, err := newLedgerClient(cfg, logger, ownerFlag == "")
	if err != nil {
		return err
	}

	var owner solana.PublicKey
	if ownerFlag != "" {
		owner, err = solana.PublicKeyFromBase58(ownerFlag)
		if err != nil {
			return fmt.Errorf("invalid owner pubkey %q: %w", ownerFlag, err)
		}
	} else {
		owner = client.Signer().PublicKey()
	}

	calc, err := settlement.NewCalculator(uint32(cfg.FeeRateBps))
	if err != nil {
		return err
	}

	fmt.Printf("Fetching bets for %s...\n\n", owner)

	bets, err := client.ListBets(ctx, owner)
	if err != nil {
		return fmt.Errorf("list bets: %w", err)
	}

	if len(bets) == 0 {
		fmt.Println("No bets found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "BET\tMARKET\tDIRECTION\tAMOUNT\tSTATUS\n")
	fmt.Fprintf(w, "---\t------\t---------\t------\t------\n")

	claimable := 0

	for _, bet := range bets {
		status := "UNKNOWN"

		market, err := client.GetMarket(ctx, bet.Market)
		if err != nil {
			status = fmt.Sprintf("market fetch failed: %v", err)
		} else {
			status = claimStatus(calc, market, bet)
			if !bet.Claimed && market.Resolved && market.Outcome != nil && bet.Direction == *market.Outcome {
				claimable++
			}
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s SOL\t%s\n",
			bet.Pubkey.String(),
			bet.Market.String(),
			outcomeLabel(bet.Direction),
			displayLamports(bet.Amount),
			status)
	}

	w.Flush()

	fmt.Printf("\nTotal: %d bets (%d claimable)\n", len(bets), claimable)

	return nil
}

// claimStatus renders one bet's settlement position for the table.
func claimStatus(calc *settlement.Calculator, market *types.Market, bet *types.Bet) string {
	payout, err := calc.PreviewClaim(market, bet)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrMarketNotResolved):
			return "PENDING"
		case errors.Is(err, types.ErrAlreadyClaimed):
			return "CLAIMED"
		case errors.Is(err, types.ErrNotAWinningBet):
			return "LOST"
		default:
			return fmt.Sprintf("ERROR: %v", err)
		}
	}

	return fmt.Sprintf("CLAIMABLE %s SOL", displayLamports(payout))
}
