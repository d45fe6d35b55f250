package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/solpredict/resolver/pkg/types"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listMarketsCmd = &cobra.Command{
	Use:   "list-markets",
	Short: "List markets owned by the program",
	Long:  `Fetches and displays all market accounts owned by the configured program.`,
	RunE:  runListMarkets,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(listMarketsCmd)
	listMarketsCmd.Flags().StringP("state", "s", "", "Filter by state: open, expired, resolved")
	listMarketsCmd.Flags().BoolP("verbose", "v", false, "Show detailed market information")
}

func runListMarkets(cmd *cobra.Command, args []string) error {
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

	stateFilter, _ := cmd.Flags().GetString("state")
	verbose, _ := cmd.Flags().GetBool("verbose")

	switch stateFilter {
	case "", "open", "expired", "resolved":
	default:
		return fmt.Errorf("invalid state filter: %s. Valid options: open, expired, resolved", stateFilter)
	}

	client, err := newLedgerClient(cfg, logger, false)
	if err != nil {
		return err
	}

	fmt.Printf("Fetching markets for program %s...\n\n", cfg.ProgramID)

	markets, err := client.ListMarkets(ctx)
	if err != nil {
		return fmt.Errorf("list markets: %w", err)
	}

	if len(markets) == 0 {
		fmt.Println("No markets found.")
		return nil
	}

	now := time.Now()
	shown := 0

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "MARKET\tASSET\tQUESTION\tTARGET\tSTATE\n")
	fmt.Fprintf(w, "------\t-----\t--------\t------\t-----\n")

	for _, market := range markets {
		state := market.State(now)
		if stateFilter != "" && state != types.MarketState(stateFilter) {
			continue
		}
		shown++

		question := market.Question
		if len(question) > 50 {
			question = question[:47] + "..."
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t$%s\t%s\n",
			market.Pubkey.String(),
			market.AssetSymbol,
			question,
			displayPrice(market.TargetPrice),
			state)

		if verbose {
			fmt.Fprintf(w, "\tStart Price: $%s\n", displayPrice(market.StartPrice))
			fmt.Fprintf(w, "\tUp Pool: %s SOL, Down Pool: %s SOL\n",
				displayLamports(market.TotalUpPool), displayLamports(market.TotalDownPool))
			fmt.Fprintf(w, "\tEnds: %s\n", time.Unix(market.EndTime, 0).UTC().Format(time.RFC3339))
			if market.Inverted {
				fmt.Fprintf(w, "\tInverted: wins when final price is below target\n")
			}
			if market.Resolved && market.Outcome != nil {
				fmt.Fprintf(w, "\tOutcome: %s (final $%s)\n", outcomeLabel(*market.Outcome), displayPrice(market.EndPrice))
			}
			fmt.Fprintf(w, "\n")
		}
	}

	w.Flush()

	fmt.Printf("\nTotal: %d markets (showing %d)\n", len(markets), shown)

	return nil
}

func displayPrice(value int64) string {
	return decimal.New(value, -8).Round(2).StringFixed(2)
}

func displayLamports(value uint64) string {
	return decimal.New(int64(value), -9).Round(2).StringFixed(2)
}

func outcomeLabel(outcome bool) string {
	if outcome {
		return "UP"
	}
	return "DOWN"
}
