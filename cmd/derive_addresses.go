package cmd

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/solpredict/resolver/internal/feeds"
	"github.com/solpredict/resolver/internal/ledger"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var deriveAddressesCmd = &cobra.Command{
	Use:   "derive-addresses <market-pubkey>",
	Short: "Derive the PDAs associated with a market",
	Long: `Derives the vault PDA for a market, and the Pyth price update PDA for
an asset when --asset is given. Pure offline derivation, no RPC calls.

Example:
  resolver derive-addresses 7nYa...Qx4 --asset BTC`,
	Args: cobra.ExactArgs(1),
	RunE: runDeriveAddresses,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(deriveAddressesCmd)
	deriveAddressesCmd.Flags().StringP("asset", "a", "", "Asset symbol for the price update PDA")
}

func runDeriveAddresses(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found\n")
	}

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

	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		return fmt.Errorf("parse PROGRAM_ID: %w", err)
	}

	vault, vaultBump, err := ledger.DeriveVaultAddress(programID, market)
	if err != nil {
		return fmt.Errorf("derive vault address: %w", err)
	}

	fmt.Printf("Market: %s\n", market)
	fmt.Printf("Vault:  %s (bump %d)\n", vault, vaultBump)

	asset, _ := cmd.Flags().GetString("asset")
	if asset == "" {
		return nil
	}

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

	receiverID, err := solana.PublicKeyFromBase58(cfg.PythReceiverProgramID)
	if err != nil {
		return fmt.Errorf("parse PYTH_RECEIVER_PROGRAM_ID: %w", err)
	}

	update, updateBump, err := ledger.DeriveOracleUpdateAddress(receiverID, feedID, uint16(cfg.PythShardID))
	if err != nil {
		return fmt.Errorf("derive price update address: %w", err)
	}

	fmt.Printf("Feed:   %s (%s)\n", asset, feeds.ToHex(feedID))
	fmt.Printf("Update: %s (bump %d, shard %d)\n", update, updateBump, cfg.PythShardID)

	return nil
}
