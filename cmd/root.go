package cmd

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/solpredict/resolver/internal/ledger"
	"github.com/solpredict/resolver/pkg/config"
	"github.com/solpredict/resolver/pkg/wallet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resolver",
	Short: "Prediction market resolution engine",
	Long: `Resolution engine for on-chain binary prediction markets.

The resolver polls the market program for expired markets, fetches the
authoritative price from the Pyth network via Hermes, and submits
resolution transactions. Additional commands cover market administration,
betting and claiming for local testing.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setupEnv loads config and a logger for one-shot commands.
func setupEnv() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	return cfg, logger, nil
}

// newLedgerClient builds a ledger client for one-shot commands. The signer
// is optional for read-only commands.
func newLedgerClient(cfg *config.Config, logger *zap.Logger, needSigner bool) (*ledger.Client, error) {
	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("parse PROGRAM_ID: %w", err)
	}

	receiverID, err := solana.PublicKeyFromBase58(cfg.PythReceiverProgramID)
	if err != nil {
		return nil, fmt.Errorf("parse PYTH_RECEIVER_PROGRAM_ID: %w", err)
	}

	var signer *wallet.Signer
	if needSigner {
		if cfg.WalletKeypairPath == "" {
			return nil, fmt.Errorf("WALLET_KEYPAIR_PATH not set")
		}
		signer, err = wallet.LoadFromFile(cfg.WalletKeypairPath)
		if err != nil {
			return nil, fmt.Errorf("load keypair: %w", err)
		}
	}

	return ledger.NewClient(&ledger.Config{
		RPCURL:            cfg.RPCURL,
		ProgramID:         programID,
		ReceiverProgramID: receiverID,
		ShardID:           uint16(cfg.PythShardID),
		Signer:            signer,
		Timeout:           cfg.RPCTimeout,
		Logger:            logger,
	}), nil
}
