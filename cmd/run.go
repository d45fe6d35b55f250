package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/solpredict/resolver/internal/app"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the resolution engine",
	Long: `Starts the market resolution engine, which will:
1. Poll the market program for expired unresolved markets
2. Fetch the authoritative price for each from the Pyth network
3. Submit resolution transactions with bounded concurrency
4. Record completed resolutions to storage

The engine also serves /metrics, /health, /ready and a small market API
over HTTP.`,
	RunE: runEngine,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(runCmd)
}

func runEngine(cmd *cobra.Command, args []string) error {
	// Load .env
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

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
