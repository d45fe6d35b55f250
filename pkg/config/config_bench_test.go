package config

import (
	"os"
	"testing"
	"time"
)

// BenchmarkConfig_Validate benchmarks configuration validation
func BenchmarkConfig_Validate(b *testing.B) {
	cfg := &Config{
		HTTPPort:           "8080",
		RPCURL:             "https://api.devnet.solana.com",
		ProgramID:          "6kdWRDeTupf2DK3A8p1JRjh6adpFStzLZjBany25GY97",
		HermesURL:          "https://hermes.pyth.network",
		PollInterval:       120 * time.Second,
		ResolveConcurrency: 8,
		FeeRateBps:         200,
		StorageMode:        "console",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cfg.Validate()
	}
}

// BenchmarkConfig_LoadFromEnv benchmarks environment variable loading
func BenchmarkConfig_LoadFromEnv(b *testing.B) {
	os.Setenv("PROGRAM_ID", "6kdWRDeTupf2DK3A8p1JRjh6adpFStzLZjBany25GY97")
	os.Setenv("POLL_INTERVAL", "120s")
	os.Setenv("RESOLVE_CONCURRENCY", "8")
	defer func() {
		os.Unsetenv("PROGRAM_ID")
		os.Unsetenv("POLL_INTERVAL")
		os.Unsetenv("RESOLVE_CONCURRENCY")
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = LoadFromEnv()
	}
}
