package ledger

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/solpredict/resolver/internal/feeds"
)

func TestDeriveVaultAddressDeterministic(t *testing.T) {
	programID := solana.MustPublicKeyFromBase58("6kdWRDeTupf2DK3A8p1JRjh6adpFStzLZjBany25GY97")
	market := solana.NewWallet().PublicKey()

	addr1, bump1, err := DeriveVaultAddress(programID, market)
	if err != nil {
		t.Fatalf("DeriveVaultAddress: %v", err)
	}

	addr2, bump2, err := DeriveVaultAddress(programID, market)
	if err != nil {
		t.Fatalf("DeriveVaultAddress: %v", err)
	}

	if !addr1.Equals(addr2) || bump1 != bump2 {
		t.Error("derivation is not deterministic")
	}

	// Off-curve by construction.
	if solana.IsOnCurve(addr1.Bytes()) {
		t.Error("vault PDA must be off-curve")
	}

	// A different market yields a different vault.
	other, _, err := DeriveVaultAddress(programID, solana.NewWallet().PublicKey())
	if err != nil {
		t.Fatalf("DeriveVaultAddress: %v", err)
	}
	if addr1.Equals(other) {
		t.Error("distinct markets must derive distinct vaults")
	}
}

func TestDeriveOracleUpdateAddress(t *testing.T) {
	receiver := solana.MustPublicKeyFromBase58("rec5EKMGg6MxZYaMdyBfgwp4d5rB9T1VQH5pJv5LtFJ")

	btc, err := feeds.FromHex(feeds.BTCUSDHex)
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}

	sol, err := feeds.FromHex(feeds.SOLUSDHex)
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}

	btcAddr, _, err := DeriveOracleUpdateAddress(receiver, btc, DefaultShardID)
	if err != nil {
		t.Fatalf("DeriveOracleUpdateAddress: %v", err)
	}

	btcAddrAgain, _, err := DeriveOracleUpdateAddress(receiver, btc, DefaultShardID)
	if err != nil {
		t.Fatalf("DeriveOracleUpdateAddress: %v", err)
	}

	if !btcAddr.Equals(btcAddrAgain) {
		t.Error("derivation is not deterministic")
	}

	solAddr, _, err := DeriveOracleUpdateAddress(receiver, sol, DefaultShardID)
	if err != nil {
		t.Fatalf("DeriveOracleUpdateAddress: %v", err)
	}
	if btcAddr.Equals(solAddr) {
		t.Error("distinct feeds must derive distinct accounts")
	}

	// Shard participates in the seeds.
	shard1, _, err := DeriveOracleUpdateAddress(receiver, btc, 1)
	if err != nil {
		t.Fatalf("DeriveOracleUpdateAddress: %v", err)
	}
	if btcAddr.Equals(shard1) {
		t.Error("distinct shards must derive distinct accounts")
	}
}
