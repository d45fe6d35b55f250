package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Seed tags are program-domain constants. The ledger program derives the
// same addresses when validating transactions, so these must be bit-exact:
// a mismatch shows up as a ledger-side rejection, not a wrong address.
const (
	vaultSeed       = "vault"
	priceUpdateSeed = "PriceUpdate"
)

// DefaultShardID is the Pyth receiver shard used for price update accounts.
const DefaultShardID uint16 = 0

// DeriveVaultAddress computes the vault PDA holding a market's pooled
// stakes: seeds ["vault", marketPubkey] under the market program. Pure
// derivation, no ledger round-trip.
func DeriveVaultAddress(programID, market solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(vaultSeed),
		market.Bytes(),
	}

	pda, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("derive vault address: %w", err)
	}

	return pda, bump, nil
}

// DeriveOracleUpdateAddress computes the Pyth receiver's price update
// account for a feed: seeds ["PriceUpdate", shardID le-u16, feedID] under
// the receiver program.
func DeriveOracleUpdateAddress(receiverProgramID solana.PublicKey, feedID [32]byte, shardID uint16) (solana.PublicKey, uint8, error) {
	shard := make([]byte, 2)
	binary.LittleEndian.PutUint16(shard, shardID)

	seeds := [][]byte{
		[]byte(priceUpdateSeed),
		shard,
		feedID[:],
	}

	pda, bump, err := solana.FindProgramAddress(seeds, receiverProgramID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("derive price update address: %w", err)
	}

	return pda, bump, nil
}
