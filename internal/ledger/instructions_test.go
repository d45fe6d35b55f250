package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"testing"
)

func TestInstructionDiscriminator(t *testing.T) {
	want := sha256.Sum256([]byte("global:resolve_market"))
	if !bytes.Equal(resolveMarketDiscriminator[:], want[:8]) {
		t.Error("resolve_market discriminator mismatch")
	}

	// Distinct instructions get distinct discriminators.
	if resolveMarketDiscriminator == claimDiscriminator {
		t.Error("discriminator collision")
	}
}

func TestResolveMarketData(t *testing.T) {
	data := resolveMarketData(-6_000_000_000_000)

	if len(data) != 16 {
		t.Fatalf("len = %d, want 16", len(data))
	}
	if !bytes.Equal(data[:8], resolveMarketDiscriminator[:]) {
		t.Error("discriminator mismatch")
	}
	if got := int64(binary.LittleEndian.Uint64(data[8:])); got != -6_000_000_000_000 {
		t.Errorf("final price = %d", got)
	}
}

func TestClaimDataIsBareDiscriminator(t *testing.T) {
	if !bytes.Equal(claimData(), claimDiscriminator[:]) {
		t.Error("claim data must be the bare discriminator")
	}
}

func TestPlaceBetData(t *testing.T) {
	data := placeBetData(true, 750_000_000)

	if len(data) != 17 {
		t.Fatalf("len = %d, want 17", len(data))
	}
	if data[8] != 1 {
		t.Error("direction byte not set")
	}
	if got := binary.LittleEndian.Uint64(data[9:]); got != 750_000_000 {
		t.Errorf("amount = %d", got)
	}
}

func TestInitializeMarketData(t *testing.T) {
	var feedID [32]byte
	feedID[31] = 0x43

	data := initializeMarketData("Will SOL dip below $120?", "SOL", 86_400, feedID,
		15_000_000_000, 9_000_000, 12_000_000_000, true)

	r := &accountReader{data: data[8:]}

	if got := r.str(); got != "Will SOL dip below $120?" {
		t.Errorf("question = %q", got)
	}
	if got := r.str(); got != "SOL" {
		t.Errorf("asset = %q", got)
	}
	if got := r.i64(); got != 86_400 {
		t.Errorf("duration = %d", got)
	}
	if got := r.take(32); !bytes.Equal(got, feedID[:]) {
		t.Error("feed id mismatch")
	}
	if got := r.i64(); got != 15_000_000_000 {
		t.Errorf("initial price = %d", got)
	}
	if got := r.u64(); got != 9_000_000 {
		t.Errorf("conf = %d", got)
	}
	if got := r.i64(); got != 12_000_000_000 {
		t.Errorf("target = %d", got)
	}
	if !r.boolean() {
		t.Error("inverted flag not set")
	}

	if r.offset != len(data)-8 {
		t.Errorf("trailing bytes: read %d of %d", r.offset, len(data)-8)
	}
	if r.failed {
		t.Error("reader overran encoded data")
	}
}
