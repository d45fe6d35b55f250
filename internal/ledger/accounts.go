package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/solpredict/resolver/pkg/types"
)

// Anchor account data starts with an 8-byte discriminator derived from the
// account struct name.
func accountDiscriminator(name string) [8]byte {
	var disc [8]byte
	sum := sha256.Sum256([]byte("account:" + name))
	copy(disc[:], sum[:8])
	return disc
}

var (
	marketDiscriminator = accountDiscriminator("Market")
	betDiscriminator    = accountDiscriminator("Bet")
)

// maxStringLen caps borsh string fields; anything longer than the program
// could ever have allocated means the blob is not one of ours.
const maxStringLen = 512

// accountReader walks a borsh-encoded account blob with bounds checking.
// Any overrun flips failed; callers check once at the end and map it to
// ErrIncompatibleLayout.
type accountReader struct {
	data   []byte
	offset int
	failed bool
}

func (r *accountReader) take(n int) []byte {
	if r.failed || r.offset+n > len(r.data) {
		r.failed = true
		return nil
	}

	chunk := r.data[r.offset : r.offset+n]
	r.offset += n

	return chunk
}

func (r *accountReader) u8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *accountReader) boolean() bool {
	return r.u8() == 1
}

func (r *accountReader) u64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *accountReader) i64() int64 {
	return int64(r.u64())
}

func (r *accountReader) pubkey() solana.PublicKey {
	b := r.take(32)
	if b == nil {
		return solana.PublicKey{}
	}
	return solana.PublicKeyFromBytes(b)
}

func (r *accountReader) str() string {
	length := int(binary.LittleEndian.Uint32(r.take4()))
	if r.failed || length > maxStringLen {
		r.failed = true
		return ""
	}

	b := r.take(length)
	if b == nil {
		return ""
	}

	return string(b)
}

func (r *accountReader) take4() []byte {
	b := r.take(4)
	if b == nil {
		return make([]byte, 4)
	}
	return b
}

// optionBool reads a borsh Option<bool>: a tag byte, then the value only
// when the tag is 1.
func (r *accountReader) optionBool() *bool {
	switch r.u8() {
	case 0:
		return nil
	case 1:
		v := r.boolean()
		return &v
	default:
		r.failed = true
		return nil
	}
}

// DecodeMarket decodes a market account blob. Blobs with a wrong
// discriminator, a truncated layout, or trailing garbage return
// ErrIncompatibleLayout so list callers can skip them.
func DecodeMarket(pubkey solana.PublicKey, data []byte) (*types.Market, error) {
	if len(data) < 8 || !bytes.Equal(data[:8], marketDiscriminator[:]) {
		return nil, fmt.Errorf("%w: market %s", types.ErrIncompatibleLayout, pubkey)
	}

	r := &accountReader{data: data[8:]}

	m := &types.Market{Pubkey: pubkey}
	m.Admin = r.pubkey()
	m.Question = r.str()
	m.AssetSymbol = r.str()
	copy(m.FeedID[:], r.take(32))
	m.TargetPrice = r.i64()
	m.StartPrice = r.i64()
	m.EndPrice = r.i64()
	m.PriceConf = r.u64()
	m.StartTime = r.i64()
	m.EndTime = r.i64()
	m.TotalUpPool = r.u64()
	m.TotalDownPool = r.u64()
	m.Resolved = r.boolean()
	m.Outcome = r.optionBool()
	m.VaultBump = r.u8()
	m.Inverted = r.boolean()

	if r.failed {
		return nil, fmt.Errorf("%w: market %s: truncated data", types.ErrIncompatibleLayout, pubkey)
	}

	// An unresolved market with a recorded outcome is not a layout we know.
	if !m.Resolved && m.Outcome != nil {
		return nil, fmt.Errorf("%w: market %s: outcome set before resolution", types.ErrIncompatibleLayout, pubkey)
	}

	return m, nil
}

// DecodeBet decodes a bet account blob.
func DecodeBet(pubkey solana.PublicKey, data []byte) (*types.Bet, error) {
	if len(data) < 8 || !bytes.Equal(data[:8], betDiscriminator[:]) {
		return nil, fmt.Errorf("%w: bet %s", types.ErrIncompatibleLayout, pubkey)
	}

	r := &accountReader{data: data[8:]}

	b := &types.Bet{Pubkey: pubkey}
	b.User = r.pubkey()
	b.Market = r.pubkey()
	b.Amount = r.u64()
	b.Direction = r.boolean()
	b.Claimed = r.boolean()

	if r.failed {
		return nil, fmt.Errorf("%w: bet %s: truncated data", types.ErrIncompatibleLayout, pubkey)
	}

	if b.Amount == 0 {
		return nil, fmt.Errorf("%w: bet %s: zero amount", types.ErrIncompatibleLayout, pubkey)
	}

	return b, nil
}
