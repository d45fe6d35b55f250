package ledger

import (
	"crypto/sha256"
	"encoding/binary"
)

// Anchor instruction data starts with an 8-byte discriminator derived from
// the snake_case method name in the program's global namespace.
func instructionDiscriminator(name string) [8]byte {
	var disc [8]byte
	sum := sha256.Sum256([]byte("global:" + name))
	copy(disc[:], sum[:8])
	return disc
}

var (
	initializeMarketDiscriminator = instructionDiscriminator("initialize_market")
	placeBetDiscriminator         = instructionDiscriminator("place_bet")
	resolveMarketDiscriminator    = instructionDiscriminator("resolve_market")
	claimDiscriminator            = instructionDiscriminator("claim")
)

// argWriter builds borsh-encoded instruction data.
type argWriter struct {
	buf []byte
}

func newArgWriter(discriminator [8]byte) *argWriter {
	return &argWriter{buf: append([]byte(nil), discriminator[:]...)}
}

func (w *argWriter) u64(v uint64) *argWriter {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
	return w
}

func (w *argWriter) i64(v int64) *argWriter {
	return w.u64(uint64(v))
}

func (w *argWriter) boolean(v bool) *argWriter {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
	return w
}

func (w *argWriter) str(s string) *argWriter {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(len(s)))
	w.buf = append(w.buf, s...)
	return w
}

func (w *argWriter) bytes32(b [32]byte) *argWriter {
	w.buf = append(w.buf, b[:]...)
	return w
}

func (w *argWriter) data() []byte { return w.buf }

// resolveMarketData encodes resolve_market(final_price).
func resolveMarketData(finalPrice int64) []byte {
	return newArgWriter(resolveMarketDiscriminator).i64(finalPrice).data()
}

// claimData encodes claim(), which takes no arguments.
func claimData() []byte {
	return newArgWriter(claimDiscriminator).data()
}

// placeBetData encodes place_bet(direction, amount).
func placeBetData(direction bool, amount uint64) []byte {
	return newArgWriter(placeBetDiscriminator).boolean(direction).u64(amount).data()
}

// initializeMarketData encodes initialize_market(question, asset, duration,
// feed_id, initial_price, price_conf, target_price, inverted). The
// inverted-aware signature is the canonical protocol version.
func initializeMarketData(question, asset string, durationSeconds int64, feedID [32]byte, initialPrice int64, priceConf uint64, targetPrice int64, inverted bool) []byte {
	return newArgWriter(initializeMarketDiscriminator).
		str(question).
		str(asset).
		i64(durationSeconds).
		bytes32(feedID).
		i64(initialPrice).
		u64(priceConf).
		i64(targetPrice).
		boolean(inverted).
		data()
}
