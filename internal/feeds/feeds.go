// Package feeds maps asset symbols to Pyth price feed identifiers.
package feeds

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Well-known Pyth USD feed IDs (identical on mainnet and devnet).
const (
	BTCUSDHex = "e62df6c8b4a85fe1a67db44dc12de5db330f7ac66b72dc658afedf0f4a415b43"
	ETHUSDHex = "ff61491a931112ddf1bd8147cd1b641375f79f5825126d665480874634fd0ace"
	SOLUSDHex = "ef0d8b6fda2ceba41da15d4095d1da392a0d2f8ed0c6c7bc0f4cfac8c280b56d"
)

// Table resolves asset symbols to 32-byte feed identifiers.
type Table struct {
	bySymbol map[string][32]byte
}

// DefaultTable returns the built-in symbol table.
func DefaultTable() *Table {
	t := &Table{bySymbol: make(map[string][32]byte)}

	for symbol, hexID := range map[string]string{
		"BTC": BTCUSDHex,
		"ETH": ETHUSDHex,
		"SOL": SOLUSDHex,
	} {
		id, err := FromHex(hexID)
		if err != nil {
			// Built-in constants; a failure here is a programming error.
			panic(fmt.Sprintf("invalid built-in feed id for %s: %v", symbol, err))
		}
		t.bySymbol[symbol] = id
	}

	return t
}

// Lookup returns the feed ID for a symbol.
func (t *Table) Lookup(symbol string) ([32]byte, bool) {
	id, ok := t.bySymbol[strings.ToUpper(symbol)]
	return id, ok
}

// Symbol reverse-maps a feed ID to its asset symbol, or "" if unknown.
func (t *Table) Symbol(feedID [32]byte) string {
	for symbol, id := range t.bySymbol {
		if id == feedID {
			return symbol
		}
	}

	return ""
}

// Symbols returns the known symbols in sorted order.
func (t *Table) Symbols() []string {
	symbols := make([]string, 0, len(t.bySymbol))
	for s := range t.bySymbol {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	return symbols
}

// Register adds or overrides a symbol mapping.
func (t *Table) Register(symbol string, feedID [32]byte) {
	t.bySymbol[strings.ToUpper(symbol)] = feedID
}

// ParseOverrides parses a comma-separated "SYMBOL=hex" list into feed IDs.
// Empty segments are skipped so trailing commas are harmless.
func ParseOverrides(spec string) (map[string][32]byte, error) {
	overrides := make(map[string][32]byte)

	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		symbol, hexID, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("feed override %q: want SYMBOL=hex", pair)
		}

		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			return nil, fmt.Errorf("feed override %q: empty symbol", pair)
		}

		id, err := FromHex(hexID)
		if err != nil {
			return nil, fmt.Errorf("feed override %s: %w", symbol, err)
		}

		overrides[symbol] = id
	}

	return overrides, nil
}

// TableWithOverrides returns the default table with the overrides from a
// "SYMBOL=hex,..." spec applied on top. An empty spec yields the default
// table unchanged.
func TableWithOverrides(spec string) (*Table, error) {
	table := DefaultTable()

	overrides, err := ParseOverrides(spec)
	if err != nil {
		return nil, err
	}

	for symbol, id := range overrides {
		table.Register(symbol, id)
	}

	return table, nil
}

// FromHex parses a feed ID from its hex form, with or without 0x prefix.
func FromHex(s string) ([32]byte, error) {
	var id [32]byte

	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")

	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("decode feed id: %w", err)
	}

	if len(raw) != 32 {
		return id, fmt.Errorf("feed id must be 32 bytes, got %d", len(raw))
	}

	copy(id[:], raw)

	return id, nil
}

// ToHex renders a feed ID in the 0x-prefixed hex form the oracle API expects.
func ToHex(feedID [32]byte) string {
	return "0x" + hex.EncodeToString(feedID[:])
}
