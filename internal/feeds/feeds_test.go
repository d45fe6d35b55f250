package feeds

import (
	"strings"
	"testing"
)

func TestFromHexRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "btc-no-prefix", input: BTCUSDHex},
		{name: "eth-with-prefix", input: "0x" + ETHUSDHex},
		{name: "sol-whitespace", input: "  " + SOLUSDHex + " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := FromHex(tt.input)
			if err != nil {
				t.Fatalf("FromHex(%q): %v", tt.input, err)
			}

			want := "0x" + strings.TrimPrefix(strings.TrimSpace(tt.input), "0x")
			want = strings.TrimSpace(want)
			if got := ToHex(id); got != strings.ToLower(want) {
				t.Errorf("ToHex = %s, want %s", got, want)
			}
		})
	}
}

func TestFromHexRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "short", input: "e62d"},
		{name: "not-hex", input: strings.Repeat("zz", 32)},
		{name: "empty", input: ""},
		{name: "too-long", input: BTCUSDHex + "00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromHex(tt.input)
			if err == nil {
				t.Errorf("FromHex(%q): expected error", tt.input)
			}
		})
	}
}

func TestDefaultTableLookup(t *testing.T) {
	table := DefaultTable()

	id, ok := table.Lookup("btc")
	if !ok {
		t.Fatal("lookup btc: not found")
	}

	if got := table.Symbol(id); got != "BTC" {
		t.Errorf("Symbol = %q, want BTC", got)
	}

	if _, ok := table.Lookup("DOGE"); ok {
		t.Error("lookup DOGE: expected miss")
	}

	want := []string{"BTC", "ETH", "SOL"}
	got := table.Symbols()
	if len(got) != len(want) {
		t.Fatalf("Symbols = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Symbols[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegisterOverride(t *testing.T) {
	table := DefaultTable()

	var custom [32]byte
	custom[0] = 0xAB

	table.Register("wif", custom)

	id, ok := table.Lookup("WIF")
	if !ok || id != custom {
		t.Errorf("lookup WIF after Register = (%v, %v)", id, ok)
	}
}

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantLen int
		wantErr bool
	}{
		{
			name:    "single_pair",
			spec:    "DOGE=" + BTCUSDHex,
			wantLen: 1,
		},
		{
			name:    "multiple_pairs_with_prefix_and_spaces",
			spec:    " doge=0x" + BTCUSDHex + " , WIF=" + ETHUSDHex,
			wantLen: 2,
		},
		{
			name:    "trailing_comma_ignored",
			spec:    "DOGE=" + BTCUSDHex + ",",
			wantLen: 1,
		},
		{
			name:    "empty_spec",
			spec:    "",
			wantLen: 0,
		},
		{
			name:    "missing_separator",
			spec:    "DOGE" + BTCUSDHex,
			wantErr: true,
		},
		{
			name:    "empty_symbol",
			spec:    "=" + BTCUSDHex,
			wantErr: true,
		},
		{
			name:    "bad_hex",
			spec:    "DOGE=nothex",
			wantErr: true,
		},
		{
			name:    "short_id",
			spec:    "DOGE=e62df6c8",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overrides, err := ParseOverrides(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOverrides(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if err == nil && len(overrides) != tt.wantLen {
				t.Errorf("ParseOverrides(%q) returned %d entries, want %d", tt.spec, len(overrides), tt.wantLen)
			}
		})
	}
}

func TestTableWithOverrides(t *testing.T) {
	table, err := TableWithOverrides("DOGE=" + SOLUSDHex + ",BTC=" + ETHUSDHex)
	if err != nil {
		t.Fatalf("TableWithOverrides() error = %v", err)
	}

	// New symbol registered.
	id, ok := table.Lookup("DOGE")
	if !ok {
		t.Fatal("lookup DOGE: not found")
	}
	want, _ := FromHex(SOLUSDHex)
	if id != want {
		t.Errorf("DOGE feed id = %x, want %x", id, want)
	}

	// Built-in symbol overridden.
	id, ok = table.Lookup("BTC")
	if !ok {
		t.Fatal("lookup BTC: not found")
	}
	want, _ = FromHex(ETHUSDHex)
	if id != want {
		t.Errorf("BTC feed id = %x, want %x", id, want)
	}

	// Untouched built-in survives.
	if _, ok := table.Lookup("ETH"); !ok {
		t.Error("lookup ETH: not found after overrides")
	}
}

func TestTableWithOverridesEmptySpec(t *testing.T) {
	table, err := TableWithOverrides("")
	if err != nil {
		t.Fatalf("TableWithOverrides(\"\") error = %v", err)
	}

	want := []string{"BTC", "ETH", "SOL"}
	got := table.Symbols()
	if len(got) != len(want) {
		t.Fatalf("Symbols = %v, want %v", got, want)
	}
}
