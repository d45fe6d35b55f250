package oracle

import (
	"testing"

	"github.com/solpredict/resolver/pkg/types"
)

func TestFormatDisplayValue(t *testing.T) {
	tests := []struct {
		name  string
		quote types.PriceQuote
		want  string
	}{
		{
			name:  "btc-8-decimals",
			quote: types.PriceQuote{Price: 6898817426573, Expo: -8},
			want:  "68988.17",
		},
		{
			name:  "round-half-up",
			quote: types.PriceQuote{Price: 123455, Expo: -4}, // 12.3455
			want:  "12.35",
		},
		{
			name:  "rounds-to-nearest",
			quote: types.PriceQuote{Price: 123454, Expo: -4}, // 12.3454
			want:  "12.35",
		},
		{
			name:  "rounds-down-below-half",
			quote: types.PriceQuote{Price: 123444, Expo: -4}, // 12.3444
			want:  "12.34",
		},
		{
			name:  "positive-exponent",
			quote: types.PriceQuote{Price: 5, Expo: 2},
			want:  "500.00",
		},
		{
			name:  "zero",
			quote: types.PriceQuote{Price: 0, Expo: -8},
			want:  "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDisplayValue(tt.quote); got != tt.want {
				t.Errorf("FormatDisplayValue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScaledPrice(t *testing.T) {
	tests := []struct {
		name  string
		quote types.PriceQuote
		want  int64
	}{
		{name: "native-expo", quote: types.PriceQuote{Price: 6898817426573, Expo: -8}, want: 6898817426573},
		{name: "coarser-expo", quote: types.PriceQuote{Price: 68988, Expo: 0}, want: 6898800000000},
		{name: "finer-expo-truncates", quote: types.PriceQuote{Price: 689881742657399, Expo: -10}, want: 6898817426573},
		{name: "negative-price", quote: types.PriceQuote{Price: -100, Expo: -8}, want: -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quote.ScaledPrice(); got != tt.want {
				t.Errorf("ScaledPrice = %d, want %d", got, tt.want)
			}
		})
	}
}
