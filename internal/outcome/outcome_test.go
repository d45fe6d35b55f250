package outcome

import "testing"

func TestEvaluate(t *testing.T) {
	// Prices at 1e8 scale: 5_000_000_000_000 == $50,000.00.
	tests := []struct {
		name     string
		start    int64
		target   int64
		final    int64
		inverted bool
		want     bool
	}{
		{
			name:   "above-target-yes",
			start:  5_000_000_000_000,
			target: 5_500_000_000_000,
			final:  6_000_000_000_000,
			want:   true,
		},
		{
			name:   "below-target-no",
			start:  5_000_000_000_000,
			target: 5_500_000_000_000,
			final:  5_200_000_000_000,
			want:   false,
		},
		{
			name:   "exactly-at-target-yes",
			start:  5_000_000_000_000,
			target: 5_500_000_000_000,
			final:  5_500_000_000_000,
			want:   true,
		},
		{
			name:     "inverted-above-target-no",
			start:    5_000_000_000_000,
			target:   4_500_000_000_000,
			final:    4_800_000_000_000,
			inverted: true,
			want:     false,
		},
		{
			name:     "inverted-below-target-yes",
			start:    5_000_000_000_000,
			target:   4_500_000_000_000,
			final:    4_000_000_000_000,
			inverted: true,
			want:     true,
		},
		{
			name:     "inverted-exactly-at-target-no",
			start:    5_000_000_000_000,
			target:   4_500_000_000_000,
			final:    4_500_000_000_000,
			inverted: true,
			want:     false,
		},
		{
			name:   "negative-final-standard",
			start:  100,
			target: 0,
			final:  -1,
			want:   false,
		},
		{
			name:     "negative-final-inverted",
			start:    100,
			target:   0,
			final:    -1,
			inverted: true,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.start, tt.target, tt.final, tt.inverted)
			if got != tt.want {
				t.Errorf("Evaluate(%d, %d, %d, %v) = %v, want %v",
					tt.start, tt.target, tt.final, tt.inverted, got, tt.want)
			}
		})
	}
}

// The boundary must agree between modes: for any target, final == target is
// YES standard and NO inverted, never both or neither.
func TestBoundaryAsymmetry(t *testing.T) {
	targets := []int64{0, 1, 4_500_000_000_000, 9_223_372_036_854_775_807}

	for _, target := range targets {
		if !Evaluate(0, target, target, false) {
			t.Errorf("standard: final == target (%d) must resolve true", target)
		}
		if Evaluate(0, target, target, true) {
			t.Errorf("inverted: final == target (%d) must resolve false", target)
		}
	}
}
