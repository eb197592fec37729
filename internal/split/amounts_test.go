package split

import (
	"errors"
	"testing"
)

func TestAmounts(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		bps     []int64
		want    []int64
		wantErr error
	}{
		{
			name:  "one whole unit across three equal shares",
			total: 100_000_000,
			bps:   []int64{3334, 3333, 3333},
			want:  []int64{33_340_000, 33_330_000, 33_330_000},
		},
		{
			name:  "indivisible total leaves remainder on first debtors",
			total: 100,
			bps:   []int64{3334, 3333, 3333},
			want:  []int64{34, 33, 33},
		},
		{
			name:  "highly skewed allocation",
			total: 1_000_003,
			bps:   []int64{1, 9999},
			want:  []int64{101, 999_902},
		},
		{
			name:  "zero basis points yield zero owed",
			total: 500,
			bps:   []int64{10000, 0, 0},
			want:  []int64{500, 0, 0},
		},
		{
			name:  "zero total amount",
			total: 0,
			bps:   []int64{5000, 5000},
			want:  []int64{0, 0},
		},
		{
			name:    "sum below 10000 rejected",
			total:   100,
			bps:     []int64{3333, 3333, 3333},
			wantErr: ErrInvalidSplitSum,
		},
		{
			name:    "sum above 10000 rejected",
			total:   100,
			bps:     []int64{5001, 5000},
			wantErr: ErrInvalidSplitSum,
		},
		{
			name:    "negative basis point rejected",
			total:   100,
			bps:     []int64{10001, -1},
			wantErr: ErrInvalidSplitSum,
		},
		{
			name:    "negative total rejected",
			total:   -1,
			bps:     []int64{10000},
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "empty debtor list rejected",
			total:   100,
			bps:     []int64{},
			wantErr: ErrNoDebtors,
		},
		{
			name:    "total past the safe multiplication range rejected",
			total:   maxSafeAmount + 1,
			bps:     []int64{10000},
			wantErr: ErrAmountTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Amounts(tt.total, tt.bps)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Amounts() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Amounts() unexpected error: %v", err)
			}
			var sum int64
			for i, a := range got {
				if a != tt.want[i] {
					t.Errorf("amount[%d] = %d, want %d", i, a, tt.want[i])
				}
				sum += a
			}
			if sum != tt.total {
				t.Errorf("amounts sum to %d, want %d", sum, tt.total)
			}
		})
	}
}

func TestAmountsNoLeakage(t *testing.T) {
	// Σ share must equal the total exactly for any valid basis-point vector,
	// including heavily skewed ones.
	allocations := [][]int64{
		{1, 9999},
		{1, 1, 9998},
		{2500, 2500, 2500, 2500},
		{3334, 3333, 3333},
		{9997, 1, 1, 1},
		{10000},
	}
	totals := []int64{0, 1, 7, 99, 100_000_000, 123_456_789, 999_999_999_999}

	for _, bps := range allocations {
		for _, total := range totals {
			amounts, err := Amounts(total, bps)
			if err != nil {
				t.Fatalf("Amounts(%d, %v) error: %v", total, bps, err)
			}
			var sum int64
			for _, a := range amounts {
				sum += a
			}
			if sum != total {
				t.Errorf("Amounts(%d, %v) leaked: sum = %d", total, bps, sum)
			}
		}
	}
}

func TestPerShare(t *testing.T) {
	if got := PerShare([]int64{34, 33, 33}); got != 34 {
		t.Errorf("PerShare = %d, want 34", got)
	}
	if got := PerShare(nil); got != 0 {
		t.Errorf("PerShare(nil) = %d, want 0", got)
	}
}
