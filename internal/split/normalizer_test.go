package split

import (
	"errors"
	"fmt"
	"testing"
)

func members(selected []bool, values []float64) []MemberWeight {
	out := make([]MemberWeight, len(values))
	for i := range values {
		out[i] = MemberWeight{
			Address:  addr(i),
			Selected: selected[i],
			Value:    values[i],
		}
	}
	return out
}

func addr(i int) string {
	return fmt.Sprintf("0x%02x", i+1)
}

func allSelected(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}

func TestSharesNormalizer(t *testing.T) {
	tests := []struct {
		name     string
		selected []bool
		values   []float64
		wantBp   []int64
		wantErr  error
	}{
		{
			name:     "equal shares of three",
			selected: allSelected(3),
			values:   []float64{1, 1, 1},
			wantBp:   []int64{3334, 3333, 3333},
		},
		{
			name:     "skewed shares",
			selected: allSelected(2),
			values:   []float64{3, 1},
			wantBp:   []int64{7500, 2500},
		},
		{
			name:     "remainder cycles past member count",
			selected: allSelected(3),
			values:   []float64{7, 7, 7},
			wantBp:   []int64{3334, 3333, 3333},
		},
		{
			name:     "fractional and negative weights truncate to zero",
			selected: allSelected(3),
			values:   []float64{1.9, -2, 1},
			wantBp:   []int64{5000, 0, 5000},
		},
		{
			name:     "unselected members are skipped",
			selected: []bool{true, false, true},
			values:   []float64{1, 5, 1},
			wantBp:   []int64{5000, 5000},
		},
		{
			name:     "zero total weight",
			selected: allSelected(2),
			values:   []float64{0, 0},
			wantErr:  ErrNoValidWeights,
		},
		{
			name:     "nobody selected",
			selected: []bool{false, false},
			values:   []float64{1, 1},
			wantErr:  ErrNoValidWeights,
		},
	}

	n := &SharesNormalizer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc, err := n.Normalize(members(tt.selected, tt.values))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Normalize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}
			if len(alloc.SharesBp) != len(tt.wantBp) {
				t.Fatalf("Normalize() returned %d entries, want %d", len(alloc.SharesBp), len(tt.wantBp))
			}
			for i, bp := range alloc.SharesBp {
				if bp != tt.wantBp[i] {
					t.Errorf("bp[%d] = %d, want %d", i, bp, tt.wantBp[i])
				}
			}
			if sum := alloc.Sum(); sum != TotalBasisPoints {
				t.Errorf("basis points sum to %d, want %d", sum, TotalBasisPoints)
			}
		})
	}
}

func TestSharesNormalizerAlwaysSumsToTotal(t *testing.T) {
	n := &SharesNormalizer{}
	weightSets := [][]float64{
		{1, 1, 1, 1, 1, 1, 1},
		{1, 2, 3, 4, 5},
		{99, 1},
		{13, 17, 19, 23, 29, 31},
		{1000000, 1},
	}
	for _, values := range weightSets {
		alloc, err := n.Normalize(members(allSelected(len(values)), values))
		if err != nil {
			t.Fatalf("Normalize(%v) error: %v", values, err)
		}
		if sum := alloc.Sum(); sum != TotalBasisPoints {
			t.Errorf("Normalize(%v) sums to %d, want %d", values, sum, TotalBasisPoints)
		}
	}
}

func TestPercentNormalizer(t *testing.T) {
	n := &PercentNormalizer{}

	t.Run("two decimal percentages convert to basis points", func(t *testing.T) {
		alloc, err := n.Normalize(members(allSelected(3), []float64{33.34, 33.33, 33.33}))
		if err != nil {
			t.Fatalf("Normalize() error: %v", err)
		}
		want := []int64{3334, 3333, 3333}
		for i, bp := range alloc.SharesBp {
			if bp != want[i] {
				t.Errorf("bp[%d] = %d, want %d", i, bp, want[i])
			}
		}
		if !alloc.Valid() {
			t.Error("allocation should be valid")
		}
	})

	t.Run("drifted sum is preserved, not corrected", func(t *testing.T) {
		// Three members hand-entered at 33.33% sum to 9999. The engine must
		// surface that, never adjust a displayed percentage behind the
		// user's back.
		alloc, err := n.Normalize(members(allSelected(3), []float64{33.33, 33.33, 33.33}))
		if err != nil {
			t.Fatalf("Normalize() error: %v", err)
		}
		if got := alloc.Sum(); got != 9999 {
			t.Fatalf("sum = %d, want 9999", got)
		}
		if alloc.Valid() {
			t.Error("allocation must be reported invalid")
		}
	})

	t.Run("zero total", func(t *testing.T) {
		_, err := n.Normalize(members(allSelected(2), []float64{0, 0}))
		if !errors.Is(err, ErrNoValidWeights) {
			t.Fatalf("error = %v, want ErrNoValidWeights", err)
		}
	})
}

func TestEqualSplit(t *testing.T) {
	t.Run("percent mode three members", func(t *testing.T) {
		n := &PercentNormalizer{}
		got := n.EqualSplit(3)
		want := []float64{33.34, 33.33, 33.33}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("EqualSplit(3)[%d] = %v, want %v", i, got[i], want[i])
			}
		}
		alloc, err := n.Normalize(members(allSelected(3), got))
		if err != nil {
			t.Fatalf("Normalize() error: %v", err)
		}
		if !alloc.Valid() {
			t.Errorf("equal split must produce a valid allocation, sum = %d", alloc.Sum())
		}
	})

	t.Run("shares mode assigns one share each", func(t *testing.T) {
		n := &SharesNormalizer{}
		for _, w := range n.EqualSplit(5) {
			if w != 1 {
				t.Fatalf("EqualSplit weight = %v, want 1", w)
			}
		}
	})
}

func TestDistributeRemainder(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		remainder int64
		want      []int64
	}{
		{"no remainder", 3, 0, []int64{0, 0, 0}},
		{"remainder below count", 4, 2, []int64{1, 1, 0, 0}},
		{"remainder equals count", 3, 3, []int64{1, 1, 1}},
		{"remainder cycles", 3, 7, []int64{3, 2, 2}},
		{"single participant", 1, 5, []int64{5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistributeRemainder(tt.n, tt.remainder)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("DistributeRemainder(%d, %d)[%d] = %d, want %d",
						tt.n, tt.remainder, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizerFactory(t *testing.T) {
	f := NewNormalizerFactory()

	for _, mode := range []Mode{ModeShares, ModePercent} {
		n, err := f.Create(mode)
		if err != nil {
			t.Fatalf("Create(%s) error: %v", mode, err)
		}
		if n.Mode() != mode {
			t.Errorf("Create(%s).Mode() = %s", mode, n.Mode())
		}
	}

	if _, err := f.CreateFromString("EXACT"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
