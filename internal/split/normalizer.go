package split

import (
	"errors"
	"fmt"
	"math"
)

// Mode defines how raw member weights are interpreted
type Mode string

const (
	ModeShares  Mode = "SHARES"
	ModePercent Mode = "PERCENT"
)

// TotalBasisPoints is the fixed-point denominator for split ratios.
// Every valid allocation sums to exactly this value.
const TotalBasisPoints int64 = 10_000

// MemberWeight represents one group member's raw weight as entered by the user.
// Value means integer shares in ModeShares and a two-decimal percentage in
// ModePercent. Unselected members contribute zero weight.
type MemberWeight struct {
	Address  string  `json:"address"`
	Selected bool    `json:"selected"`
	Value    float64 `json:"value"`
}

// Allocation is the result of normalizing weights: debtor addresses and their
// basis points, aligned by index.
type Allocation struct {
	Debtors  []string `json:"debtors"`
	SharesBp []int64  `json:"shares_bp"`
}

// Sum returns the total basis points in the allocation.
func (a *Allocation) Sum() int64 {
	var sum int64
	for _, bp := range a.SharesBp {
		sum += bp
	}
	return sum
}

// Valid reports whether the allocation sums to exactly 10,000 basis points.
// Percent-mode allocations are returned unadjusted, so callers must check
// this before building a submission payload.
func (a *Allocation) Valid() bool {
	return len(a.SharesBp) > 0 && a.Sum() == TotalBasisPoints
}

// Normalizer is the interface that all weight normalization modes implement
type Normalizer interface {
	// Normalize converts selected members' raw weights into a basis-point
	// allocation aligned with the selected member order
	Normalize(members []MemberWeight) (*Allocation, error)

	// Mode returns the mode identifier for this normalizer
	Mode() Mode

	// EqualSplit returns the raw weight values an equal split assigns to n
	// selected members, in input order
	EqualSplit(n int) []float64
}

// Factory creates normalizers based on the requested mode
type Factory struct{}

// NewNormalizerFactory creates a new factory instance
func NewNormalizerFactory() *Factory {
	return &Factory{}
}

// Create returns the normalizer implementation for the given mode
func (f *Factory) Create(mode Mode) (Normalizer, error) {
	switch mode {
	case ModeShares:
		return &SharesNormalizer{}, nil
	case ModePercent:
		return &PercentNormalizer{}, nil
	default:
		return nil, fmt.Errorf("unknown weight mode: %s", mode)
	}
}

// CreateFromString creates a normalizer from a string mode (useful for API requests)
func (f *Factory) CreateFromString(mode string) (Normalizer, error) {
	return f.Create(Mode(mode))
}

var (
	ErrNoValidWeights  = errors.New("no selected member with positive weight")
	ErrInvalidSplitSum = errors.New("basis points must sum to exactly 10000")
	ErrNoDebtors       = errors.New("at least one debtor is required")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrAmountTooLarge  = errors.New("amount exceeds the splittable range")
	ErrLengthMismatch  = errors.New("debtors and basis points must align")
)

// maxSafeAmount is the largest total that can be multiplied by 10,000 basis
// points without overflowing int64.
const maxSafeAmount = math.MaxInt64 / TotalBasisPoints

// DistributeRemainder spreads a rounding shortfall across n participants one
// basis point at a time, walking input order and cycling when the shortfall
// exceeds n. Returns the per-participant increments. The fixed walk order is
// the single tie-break rule shared by weight normalization and amount
// splitting, kept as its own function so it can be tested in isolation.
func DistributeRemainder(n int, remainder int64) []int64 {
	increments := make([]int64, n)
	if n <= 0 {
		return increments
	}
	for i := int64(0); i < remainder; i++ {
		increments[int(i)%n]++
	}
	return increments
}

// selectedMembers filters the input down to selected entries, preserving order
func selectedMembers(members []MemberWeight) []MemberWeight {
	selected := make([]MemberWeight, 0, len(members))
	for _, m := range members {
		if m.Selected {
			selected = append(selected, m)
		}
	}
	return selected
}
