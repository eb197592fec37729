package split

import "math"

// =============================================================================
// PERCENT MODE
// Each member holds a percentage with two-decimal precision; basis points are
// the raw values times 100, returned without any auto-correction
// =============================================================================

// PercentNormalizer implements the Normalizer interface for percentage weights
type PercentNormalizer struct{}

// Mode returns the mode identifier
func (p *PercentNormalizer) Mode() Mode {
	return ModePercent
}

// EqualSplit distributes 100.00% across n members so the basis points sum to
// exactly 10,000: the first (10000 mod n) members get one extra basis point.
// Three members yield 33.34, 33.33, 33.33.
func (p *PercentNormalizer) EqualSplit(n int) []float64 {
	weights := make([]float64, n)
	if n <= 0 {
		return weights
	}
	base := TotalBasisPoints / int64(n)
	remainder := TotalBasisPoints - base*int64(n)
	for i := range weights {
		bp := base
		if int64(i) < remainder {
			bp++
		}
		weights[i] = float64(bp) / 100
	}
	return weights
}

// Normalize converts percentages to basis points via round(value*100) and
// returns them as-is. The sum is deliberately NOT corrected to 10,000: three
// members at 33.33% sum to 9,999 and submission is blocked rather than a
// displayed percentage being silently changed. Callers check Allocation.Valid
// before use.
func (p *PercentNormalizer) Normalize(members []MemberWeight) (*Allocation, error) {
	selected := selectedMembers(members)
	if len(selected) == 0 {
		return nil, ErrNoValidWeights
	}

	debtors := make([]string, len(selected))
	bps := make([]int64, len(selected))
	var sum int64
	for i, m := range selected {
		debtors[i] = m.Address
		v := m.Value
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		bps[i] = int64(math.Round(v * 100))
		sum += bps[i]
	}
	if sum <= 0 {
		return nil, ErrNoValidWeights
	}

	return &Allocation{Debtors: debtors, SharesBp: bps}, nil
}
