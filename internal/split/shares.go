package split

import "math"

// =============================================================================
// SHARES MODE
// Each member holds an integer number of shares; basis points are allocated
// proportionally with the shortfall walked across members in input order
// =============================================================================

// SharesNormalizer implements the Normalizer interface for integer-share weights
type SharesNormalizer struct{}

// Mode returns the mode identifier
func (s *SharesNormalizer) Mode() Mode {
	return ModeShares
}

// EqualSplit assigns one share to each selected member
func (s *SharesNormalizer) EqualSplit(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}

// Normalize converts integer shares into basis points summing to exactly
// 10,000. Fractional or negative input is truncated to zero. Each member gets
// floor(weight*10000/total); the shortfall is distributed one basis point at a
// time to members in original order, cycling if it exceeds the member count.
func (s *SharesNormalizer) Normalize(members []MemberWeight) (*Allocation, error) {
	selected := selectedMembers(members)
	if len(selected) == 0 {
		return nil, ErrNoValidWeights
	}

	shares := make([]int64, len(selected))
	var total int64
	for i, m := range selected {
		w := int64(math.Floor(m.Value))
		if w < 0 {
			w = 0
		}
		shares[i] = w
		total += w
	}
	if total <= 0 {
		return nil, ErrNoValidWeights
	}

	debtors := make([]string, len(selected))
	bps := make([]int64, len(selected))
	var allocated int64
	for i, m := range selected {
		debtors[i] = m.Address
		bps[i] = shares[i] * TotalBasisPoints / total
		allocated += bps[i]
	}

	for i, inc := range DistributeRemainder(len(bps), TotalBasisPoints-allocated) {
		bps[i] += inc
	}

	return &Allocation{Debtors: debtors, SharesBp: bps}, nil
}
