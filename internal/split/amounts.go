package split

// Amounts splits totalAmount (in octas) across debtors proportionally to
// their basis points, with zero leakage: each debtor gets
// floor(totalAmount*bp/10000), and since the floor sum can undershoot the
// total by at most len(sharesBp)-1 octas, the difference is assigned one octa
// at a time to the first debtors in iteration order. The result sums to
// exactly totalAmount whenever the basis points sum to exactly 10,000.
func Amounts(totalAmount int64, sharesBp []int64) ([]int64, error) {
	if len(sharesBp) == 0 {
		return nil, ErrNoDebtors
	}
	if totalAmount < 0 {
		return nil, ErrNegativeAmount
	}
	// totalAmount*bp must not wrap around
	if totalAmount > maxSafeAmount {
		return nil, ErrAmountTooLarge
	}

	var bpSum int64
	for _, bp := range sharesBp {
		if bp < 0 {
			return nil, ErrInvalidSplitSum
		}
		bpSum += bp
	}
	if bpSum != TotalBasisPoints {
		return nil, ErrInvalidSplitSum
	}

	amounts := make([]int64, len(sharesBp))
	var allocated int64
	for i, bp := range sharesBp {
		amounts[i] = totalAmount * bp / TotalBasisPoints
		allocated += amounts[i]
	}

	for i, inc := range DistributeRemainder(len(amounts), totalAmount-allocated) {
		amounts[i] += inc
	}

	return amounts, nil
}

// PerShare returns the representative per-share amount of a split: the first
// debtor's amount. It is exact only when all basis points are equal; callers
// displaying uneven splits must use the per-debtor amounts instead.
func PerShare(amounts []int64) int64 {
	if len(amounts) == 0 {
		return 0
	}
	return amounts[0]
}
