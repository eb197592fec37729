package balance

// DebtorStatus is the derived per-debtor view of one bill. Share is the
// debtor's original computed share of the bill total; keeping it alongside
// Owed lets paid amounts be derived exactly per debtor even when basis points
// are skewed, instead of approximating from a bill-level per-share baseline.
type DebtorStatus struct {
	Debtor string `json:"debtor"`
	Share  int64  `json:"share"`
	Owed   int64  `json:"owed"`
	IsPaid bool   `json:"is_paid"`
}

// Paid returns how much this debtor has paid toward the bill, derived from
// the retained share. Never negative.
func (d *DebtorStatus) Paid() int64 {
	paid := d.Share - d.Owed
	if paid < 0 {
		return 0
	}
	return paid
}

// Outstanding returns the unpaid amount, clamped at zero. Owed can go
// negative only through external overpayment, which counts as zero exposure.
func (d *DebtorStatus) Outstanding() int64 {
	if d.IsPaid || d.Owed < 0 {
		return 0
	}
	return d.Owed
}

// BillOverview is the derived view of one bill for a group overview.
type BillOverview struct {
	BillID         int64          `json:"bill_id"`
	Memo           string         `json:"memo"`
	Payer          string         `json:"payer"`
	TotalAmount    int64          `json:"total_amount"`
	PerShareAmount int64          `json:"per_share_amount"`
	Debtors        []DebtorStatus `json:"debtors"`
}

// HasUnpaid reports whether any debtor still owes on this bill.
func (b *BillOverview) HasUnpaid() bool {
	for i := range b.Debtors {
		if !b.Debtors[i].IsPaid {
			return true
		}
	}
	return false
}

// CounterpartyBalance is an outstanding amount between the viewer and one
// other member.
type CounterpartyBalance struct {
	Address string `json:"address"`
	Amount  int64  `json:"amount"`
}

// GroupOverview aggregates a group's bills into net positions for one viewer.
// It is recomputed in full from the current bill snapshot on every refresh
// and never persisted.
type GroupOverview struct {
	GroupID        int64          `json:"group_id"`
	Admin          string         `json:"admin"`
	Members        []string       `json:"members"`
	Bills          []BillOverview `json:"bills"`
	TotalOwedByYou int64          `json:"total_owed_by_you"`
	TotalOwedToYou int64          `json:"total_owed_to_you"`
	TotalPaidByYou int64          `json:"total_paid_by_you"`
	TotalPaidToYou int64          `json:"total_paid_to_you"`
}

// NetBalance is the group's summary figure: positive means the viewer is
// owed, negative means the viewer owes.
func (g *GroupOverview) NetBalance() int64 {
	return g.TotalOwedToYou - g.TotalOwedByYou
}

// BillStatus is the expanded breakdown of a single bill, with members missing
// from the recorded split folded in as already-paid debtors.
type BillStatus struct {
	PaidDebtors   []DebtorStatus `json:"paid_debtors"`
	UnpaidDebtors []DebtorStatus `json:"unpaid_debtors"`
	PaidSum       int64          `json:"paid_sum"`
	UnpaidSum     int64          `json:"unpaid_sum"`
	IsMine        bool           `json:"is_mine"`
	HasUnpaid     bool           `json:"has_unpaid"`
}

// SettlementItem is one bill's outstanding amount within a proposed
// settlement.
type SettlementItem struct {
	BillID int64  `json:"bill_id"`
	Memo   string `json:"memo"`
	Amount int64  `json:"amount"`
}
