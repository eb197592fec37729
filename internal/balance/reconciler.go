// Package balance folds ledger bill snapshots into net positions for one
// viewer. Everything here is a pure function of its inputs: derived state is
// recomputed from scratch on every refresh, never incrementally patched, so a
// fresh fetch can never be corrupted by an earlier failed one.
package balance

import (
	"errors"
	"sort"

	"github.com/satishccy/splitrix/internal/ledger"
	"github.com/satishccy/splitrix/internal/split"
)

// ErrGroupNotFound is returned when a group is absent from the last fetched
// snapshot. Surfaced as not-found rather than silently defaulting to an
// empty overview.
var ErrGroupNotFound = errors.New("group not found in snapshot")

// ErrBillNotFound is returned when a bill id does not exist in the group's
// reconciled overview.
var ErrBillNotFound = errors.New("bill not found in group")

// billShares computes per-debtor shares for a bill read back from the ledger.
// For a valid recorded allocation this matches split.Amounts exactly; a bill
// whose basis points do not sum to 10,000 (which validation prevents this
// client from ever submitting) degrades to plain floored shares so the rest
// of the group still reconciles.
func billShares(total int64, bps []int64) []int64 {
	amounts, err := split.Amounts(total, bps)
	if err == nil {
		return amounts
	}
	out := make([]int64, len(bps))
	for i, bp := range bps {
		if bp > 0 {
			out[i] = total * bp / split.TotalBasisPoints
		}
	}
	return out
}

// BuildBillOverview derives the per-debtor statuses of a single bill.
func BuildBillOverview(bill ledger.BillView) BillOverview {
	bps := bill.SharesBpInt64()
	paid := bill.PaidInt64()
	shares := billShares(bill.TotalAmount.Int64(), bps)

	debtors := make([]DebtorStatus, len(bill.Debtors))
	for i, d := range bill.Debtors {
		debtors[i] = DebtorStatus{
			Debtor: d,
			Share:  shares[i],
			Owed:   shares[i] - paid[i],
			IsPaid: paid[i] >= shares[i],
		}
	}

	return BillOverview{
		BillID:         bill.BillID.Int64(),
		Memo:           bill.Memo.String(),
		Payer:          bill.Payer,
		TotalAmount:    bill.TotalAmount.Int64(),
		PerShareAmount: split.PerShare(shares),
		Debtors:        debtors,
	}
}

// withMissingMembers appends group members that are neither the payer nor a
// recorded debtor as already-paid entries at the representative per-share
// amount. A bill whose split excludes a member simply doesn't involve them;
// marking them paid keeps every aggregate at zero for that member while the
// bill detail still lists the whole group.
func withMissingMembers(bill BillOverview, members []string) []DebtorStatus {
	recorded := make(map[string]bool, len(bill.Debtors))
	for i := range bill.Debtors {
		recorded[bill.Debtors[i].Debtor] = true
	}

	out := append([]DebtorStatus(nil), bill.Debtors...)
	for _, m := range members {
		if m == bill.Payer || recorded[m] {
			continue
		}
		out = append(out, DebtorStatus{
			Debtor: m,
			Share:  bill.PerShareAmount,
			Owed:   bill.PerShareAmount,
			IsPaid: true,
		})
	}
	return out
}

// BuildGroupOverview reconciles one group's bills into the viewer's
// positions.
func BuildGroupOverview(group ledger.GroupView, viewer string) GroupOverview {
	bills := make([]BillOverview, len(group.Bills))
	for i, b := range group.Bills {
		bill := BuildBillOverview(b)
		bill.Debtors = withMissingMembers(bill, group.Members)
		bills[i] = bill
	}

	overview := GroupOverview{
		GroupID: group.GroupID.Int64(),
		Admin:   group.Admin,
		Members: group.Members,
		Bills:   bills,
	}

	for i := range bills {
		bill := &bills[i]
		if bill.Payer == viewer {
			for j := range bill.Debtors {
				d := &bill.Debtors[j]
				overview.TotalOwedToYou += d.Outstanding()
				if d.Debtor != viewer {
					overview.TotalPaidToYou += d.Paid()
				}
			}
			continue
		}
		for j := range bill.Debtors {
			d := &bill.Debtors[j]
			if d.Debtor != viewer {
				continue
			}
			overview.TotalOwedByYou += d.Outstanding()
			overview.TotalPaidByYou += d.Paid()
		}
	}

	return overview
}

// Reconcile rebuilds the overview of every group in the snapshot for the
// viewer. Running it twice on the same snapshot yields identical results.
func Reconcile(groups []ledger.GroupView, viewer string) []GroupOverview {
	overviews := make([]GroupOverview, len(groups))
	for i, g := range groups {
		overviews[i] = BuildGroupOverview(g, viewer)
	}
	return overviews
}

// UserOwes returns how much the viewer still owes each counterparty in the
// group, accumulated over unpaid bills and sorted by address for a stable
// order.
func UserOwes(g *GroupOverview, viewer string) []CounterpartyBalance {
	totals := make(map[string]int64)
	for i := range g.Bills {
		bill := &g.Bills[i]
		if bill.Payer == viewer {
			continue
		}
		for j := range bill.Debtors {
			d := &bill.Debtors[j]
			if d.Debtor == viewer && !d.IsPaid {
				totals[bill.Payer] += d.Outstanding()
			}
		}
	}
	return sortedBalances(totals)
}

// UserIsOwed returns how much each counterparty still owes the viewer in the
// group, sorted by address.
func UserIsOwed(g *GroupOverview, viewer string) []CounterpartyBalance {
	totals := make(map[string]int64)
	for i := range g.Bills {
		bill := &g.Bills[i]
		if bill.Payer != viewer {
			continue
		}
		for j := range bill.Debtors {
			d := &bill.Debtors[j]
			if d.Debtor != viewer && !d.IsPaid {
				totals[d.Debtor] += d.Outstanding()
			}
		}
	}
	return sortedBalances(totals)
}

func sortedBalances(totals map[string]int64) []CounterpartyBalance {
	out := make([]CounterpartyBalance, 0, len(totals))
	for addr, amount := range totals {
		if amount > 0 {
			out = append(out, CounterpartyBalance{Address: addr, Amount: amount})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

// BuildBillStatus expands one bill into its paid/unpaid breakdown for the
// viewer.
func (g *GroupOverview) BuildBillStatus(billID int64, viewer string) (*BillStatus, error) {
	for i := range g.Bills {
		bill := &g.Bills[i]
		if bill.BillID != billID {
			continue
		}
		status := &BillStatus{IsMine: bill.Payer == viewer}
		for _, d := range bill.Debtors {
			if d.IsPaid {
				status.PaidDebtors = append(status.PaidDebtors, d)
				status.PaidSum += d.Owed
			} else {
				status.UnpaidDebtors = append(status.UnpaidDebtors, d)
				status.UnpaidSum += d.Owed
			}
		}
		status.HasUnpaid = len(status.UnpaidDebtors) > 0
		return status, nil
	}
	return nil, ErrBillNotFound
}

// ProposeSettlement lists the viewer's outstanding amounts toward one
// creditor, bill by bill. The amounts are exactly the currently outstanding
// owed values, so submitting them can neither over- nor under-settle.
func ProposeSettlement(g *GroupOverview, viewer, creditor string) []SettlementItem {
	var items []SettlementItem
	for i := range g.Bills {
		bill := &g.Bills[i]
		if bill.Payer != creditor {
			continue
		}
		for j := range bill.Debtors {
			d := &bill.Debtors[j]
			if d.Debtor == viewer && !d.IsPaid && d.Outstanding() > 0 {
				items = append(items, SettlementItem{
					BillID: bill.BillID,
					Memo:   bill.Memo,
					Amount: d.Outstanding(),
				})
			}
		}
	}
	return items
}

// FindGroup locates a group overview in the reconciled snapshot.
func FindGroup(overviews []GroupOverview, groupID int64) (*GroupOverview, error) {
	for i := range overviews {
		if overviews[i].GroupID == groupID {
			return &overviews[i], nil
		}
	}
	return nil, ErrGroupNotFound
}
