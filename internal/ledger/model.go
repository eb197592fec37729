package ledger

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// U64 is an unsigned 64-bit ledger integer. The fullnode serializes u64
// values as JSON strings to survive JavaScript number precision; older
// tooling emits plain numbers. Both forms unmarshal.
type U64 int64

// UnmarshalJSON accepts both "123" and 123.
func (u *U64) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid u64 %q: %w", s, err)
		}
		*u = U64(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*u = U64(v)
	return nil
}

// MarshalJSON emits the string form the ledger expects.
func (u U64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(u), 10))
}

// Int64 returns the value for arithmetic use.
func (u U64) Int64() int64 {
	return int64(u)
}

// BillView is one recorded expense as read back from the ledger. Bills are
// created by add_expense and amended only by settle_debt events, which raise
// DebtorsPaid monotonically; this engine never mutates one.
type BillView struct {
	BillID      U64      `json:"bill_id"`
	Payer       string   `json:"payer"`
	TotalAmount U64      `json:"total_amount"`
	Memo        Memo     `json:"memo"`
	Debtors     []string `json:"debtors"`
	SharesBp    []U64    `json:"shares_bp"`
	DebtorsPaid []U64    `json:"debtors_paid"`
}

// SharesBpInt64 returns the basis points as a plain int64 slice, padding with
// zeros when the recorded vector is shorter than the debtor list.
func (b *BillView) SharesBpInt64() []int64 {
	out := make([]int64, len(b.Debtors))
	for i := range b.Debtors {
		if i < len(b.SharesBp) {
			out[i] = b.SharesBp[i].Int64()
		}
	}
	return out
}

// PaidInt64 returns the cumulative paid amounts aligned with Debtors, padding
// with zeros like SharesBpInt64.
func (b *BillView) PaidInt64() []int64 {
	out := make([]int64, len(b.Debtors))
	for i := range b.Debtors {
		if i < len(b.DebtorsPaid) {
			out[i] = b.DebtorsPaid[i].Int64()
		}
	}
	return out
}

// GroupView is one group record with its bills, as returned by the get_groups
// view function for a member.
type GroupView struct {
	GroupID U64        `json:"group_id"`
	Admin   string     `json:"admin"`
	Members []string   `json:"members"`
	Bills   []BillView `json:"bills"`
}
