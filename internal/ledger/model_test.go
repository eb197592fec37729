package ledger

import (
	"encoding/json"
	"testing"
)

func TestGroupViewUnmarshal(t *testing.T) {
	// u64 fields arrive as strings from the fullnode; older fixtures use
	// plain numbers. Both decode.
	raw := `{
		"group_id": "12",
		"admin": "0x0a",
		"members": ["0x0a", "0x0b", "0x0c"],
		"bills": [
			{
				"bill_id": 0,
				"payer": "0x0a",
				"total_amount": "100000000",
				"memo": "0x64696e6e6572",
				"debtors": ["0x0b", "0x0c"],
				"shares_bp": ["5000", "5000"],
				"debtors_paid": ["50000000", 0]
			}
		]
	}`

	var g GroupView
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		t.Fatalf("unmarshal group view: %v", err)
	}

	if g.GroupID.Int64() != 12 {
		t.Errorf("group_id = %d, want 12", g.GroupID.Int64())
	}
	bill := g.Bills[0]
	if bill.TotalAmount.Int64() != 100_000_000 {
		t.Errorf("total_amount = %d", bill.TotalAmount.Int64())
	}
	if bill.Memo.String() != "dinner" {
		t.Errorf("memo = %q, want %q", bill.Memo.String(), "dinner")
	}
	paid := bill.PaidInt64()
	if paid[0] != 50_000_000 || paid[1] != 0 {
		t.Errorf("debtors_paid = %v", paid)
	}
}

func TestBillViewPadding(t *testing.T) {
	bill := BillView{
		Debtors:     []string{"0x01", "0x02", "0x03"},
		SharesBp:    []U64{4000, 3000},
		DebtorsPaid: []U64{10},
	}
	bps := bill.SharesBpInt64()
	if len(bps) != 3 || bps[2] != 0 {
		t.Errorf("SharesBpInt64 = %v, want zero-padded to debtor count", bps)
	}
	paid := bill.PaidInt64()
	if len(paid) != 3 || paid[1] != 0 || paid[2] != 0 {
		t.Errorf("PaidInt64 = %v, want zero-padded to debtor count", paid)
	}
}

func TestMemoForms(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"hex encoded", `"0x70697a7a61"`, "pizza"},
		{"plain string", `"pizza"`, "pizza"},
		{"byte array", `[112, 105, 122, 122, 97]`, "pizza"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var m Memo
			if err := json.Unmarshal([]byte(tc.in), &m); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if m.String() != tc.want {
				t.Errorf("memo = %q, want %q", m.String(), tc.want)
			}
		})
	}

	t.Run("byte out of range", func(t *testing.T) {
		var m Memo
		if err := json.Unmarshal([]byte(`[500]`), &m); err == nil {
			t.Error("expected error for out-of-range byte")
		}
	})

	t.Run("marshals as byte array", func(t *testing.T) {
		out, err := json.Marshal(Memo("hi"))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(out) != "[104,105]" {
			t.Errorf("marshal = %s", out)
		}
	})
}
