package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/satishccy/splitrix/internal/balance"
	"github.com/satishccy/splitrix/internal/ledger"
	"github.com/satishccy/splitrix/internal/snapshot"
)

type fakePublisher struct {
	viewers []string
}

func (f *fakePublisher) PublishRefresh(_ context.Context, viewer string) error {
	f.viewers = append(f.viewers, viewer)
	return nil
}

func u64s(vals ...int64) []ledger.U64 {
	out := make([]ledger.U64, len(vals))
	for i, v := range vals {
		out[i] = ledger.U64(v)
	}
	return out
}

// snapshotWithDebt stores one group where 0xb owes 0xa across two bills.
func snapshotWithDebt(t *testing.T) snapshot.Store {
	t.Helper()
	store := snapshot.NewMemoryStore()
	group := ledger.GroupView{
		GroupID: 1,
		Admin:   "0xa",
		Members: []string{"0xa", "0xb"},
		Bills: []ledger.BillView{
			{
				BillID:      10,
				Payer:       "0xa",
				TotalAmount: 100,
				Memo:        ledger.Memo("dinner"),
				Debtors:     []string{"0xb"},
				SharesBp:    u64s(10_000),
				DebtorsPaid: u64s(0),
			},
			{
				BillID:      11,
				Payer:       "0xa",
				TotalAmount: 60,
				Memo:        ledger.Memo("taxi"),
				Debtors:     []string{"0xa", "0xb"},
				SharesBp:    u64s(5000, 5000),
				DebtorsPaid: u64s(0, 0),
			},
		},
	}
	if err := store.SaveSnapshot(context.Background(), "0xb", []ledger.GroupView{group}); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	return store
}

func TestProposeSettlesOutstanding(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewService(snapshotWithDebt(t), ledger.NewPayloadBuilder("0xabc", "splitrix"), pub, nil)

	proposal, err := svc.Propose(context.Background(), "0xb", &SettlementRequest{GroupID: 1, Creditor: "0xa"})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	if proposal.Total != 130 {
		t.Errorf("Total = %d, want 130", proposal.Total)
	}
	if len(proposal.Items) != 2 {
		t.Fatalf("Items = %+v, want 2 bills", proposal.Items)
	}
	if proposal.Items[0].BillID != 10 || proposal.Items[0].Amount != 100 {
		t.Errorf("Items[0] = %+v, want bill 10 for 100", proposal.Items[0])
	}
	if proposal.Items[1].BillID != 11 || proposal.Items[1].Amount != 30 {
		t.Errorf("Items[1] = %+v, want bill 11 for 30", proposal.Items[1])
	}
	if proposal.Submission.Payload.Function != "0xabc::splitrix::settle_debt" {
		t.Errorf("Function = %s", proposal.Submission.Payload.Function)
	}
	if len(pub.viewers) != 1 || pub.viewers[0] != "0xb" {
		t.Errorf("published refreshes = %v, want [0xb]", pub.viewers)
	}
}

func TestProposeNothingToSettle(t *testing.T) {
	svc := NewService(snapshotWithDebt(t), ledger.NewPayloadBuilder("0xabc", "splitrix"), nil, nil)

	// The viewer owes 0xa, not the other way around.
	if _, err := svc.Propose(context.Background(), "0xb", &SettlementRequest{GroupID: 1, Creditor: "0xb"}); !errors.Is(err, ErrNothingToSettle) {
		t.Errorf("Propose() error = %v, want ErrNothingToSettle", err)
	}
}

func TestProposeUnknownGroup(t *testing.T) {
	svc := NewService(snapshotWithDebt(t), ledger.NewPayloadBuilder("0xabc", "splitrix"), nil, nil)

	if _, err := svc.Propose(context.Background(), "0xb", &SettlementRequest{GroupID: 42, Creditor: "0xa"}); !errors.Is(err, balance.ErrGroupNotFound) {
		t.Errorf("Propose() error = %v, want ErrGroupNotFound", err)
	}
}

func TestProposeMissingCreditor(t *testing.T) {
	svc := NewService(snapshotWithDebt(t), ledger.NewPayloadBuilder("0xabc", "splitrix"), nil, nil)

	if _, err := svc.Propose(context.Background(), "0xb", &SettlementRequest{GroupID: 1}); !errors.Is(err, ledger.ErrMissingCreditor) {
		t.Errorf("Propose() error = %v, want ErrMissingCreditor", err)
	}
}
