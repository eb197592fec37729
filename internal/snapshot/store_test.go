package snapshot

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/satishccy/splitrix/internal/ledger"
)

func groupView(id int64, members ...string) ledger.GroupView {
	return ledger.GroupView{
		GroupID: ledger.U64(id),
		Admin:   members[0],
		Members: members,
	}
}

func TestMemoryStoreEmptyViewer(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	groups, err := store.Groups(ctx, "0xnobody")
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("expected empty snapshot, got %d groups", len(groups))
	}

	if _, err := store.Group(ctx, "0xnobody", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Group() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSaveAndRead(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := []ledger.GroupView{groupView(1, "0xa", "0xb"), groupView(2, "0xa", "0xc")}
	if err := store.SaveSnapshot(ctx, "0xa", first); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	groups, err := store.Groups(ctx, "0xa")
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if !reflect.DeepEqual(groups, first) {
		t.Errorf("Groups() = %v, want %v", groups, first)
	}

	g, err := store.Group(ctx, "0xa", 2)
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}
	if g.GroupID.Int64() != 2 {
		t.Errorf("Group().GroupID = %d, want 2", g.GroupID.Int64())
	}
}

func TestMemoryStoreSnapshotReplace(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SaveSnapshot(ctx, "0xa", []ledger.GroupView{groupView(1, "0xa"), groupView(2, "0xa")}); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if err := store.SaveSnapshot(ctx, "0xa", []ledger.GroupView{groupView(3, "0xa")}); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	groups, err := store.Groups(ctx, "0xa")
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if len(groups) != 1 || groups[0].GroupID.Int64() != 3 {
		t.Errorf("snapshot not fully replaced: %v", groups)
	}

	// Groups dropped by the refresh must no longer resolve.
	if _, err := store.Group(ctx, "0xa", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Group(1) error = %v, want ErrNotFound after replace", err)
	}
}

func TestMemoryStoreViewersSorted(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, viewer := range []string{"0xc", "0xa", "0xb"} {
		if err := store.SaveSnapshot(ctx, viewer, []ledger.GroupView{groupView(1, viewer)}); err != nil {
			t.Fatalf("SaveSnapshot(%s) error = %v", viewer, err)
		}
	}

	viewers, err := store.Viewers(ctx)
	if err != nil {
		t.Fatalf("Viewers() error = %v", err)
	}
	want := []string{"0xa", "0xb", "0xc"}
	if !reflect.DeepEqual(viewers, want) {
		t.Errorf("Viewers() = %v, want %v", viewers, want)
	}
}

func TestMemoryStoreReadIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SaveSnapshot(ctx, "0xa", []ledger.GroupView{groupView(1, "0xa", "0xb")}); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	groups, err := store.Groups(ctx, "0xa")
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	groups[0].Admin = "0xmutated"

	again, err := store.Groups(ctx, "0xa")
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if again[0].Admin != "0xa" {
		t.Errorf("stored snapshot mutated through returned slice: admin = %s", again[0].Admin)
	}
}
