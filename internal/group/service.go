package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/satishccy/splitrix/internal/balance"
	"github.com/satishccy/splitrix/internal/ledger"
	"github.com/satishccy/splitrix/internal/refresh"
	"github.com/satishccy/splitrix/internal/snapshot"
)

var reconciliationsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "splitrix_reconciliations_total",
	Help: "Group overview reconciliations computed from snapshots.",
})

// Service handles group business logic. Group state lives on the ledger;
// reads come from the viewer's last committed snapshot and overviews are
// recomputed on every call.
type Service struct {
	store     snapshot.Store
	refresher *refresh.Refresher
	client    *ledger.Client
	builder   *ledger.PayloadBuilder
}

// NewService creates a new group service
func NewService(store snapshot.Store, refresher *refresh.Refresher, client *ledger.Client, builder *ledger.PayloadBuilder) *Service {
	return &Service{store: store, refresher: refresher, client: client, builder: builder}
}

// Overviews reconciles every group in the viewer's snapshot.
func (s *Service) Overviews(ctx context.Context, viewer string) ([]balance.GroupOverview, error) {
	groups, err := s.store.Groups(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	reconciliationsTotal.Inc()
	return balance.Reconcile(groups, viewer), nil
}

// Overview reconciles a single group from the viewer's snapshot.
func (s *Service) Overview(ctx context.Context, viewer string, groupID int64) (*balance.GroupOverview, error) {
	g, err := s.store.Group(ctx, viewer, groupID)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			return nil, balance.ErrGroupNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	reconciliationsTotal.Inc()
	overview := balance.BuildGroupOverview(*g, viewer)
	return &overview, nil
}

// BillStatus returns the paid/unpaid breakdown of one bill in a group.
func (s *Service) BillStatus(ctx context.Context, viewer string, groupID, billID int64) (*balance.BillStatus, error) {
	overview, err := s.Overview(ctx, viewer, groupID)
	if err != nil {
		return nil, err
	}
	return overview.BuildBillStatus(billID, viewer)
}

// Balances returns the viewer's per-counterparty positions in a group.
func (s *Service) Balances(ctx context.Context, viewer string, groupID int64) (*BalancesResponse, error) {
	overview, err := s.Overview(ctx, viewer, groupID)
	if err != nil {
		return nil, err
	}
	return &BalancesResponse{
		GroupID:    overview.GroupID,
		NetBalance: overview.NetBalance(),
		UserOwes:   balance.UserOwes(overview, viewer),
		UserIsOwed: balance.UserIsOwed(overview, viewer),
	}, nil
}

// Refresh re-fetches the viewer's full group set from the ledger.
func (s *Service) Refresh(ctx context.Context, viewer string) (int, error) {
	return s.refresher.Refresh(ctx, viewer)
}

// RefreshGroup re-fetches one group's bills and commits the updated snapshot.
// The group must already be in the viewer's snapshot; unknown groups need a
// full refresh first.
func (s *Service) RefreshGroup(ctx context.Context, viewer string, groupID int64) error {
	groups, err := s.store.Groups(ctx, viewer)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	found := false
	for i := range groups {
		if groups[i].GroupID.Int64() != groupID {
			continue
		}
		bills, err := s.client.GroupBills(ctx, groupID)
		if err != nil {
			return fmt.Errorf("fetch bills for group %d: %w", groupID, err)
		}
		groups[i].Bills = bills
		found = true
		break
	}
	if !found {
		return balance.ErrGroupNotFound
	}

	if err := s.store.SaveSnapshot(ctx, viewer, groups); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// CreatePayload builds the create-group submission. The viewer is always a
// member of the group they create.
func (s *Service) CreatePayload(_ context.Context, viewer string, req *CreateGroupRequest) (*ledger.Submission, error) {
	members := req.Members
	hasViewer := false
	for _, m := range members {
		if m == viewer {
			hasViewer = true
			break
		}
	}
	if !hasViewer {
		members = append([]string{viewer}, members...)
	}
	return s.builder.CreateGroup(members)
}
