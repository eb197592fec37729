package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/satishccy/splitrix/internal/balance"
	"github.com/satishccy/splitrix/internal/ledger"
	"github.com/satishccy/splitrix/internal/snapshot"
)

// ErrNothingToSettle is returned when the viewer owes the creditor nothing.
var ErrNothingToSettle = errors.New("no outstanding debt to this creditor")

// RefreshPublisher enqueues a snapshot refresh after a payload is handed to
// the wallet.
type RefreshPublisher interface {
	PublishRefresh(ctx context.Context, viewer string) error
}

// Service builds settle-debt payloads from current outstanding balances.
// Amounts always come from a fresh reconciliation of the snapshot, never from
// client input, so a settlement can never exceed what is actually owed.
type Service struct {
	store     snapshot.Store
	builder   *ledger.PayloadBuilder
	publisher RefreshPublisher
	logger    *slog.Logger
}

// NewService creates a new settlement service. The publisher may be nil when
// no broker is configured.
func NewService(store snapshot.Store, builder *ledger.PayloadBuilder, publisher RefreshPublisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, builder: builder, publisher: publisher, logger: logger}
}

// Propose reconciles the group and builds a payload settling the viewer's
// outstanding debt to the creditor.
func (s *Service) Propose(ctx context.Context, viewer string, req *SettlementRequest) (*SettlementResponse, error) {
	if req.Creditor == "" {
		return nil, ledger.ErrMissingCreditor
	}

	group, err := s.store.Group(ctx, viewer, req.GroupID)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			return nil, balance.ErrGroupNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	overview := balance.BuildGroupOverview(*group, viewer)
	items := balance.ProposeSettlement(&overview, viewer, req.Creditor)
	if len(items) == 0 {
		return nil, ErrNothingToSettle
	}

	billIDs := make([]int64, len(items))
	amounts := make([]int64, len(items))
	var total int64
	for i, item := range items {
		billIDs[i] = item.BillID
		amounts[i] = item.Amount
		total += item.Amount
	}

	submission, err := s.builder.SettleDebt(req.GroupID, req.Creditor, billIDs, amounts)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRefresh(ctx, viewer); err != nil {
			s.logger.Warn("failed to enqueue refresh", "viewer", viewer, "error", err)
		}
	}

	return &SettlementResponse{
		Submission: submission,
		Items:      items,
		Total:      total,
	}, nil
}
