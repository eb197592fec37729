package expense

import (
	"context"
	"log/slog"
	"strings"

	"github.com/satishccy/splitrix/internal/ledger"
	"github.com/satishccy/splitrix/internal/money"
	"github.com/satishccy/splitrix/internal/split"
)

// RefreshPublisher enqueues a snapshot refresh after a payload is handed to
// the wallet, so the next read lands promptly once the transaction commits.
type RefreshPublisher interface {
	PublishRefresh(ctx context.Context, viewer string) error
}

// Service turns expense requests into previews and submission payloads
type Service struct {
	factory   *split.Factory
	builder   *ledger.PayloadBuilder
	publisher RefreshPublisher
	logger    *slog.Logger
}

// NewService creates a new expense service. The publisher may be nil when no
// broker is configured.
func NewService(factory *split.Factory, builder *ledger.PayloadBuilder, publisher RefreshPublisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{factory: factory, builder: builder, publisher: publisher, logger: logger}
}

// equalWeights fills selected weights with the mode's equal-split values,
// preserving input order.
func equalWeights(n split.Normalizer, weights []split.MemberWeight) []split.MemberWeight {
	selected := 0
	for _, w := range weights {
		if w.Selected {
			selected++
		}
	}
	values := n.EqualSplit(selected)
	out := append([]split.MemberWeight(nil), weights...)
	idx := 0
	for i := range out {
		if out[i].Selected {
			out[i].Value = values[idx]
			idx++
		}
	}
	return out
}

// allValuesZero reports whether every selected weight was left unset, which
// callers use to request an equal split.
func allValuesZero(weights []split.MemberWeight) bool {
	any := false
	for _, w := range weights {
		if w.Selected {
			any = true
			if w.Value != 0 {
				return false
			}
		}
	}
	return any
}

// normalize resolves the request into octas and a validated allocation.
func (s *Service) normalize(req *ExpenseRequest) (int64, *split.Allocation, error) {
	total, err := money.ParseOctas(req.Amount)
	if err != nil {
		return 0, nil, err
	}

	normalizer, err := s.factory.CreateFromString(strings.ToUpper(req.Mode))
	if err != nil {
		return 0, nil, err
	}

	memberWeights := req.Weights
	if allValuesZero(memberWeights) {
		memberWeights = equalWeights(normalizer, memberWeights)
	}

	alloc, err := normalizer.Normalize(memberWeights)
	if err != nil {
		return 0, nil, err
	}
	if !alloc.Valid() {
		return 0, nil, split.ErrInvalidSplitSum
	}

	return total, alloc, nil
}

// Preview computes the allocation and exact per-debtor amounts without
// building a payload.
func (s *Service) Preview(req *ExpenseRequest) (*PreviewResponse, error) {
	total, alloc, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	amounts, err := split.Amounts(total, alloc.SharesBp)
	if err != nil {
		return nil, err
	}

	return &PreviewResponse{
		TotalOctas:     total,
		Display:        money.FormatOctas(total),
		Allocation:     alloc,
		Amounts:        amounts,
		PerShareAmount: split.PerShare(amounts),
	}, nil
}

// BuildPayload validates the request and builds the add-expense submission.
func (s *Service) BuildPayload(ctx context.Context, viewer string, req *ExpenseRequest) (*ledger.Submission, error) {
	total, alloc, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	submission, err := s.builder.AddExpense(req.GroupID, total, ledger.Memo(req.Memo), alloc)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRefresh(ctx, viewer); err != nil {
			s.logger.Warn("failed to enqueue refresh", "viewer", viewer, "error", err)
		}
	}

	return submission, nil
}
