// Package refresh pulls a viewer's groups from the ledger and commits them to
// the snapshot store. Both the API's on-demand refresh and the worker's
// periodic sweep go through the same path.
package refresh

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"github.com/satishccy/splitrix/internal/ledger"
	"github.com/satishccy/splitrix/internal/snapshot"
)

// Refreshes run per viewer, so the sweep bound caps fullnode fan-out, not
// total work.
const maxConcurrentRefreshes = 4

var refreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "splitrix_snapshot_refreshes_total",
	Help: "Snapshot refreshes by result.",
}, []string{"result"})

// Refresher fetches ledger state and stores viewer snapshots.
type Refresher struct {
	client *ledger.Client
	store  snapshot.Store
	logger *slog.Logger
}

// New creates a refresher over the given ledger client and store.
func New(client *ledger.Client, store snapshot.Store, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{client: client, store: store, logger: logger}
}

// Refresh re-fetches every group the viewer belongs to and atomically
// replaces the stored snapshot. Returns the number of groups fetched.
func (r *Refresher) Refresh(ctx context.Context, viewer string) (int, error) {
	groups, err := r.client.GroupsForMember(ctx, viewer)
	if err != nil {
		refreshesTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("fetch groups for %s: %w", viewer, err)
	}

	if err := r.store.SaveSnapshot(ctx, viewer, groups); err != nil {
		refreshesTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("save snapshot for %s: %w", viewer, err)
	}

	refreshesTotal.WithLabelValues("success").Inc()
	r.logger.Info("refreshed snapshot", "viewer", viewer, "groups", len(groups))
	return len(groups), nil
}

// RefreshAll re-fetches every known viewer, a bounded number at a time. One
// viewer failing does not stop the sweep; the first error is reported after
// all viewers were attempted.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	viewers, err := r.store.Viewers(ctx)
	if err != nil {
		return fmt.Errorf("list viewers: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRefreshes)

	var firstErr error
	errCh := make(chan error, len(viewers))
	for _, viewer := range viewers {
		viewer := viewer
		g.Go(func() error {
			if _, err := r.Refresh(ctx, viewer); err != nil {
				r.logger.Error("sweep refresh failed", "viewer", viewer, "error", err)
				errCh <- err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	close(errCh)
	for err := range errCh {
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
