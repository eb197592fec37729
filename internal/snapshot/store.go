// Package snapshot persists fetched ledger state. A reconciliation pass must
// always see a consistent snapshot: all of a viewer's groups fetched
// together. Stores therefore replace a viewer's snapshot atomically and reads
// only ever observe the last committed fetch.
package snapshot

import (
	"context"
	"errors"

	"github.com/satishccy/splitrix/internal/ledger"
)

// ErrNotFound is returned when no snapshot exists for the requested viewer or
// group.
var ErrNotFound = errors.New("snapshot not found")

// Store holds raw ledger reads per viewer. Only fetched state is stored;
// derived balances are recomputed on every read and never persisted.
type Store interface {
	// SaveSnapshot atomically replaces the viewer's snapshot with a freshly
	// fetched group set.
	SaveSnapshot(ctx context.Context, viewer string, groups []ledger.GroupView) error

	// Groups returns the viewer's last committed snapshot. A viewer with no
	// snapshot yet gets an empty slice, not an error.
	Groups(ctx context.Context, viewer string) ([]ledger.GroupView, error)

	// Group returns one group from the viewer's snapshot, or ErrNotFound.
	Group(ctx context.Context, viewer string, groupID int64) (*ledger.GroupView, error)

	// Viewers lists every viewer with a stored snapshot, for periodic
	// refresh sweeps.
	Viewers(ctx context.Context) ([]string, error)

	// Close releases underlying resources.
	Close() error
}
