package snapshot

import (
	"context"
	"sort"
	"sync"

	"github.com/satishccy/splitrix/internal/ledger"
)

// MemoryStore is an in-process Store for development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]ledger.GroupView
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]ledger.GroupView)}
}

// SaveSnapshot replaces the viewer's snapshot under the write lock.
func (s *MemoryStore) SaveSnapshot(_ context.Context, viewer string, groups []ledger.GroupView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[viewer] = append([]ledger.GroupView(nil), groups...)
	return nil
}

// Groups returns the viewer's last snapshot.
func (s *MemoryStore) Groups(_ context.Context, viewer string) ([]ledger.GroupView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups, ok := s.snapshots[viewer]
	if !ok {
		return []ledger.GroupView{}, nil
	}
	return append([]ledger.GroupView(nil), groups...), nil
}

// Group returns one group from the viewer's snapshot.
func (s *MemoryStore) Group(_ context.Context, viewer string, groupID int64) (*ledger.GroupView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.snapshots[viewer] {
		if g.GroupID.Int64() == groupID {
			copied := g
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// Viewers lists viewers with a stored snapshot, sorted for stable sweeps.
func (s *MemoryStore) Viewers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	viewers := make([]string, 0, len(s.snapshots))
	for v := range s.snapshots {
		viewers = append(viewers, v)
	}
	sort.Strings(viewers)
	return viewers, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
