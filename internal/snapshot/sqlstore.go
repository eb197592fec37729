package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/satishccy/splitrix/internal/ledger"
)

// SQLStore persists snapshots in a relational database. Each group is stored
// as one JSON document row keyed by (viewer, group_id); SaveSnapshot swaps a
// viewer's rows inside a single transaction so readers never see a half
// refreshed snapshot. The SQL is deliberately dialect-neutral and runs on
// both PostgreSQL and SQLite.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an open database handle whose schema has been migrated.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// SaveSnapshot atomically replaces the viewer's stored groups.
func (s *SQLStore) SaveSnapshot(ctx context.Context, viewer string, groups []ledger.GroupView) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_groups WHERE viewer = $1`, viewer); err != nil {
		return fmt.Errorf("clear previous snapshot: %w", err)
	}

	fetchedAt := time.Now().UTC()
	for _, g := range groups {
		data, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("encode group %d: %w", g.GroupID.Int64(), err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO snapshot_groups (viewer, group_id, data, fetched_at)
			VALUES ($1, $2, $3, $4)
		`, viewer, g.GroupID.Int64(), string(data), fetchedAt)
		if err != nil {
			return fmt.Errorf("insert group %d: %w", g.GroupID.Int64(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Groups returns the viewer's last committed snapshot.
func (s *SQLStore) Groups(ctx context.Context, viewer string) ([]ledger.GroupView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT data FROM snapshot_groups
		WHERE viewer = $1
		ORDER BY group_id
	`, viewer)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	groups := []ledger.GroupView{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		var g ledger.GroupView
		if err := json.Unmarshal([]byte(data), &g); err != nil {
			return nil, fmt.Errorf("decode snapshot group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Group returns one group from the viewer's snapshot, or ErrNotFound.
func (s *SQLStore) Group(ctx context.Context, viewer string, groupID int64) (*ledger.GroupView, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM snapshot_groups
		WHERE viewer = $1 AND group_id = $2
	`, viewer, groupID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot group: %w", err)
	}

	var g ledger.GroupView
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, fmt.Errorf("decode snapshot group: %w", err)
	}
	return &g, nil
}

// Viewers lists every viewer with a stored snapshot.
func (s *SQLStore) Viewers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT viewer FROM snapshot_groups ORDER BY viewer
	`)
	if err != nil {
		return nil, fmt.Errorf("query viewers: %w", err)
	}
	defer rows.Close()

	var viewers []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan viewer: %w", err)
		}
		viewers = append(viewers, v)
	}
	return viewers, rows.Err()
}

// Close closes the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
