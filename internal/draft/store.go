package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felipeleveke/gym-sub000/internal/db"
)

// ErrNoDraft is returned by Load when no unfinished session is stored.
var ErrNoDraft = errors.New("no draft stored")

// Store reads and writes the single draft row.
type Store interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
	Clear(ctx context.Context) error
	Exists(ctx context.Context) (bool, error)
}

// SQLiteStore implements Store over the drafts table. Only one draft exists
// at a time (single local user, single session), so writes replace row 1.
type SQLiteStore struct {
	db db.DBTX
}

// NewSQLiteStore creates a draft store over the given database or transaction.
func NewSQLiteStore(dbtx db.DBTX) *SQLiteStore {
	return &SQLiteStore{db: dbtx}
}

func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO drafts (id, payload, last_saved_at) VALUES (1, ?, ?)`,
		string(payload), snap.LastSavedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing draft: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM drafts WHERE id = 1`).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDraft
		}
		return nil, fmt.Errorf("reading draft: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}
	return &snap, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Exists(ctx context.Context) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM drafts WHERE id = 1`).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking draft: %w", err)
	}
	return count > 0, nil
}
