// Package history keeps a local record of submitted sessions: enough for the
// `gym history` listing and for seeding a new session from a prior training.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felipeleveke/gym-sub000/internal/db"
)

// ErrNotFound is returned when no history entry matches.
var ErrNotFound = errors.New("history entry not found")

// Entry is one submitted session.
type Entry struct {
	ID            string
	Date          time.Time
	StartedAt     *time.Time
	EndedAt       *time.Time
	DurationMin   int
	Volume        float64
	ExerciseCount int
	SetCount      int
	Notes         string
	Payload       string // submitted JSON, kept for prefill-from-prior
	CreatedAt     time.Time
}

// Store persists submission history.
type Store interface {
	Create(ctx context.Context, e *Entry) error
	GetLatest(ctx context.Context) (*Entry, error)
	ListRecent(ctx context.Context, limit int) ([]*Entry, error)
}

// SQLiteStore implements Store over the session_history table.
type SQLiteStore struct {
	db db.DBTX
}

// NewSQLiteStore creates a history store over the given database or transaction.
func NewSQLiteStore(dbtx db.DBTX) *SQLiteStore {
	return &SQLiteStore{db: dbtx}
}

func (s *SQLiteStore) Create(ctx context.Context, e *Entry) error {
	query := `INSERT INTO session_history
		(id, session_date, started_at, ended_at, duration_min, volume,
		 exercise_count, set_count, notes, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.Date.UTC().Format("2006-01-02"),
		nullableTime(e.StartedAt),
		nullableTime(e.EndedAt),
		e.DurationMin,
		e.Volume,
		e.ExerciseCount,
		e.SetCount,
		e.Notes,
		e.Payload,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetLatest(ctx context.Context) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, selectCols+` ORDER BY session_date DESC, created_at DESC LIMIT 1`)
	e, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		selectCols+` ORDER BY session_date DESC, created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

const selectCols = `SELECT id, session_date, started_at, ended_at, duration_min,
	volume, exercise_count, set_count, notes, payload, created_at
	FROM session_history`

func scanEntry(scan func(dest ...any) error) (*Entry, error) {
	var e Entry
	var dateStr, createdStr string
	var startedStr, endedStr sql.NullString

	err := scan(&e.ID, &dateStr, &startedStr, &endedStr, &e.DurationMin,
		&e.Volume, &e.ExerciseCount, &e.SetCount, &e.Notes, &e.Payload, &createdStr)
	if err != nil {
		return nil, err
	}

	e.Date, err = time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing session_date: %w", err)
	}
	e.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.StartedAt = parseNullableTime(startedStr)
	e.EndedAt = parseNullableTime(endedStr)
	return &e, nil
}

func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
