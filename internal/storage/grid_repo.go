package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// GridRepo persists one serialized grid document per user.
type GridRepo struct {
	db *sql.DB
}

func NewGridRepo(db *sql.DB) *GridRepo {
	return &GridRepo{db: db}
}

// Get returns the serialized grid document, or nil when the user has none
// yet.
func (r *GridRepo) Get(ctx context.Context, uid string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `SELECT data FROM grids WHERE uid = ?`, uid)

	var data string
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("grid get: %w", err)
	}
	return []byte(data), nil
}

// Put upserts the grid document.
func (r *GridRepo) Put(ctx context.Context, uid string, data []byte, updatedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO grids (uid, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, uid, string(data), updatedAt.UTC())
	if err != nil {
		return fmt.Errorf("grid put: %w", err)
	}
	return nil
}
