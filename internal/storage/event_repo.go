package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// XPEventRepo is the append-only XP grant log.
type XPEventRepo struct {
	db *sql.DB
}

func NewXPEventRepo(db *sql.DB) *XPEventRepo {
	return &XPEventRepo{db: db}
}

func (r *XPEventRepo) Insert(ctx context.Context, x Execer, ev XPEvent) error {
	_, err := x.ExecContext(ctx, `
		INSERT INTO xp_events (id, uid, amount, reason, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, ev.ID, ev.UID, ev.Amount, ev.Reason, ev.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("xp event insert: %w", err)
	}
	return nil
}

func (r *XPEventRepo) ListRecent(ctx context.Context, uid string, limit int) ([]XPEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, uid, amount, reason, created_at
		FROM xp_events
		WHERE uid = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, uid, limit)
	if err != nil {
		return nil, fmt.Errorf("xp event list: %w", err)
	}
	defer rows.Close()

	var out []XPEvent
	for rows.Next() {
		var ev XPEvent
		if err := rows.Scan(&ev.ID, &ev.UID, &ev.Amount, &ev.Reason, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("xp event scan: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("xp event rows: %w", err)
	}
	return out, nil
}

// SystemEventRepo stores the coordinator log, pruned to a ring per user.
type SystemEventRepo struct {
	db *sql.DB
}

func NewSystemEventRepo(db *sql.DB) *SystemEventRepo {
	return &SystemEventRepo{db: db}
}

// Insert appends an event and prunes entries beyond ringSize, oldest
// first. Insert and prune commit together so the ring never over- or
// under-shoots on a crash between the two.
func (r *SystemEventRepo) Insert(ctx context.Context, ev SystemEvent, ringSize int) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO system_events (id, uid, message, created_at)
			VALUES (?, ?, ?, ?)
		`, ev.ID, ev.UID, ev.Message, ev.CreatedAt.UTC())
		if err != nil {
			return fmt.Errorf("system event insert: %w", err)
		}

		if ringSize > 0 {
			_, err = tx.ExecContext(ctx, `
				DELETE FROM system_events
				WHERE uid = ? AND id NOT IN (
					SELECT id FROM system_events
					WHERE uid = ?
					ORDER BY created_at DESC, id DESC
					LIMIT ?
				)
			`, ev.UID, ev.UID, ringSize)
			if err != nil {
				return fmt.Errorf("system event prune: %w", err)
			}
		}
		return nil
	})
}

// ListRecent returns events most recent first.
func (r *SystemEventRepo) ListRecent(ctx context.Context, uid string, limit int) ([]SystemEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, uid, message, created_at
		FROM system_events
		WHERE uid = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, uid, limit)
	if err != nil {
		return nil, fmt.Errorf("system event list: %w", err)
	}
	defer rows.Close()

	var out []SystemEvent
	for rows.Next() {
		var ev SystemEvent
		if err := rows.Scan(&ev.ID, &ev.UID, &ev.Message, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("system event scan: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("system event rows: %w", err)
	}
	return out, nil
}
