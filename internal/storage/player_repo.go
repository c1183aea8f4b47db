package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type PlayerRepo struct {
	db *sql.DB
}

func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

func (r *PlayerRepo) Get(ctx context.Context, uid string) (*Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT uid, xp_total, level FROM players WHERE uid = ?`, uid)

	var p Player
	if err := row.Scan(&p.UID, &p.XPTotal, &p.Level); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("player get: %w", err)
	}
	return &p, nil
}

// GetOrCreate provisions the player row on first touch.
func (r *PlayerRepo) GetOrCreate(ctx context.Context, uid string) (*Player, error) {
	p, err := r.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO players (uid) VALUES (?)`, uid); err != nil {
		return nil, fmt.Errorf("player insert: %w", err)
	}
	return r.Get(ctx, uid)
}

func (r *PlayerRepo) Update(ctx context.Context, x Execer, p *Player) error {
	_, err := x.ExecContext(ctx, `
		UPDATE players
		SET xp_total = ?, level = ?
		WHERE uid = ?
	`, p.XPTotal, p.Level, p.UID)
	if err != nil {
		return fmt.Errorf("player update: %w", err)
	}
	return nil
}
