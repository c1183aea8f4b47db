package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type CompanionRepo struct {
	db *sql.DB
}

func NewCompanionRepo(db *sql.DB) *CompanionRepo {
	return &CompanionRepo{db: db}
}

func (r *CompanionRepo) Get(ctx context.Context, uid string) (*Companion, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT uid, level, traits, last_natural_growth FROM companions WHERE uid = ?
	`, uid)

	var c Companion
	var traitsJSON sql.NullString
	if err := row.Scan(&c.UID, &c.Level, &traitsJSON, &c.LastNaturalGrowth); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("companion get: %w", err)
	}
	if traitsJSON.Valid && traitsJSON.String != "" {
		if err := json.Unmarshal([]byte(traitsJSON.String), &c.Traits); err != nil {
			return nil, fmt.Errorf("companion traits decode: %w", err)
		}
	}
	return &c, nil
}

// GetOrCreate provisions a level-1 companion on first touch.
func (r *CompanionRepo) GetOrCreate(ctx context.Context, uid string, now time.Time) (*Companion, error) {
	c, err := r.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO companions (uid, level, last_natural_growth) VALUES (?, 1, ?)
	`, uid, now.UTC()); err != nil {
		return nil, fmt.Errorf("companion insert: %w", err)
	}
	return r.Get(ctx, uid)
}

func (r *CompanionRepo) Update(ctx context.Context, x Execer, c *Companion) error {
	var traitsJSON *string
	if len(c.Traits) > 0 {
		data, err := json.Marshal(c.Traits)
		if err != nil {
			return fmt.Errorf("companion traits encode: %w", err)
		}
		s := string(data)
		traitsJSON = &s
	}

	_, err := x.ExecContext(ctx, `
		UPDATE companions
		SET level = ?, traits = ?, last_natural_growth = ?
		WHERE uid = ?
	`, c.Level, traitsJSON, c.LastNaturalGrowth.UTC(), c.UID)
	if err != nil {
		return fmt.Errorf("companion update: %w", err)
	}
	return nil
}
