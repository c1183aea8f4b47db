package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			uid TEXT PRIMARY KEY,
			xp_total INTEGER DEFAULT 0,
			level INTEGER DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS companions (
			uid TEXT PRIMARY KEY,
			level INTEGER DEFAULT 1,
			traits TEXT,
			last_natural_growth DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uid TEXT NOT NULL,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			difficulty INTEGER NOT NULL,
			priority TEXT NOT NULL,

			status TEXT DEFAULT 'pending',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			started_at DATETIME,
			completed_at DATETIME,

			estimated_minutes INTEGER,
			actual_minutes INTEGER,

			base_xp INTEGER NOT NULL,
			earned_xp INTEGER DEFAULT 0,
			attributes TEXT
		);`,
		// Append-only XP grant history with reason tags.
		`CREATE TABLE IF NOT EXISTS xp_events (
			id TEXT PRIMARY KEY,
			uid TEXT NOT NULL,
			amount INTEGER NOT NULL,
			reason TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,
		// Coordinator log; pruned to a bounded ring per user.
		`CREATE TABLE IF NOT EXISTS system_events (
			id TEXT PRIMARY KEY,
			uid TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,
		// One serialized 9x9 grid document per user.
		`CREATE TABLE IF NOT EXISTS grids (
			uid TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_uid_status ON tasks(uid, status);`,
		`CREATE INDEX IF NOT EXISTS idx_xp_events_uid_created_at ON xp_events(uid, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_system_events_uid_created_at ON system_events(uid, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
