package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

type TaskInsert struct {
	UID              string
	Title            string
	Category         string
	Difficulty       int
	Priority         string
	Status           string
	EstimatedMinutes *int64
	BaseXP           int
	Attributes       []string
}

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) (int64, error) {
	var attrsJSON *string
	if len(in.Attributes) > 0 {
		data, err := json.Marshal(in.Attributes)
		if err != nil {
			return 0, fmt.Errorf("marshal attributes: %w", err)
		}
		s := string(data)
		attrsJSON = &s
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (
			uid, title, category, difficulty, priority,
			status, estimated_minutes, base_xp, attributes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.UID, in.Title, in.Category, in.Difficulty, in.Priority, in.Status, in.EstimatedMinutes, in.BaseXP, attrsJSON)
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

const taskColumns = `id, uid, title, category, difficulty, priority, status,
	created_at, started_at, completed_at, estimated_minutes, actual_minutes,
	base_xp, earned_xp, attributes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	var t Task
	var attrsJSON sql.NullString
	err := row.Scan(
		&t.ID, &t.UID, &t.Title, &t.Category, &t.Difficulty, &t.Priority, &t.Status,
		&t.CreatedAt, &t.StartedAt, &t.CompletedAt, &t.EstimatedMinutes, &t.ActualMinutes,
		&t.BaseXP, &t.EarnedXP, &attrsJSON,
	)
	if err != nil {
		return nil, err
	}
	if attrsJSON.Valid && attrsJSON.String != "" {
		if err := json.Unmarshal([]byte(attrsJSON.String), &t.Attributes); err != nil {
			return nil, fmt.Errorf("task attributes decode: %w", err)
		}
	}
	return &t, nil
}

func (r *TaskRepo) Get(ctx context.Context, uid string, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE uid = ? AND id = ?
	`, uid, id)

	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("task get: %w", err)
	}
	return t, nil
}

func (r *TaskRepo) ListByUser(ctx context.Context, uid string) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE uid = ?
		ORDER BY id ASC
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("task scan: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

// MarkStarted moves a task to in_progress and stamps started_at.
func (r *TaskRepo) MarkStarted(ctx context.Context, uid string, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET status = 'in_progress', started_at = ?
		WHERE uid = ? AND id = ?
	`, at.UTC(), uid, id)
	if err != nil {
		return fmt.Errorf("task mark started: %w", err)
	}
	return nil
}

// MarkCompleted finalizes the task. The earned reward is written exactly
// once, here.
func (r *TaskRepo) MarkCompleted(ctx context.Context, uid string, id int64, at time.Time, actualMinutes *int64, earnedXP int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET status = 'completed', completed_at = ?, actual_minutes = ?, earned_xp = ?
		WHERE uid = ? AND id = ?
	`, at.UTC(), actualMinutes, earnedXP, uid, id)
	if err != nil {
		return fmt.Errorf("task mark completed: %w", err)
	}
	return nil
}
