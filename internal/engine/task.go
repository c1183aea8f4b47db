package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"yuquest/internal/storage"
)

// XPReasonTask tags XP grants that came from task completions.
const XPReasonTask = "task_completion"

type CreateTaskInput struct {
	Title            string
	Category         TaskCategory
	Difficulty       Difficulty
	Priority         Priority
	EstimatedMinutes *int64
	Attributes       []CrystalAttribute
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

// CreateTask validates input and inserts a pending task. The base reward
// is derived from difficulty here, once, and never recomputed.
func (s *Service) CreateTask(ctx context.Context, uid string, in CreateTaskInput) (*storage.Task, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if !in.Category.IsValid() {
		return nil, validationErrorf(ReasonInvalidCategory, "unknown category %q", in.Category)
	}
	if !in.Priority.IsValid() {
		return nil, validationErrorf(ReasonInvalidPriority, "unknown priority %q", in.Priority)
	}
	baseXP, err := BaseXPForDifficulty(in.Difficulty)
	if err != nil {
		return nil, err
	}

	attrs := make([]string, 0, len(in.Attributes))
	for _, a := range in.Attributes {
		if !a.IsValid() {
			return nil, validationErrorf(ReasonInvalidAttribute, "unknown crystal attribute %q", a)
		}
		attrs = append(attrs, string(a))
	}

	lock := s.locks.get(uid, aggTask)
	lock.Lock()
	defer lock.Unlock()

	id, err := s.tasks.Insert(ctx, storage.TaskInsert{
		UID:              uid,
		Title:            title,
		Category:         string(in.Category),
		Difficulty:       int(in.Difficulty),
		Priority:         string(in.Priority),
		Status:           string(StatusPending),
		EstimatedMinutes: in.EstimatedMinutes,
		BaseXP:           baseXP,
		Attributes:       attrs,
	})
	if err != nil {
		return nil, err
	}
	return s.tasks.Get(ctx, uid, id)
}

// StartTask moves a task from pending to in_progress. Any other starting
// state is a conflict, not a crash.
func (s *Service) StartTask(ctx context.Context, uid string, id int64) (*storage.Task, error) {
	lock := s.locks.get(uid, aggTask)
	lock.Lock()
	defer lock.Unlock()

	t, err := s.tasks.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %d not found", id)
	}
	if t.Status != string(StatusPending) {
		return nil, StateError{Code: ReasonTaskNotPending, Detail: fmt.Sprintf("task %d is %s", id, t.Status)}
	}
	if err := s.tasks.MarkStarted(ctx, uid, id, s.now()); err != nil {
		return nil, err
	}
	return s.tasks.Get(ctx, uid, id)
}

type CompleteTaskInput struct {
	MoodScore     int
	ActualMinutes *int64

	// AssistMultiplier comes from the external accommodation
	// collaborator; 1.0 means no assistance.
	AssistMultiplier float64
}

// TaskCompleteResult is the full outcome of one completion: the frozen
// reward breakdown plus the progression it triggered.
type TaskCompleteResult struct {
	TaskID      int64            `json:"task_id"`
	XPEarned    int              `json:"xp_earned"`
	Breakdown   *RewardBreakdown `json:"breakdown"`
	Progression *CombinedResult  `json:"progression"`
}

// CompleteTask finishes an in-progress task, computes its reward and
// routes the XP through the progression coordinator. The earned reward is
// written to the task exactly once.
func (s *Service) CompleteTask(ctx context.Context, uid string, id int64, in CompleteTaskInput) (*TaskCompleteResult, error) {
	lock := s.locks.get(uid, aggTask)
	lock.Lock()

	t, err := s.tasks.Get(ctx, uid, id)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	if t == nil {
		lock.Unlock()
		return nil, fmt.Errorf("task %d not found", id)
	}
	if t.Status != string(StatusInProgress) {
		lock.Unlock()
		return nil, StateError{Code: ReasonTaskNotInProgress, Detail: fmt.Sprintf("task %d is %s", id, t.Status)}
	}

	assist := in.AssistMultiplier
	if assist == 0 {
		assist = 1.0
	}
	breakdown, err := CalculateReward(RewardInput{
		BaseXP:           t.BaseXP,
		MoodScore:        in.MoodScore,
		AssistMultiplier: assist,
		Estimated:        minutesToDuration(t.EstimatedMinutes),
		Actual:           minutesToDuration(in.ActualMinutes),
		Priority:         Priority(t.Priority),
	})
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	if err := s.tasks.MarkCompleted(ctx, uid, id, s.now(), in.ActualMinutes, breakdown.FinalXP); err != nil {
		lock.Unlock()
		return nil, err
	}
	lock.Unlock()

	combined, err := s.AddPlayerXP(ctx, uid, breakdown.FinalXP, XPReasonTask)
	if err != nil {
		return nil, err
	}

	return &TaskCompleteResult{
		TaskID:      id,
		XPEarned:    breakdown.FinalXP,
		Breakdown:   breakdown,
		Progression: combined,
	}, nil
}

func minutesToDuration(minutes *int64) time.Duration {
	if minutes == nil || *minutes <= 0 {
		return 0
	}
	return time.Duration(*minutes) * time.Minute
}
