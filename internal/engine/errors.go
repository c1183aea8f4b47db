package engine

import "fmt"

// Reason codes surfaced to callers. Validation reasons reject bad input
// before any mutation; denial reasons are expected state conflicts and map
// to a "not allowed" response, never a crash.
const (
	ReasonInvalidMood        = "invalid_mood_score"
	ReasonInvalidAssist      = "invalid_assist_multiplier"
	ReasonInvalidCategory    = "invalid_category"
	ReasonInvalidDifficulty  = "invalid_difficulty"
	ReasonInvalidPriority    = "invalid_priority"
	ReasonInvalidAttribute   = "invalid_crystal_attribute"
	ReasonInvalidInteraction = "invalid_interaction_kind"
	ReasonNegativeXP         = "negative_xp_amount"

	ReasonTaskNotPending    = "task_not_pending"
	ReasonTaskNotInProgress = "task_not_in_progress"
)

// ValidationError rejects out-of-range input. The Code is machine-readable
// and stable; Detail is for humans.
type ValidationError struct {
	Code   string
	Detail string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func validationErrorf(code, format string, args ...any) ValidationError {
	return ValidationError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// StateError is an expected state conflict (completing a task that is not
// in progress, and so on). Frequent and user-triggerable.
type StateError struct {
	Code   string
	Detail string
}

func (e StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}
