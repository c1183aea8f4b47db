package mandala

import "time"

// CellStatus is the per-cell state machine. CoreValue is terminal and
// assigned only at grid construction.
type CellStatus string

const (
	StatusLocked    CellStatus = "locked"
	StatusUnlocked  CellStatus = "unlocked"
	StatusCompleted CellStatus = "completed"
	StatusCoreValue CellStatus = "core_value"
)

// QuestData is the metadata attached to a cell when it is unlocked.
type QuestData struct {
	Title       string `json:"quest_title"`
	Description string `json:"quest_description"`
	XPReward    int    `json:"xp_reward"`
	Difficulty  int    `json:"difficulty"`

	// TherapeuticFocus is an optional growth-category tag.
	TherapeuticFocus string `json:"therapeutic_focus,omitempty"`
}

// Cell is one position on the 9x9 grid.
type Cell struct {
	Row    int        `json:"row"`
	Col    int        `json:"col"`
	Status CellStatus `json:"status"`

	// Quest is populated at unlock time (or at construction for core
	// values, where only the title carries the value name).
	Quest QuestData `json:"quest"`

	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Reachable reports whether an adjacent cell in this status satisfies the
// unlock adjacency rule.
func (s CellStatus) Reachable() bool {
	switch s {
	case StatusUnlocked, StatusCompleted, StatusCoreValue:
		return true
	default:
		return false
	}
}
