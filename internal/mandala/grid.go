package mandala

import (
	"fmt"
	"time"
)

// GridSize fixes the grid at 9x9; the grid is never any other shape.
const GridSize = 9

// TotalCells is GridSize squared.
const TotalCells = GridSize * GridSize

// Adjacency selects which neighbors can satisfy the unlock rule.
type Adjacency int

const (
	// AdjacencyOrthogonal is the conservative default: the four
	// orthogonal neighbors.
	AdjacencyOrthogonal Adjacency = iota
	// AdjacencyEight also accepts diagonal neighbors.
	AdjacencyEight
)

// Reason codes for denied grid mutations. Empty means allowed.
type Reason string

const (
	ReasonOK              Reason = ""
	ReasonOutOfRange      Reason = "out_of_range"
	ReasonNotLocked       Reason = "not_locked"
	ReasonNotUnlocked     Reason = "not_unlocked"
	ReasonNoNeighbor      Reason = "no_reachable_neighbor"
	ReasonDailyLimit      Reason = "daily_unlock_limit"
	ReasonCooldownActive  Reason = "completion_cooldown"
	ReasonCoreValueFrozen Reason = "core_value_immutable"
)

// coreValueNames are the nine fixed personal values on the center 3x3
// block, row by row from (3,3). The center cell (4,4) is the self.
var coreValueNames = [3][3]string{
	{"Self-Compassion", "Growth", "Authenticity"},
	{"Courage", "Core Self", "Connection"},
	{"Gratitude", "Mindfulness", "Balance"},
}

// Grid is one user's 9x9 mandala. The center 3x3 block is permanently
// CoreValue; every other cell starts Locked and is unlocked as a connected
// region growing outward from the center.
type Grid struct {
	UID           string
	Cells         [GridSize][GridSize]Cell
	UnlockedCount int
	UpdatedAt     time.Time
}

// NewGrid constructs a fresh grid for a user with the core-value block in
// place.
func NewGrid(uid string, now time.Time) *Grid {
	g := &Grid{UID: uid, UpdatedAt: now.UTC()}
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			g.Cells[r][c] = Cell{Row: r, Col: c, Status: StatusLocked}
		}
	}
	for _, pos := range CoreValuePositions() {
		g.Cells[pos[0]][pos[1]].Status = StatusCoreValue
		g.Cells[pos[0]][pos[1]].Quest = QuestData{
			Title: coreValueNames[pos[0]-3][pos[1]-3],
		}
	}
	return g
}

// CoreValuePositions returns the nine center-block coordinates.
func CoreValuePositions() [][2]int {
	out := make([][2]int, 0, 9)
	for r := 3; r <= 5; r++ {
		for c := 3; c <= 5; c++ {
			out = append(out, [2]int{r, c})
		}
	}
	return out
}

func inRange(row, col int) bool {
	return row >= 0 && row < GridSize && col >= 0 && col < GridSize
}

// Cell returns the cell at (row, col), or nil when out of range.
func (g *Grid) Cell(row, col int) *Cell {
	if !inRange(row, col) {
		return nil
	}
	return &g.Cells[row][col]
}

var orthogonalOffsets = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
var diagonalOffsets = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// hasReachableNeighbor reports whether any neighbor under the adjacency
// mode is Unlocked, Completed, or CoreValue.
func (g *Grid) hasReachableNeighbor(row, col int, adj Adjacency) bool {
	offsets := orthogonalOffsets
	if adj == AdjacencyEight {
		offsets = append(append([][2]int{}, orthogonalOffsets...), diagonalOffsets...)
	}
	for _, o := range offsets {
		r, c := row+o[0], col+o[1]
		if inRange(r, c) && g.Cells[r][c].Status.Reachable() {
			return true
		}
	}
	return false
}

// CanUnlock checks the unlock preconditions without mutating.
func (g *Grid) CanUnlock(row, col int, adj Adjacency) Reason {
	if !inRange(row, col) {
		return ReasonOutOfRange
	}
	cell := g.Cells[row][col]
	if cell.Status == StatusCoreValue {
		return ReasonCoreValueFrozen
	}
	if cell.Status != StatusLocked {
		return ReasonNotLocked
	}
	if !g.hasReachableNeighbor(row, col, adj) {
		return ReasonNoNeighbor
	}
	return ReasonOK
}

// Unlock transitions a Locked cell to Unlocked, storing its quest
// metadata. Denied mutations report a reason and leave the grid untouched;
// these are expected conditions, not errors.
func (g *Grid) Unlock(row, col int, quest QuestData, adj Adjacency, now time.Time) (bool, Reason) {
	if reason := g.CanUnlock(row, col, adj); reason != ReasonOK {
		return false, reason
	}
	ts := now.UTC()
	cell := &g.Cells[row][col]
	cell.Status = StatusUnlocked
	cell.Quest = quest
	cell.UnlockedAt = &ts
	g.UnlockedCount++
	g.UpdatedAt = ts
	return true, ReasonOK
}

// Complete transitions an Unlocked cell to Completed. The unlocked count
// is unchanged: it counts Unlocked and Completed cells together.
func (g *Grid) Complete(row, col int, now time.Time) (bool, Reason) {
	if !inRange(row, col) {
		return false, ReasonOutOfRange
	}
	cell := &g.Cells[row][col]
	if cell.Status != StatusUnlocked {
		return false, ReasonNotUnlocked
	}
	ts := now.UTC()
	cell.Status = StatusCompleted
	cell.CompletedAt = &ts
	g.UpdatedAt = ts
	return true, ReasonOK
}

// CompletedCount counts Completed cells (core values excluded).
func (g *Grid) CompletedCount() int {
	n := 0
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if g.Cells[r][c].Status == StatusCompleted {
				n++
			}
		}
	}
	return n
}

// CompletionRate is completed cells over the 72 unlockable positions.
func (g *Grid) CompletionRate() float64 {
	return float64(g.CompletedCount()) / float64(TotalCells-9)
}

// LastCompletionAt returns the most recent completion stamp on the grid,
// or zero when nothing has been completed.
func (g *Grid) LastCompletionAt() time.Time {
	var last time.Time
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if t := g.Cells[r][c].CompletedAt; t != nil && t.After(last) {
				last = *t
			}
		}
	}
	return last
}

// UnlockedOn counts cells whose unlock stamp falls on the given UTC day.
func (g *Grid) UnlockedOn(day time.Time) int {
	y, m, d := day.UTC().Date()
	n := 0
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if t := g.Cells[r][c].UnlockedAt; t != nil {
				ty, tm, td := t.UTC().Date()
				if ty == y && tm == m && td == d {
					n++
				}
			}
		}
	}
	return n
}

// Validate checks the structural invariants of a loaded grid: the core
// block must be intact and the unlocked count must match the cells. A
// failure means corrupted persisted state and is fatal for the aggregate.
func (g *Grid) Validate() error {
	count := 0
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			cell := g.Cells[r][c]
			isCore := r >= 3 && r <= 5 && c >= 3 && c <= 5
			if isCore && cell.Status != StatusCoreValue {
				return fmt.Errorf("grid %s: core value cell (%d,%d) mutated to %q", g.UID, r, c, cell.Status)
			}
			if !isCore && cell.Status == StatusCoreValue {
				return fmt.Errorf("grid %s: unexpected core value at (%d,%d)", g.UID, r, c)
			}
			if cell.Status == StatusUnlocked || cell.Status == StatusCompleted {
				count++
			}
		}
	}
	if count != g.UnlockedCount {
		return fmt.Errorf("grid %s: unlocked_count %d does not match cells (%d)", g.UID, g.UnlockedCount, count)
	}
	return nil
}
