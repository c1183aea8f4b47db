package engine

import (
	"context"

	"go.uber.org/zap"

	"yuquest/internal/mandala"
)

// XPReasonMandala tags XP grants earned from mandala quest completions.
const XPReasonMandala = "mandala_quest"

// getOrCreateGrid loads the user's grid, provisioning a fresh one on first
// touch. Callers must hold the (uid, aggGrid) lock: provisioning writes.
// Deserialization failures mean corrupted persisted state and are
// surfaced as-is.
func (s *Service) getOrCreateGrid(ctx context.Context, uid string) (*mandala.Grid, error) {
	data, err := s.grids.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if data == nil {
		g := mandala.NewGrid(uid, s.now())
		if err := s.saveGrid(ctx, g); err != nil {
			return nil, err
		}
		return g, nil
	}
	return mandala.Deserialize(data)
}

func (s *Service) saveGrid(ctx context.Context, g *mandala.Grid) error {
	data, err := mandala.Serialize(g)
	if err != nil {
		return err
	}
	return s.grids.Put(ctx, g.UID, data, g.UpdatedAt)
}

// GetGrid returns the user's grid. Takes the grid lock: a first touch
// provisions and saves a fresh grid, and that write must not interleave
// with a concurrent unlock.
func (s *Service) GetGrid(ctx context.Context, uid string) (*mandala.Grid, error) {
	lock := s.locks.get(uid, aggGrid)
	lock.Lock()
	defer lock.Unlock()

	return s.getOrCreateGrid(ctx, uid)
}

// UnlockCell runs the business rules and the grid state machine for one
// unlock. A false result carries a machine-readable reason; the caller
// maps it to "not allowed", never a crash.
func (s *Service) UnlockCell(ctx context.Context, uid string, row, col int, quest mandala.QuestData) (bool, mandala.Reason, error) {
	lock := s.locks.get(uid, aggGrid)
	lock.Lock()
	defer lock.Unlock()

	g, err := s.getOrCreateGrid(ctx, uid)
	if err != nil {
		return false, "", err
	}

	now := s.now()
	if reason := s.rules.CanUnlockToday(g, now); reason != mandala.ReasonOK {
		return false, reason, nil
	}
	ok, reason := g.Unlock(row, col, quest, s.adjacency, now)
	if !ok {
		return false, reason, nil
	}
	if err := s.saveGrid(ctx, g); err != nil {
		return false, "", err
	}

	s.log.Debug("cell unlocked",
		zap.String("uid", uid),
		zap.Int("row", row),
		zap.Int("col", col),
		zap.Int("unlocked_count", g.UnlockedCount),
	)
	return true, mandala.ReasonOK, nil
}

// CellCompleteResult reports one completed cell and the quest XP it hands
// back. The grid never applies XP itself; the caller routes the reward
// through AddPlayerXP so both reward sources stay additive and explicit.
type CellCompleteResult struct {
	Row      int `json:"row"`
	Col      int `json:"col"`
	XPReward int `json:"xp_reward"`
}

// CompleteCell runs the cooldown rule and the unlocked->completed
// transition.
func (s *Service) CompleteCell(ctx context.Context, uid string, row, col int) (*CellCompleteResult, mandala.Reason, error) {
	lock := s.locks.get(uid, aggGrid)
	lock.Lock()
	defer lock.Unlock()

	g, err := s.getOrCreateGrid(ctx, uid)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	if reason := s.rules.CanCompleteNow(g, now); reason != mandala.ReasonOK {
		return nil, reason, nil
	}
	ok, reason := g.Complete(row, col, now)
	if !ok {
		return nil, reason, nil
	}
	if err := s.saveGrid(ctx, g); err != nil {
		return nil, "", err
	}

	cell := g.Cell(row, col)
	s.log.Debug("cell completed",
		zap.String("uid", uid),
		zap.Int("row", row),
		zap.Int("col", col),
		zap.Int("xp_reward", cell.Quest.XPReward),
	)
	return &CellCompleteResult{Row: row, Col: col, XPReward: cell.Quest.XPReward}, mandala.ReasonOK, nil
}
