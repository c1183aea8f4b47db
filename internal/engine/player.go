package engine

import "time"

// XPEvent is one append-only entry in the player's XP grant history.
type XPEvent struct {
	ID        string
	Amount    int
	Reason    string
	CreatedAt time.Time
}

// PlayerProgression owns one user's cumulative XP. The level is never
// stored independently; it is always derived from XPTotal through the
// curve so the two cannot drift apart.
type PlayerProgression struct {
	UID     string
	XPTotal int

	// History holds XP grants appended during this load. The full
	// append-only log lives in storage.
	History []XPEvent
}

// AddXPResult reports one XP application on the player track.
type AddXPResult struct {
	AmountApplied int           `json:"amount_applied"`
	OldLevel      int           `json:"old_level"`
	NewLevel      int           `json:"new_level"`
	LevelUp       bool          `json:"level_up"`
	Rewards       []LevelReward `json:"rewards,omitempty"`
}

// Level recomputes the current level from total XP.
func (p *PlayerProgression) Level() int {
	return LevelForTotalXP(p.XPTotal)
}

// AddXP applies a non-negative XP grant with a reason tag. Negative
// amounts are rejected, never floored.
func (p *PlayerProgression) AddXP(amount int, reason string, now time.Time) (*AddXPResult, error) {
	res, err := p.Simulate(amount)
	if err != nil {
		return nil, err
	}

	p.XPTotal += amount
	p.History = append(p.History, XPEvent{
		Amount:    amount,
		Reason:    reason,
		CreatedAt: now.UTC(),
	})
	return res, nil
}

// Simulate previews AddXP without mutating state.
func (p *PlayerProgression) Simulate(amount int) (*AddXPResult, error) {
	if amount < 0 {
		return nil, validationErrorf(ReasonNegativeXP, "xp amount %d is negative", amount)
	}

	oldLevel := p.Level()
	newLevel := LevelForTotalXP(p.XPTotal + amount)
	return &AddXPResult{
		AmountApplied: amount,
		OldLevel:      oldLevel,
		NewLevel:      newLevel,
		LevelUp:       newLevel > oldLevel,
		Rewards:       LevelUpRewards(oldLevel, newLevel),
	}, nil
}

// PlayerSnapshot is a derived view of the player track. Always computed
// fresh from XPTotal.
type PlayerSnapshot struct {
	Level              int     `json:"level"`
	TotalXP            int     `json:"total_xp"`
	XPForCurrentLevel  int     `json:"xp_for_current_level"`
	XPForNextLevel     int     `json:"xp_for_next_level"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// Snapshot returns the current level plus progress toward the next one.
func (p *PlayerProgression) Snapshot() PlayerSnapshot {
	level := p.Level()
	cur := XPRequiredForLevel(level)
	next := XPRequiredForLevel(level + 1)

	progress := 0.0
	if next > cur {
		progress = float64(p.XPTotal-cur) / float64(next-cur) * 100
		if progress > 100 {
			progress = 100
		}
	}
	return PlayerSnapshot{
		Level:              level,
		TotalXP:            p.XPTotal,
		XPForCurrentLevel:  cur,
		XPForNextLevel:     next,
		ProgressPercentage: progress,
	}
}
