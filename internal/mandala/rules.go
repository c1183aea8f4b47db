package mandala

import "time"

// Rules are the stateless business policies layered in front of the grid
// state machine by the owning service. They are advisory checks, not grid
// invariants, so the state machine stays reusable under other policies.
type Rules struct {
	// DailyUnlockLimit caps unlocks per UTC day. Zero or negative means
	// unlimited.
	DailyUnlockLimit int

	// CompletionCooldown is the minimum spacing between completions on
	// one grid.
	CompletionCooldown time.Duration
}

// DefaultRules returns the standard policy: two unlocks per day, one
// completion per hour.
func DefaultRules() Rules {
	return Rules{
		DailyUnlockLimit:   2,
		CompletionCooldown: 60 * time.Minute,
	}
}

// CanUnlockToday rejects once today's unlock count reaches the limit.
func (r Rules) CanUnlockToday(g *Grid, now time.Time) Reason {
	if r.DailyUnlockLimit <= 0 {
		return ReasonOK
	}
	if g.UnlockedOn(now) >= r.DailyUnlockLimit {
		return ReasonDailyLimit
	}
	return ReasonOK
}

// CanCompleteNow rejects completions inside the cooldown window after the
// grid's latest completion.
func (r Rules) CanCompleteNow(g *Grid, now time.Time) Reason {
	if r.CompletionCooldown <= 0 {
		return ReasonOK
	}
	last := g.LastCompletionAt()
	if last.IsZero() {
		return ReasonOK
	}
	if now.UTC().Sub(last) < r.CompletionCooldown {
		return ReasonCooldownActive
	}
	return ReasonOK
}
