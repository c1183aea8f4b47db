package engine

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestPlayerAddXPMonotone(t *testing.T) {
	p := &PlayerProgression{UID: "u1"}

	grants := []int{0, 10, 250, 3, 999, 40}
	lastXP := 0
	lastLevel := p.Level()
	for _, amount := range grants {
		if _, err := p.AddXP(amount, "test", t0); err != nil {
			t.Fatalf("AddXP(%d): %v", amount, err)
		}
		if p.XPTotal < lastXP {
			t.Fatalf("XPTotal decreased: %d -> %d", lastXP, p.XPTotal)
		}
		snap := p.Snapshot()
		if snap.Level < lastLevel {
			t.Fatalf("level decreased: %d -> %d", lastLevel, snap.Level)
		}
		lastXP = p.XPTotal
		lastLevel = snap.Level
	}

	if len(p.History) != len(grants) {
		t.Fatalf("history len=%d, want %d", len(p.History), len(grants))
	}
}

func TestPlayerRejectsNegativeXP(t *testing.T) {
	p := &PlayerProgression{UID: "u1", XPTotal: 500}

	_, err := p.AddXP(-1, "test", t0)
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Code != ReasonNegativeXP {
		t.Fatalf("expected %s validation error, got %v", ReasonNegativeXP, err)
	}
	if p.XPTotal != 500 {
		t.Fatalf("XPTotal mutated on rejected grant: %d", p.XPTotal)
	}
}

func TestPlayerSimulateDoesNotMutate(t *testing.T) {
	p := &PlayerProgression{UID: "u1", XPTotal: 90}

	res, err := p.Simulate(100)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if !res.LevelUp {
		t.Fatalf("expected simulated level up from 90+100 XP")
	}
	if p.XPTotal != 90 || len(p.History) != 0 {
		t.Fatalf("Simulate mutated state: xp=%d history=%d", p.XPTotal, len(p.History))
	}
}

func TestPlayerLevelUpScenario(t *testing.T) {
	p := &PlayerProgression{UID: "u1"}

	res, err := p.AddXP(100, "task", t0)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if res.NewLevel != LevelForTotalXP(100) {
		t.Fatalf("NewLevel=%d, want %d", res.NewLevel, LevelForTotalXP(100))
	}

	res, err = p.AddXP(50000, "bonus", t0)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if !res.LevelUp || len(res.Rewards) == 0 {
		t.Fatalf("expected level up with rewards, got %+v", res)
	}
	hasMilestone := false
	for _, r := range res.Rewards {
		if r.Kind == RewardMajorMilestone {
			hasMilestone = true
		}
	}
	// 50100 total XP is far past level 10.
	if LevelForTotalXP(p.XPTotal) >= 10 && !hasMilestone {
		t.Fatalf("expected a major milestone crossing level 10, rewards=%v", res.Rewards)
	}
}

func TestCompanionNeverLeadsPlayer(t *testing.T) {
	c := NewCompanionProgression("u1", t0)

	// Natural growth: threshold not reached.
	if c.GrowNaturally(10, NaturalGrowthDays-1, t0) {
		t.Fatalf("grew before the day threshold")
	}
	// Threshold reached but player too low.
	if c.GrowNaturally(1, NaturalGrowthDays, t0) {
		t.Fatalf("grew past the player level")
	}
	if c.Level != 1 {
		t.Fatalf("level=%d, want 1", c.Level)
	}

	// Gate passes.
	if !c.GrowNaturally(5, NaturalGrowthDays, t0) {
		t.Fatalf("expected natural growth")
	}
	if c.Level != 2 {
		t.Fatalf("level=%d, want 2", c.Level)
	}

	// Any interleaving of growth calls keeps companion <= player.
	playerLevel := 4
	now := t0
	for i := 0; i < 20; i++ {
		now = now.Add(6 * 24 * time.Hour)
		c.GrowNaturally(playerLevel, NaturalGrowthDays+1, now)
		if _, err := c.GrowFromInteraction(InteractionTaskCompletion, playerLevel, now); err != nil {
			t.Fatalf("GrowFromInteraction: %v", err)
		}
		if c.Level > playerLevel {
			t.Fatalf("companion level %d exceeds player level %d", c.Level, playerLevel)
		}
	}
	if c.Level != playerLevel {
		t.Fatalf("companion should have caught up to %d, got %d", playerLevel, c.Level)
	}
}

func TestCompanionInteractionAllowList(t *testing.T) {
	c := NewCompanionProgression("u1", t0)

	if _, err := c.GrowFromInteraction("belly_rub", 10, t0); err == nil {
		t.Fatalf("expected error for unknown interaction kind")
	}

	grew, err := c.GrowFromInteraction(InteractionEmotionalSupport, 10, t0)
	if err != nil {
		t.Fatalf("GrowFromInteraction: %v", err)
	}
	if !grew || c.Level != 2 {
		t.Fatalf("grew=%v level=%d, want growth to 2", grew, c.Level)
	}
	if v := c.Traits["warmth"]; v <= 0.5 {
		t.Fatalf("warmth trait did not drift: %v", v)
	}
}

func TestCompanionTraitsStayBounded(t *testing.T) {
	c := NewCompanionProgression("u1", t0)
	for i := 0; i < 50; i++ {
		// Gate fails (player level 1), but traits still drift.
		if _, err := c.GrowFromInteraction(InteractionEmotionalSupport, 1, t0); err != nil {
			t.Fatalf("GrowFromInteraction: %v", err)
		}
	}
	if c.Level != 1 {
		t.Fatalf("level=%d, want 1 (gate never passed)", c.Level)
	}
	if v := c.Traits["warmth"]; v > 1 {
		t.Fatalf("warmth trait exceeded bound: %v", v)
	}
}

func TestCoordinatorAddPlayerXP(t *testing.T) {
	co := NewCoordinator(
		&PlayerProgression{UID: "u1"},
		NewCompanionProgression("u1", t0.Add(-10*24*time.Hour)),
	)

	res, err := co.AddPlayerXP(1000, "task_completion", t0)
	if err != nil {
		t.Fatalf("AddPlayerXP: %v", err)
	}
	if !res.Player.LevelUp {
		t.Fatalf("expected level up from 1000 XP")
	}
	// Ten days since the companion's last growth and the player is now
	// ahead, so the natural-growth gate passes.
	if !res.CompanionGrew {
		t.Fatalf("expected companion natural growth")
	}
	if res.LevelDifference != res.Player.NewLevel-co.Companion.Level {
		t.Fatalf("LevelDifference=%d, want %d", res.LevelDifference, res.Player.NewLevel-co.Companion.Level)
	}
	if res.SystemEvent.ID == "" || res.SystemEvent.Message == "" {
		t.Fatalf("missing system event: %+v", res.SystemEvent)
	}
}

func TestCoordinatorEventRingBounded(t *testing.T) {
	co := NewCoordinator(&PlayerProgression{UID: "u1"}, NewCompanionProgression("u1", t0))
	co.RingSize = 5

	for i := 0; i < 12; i++ {
		if _, err := co.AddPlayerXP(i, "tick", t0.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("AddPlayerXP: %v", err)
		}
	}
	if len(co.Events) != 5 {
		t.Fatalf("ring len=%d, want 5", len(co.Events))
	}
	// Most recent first.
	if co.Events[0].CreatedAt.Before(co.Events[1].CreatedAt) {
		t.Fatalf("events not most-recent-first: %v then %v", co.Events[0].CreatedAt, co.Events[1].CreatedAt)
	}
}

func TestCoordinatorStatusResonance(t *testing.T) {
	co := NewCoordinator(&PlayerProgression{UID: "u1", XPTotal: XPRequiredForLevel(8)}, NewCompanionProgression("u1", t0))

	st := co.Status()
	if st.Player.Level != 8 {
		t.Fatalf("player level=%d, want 8", st.Player.Level)
	}
	if st.LevelDifference != 7 {
		t.Fatalf("LevelDifference=%d, want 7", st.LevelDifference)
	}
	if !st.ResonanceAvailable {
		t.Fatalf("expected resonance at difference %d", st.LevelDifference)
	}
}
