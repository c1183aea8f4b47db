package engine

import "testing"

func TestXPCurveBoundaries(t *testing.T) {
	if got := XPRequiredForLevel(0); got != 0 {
		t.Fatalf("XPRequiredForLevel(0)=%d, want 0", got)
	}
	if got := XPRequiredForLevel(1); got != 0 {
		t.Fatalf("XPRequiredForLevel(1)=%d, want 0", got)
	}
	if got := XPRequiredForLevel(2); got != 100 {
		t.Fatalf("XPRequiredForLevel(2)=%d, want 100", got)
	}

	if got := LevelForTotalXP(0); got != 1 {
		t.Fatalf("LevelForTotalXP(0)=%d, want 1", got)
	}
	if got := LevelForTotalXP(99); got != 1 {
		t.Fatalf("LevelForTotalXP(99)=%d, want 1", got)
	}
	if got := LevelForTotalXP(100); got != 2 {
		t.Fatalf("LevelForTotalXP(100)=%d, want 2", got)
	}
}

func TestXPCurveInverseConsistency(t *testing.T) {
	for l := 1; l <= 120; l++ {
		req := XPRequiredForLevel(l)
		if got := LevelForTotalXP(req); got != l {
			t.Fatalf("LevelForTotalXP(XPRequiredForLevel(%d))=%d, want %d", l, got, l)
		}
		if l > 1 {
			if got := LevelForTotalXP(req - 1); got != l-1 {
				t.Fatalf("LevelForTotalXP(req(%d)-1)=%d, want %d", l, got, l-1)
			}
		}
	}
}

func TestXPCurveStrictlyIncreasing(t *testing.T) {
	prev := XPRequiredForLevel(1)
	for l := 2; l <= 200; l++ {
		cur := XPRequiredForLevel(l)
		if cur <= prev {
			t.Fatalf("curve not strictly increasing at level %d: %d <= %d", l, cur, prev)
		}
		prev = cur
	}
}

func TestLevelUpRewards(t *testing.T) {
	if got := LevelUpRewards(5, 5); got != nil {
		t.Fatalf("no crossing should yield nil, got %v", got)
	}
	if got := LevelUpRewards(5, 3); got != nil {
		t.Fatalf("downward input should yield nil, got %v", got)
	}

	rewards := LevelUpRewards(8, 12)
	if len(rewards) != 4 {
		t.Fatalf("len(rewards)=%d, want 4", len(rewards))
	}
	wantLevels := []int{9, 10, 11, 12}
	for i, r := range rewards {
		if r.Level != wantLevels[i] {
			t.Fatalf("rewards[%d].Level=%d, want %d", i, r.Level, wantLevels[i])
		}
		wantKind := RewardLevelUp
		if r.Level == 10 {
			wantKind = RewardMajorMilestone
		}
		if r.Kind != wantKind {
			t.Fatalf("rewards[%d].Kind=%s, want %s", i, r.Kind, wantKind)
		}
	}
}
