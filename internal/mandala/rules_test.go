package mandala

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyUnlockLimit(t *testing.T) {
	g := NewGrid("u1", t0)
	rules := Rules{DailyUnlockLimit: 2, CompletionCooldown: time.Hour}
	quest := QuestData{Title: "q", XPReward: 10, Difficulty: 1}

	assert.Equal(t, ReasonOK, rules.CanUnlockToday(g, t0))

	ok, _ := g.Unlock(2, 4, quest, AdjacencyOrthogonal, t0)
	require.True(t, ok)
	assert.Equal(t, ReasonOK, rules.CanUnlockToday(g, t0))

	ok, _ = g.Unlock(2, 3, quest, AdjacencyOrthogonal, t0)
	require.True(t, ok)
	assert.Equal(t, ReasonDailyLimit, rules.CanUnlockToday(g, t0))

	// The quota is per UTC day.
	nextDay := t0.Add(24 * time.Hour)
	assert.Equal(t, ReasonOK, rules.CanUnlockToday(g, nextDay))

	// Zero means unlimited.
	unlimited := Rules{DailyUnlockLimit: 0}
	assert.Equal(t, ReasonOK, unlimited.CanUnlockToday(g, t0))
}

func TestCompletionCooldown(t *testing.T) {
	g := NewGrid("u1", t0)
	rules := Rules{DailyUnlockLimit: 10, CompletionCooldown: time.Hour}
	quest := QuestData{Title: "q", XPReward: 10, Difficulty: 1}

	// Nothing completed yet: no cooldown.
	assert.Equal(t, ReasonOK, rules.CanCompleteNow(g, t0))

	ok, _ := g.Unlock(2, 4, quest, AdjacencyOrthogonal, t0)
	require.True(t, ok)
	ok, _ = g.Unlock(2, 3, quest, AdjacencyOrthogonal, t0)
	require.True(t, ok)
	ok, _ = g.Complete(2, 4, t0)
	require.True(t, ok)

	assert.Equal(t, ReasonCooldownActive, rules.CanCompleteNow(g, t0.Add(30*time.Minute)))
	assert.Equal(t, ReasonOK, rules.CanCompleteNow(g, t0.Add(61*time.Minute)))

	// Disabled cooldown always allows.
	off := Rules{CompletionCooldown: 0}
	assert.Equal(t, ReasonOK, off.CanCompleteNow(g, t0.Add(time.Second)))
}

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	assert.Equal(t, 2, r.DailyUnlockLimit)
	assert.Equal(t, 60*time.Minute, r.CompletionCooldown)
}
