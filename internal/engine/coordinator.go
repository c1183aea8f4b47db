package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultEventRingSize bounds the coordinator's system-event log.
const DefaultEventRingSize = 50

// ResonanceThreshold is the level gap at which the caller's resonance
// collaborator activates. The narrative effect itself is out of scope.
const ResonanceThreshold = 5

// SystemEvent is one coordinator log entry. The log is a bounded ring,
// most recent first.
type SystemEvent struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Coordinator composes the player and companion tracks for one user.
type Coordinator struct {
	Player    *PlayerProgression
	Companion *CompanionProgression

	Events   []SystemEvent
	RingSize int
}

// NewCoordinator wires both tracks with the default ring size.
func NewCoordinator(player *PlayerProgression, companion *CompanionProgression) *Coordinator {
	return &Coordinator{
		Player:    player,
		Companion: companion,
		RingSize:  DefaultEventRingSize,
	}
}

// CombinedResult merges one XP application with the companion's reaction.
type CombinedResult struct {
	Player          *AddXPResult `json:"player"`
	CompanionLevel  int          `json:"companion_level"`
	CompanionGrew   bool         `json:"companion_grew"`
	LevelDifference int          `json:"level_difference"`
	SystemEvent     SystemEvent  `json:"system_event"`
}

// AddPlayerXP applies XP to the player track, then immediately evaluates
// the companion's natural-growth gate against the fresh player level.
func (co *Coordinator) AddPlayerXP(amount int, reason string, now time.Time) (*CombinedResult, error) {
	res, err := co.Player.AddXP(amount, reason, now)
	if err != nil {
		return nil, err
	}

	days := int(now.UTC().Sub(co.Companion.LastNaturalGrowth).Hours() / 24)
	grew := co.Companion.GrowNaturally(res.NewLevel, days, now)

	msg := fmt.Sprintf("+%d XP (%s)", amount, reason)
	if res.LevelUp {
		msg = fmt.Sprintf("%s, level %d -> %d", msg, res.OldLevel, res.NewLevel)
	}
	if grew {
		msg = fmt.Sprintf("%s, Yu grew to level %d", msg, co.Companion.Level)
	}
	ev := co.appendEvent(msg, now)

	return &CombinedResult{
		Player:          res,
		CompanionLevel:  co.Companion.Level,
		CompanionGrew:   grew,
		LevelDifference: levelDiff(res.NewLevel, co.Companion.Level),
		SystemEvent:     ev,
	}, nil
}

// CombinedStatus is both tracks plus the resonance signal.
type CombinedStatus struct {
	Player             PlayerSnapshot     `json:"player"`
	CompanionLevel     int                `json:"companion_level"`
	CompanionTraits    map[string]float64 `json:"companion_traits"`
	LevelDifference    int                `json:"level_difference"`
	ResonanceAvailable bool               `json:"resonance_available"`
	RecentEvents       []SystemEvent      `json:"recent_events"`
}

// Status derives the combined view fresh; nothing here is cached.
func (co *Coordinator) Status() CombinedStatus {
	snap := co.Player.Snapshot()
	diff := levelDiff(snap.Level, co.Companion.Level)
	return CombinedStatus{
		Player:             snap,
		CompanionLevel:     co.Companion.Level,
		CompanionTraits:    co.Companion.Traits,
		LevelDifference:    diff,
		ResonanceAvailable: diff >= ResonanceThreshold,
		RecentEvents:       co.Events,
	}
}

// appendEvent prepends to the ring and trims to RingSize.
func (co *Coordinator) appendEvent(message string, now time.Time) SystemEvent {
	ev := SystemEvent{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: now.UTC(),
	}
	size := co.RingSize
	if size <= 0 {
		size = DefaultEventRingSize
	}
	co.Events = append([]SystemEvent{ev}, co.Events...)
	if len(co.Events) > size {
		co.Events = co.Events[:size]
	}
	return ev
}

func levelDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
