package engine

import (
	"math"
	"time"
)

const (
	// TimeBonusCap is the maximum time-efficiency bonus.
	TimeBonusCap = 0.2
)

// baseXPByDifficulty is the fixed 5-point base reward table. The value is
// frozen on the task at creation time and never recomputed.
var baseXPByDifficulty = map[Difficulty]int{
	DifficultyTrivial: 5,
	DifficultyEasy:    10,
	DifficultyMedium:  15,
	DifficultyHard:    25,
	DifficultyEpic:    40,
}

// BaseXPForDifficulty returns the base reward for a difficulty tier.
func BaseXPForDifficulty(d Difficulty) (int, error) {
	xp, ok := baseXPByDifficulty[d]
	if !ok {
		return 0, validationErrorf(ReasonInvalidDifficulty, "difficulty %d not in 1-5", d)
	}
	return xp, nil
}

var priorityBonuses = map[Priority]float64{
	PriorityLow:    0.0,
	PriorityMedium: 0.05,
	PriorityHigh:   0.1,
	PriorityUrgent: 0.15,
}

// RewardInput is everything the calculator needs for one completion event.
type RewardInput struct {
	BaseXP    int
	MoodScore int // 1-5 self-reported mood at completion

	// AssistMultiplier is supplied by an external accommodation
	// collaborator and must be >= 1.0.
	AssistMultiplier float64

	// Estimated/Actual are optional; the time bonus applies only when
	// both are positive and Actual <= Estimated.
	Estimated time.Duration
	Actual    time.Duration

	Priority Priority // optional; empty means no priority bonus
}

// RewardBreakdown is the typed result of the reward pipeline.
type RewardBreakdown struct {
	BaseXP           int     `json:"base_xp"`
	MoodCoefficient  float64 `json:"mood_coefficient"`
	AssistMultiplier float64 `json:"assist_multiplier"`
	TimeBonus        float64 `json:"time_bonus"`
	PriorityBonus    float64 `json:"priority_bonus"`
	FinalXP          int     `json:"final_xp"`
}

// MoodCoefficient maps a 1-5 mood score onto [0.8, 1.2]. Scores outside
// the scale are rejected, never clamped.
func MoodCoefficient(moodScore int) (float64, error) {
	if moodScore < 1 || moodScore > 5 {
		return 0, validationErrorf(ReasonInvalidMood, "mood score %d not in 1-5", moodScore)
	}
	// 0.8 + (score-1)*0.1, computed as (7+score)/10 so the bounds stay
	// exact in floating point.
	return float64(7+moodScore) / 10.0, nil
}

// timeBonus rewards finishing at or under the estimate, proportionally,
// capped at TimeBonusCap. No duration info means no bonus.
func timeBonus(estimated, actual time.Duration) float64 {
	if estimated <= 0 || actual <= 0 || actual > estimated {
		return 0
	}
	bonus := TimeBonusCap * (1 - float64(actual)/float64(estimated))
	if bonus > TimeBonusCap {
		bonus = TimeBonusCap
	}
	return bonus
}

// CalculateReward runs the fixed reward formula:
//
//	final = floor(base * mood * assist * (1 + timeBonus + priorityBonus))
//
// Deterministic, no side effects.
func CalculateReward(in RewardInput) (*RewardBreakdown, error) {
	mood, err := MoodCoefficient(in.MoodScore)
	if err != nil {
		return nil, err
	}
	if in.AssistMultiplier < 1.0 {
		return nil, validationErrorf(ReasonInvalidAssist, "assist multiplier %.2f below 1.0", in.AssistMultiplier)
	}

	priorityBonus := 0.0
	if in.Priority != "" {
		b, ok := priorityBonuses[in.Priority]
		if !ok {
			return nil, validationErrorf(ReasonInvalidPriority, "unknown priority %q", in.Priority)
		}
		priorityBonus = b
	}

	tb := timeBonus(in.Estimated, in.Actual)

	final := float64(in.BaseXP) * mood * in.AssistMultiplier * (1 + tb + priorityBonus)

	return &RewardBreakdown{
		BaseXP:           in.BaseXP,
		MoodCoefficient:  mood,
		AssistMultiplier: in.AssistMultiplier,
		TimeBonus:        tb,
		PriorityBonus:    priorityBonus,
		FinalXP:          int(math.Floor(final)),
	}, nil
}
