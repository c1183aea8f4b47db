package engine

import "math"

// XPCurveCoef is the constant of the level curve: XP_req = 100 * (Level-1)^1.5.
const XPCurveCoef = 100.0

// MajorMilestoneEvery marks every Nth level as a major milestone.
const MajorMilestoneEvery = 10

// XPRequiredForLevel returns the total XP threshold required to be at the
// given level. Levels at or below 1 require 0 XP.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	req := XPCurveCoef * math.Pow(float64(level-1), 1.5)
	return int(math.Round(req))
}

// LevelForTotalXP returns the highest level L such that
// totalXP >= XPRequiredForLevel(L). The minimum level is 1.
func LevelForTotalXP(totalXP int) int {
	if totalXP <= 0 {
		return 1
	}

	// Exponential search upper bound, then binary search. The curve is
	// strictly increasing for level > 1, so this is an exact inverse.
	low := 1
	high := 2
	for XPRequiredForLevel(high) <= totalXP {
		low = high
		high *= 2
		if high > 1_000_000 {
			break
		}
	}

	for low+1 < high {
		mid := low + (high-low)/2
		if XPRequiredForLevel(mid) <= totalXP {
			low = mid
		} else {
			high = mid
		}
	}
	return low
}

// LevelRewardKind distinguishes ordinary level-ups from major milestones.
type LevelRewardKind string

const (
	RewardLevelUp        LevelRewardKind = "level_up"
	RewardMajorMilestone LevelRewardKind = "major_milestone"
)

// LevelReward describes one reward granted for crossing a level boundary.
type LevelReward struct {
	Level int
	Kind  LevelRewardKind
}

// LevelUpRewards returns one reward descriptor per level crossed when
// moving from oldLevel to newLevel. Every MajorMilestoneEvery-th level is a
// major milestone. Returns nil when no boundary was crossed.
func LevelUpRewards(oldLevel, newLevel int) []LevelReward {
	if newLevel <= oldLevel {
		return nil
	}
	rewards := make([]LevelReward, 0, newLevel-oldLevel)
	for l := oldLevel + 1; l <= newLevel; l++ {
		kind := RewardLevelUp
		if l%MajorMilestoneEvery == 0 {
			kind = RewardMajorMilestone
		}
		rewards = append(rewards, LevelReward{Level: l, Kind: kind})
	}
	return rewards
}
