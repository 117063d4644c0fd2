// Package progress owns the learner profile: XP and the level curve, daily
// streaks, lesson history and achievements.
package progress

import "math"

// XPForLevel is the XP needed to go from level-1 to level. Level 1 is free.
func XPForLevel(level int) int {
	if level < 2 {
		return 0
	}
	return 50 + 25*level
}

// MaxTotalXP bounds the XP a profile may hold. Larger totals are rejected
// on decode and clamped by LevelForXP.
const MaxTotalXP = 1 << 53

// CumulativeXP is the total XP at which level is reached:
// the sum of 50+25k for k in 2..level.
func CumulativeXP(level int) int {
	if level < 2 {
		return 0
	}
	// L(L+5) is always even.
	return (25*level*(level+5) - 150) / 2
}

// LevelForXP is the highest level whose cumulative requirement is met by
// totalXP, never below 1.
func LevelForXP(totalXP int) int {
	if totalXP < CumulativeXP(2) {
		return 1
	}
	totalXP = min(totalXP, MaxTotalXP)

	// Solve 25L² + 125L - 150 - 2·xp = 0, then correct float rounding.
	x := float64(totalXP)
	level := int((-125 + math.Sqrt(125*125+100*(150+2*x))) / 50)
	level = max(level, 1)
	for level > 1 && CumulativeXP(level) > totalXP {
		level--
	}
	for CumulativeXP(level+1) <= totalXP {
		level++
	}
	return level
}

// LevelProgress reports how far totalXP is into its current level and how
// much that level spans in total.
func LevelProgress(totalXP int) (into, span int) {
	level := LevelForXP(totalXP)
	return totalXP - CumulativeXP(level), XPForLevel(level + 1)
}
