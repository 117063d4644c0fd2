package progress

import (
	"math"
	"time"

	"github.com/abhisek/learnpath/internal/content"
)

// BaseXP is awarded for every completed lesson.
const BaseXP = 50

// ScorePercentage returns score/totalPossible in [0,1]. A zero total, or any
// non-finite result, yields 0.
func ScorePercentage(score, totalPossible int) float64 {
	if totalPossible <= 0 {
		return 0
	}
	pct := content.Finite(float64(score) / float64(totalPossible))
	return math.Max(0, math.Min(1, pct))
}

// PerformanceBonus is round(pct×100), at most 100.
func PerformanceBonus(pct float64) int {
	pct = math.Max(0, math.Min(1, content.Finite(pct)))
	return int(math.Round(pct * 100))
}

// TimeBonus rewards quick completions.
func TimeBonus(spent time.Duration) int {
	switch {
	case spent < time.Minute:
		return 25
	case spent < 2*time.Minute:
		return 15
	case spent < 5*time.Minute:
		return 10
	default:
		return 5
	}
}

// XPEarned is the XP for one completed lesson.
func XPEarned(pct float64, spent time.Duration) int {
	return BaseXP + PerformanceBonus(pct) + TimeBonus(spent)
}
