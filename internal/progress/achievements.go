package progress

import (
	"fmt"
	"time"
)

// AchievementKind identifies an achievement. Some kinds carry a parameter.
type AchievementKind string

const (
	AchievementFirstLesson    AchievementKind = "first_lesson"
	AchievementTenLessons     AchievementKind = "ten_lessons"
	AchievementFiftyLessons   AchievementKind = "fifty_lessons"
	AchievementThreeDayStreak AchievementKind = "three_day_streak"
	AchievementWeekStreak     AchievementKind = "week_streak"
	AchievementMonthStreak    AchievementKind = "month_streak"
	AchievementXPMilestone    AchievementKind = "xp_milestone"  // param: XP
	AchievementPerfectionist  AchievementKind = "perfectionist" // 5 lessons at 95%+
	AchievementLevelReached   AchievementKind = "level_reached" // param: level
)

// Thresholds.
var (
	lessonMilestones = []struct {
		count int
		kind  AchievementKind
	}{
		{1, AchievementFirstLesson},
		{10, AchievementTenLessons},
		{50, AchievementFiftyLessons},
	}
	streakMilestones = []struct {
		days int
		kind AchievementKind
	}{
		{3, AchievementThreeDayStreak},
		{7, AchievementWeekStreak},
		{30, AchievementMonthStreak},
	}
	xpMilestones = []int{1000, 5000, 10000}
)

const (
	perfectScore  = 0.95
	perfectLesson = 5
)

// Achievement is an unlocked achievement. Kind and Param together are unique
// within a profile.
type Achievement struct {
	Kind       AchievementKind `json:"kind"`
	Param      int             `json:"param,omitempty"`
	UnlockedAt time.Time       `json:"unlocked_at"`
}

// DisplayName returns a human-readable title.
func (a Achievement) DisplayName() string {
	switch a.Kind {
	case AchievementFirstLesson:
		return "First Steps"
	case AchievementTenLessons:
		return "Dedicated Learner"
	case AchievementFiftyLessons:
		return "Scholar"
	case AchievementThreeDayStreak:
		return "On a Roll"
	case AchievementWeekStreak:
		return "Week Warrior"
	case AchievementMonthStreak:
		return "Monthly Master"
	case AchievementXPMilestone:
		return fmt.Sprintf("%d XP", a.Param)
	case AchievementPerfectionist:
		return "Perfectionist"
	case AchievementLevelReached:
		return fmt.Sprintf("Level %d", a.Param)
	default:
		return string(a.Kind)
	}
}

// Description explains how the achievement was earned.
func (a Achievement) Description() string {
	switch a.Kind {
	case AchievementFirstLesson:
		return "Complete your first lesson"
	case AchievementTenLessons:
		return "Complete 10 lessons"
	case AchievementFiftyLessons:
		return "Complete 50 lessons"
	case AchievementThreeDayStreak:
		return "Study 3 days in a row"
	case AchievementWeekStreak:
		return "Study 7 days in a row"
	case AchievementMonthStreak:
		return "Study 30 days in a row"
	case AchievementXPMilestone:
		return fmt.Sprintf("Earn %d total XP", a.Param)
	case AchievementPerfectionist:
		return fmt.Sprintf("Score %d%% or more on %d lessons", int(perfectScore*100), perfectLesson)
	case AchievementLevelReached:
		return fmt.Sprintf("Reach level %d", a.Param)
	default:
		return ""
	}
}

// Icon returns the display icon.
func (a Achievement) Icon() string {
	switch a.Kind {
	case AchievementFirstLesson, AchievementTenLessons, AchievementFiftyLessons:
		return "📚"
	case AchievementThreeDayStreak, AchievementWeekStreak, AchievementMonthStreak:
		return "🔥"
	case AchievementXPMilestone:
		return "⚡"
	case AchievementPerfectionist:
		return "💎"
	case AchievementLevelReached:
		return "🏆"
	default:
		return "✦"
	}
}

// unlockAchievements appends every newly met achievement to the profile and
// returns them. prevLevel is the level before the current completion.
func unlockAchievements(p *UserProfile, prevLevel int, now time.Time) []Achievement {
	var unlocked []Achievement
	unlock := func(kind AchievementKind, param int) {
		if p.HasAchievement(kind, param) {
			return
		}
		a := Achievement{Kind: kind, Param: param, UnlockedAt: now}
		p.Achievements = append(p.Achievements, a)
		unlocked = append(unlocked, a)
	}

	for _, m := range lessonMilestones {
		if p.LessonsCompleted >= m.count {
			unlock(m.kind, 0)
		}
	}
	for _, m := range streakMilestones {
		if p.CurrentStreak >= m.days {
			unlock(m.kind, 0)
		}
	}
	for _, xp := range xpMilestones {
		if p.TotalXP >= xp {
			unlock(AchievementXPMilestone, xp)
		}
	}

	perfect := 0
	for _, r := range p.Records {
		if r.Percentage() >= perfectScore {
			perfect++
		}
	}
	if perfect >= perfectLesson {
		unlock(AchievementPerfectionist, 0)
	}

	for l := max(prevLevel+1, 2); l <= p.CurrentLevel; l++ {
		unlock(AchievementLevelReached, l)
	}
	return unlocked
}
