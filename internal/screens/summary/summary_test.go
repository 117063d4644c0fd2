package summary

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/session"
)

func testSummary() *SummaryScreen {
	lesson := content.Lesson{ID: "l1", Title: "Fractions", AgeBand: content.BandG35}
	result := session.Result{LessonID: "l1", Score: 15, TotalPossible: 20, TimeSpent: 95 * time.Second}
	profile := progress.UserProfile{TotalXP: 190, CurrentLevel: 2, CurrentStreak: 3}
	completion := progress.Completion{
		XPEarned:      140,
		PreviousLevel: 1,
		LeveledUp:     true,
		NewAchievements: []progress.Achievement{
			{Kind: progress.AchievementFirstLesson},
			{Kind: progress.AchievementLevelReached, Param: 2},
		},
	}
	return New(lesson, result, profile, completion)
}

func TestSummaryScreen_Title(t *testing.T) {
	assert.Equal(t, "Lesson Summary", testSummary().Title())
}

func TestSummaryScreen_Display(t *testing.T) {
	view := testSummary().View(80, 24)

	assert.Contains(t, view, "Score: 15/20 (75%)")
	assert.Contains(t, view, "Time: 1:35")
	assert.Contains(t, view, "+140 XP")
	assert.Contains(t, view, "Level up! 1 > 2")
	assert.Contains(t, view, "First Steps")
	assert.Contains(t, view, "Level 2")
}

func TestSummaryScreen_NoLevelUp(t *testing.T) {
	s := New(content.Lesson{Title: "x"}, session.Result{}, progress.UserProfile{CurrentLevel: 1}, progress.Completion{XPEarned: 55})
	view := s.View(80, 24)
	assert.NotContains(t, view, "Level up")
	assert.NotContains(t, view, "Achievements")
	assert.Contains(t, view, "Score: 0/0 (0%)")
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape} {
		_, cmd := testSummary().Update(tea.KeyPressMsg{Code: code})
		if assert.NotNil(t, cmd) {
			assert.IsType(t, router.PopScreenMsg{}, cmd())
		}
	}
}

func TestSummaryScreen_KeepsLessonBand(t *testing.T) {
	assert.Equal(t, content.BandG35, testSummary().AgeBand())
	assert.Len(t, testSummary().KeyHints(), 2)
}
