package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/session"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// SummaryScreen displays the result of a completed lesson.
type SummaryScreen struct {
	lesson     content.Lesson
	result     session.Result
	profile    progress.UserProfile
	completion progress.Completion
}

var _ router.Screen = (*SummaryScreen)(nil)
var _ router.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(lesson content.Lesson, result session.Result, profile progress.UserProfile, completion progress.Completion) *SummaryScreen {
	return &SummaryScreen{
		lesson:     lesson,
		result:     result,
		profile:    profile,
		completion: completion,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Lesson Summary"
}

// AgeBand keeps the lesson's palette on the summary.
func (s *SummaryScreen) AgeBand() content.AgeBand {
	return s.lesson.AgeBand
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Lessons"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Pop()
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	center := func(st lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, st.Render(text)) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Lesson complete!"))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), s.lesson.Title))
	b.WriteString("\n")

	pct := progress.ScorePercentage(s.result.Score, s.result.TotalPossible)
	stats := fmt.Sprintf("Score: %d/%d (%.0f%%)        Time: %s",
		s.result.Score, s.result.TotalPossible, pct*100, clock(s.result.TimeSpent))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), stats))
	b.WriteString("\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		fmt.Sprintf("+%d XP", s.completion.XPEarned)))
	if s.completion.LeveledUp {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success).Bold(true),
			fmt.Sprintf("Level up! %d > %d", s.completion.PreviousLevel, s.profile.CurrentLevel)))
	}

	into, span := progress.LevelProgress(s.profile.TotalXP)
	bar := components.ProgressBar{
		Label: fmt.Sprintf("Lv %d", s.profile.CurrentLevel),
		Value: into,
		Total: span,
		Width: min(width-8, 60),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("🔥 %d day streak", s.profile.CurrentStreak)))

	if len(s.completion.NewAchievements) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", max(min(width-8, 60), 0)))
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Achievements"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, a := range s.completion.NewAchievements {
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent),
				fmt.Sprintf("%s %s: %s", a.Icon(), a.DisplayName(), a.Description())))
		}
	}

	return b.String()
}

func clock(d time.Duration) string {
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
