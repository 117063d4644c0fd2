package history

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

type historyLoadedMsg struct {
	Profile progress.UserProfile
}

// HistoryScreen lists completed lessons, newest first.
type HistoryScreen struct {
	ctx      context.Context
	engine   *progress.Engine
	profile  progress.UserProfile
	records  []progress.LessonRecord
	selected int
	expanded map[int]bool
	loaded   bool
}

var _ router.Screen = (*HistoryScreen)(nil)
var _ router.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctx context.Context, engine *progress.Engine) *HistoryScreen {
	return &HistoryScreen{
		ctx:      ctx,
		engine:   engine,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{Profile: s.engine.Profile(s.ctx)}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.profile = msg.Profile
		s.records = slices.Clone(msg.Profile.Records)
		slices.Reverse(s.records)
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No lessons yet. Pick one to get started!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
			"%d lessons  %.0f%% average  longest streak %d",
			s.profile.LessonsCompleted, s.profile.AverageScore()*100, s.profile.LongestStreak))))
	b.WriteString("\n\n")

	for i, r := range s.records {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %s  %d/%d  %.0f%%  +%d XP",
			prefix, r.CompletedAt.Format("Jan 02, 2006"), r.LessonTitle,
			r.Score, r.TotalPossible, r.Percentage()*100, r.XPEarned)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s  %s  %s", r.Subject, r.TimeSpent.Round(time.Second), r.CompletedAt.Format("15:04"))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
