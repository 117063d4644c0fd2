// Package picker is the home screen: the list of imported lessons.
package picker

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screens/history"
	"github.com/abhisek/learnpath/internal/screens/lesson"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// PickerScreen lists lessons and opens the selected one.
type PickerScreen struct {
	ctx     context.Context
	engine  *progress.Engine
	lessons []content.Lesson
	menu    components.Menu
}

var _ router.Screen = (*PickerScreen)(nil)
var _ router.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker over lessons. The menu ends with History and Quit.
func New(ctx context.Context, lessons []content.Lesson, engine *progress.Engine) *PickerScreen {
	s := &PickerScreen{ctx: ctx, engine: engine, lessons: lessons}
	s.menu = components.NewMenu(s.items())
	return s
}

func (s *PickerScreen) items() []components.MenuItem {
	done := make(map[string]bool)
	for _, r := range s.engine.Profile(s.ctx).Records {
		done[r.LessonID] = true
	}

	items := make([]components.MenuItem, 0, len(s.lessons)+2)
	for _, l := range s.lessons {
		label := l.Title
		if done[l.ID] {
			label += "  ✓"
		}
		items = append(items, components.MenuItem{
			Label:  label,
			Detail: describe(l),
			Action: func() tea.Cmd {
				return router.Push(lesson.New(s.ctx, l, s.engine))
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "History", Action: func() tea.Cmd {
			return router.Push(history.New(s.ctx, s.engine))
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return items
}

func describe(l content.Lesson) string {
	parts := []string{}
	if l.Subject != "" {
		parts = append(parts, l.Subject)
	}
	if l.AgeBand.Valid() {
		parts = append(parts, l.AgeBand.DisplayName())
	}
	parts = append(parts, fmt.Sprintf("%d steps", len(l.Steps)))
	if l.EstimatedDuration > 0 {
		parts = append(parts, fmt.Sprintf("~%d min", int(l.EstimatedDuration.Minutes()+0.5)))
	}
	return strings.Join(parts, " · ")
}

func (s *PickerScreen) Init() tea.Cmd {
	return nil
}

func (s *PickerScreen) Title() string {
	return "Lessons"
}

func (s *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *PickerScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	// Coming back from a lesson or summary refreshes completion marks.
	if _, ok := msg.(tea.KeyMsg); ok {
		selected := s.menu.Selected
		s.menu = components.NewMenu(s.items())
		s.menu.Selected = selected
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *PickerScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	p := s.engine.Profile(s.ctx)
	greeting := fmt.Sprintf("Welcome back, %s!", p.Username)
	if p.LessonsCompleted == 0 {
		greeting = fmt.Sprintf("Welcome, %s! Pick a lesson to begin.", p.Username)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(greeting)))
	b.WriteString("\n\n")

	if len(s.lessons) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("No lessons loaded. Use --source and a content file.")))
		b.WriteString("\n\n")
	}

	b.WriteString(s.menu.View())
	return b.String()
}
