// Package app hosts the root Bubble Tea model of the lesson player.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screens/picker"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// Options holds the dependencies for the player.
type Options struct {
	Lessons []content.Lesson
	Engine  *progress.Engine

	// Band is the palette used outside of a lesson.
	Band   content.AgeBand
	Logger *logger.Logger
}

// banded is implemented by screens that carry their own age band.
type banded interface {
	AgeBand() content.AgeBand
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx    context.Context
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the lesson picker.
func newAppModel(ctx context.Context, opts Options) AppModel {
	if !opts.Band.Valid() {
		opts.Band = theme.DefaultBand
	}
	opts.Logger = logger.OrNop(opts.Logger)
	return AppModel{
		ctx:    ctx,
		opts:   opts,
		router: router.New(picker.New(ctx, opts.Lessons, opts.Engine)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	band := m.opts.Band
	if b, ok := active.(banded); ok && b.AgeBand().Valid() {
		band = b.AgeBand()
	}
	theme.Apply(theme.ForBand(band))

	title := ""
	if active != nil {
		title = active.Title()
	}

	p := m.opts.Engine.Profile(m.ctx)
	header := layout.RenderHeader(title, layout.Status{
		Level:  p.CurrentLevel,
		XP:     p.TotalXP,
		Streak: p.CurrentStreak,
	}, m.width)

	footerHints := m.router.KeyHints()
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, body, footer, m.width, m.height))
	return v
}

// Run starts the player and blocks until the learner quits.
func Run(ctx context.Context, opts Options) error {
	m := newAppModel(ctx, opts)
	m.opts.Logger.Debug("starting player", "lessons", len(opts.Lessons), "band", string(m.opts.Band))

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running player: %w", err)
	}
	return nil
}
