package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/ui/theme"
)

// ChoiceList is a multiple-choice selector. Enter reports the highlighted
// index as chosen; the caller decides correctness and calls Reveal.
type ChoiceList struct {
	Options  []string
	Selected int
	Chosen   int
	correct  map[int]bool
	revealed bool
}

// NewChoiceList creates a selector over options.
func NewChoiceList(options []string) ChoiceList {
	return ChoiceList{Options: options, Chosen: -1}
}

// Update moves the highlight and marks a choice on enter.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, false
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Chosen = c.Selected
		return c, true
	default:
		// a, b, c ... jump straight to a choice.
		if len(key) == 1 && key[0] >= 'a' && int(key[0]-'a') < len(c.Options) {
			c.Selected = int(key[0] - 'a')
		}
	}
	return c, false
}

// Reveal colors the chosen option by correctness and marks the correct ones.
func (c *ChoiceList) Reveal(correct ...int) {
	c.revealed = true
	c.correct = make(map[int]bool, len(correct))
	for _, i := range correct {
		c.correct[i] = true
	}
}

// View renders the options labelled A, B, C...
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.revealed && c.correct[i]:
			style = theme.Correct
		case c.revealed && i == c.Chosen:
			style = theme.Incorrect
		case c.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
