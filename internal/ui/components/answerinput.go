package components

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

// ErrEmptyAnswer is returned when the learner submits a blank input.
var ErrEmptyAnswer = errors.New("empty answer")

// ParseAnswer converts raw input into the answer value a question of kind
// expects. Graphing questions take "x,y"; equations keep the text verbatim;
// everything else is free text and the checker handles numeric coercion.
func ParseAnswer(kind content.QuestionKind, raw string) (content.AnswerValue, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ErrEmptyAnswer
	}

	switch kind {
	case content.QuestionGraphing:
		s = strings.Trim(s, "()")
		xs, ys, ok := strings.Cut(s, ",")
		if !ok {
			return nil, fmt.Errorf("expected a point as x,y: %q", raw)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x coordinate %q", xs)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y coordinate %q", ys)
		}
		return content.Coordinates{X: x, Y: y}, nil
	case content.QuestionEquation:
		return content.Equation(s), nil
	default:
		return content.Text(s), nil
	}
}

// AnswerInput wraps bubbles/textinput for free-form answers.
type AnswerInput struct {
	Model    textinput.Model
	Kind     content.QuestionKind
	revealed bool
	correct  bool
}

// NewAnswerInput creates a focused input with a placeholder suited to kind.
func NewAnswerInput(kind content.QuestionKind) AnswerInput {
	ti := textinput.New()
	ti.CharLimit = 120
	switch kind {
	case content.QuestionGraphing:
		ti.Placeholder = "x, y"
	case content.QuestionEquation:
		ti.Placeholder = "e.g. y = 2x + 1"
	default:
		ti.Placeholder = "Type your answer"
	}
	ti.Focus()
	return AnswerInput{Model: ti, Kind: kind}
}

// Init returns the cursor blink command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update forwards key input to the text field until the answer is revealed.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.revealed {
		return a, nil
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// Value parses the current input.
func (a AnswerInput) Value() (content.AnswerValue, error) {
	return ParseAnswer(a.Kind, a.Model.Value())
}

// Reveal freezes the input and marks it right or wrong.
func (a *AnswerInput) Reveal(correct bool) {
	a.revealed = true
	a.correct = correct
	a.Model.Blur()
}

// View renders the input with a check or cross once revealed.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.revealed {
		if a.correct {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}
