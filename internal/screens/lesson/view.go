package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	step, err := s.sess.Step()
	if err != nil {
		msg := s.errMsg
		if msg == "" {
			msg = err.Error()
		}
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", msg))
	}

	var b strings.Builder

	bar := components.ProgressBar{
		Label: "Step",
		Value: s.sess.Index() + 1,
		Total: len(s.lesson.Steps),
		Width: width - 4,
	}
	b.WriteString("  " + bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Render("  " + step.Title))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + string(step.Kind)))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Width(max(width-8, 20)).Foreground(theme.Text)
	switch c := step.Content.(type) {
	case content.TextContent:
		b.WriteString(indent(body.Render(c.Body)))
		if c.URL != "" {
			b.WriteString("\n\n" + theme.Hint.Render("  Read more: "+c.URL))
		}
	case content.VideoContent:
		b.WriteString(indent(body.Render("▶ Watch: " + c.URL)))
		if c.Duration > 0 {
			b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("  %s", c.Duration)))
		}
	case content.ProblemContent:
		b.WriteString(indent(body.Render(c.Statement)))
		b.WriteString("\n\n")
		b.WriteString(s.renderQuestion(width, len(c.Parts)))
	case content.QuestionContent:
		b.WriteString(s.renderQuestion(width, 1))
	}

	if hints := s.stepHints(); s.hints > 0 {
		b.WriteString("\n")
		for _, h := range hints[:s.hints] {
			b.WriteString(theme.Hint.Render("  💡 " + h))
			b.WriteString("\n")
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + s.errMsg))
	}

	return b.String()
}

// renderQuestion renders the question on screen with its input widget and,
// once answered, its feedback.
func (s *LessonScreen) renderQuestion(width, parts int) string {
	q := s.question
	if q == nil {
		return ""
	}

	var b strings.Builder
	prompt := q.Prompt
	if parts > 1 {
		prompt = fmt.Sprintf("(%d pts) %s", q.Points, prompt)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(max(width-4, 20)).
		Foreground(theme.Text).
		Bold(true).
		Render("  " + prompt))
	b.WriteString("\n\n")

	if q.Kind == content.QuestionMultipleChoice {
		b.WriteString(indent(s.choices.View()))
	} else {
		b.WriteString("  Answer: " + s.input.View())
		b.WriteString("\n")
	}

	if s.revealed {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback())
	}
	return b.String()
}

func (s *LessonScreen) renderFeedback() string {
	q := s.question
	fb := q.Feedback
	def := content.DefaultFeedback()

	var b strings.Builder
	if s.last.Correct {
		msg := fb.Correct
		if msg == "" {
			msg = def.Correct
		}
		b.WriteString(theme.Correct.Render(fmt.Sprintf("  ✓ %s  +%d", msg, s.last.Points)))
	} else {
		msg := fb.Incorrect
		if msg == "" {
			msg = def.Incorrect
		}
		b.WriteString(theme.Incorrect.Render("  ✗ " + msg))
		if q.CorrectAnswer != nil && q.Kind != content.QuestionMultipleChoice {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  Answer: " + q.CorrectAnswer.String()))
		}
	}
	if fb.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("  " + fb.Explanation))
	}
	b.WriteString("\n")
	return b.String()
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
