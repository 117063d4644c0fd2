// Package lesson is the player screen that walks a learner through one lesson.
package lesson

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screens/summary"
	"github.com/abhisek/learnpath/internal/session"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
)

// LessonScreen implements router.Screen for an active lesson.
type LessonScreen struct {
	lesson content.Lesson
	sess   *session.Session
	done   chan lessonCompletedMsg

	question *content.Question
	choices  components.ChoiceList
	input    components.AnswerInput
	last     session.Answer
	revealed bool
	hints    int
	errMsg   string
}

var _ router.Screen = (*LessonScreen)(nil)
var _ router.KeyHintProvider = (*LessonScreen)(nil)

// New starts lesson. Completion is recorded through engine.
func New(ctx context.Context, lesson content.Lesson, engine *progress.Engine, opts ...session.Option) *LessonScreen {
	s := &LessonScreen{
		lesson: lesson,
		done:   make(chan lessonCompletedMsg, 1),
	}
	hook := engine.Observe(ctx, func(p progress.UserProfile, c progress.Completion) {
		s.done <- lessonCompletedMsg{Profile: p, Completion: c}
	})
	s.sess = session.New(append(opts, session.OnComplete(hook))...)
	if err := s.sess.Start(lesson); err != nil {
		s.errMsg = err.Error()
	}
	return s
}

func (s *LessonScreen) Init() tea.Cmd {
	return s.prepare()
}

func (s *LessonScreen) Title() string {
	return s.lesson.Title
}

// AgeBand selects the palette while this screen is active.
func (s *LessonScreen) AgeBand() content.AgeBand {
	return s.lesson.AgeBand
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.question != nil && !s.revealed:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
		if s.hints < len(s.stepHints()) {
			hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Hint"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Leave"})
	case s.sess.IsLastStep() && !s.morePending():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Finish"},
			{Key: "PgUp", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "PgUp", Description: "Back"},
			{Key: "Esc", Description: "Leave"},
		}
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonCompletedMsg:
		return s, router.Replace(summary.New(s.lesson, msg.Result, msg.Profile, msg.Completion))

	case completeFailedMsg:
		s.errMsg = msg.Err.Error()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.answering() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if s.hints < len(s.stepHints()) {
			s.hints++
		}
		return s, nil
	case "pgup":
		if err := s.sess.Previous(); err != nil {
			if !errors.Is(err, session.ErrAtFirstStep) {
				s.errMsg = err.Error()
			}
			return s, nil
		}
		return s, s.prepare()
	}

	if s.question != nil && !s.revealed {
		return s.handleAnswerKey(msg)
	}

	if msg.String() == "enter" {
		return s, s.advance()
	}
	return s, nil
}

func (s *LessonScreen) handleAnswerKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	if s.question.Kind == content.QuestionMultipleChoice {
		var chosen bool
		s.choices, chosen = s.choices.Update(msg)
		if chosen {
			s.submit(content.ChoiceIndex(s.choices.Chosen))
		}
		return s, nil
	}

	if msg.String() == "enter" {
		v, err := s.input.Value()
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.submit(v)
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *LessonScreen) submit(v content.AnswerValue) {
	a, err := s.sess.Submit(v)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
	s.reveal(a)
}

func (s *LessonScreen) reveal(a session.Answer) {
	s.last = a
	s.revealed = true
	if s.question.Kind == content.QuestionMultipleChoice {
		if idx, ok := a.Value.(content.ChoiceIndex); ok {
			s.choices.Chosen = int(idx)
		}
		s.choices.Reveal(correctChoices(s.question)...)
		return
	}
	s.input.Reveal(a.Correct)
}

// advance moves to the next unanswered part of a problem, the next step, or
// completes the lesson from the last step.
func (s *LessonScreen) advance() tea.Cmd {
	if s.morePending() {
		return s.prepare()
	}
	if s.sess.IsLastStep() {
		return s.complete()
	}
	if err := s.sess.Next(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.prepare()
}

func (s *LessonScreen) complete() tea.Cmd {
	sess, done := s.sess, s.done
	return func() tea.Msg {
		r, err := sess.Complete()
		if err != nil {
			return completeFailedMsg{Err: err}
		}
		msg := <-done
		msg.Result = r
		return msg
	}
}

// prepare sets up widgets for the current step's pending question. An
// already answered question is shown with its recorded result.
func (s *LessonScreen) prepare() tea.Cmd {
	s.question = nil
	s.revealed = false
	s.hints = 0
	s.errMsg = ""

	q, err := s.sess.PendingQuestion()
	if err != nil {
		return nil
	}
	s.question = &q

	if q.Kind == content.QuestionMultipleChoice {
		s.choices = components.NewChoiceList(q.Choices)
	} else {
		s.input = components.NewAnswerInput(q.Kind)
	}

	if a, ok := s.sess.Answered(q.ID); ok {
		if q.Kind != content.QuestionMultipleChoice {
			s.input.Model.SetValue(a.Value.String())
		}
		s.reveal(a)
		return nil
	}
	if q.Kind == content.QuestionMultipleChoice {
		return nil
	}
	return s.input.Init()
}

// morePending reports whether the current step still has an unanswered
// question after the one on screen.
func (s *LessonScreen) morePending() bool {
	q, err := s.sess.PendingQuestion()
	if err != nil {
		return false
	}
	_, answered := s.sess.Answered(q.ID)
	return !answered
}

func (s *LessonScreen) answering() bool {
	return s.question != nil && !s.revealed && s.question.Kind != content.QuestionMultipleChoice
}

func (s *LessonScreen) stepHints() []string {
	step, err := s.sess.Step()
	if err != nil {
		return nil
	}
	hints := step.Hints
	if s.question != nil && s.question.Feedback.Hint != "" {
		hints = append([]string{s.question.Feedback.Hint}, hints...)
	}
	return hints
}

func correctChoices(q *content.Question) []int {
	var idx []int
	for _, a := range q.Rule.AcceptableAnswers {
		if c, ok := a.(content.ChoiceIndex); ok {
			idx = append(idx, int(c))
		}
	}
	return idx
}
