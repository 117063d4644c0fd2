// Package session tracks a learner's position within one lesson: step
// navigation gated on answered questions, recorded answers, the running score
// and elapsed time.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/learnpath/internal/answer"
	"github.com/abhisek/learnpath/internal/content"
)

var (
	ErrNoLesson       = errors.New("no lesson started")
	ErrAtFirstStep    = errors.New("already at the first step")
	ErrAnswerRequired = errors.New("answer the question before moving on")
	ErrNotAQuestion   = errors.New("current step has no question")
	ErrNotAtLastStep  = errors.New("lesson can only be completed from the last step")
	ErrCompleted      = errors.New("lesson already completed")
)

// Answer is a recorded answer to one question.
type Answer struct {
	QuestionID string
	Value      content.AnswerValue
	Correct    bool
	Points     int
}

// Result is emitted when a lesson is completed.
type Result struct {
	LessonID      string
	Score         int
	TotalPossible int
	TimeSpent     time.Duration
}

// CompleteFunc receives the finished lesson and its result.
type CompleteFunc func(lesson content.Lesson, r Result)

// Session is the progress state machine for a single lesson. It is safe for
// concurrent use. The zero value has no lesson; call Start.
type Session struct {
	mu         sync.Mutex
	lesson     *content.Lesson
	index      int
	answers    map[string]Answer
	started    time.Time
	completed  bool
	now        func() time.Time
	onComplete CompleteFunc
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// OnComplete registers the receiver of completion results, typically the
// progress engine.
func OnComplete(fn CompleteFunc) Option {
	return func(s *Session) { s.onComplete = fn }
}

// New creates an idle session.
func New(opts ...Option) *Session {
	s := &Session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins lesson at its first step, discarding any previous state.
func (s *Session) Start(lesson content.Lesson) error {
	if len(lesson.Steps) == 0 {
		return fmt.Errorf("lesson %q has no steps", lesson.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lesson = &lesson
	s.index = 0
	s.answers = make(map[string]Answer)
	s.started = s.now()
	s.completed = false
	return nil
}

// Lesson returns the active lesson.
func (s *Session) Lesson() (content.Lesson, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lesson == nil {
		return content.Lesson{}, false
	}
	return *s.lesson, true
}

// Index returns the current step position.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Step returns the current step.
func (s *Session) Step() (content.LessonStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lesson == nil {
		return content.LessonStep{}, ErrNoLesson
	}
	return s.lesson.Steps[s.index], nil
}

// IsLastStep reports whether the current step is the final one.
func (s *Session) IsLastStep() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lesson != nil && s.index == len(s.lesson.Steps)-1
}

// CanAdvance reports whether Next would move forward.
func (s *Session) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lesson != nil && !s.completed && s.index < len(s.lesson.Steps)-1 && s.stepAnswered()
}

// Next advances one step. It is a no-op at the last step. A question step
// must have a recorded answer for each of its questions first.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lesson == nil {
		return ErrNoLesson
	}
	if !s.stepAnswered() {
		return ErrAnswerRequired
	}
	if s.index < len(s.lesson.Steps)-1 {
		s.index++
	}
	return nil
}

// Previous moves back one step.
func (s *Session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lesson == nil {
		return ErrNoLesson
	}
	if s.index == 0 {
		return ErrAtFirstStep
	}
	s.index--
	return nil
}

// AnswerQuestion records the answer for the current step's pending question.
// Re-answering overwrites the previous answer, so the score never counts a
// question twice. Points are credited only when isCorrect.
func (s *Session) AnswerQuestion(value content.AnswerValue, isCorrect bool, points int) (Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, err := s.pendingQuestion()
	if err != nil {
		return Answer{}, err
	}
	return s.record(q.ID, value, isCorrect, points), nil
}

// Submit checks value against the current question's rule and records the
// result with the question's points.
func (s *Session) Submit(value content.AnswerValue) (Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, err := s.pendingQuestion()
	if err != nil {
		return Answer{}, err
	}
	return s.record(q.ID, value, answer.CheckQuestion(value, &q), q.Points), nil
}

// PendingQuestion returns the question AnswerQuestion and Submit would
// record against.
func (s *Session) PendingQuestion() (content.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingQuestion()
}

// Answered returns the recorded answer for a question id.
func (s *Session) Answered(questionID string) (Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.answers[questionID]
	return a, ok
}

// Score is the sum of points of correctly answered questions.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score()
}

// Elapsed is the time since Start. It runs regardless of navigation.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lesson == nil {
		return 0
	}
	return s.now().Sub(s.started)
}

// Complete finalizes the lesson. It is valid only at the last step.
// Unanswered questions score zero. The result is passed to the OnComplete
// receiver before being returned.
func (s *Session) Complete() (Result, error) {
	s.mu.Lock()
	if s.lesson == nil {
		s.mu.Unlock()
		return Result{}, ErrNoLesson
	}
	if s.completed {
		s.mu.Unlock()
		return Result{}, ErrCompleted
	}
	if s.index != len(s.lesson.Steps)-1 {
		s.mu.Unlock()
		return Result{}, ErrNotAtLastStep
	}

	spent := s.now().Sub(s.started)
	if spent < 0 {
		spent = 0
	}
	r := Result{
		LessonID:      s.lesson.ID,
		Score:         s.score(),
		TotalPossible: s.lesson.TotalPoints(),
		TimeSpent:     spent,
	}
	s.completed = true
	lesson := *s.lesson
	fn := s.onComplete
	s.mu.Unlock()

	if fn != nil {
		fn(lesson, r)
	}
	return r, nil
}

// Completed reports whether Complete has succeeded for the active lesson.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

func (s *Session) record(id string, value content.AnswerValue, correct bool, points int) Answer {
	if points < 0 {
		points = 0
	}
	a := Answer{QuestionID: id, Value: value, Correct: correct, Points: points}
	s.answers[id] = a
	return a
}

func (s *Session) score() int {
	total := 0
	for _, a := range s.answers {
		if a.Correct {
			total += a.Points
		}
	}
	return total
}

// stepAnswered reports whether every question of the current step has a
// recorded answer. Steps without questions always pass.
func (s *Session) stepAnswered() bool {
	for _, q := range s.lesson.Steps[s.index].Questions() {
		if _, ok := s.answers[q.ID]; !ok {
			return false
		}
	}
	return true
}

// pendingQuestion is the first unanswered question of the current step, or
// its last question when all are answered.
func (s *Session) pendingQuestion() (content.Question, error) {
	if s.lesson == nil {
		return content.Question{}, ErrNoLesson
	}
	if s.completed {
		return content.Question{}, ErrCompleted
	}
	qs := s.lesson.Steps[s.index].Questions()
	if len(qs) == 0 {
		return content.Question{}, ErrNotAQuestion
	}
	for _, q := range qs {
		if _, ok := s.answers[q.ID]; !ok {
			return q, nil
		}
	}
	return qs[len(qs)-1], nil
}
