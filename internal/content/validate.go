package content

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants every adapter must honor:
// non-empty identifiers, unique step and question IDs, well-formed questions.
func (l Lesson) Validate() error {
	if l.ID == "" {
		return errors.New("lesson id is empty")
	}
	if l.Title == "" {
		return fmt.Errorf("lesson %s: title is empty", l.ID)
	}
	if !l.AgeBand.Valid() {
		return fmt.Errorf("lesson %s: invalid age band %q", l.ID, l.AgeBand)
	}
	seen := make(map[string]bool, len(l.Steps))
	questions := make(map[string]bool)
	for i, s := range l.Steps {
		if s.ID == "" {
			return fmt.Errorf("lesson %s: step %d has empty id", l.ID, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("lesson %s: duplicate step id %q", l.ID, s.ID)
		}
		seen[s.ID] = true
		if err := s.Validate(); err != nil {
			return fmt.Errorf("lesson %s: %w", l.ID, err)
		}
		for _, q := range s.Questions() {
			if questions[q.ID] {
				return fmt.Errorf("lesson %s: duplicate question id %q", l.ID, q.ID)
			}
			questions[q.ID] = true
		}
	}
	return nil
}

// Validate checks a single step.
func (s LessonStep) Validate() error {
	switch s.Kind {
	case StepIntroduction, StepExample, StepPractice, StepAssessment:
	default:
		return fmt.Errorf("step %s: unknown kind %q", s.ID, s.Kind)
	}
	switch c := s.Content.(type) {
	case TextContent, VideoContent:
		return nil
	case QuestionContent:
		return c.Question.Validate()
	case ProblemContent:
		if len(c.Parts) == 0 {
			return fmt.Errorf("step %s: multi-step problem has no parts", s.ID)
		}
		for _, q := range c.Parts {
			if err := q.Validate(); err != nil {
				return fmt.Errorf("step %s: %w", s.ID, err)
			}
		}
		return nil
	case nil:
		return fmt.Errorf("step %s: missing content", s.ID)
	default:
		return fmt.Errorf("step %s: unknown content %T", s.ID, c)
	}
}

// Validate checks a question's rule, points and choices.
func (q Question) Validate() error {
	if q.ID == "" {
		return errors.New("question id is empty")
	}
	if q.Points < 0 {
		return fmt.Errorf("question %s: negative points %d", q.ID, q.Points)
	}
	if q.CorrectAnswer == nil {
		return fmt.Errorf("question %s: missing correct answer", q.ID)
	}
	if err := q.Rule.Validate(); err != nil {
		return fmt.Errorf("question %s: %w", q.ID, err)
	}
	if q.Kind != QuestionMultipleChoice && len(q.Choices) > 0 {
		return fmt.Errorf("question %s: choices set on %s question", q.ID, q.Kind)
	}
	if q.Kind == QuestionMultipleChoice {
		if len(q.Choices) == 0 {
			return fmt.Errorf("question %s: multiple choice without choices", q.ID)
		}
		if ci, ok := q.CorrectAnswer.(ChoiceIndex); ok && (int(ci) < 0 || int(ci) >= len(q.Choices)) {
			return fmt.Errorf("question %s: correct choice %d out of range", q.ID, int(ci))
		}
	}
	return nil
}

// TotalPoints sums the points of every question in the lesson, including
// multi-step problem parts.
func (l Lesson) TotalPoints() int {
	total := 0
	for _, s := range l.Steps {
		for _, q := range s.Questions() {
			total += q.Points
		}
	}
	return total
}
