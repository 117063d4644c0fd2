package content

import (
	"encoding/json"
	"time"
)

// Lesson is a source-agnostic teaching unit composed of ordered steps.
// Lessons are built by a source adapter and never mutated afterwards.
type Lesson struct {
	// ID is unique within the namespace of the source that produced it.
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Subject     string  `json:"subject"`
	AgeBand     AgeBand `json:"age_band"`

	// EstimatedDuration is the expected time to finish the lesson.
	EstimatedDuration time.Duration `json:"estimated_duration"`

	Prerequisites      []string     `json:"prerequisites"`
	LearningObjectives []string     `json:"learning_objectives"`
	Steps              []LessonStep `json:"steps"`
}

// StepKind is the pedagogical role of a step.
type StepKind string

const (
	StepIntroduction StepKind = "introduction"
	StepExample      StepKind = "example"
	StepPractice     StepKind = "practice"
	StepAssessment   StepKind = "assessment"
)

// LessonStep is one screen-worth of content. Its position in Lesson.Steps is
// fixed at construction.
type LessonStep struct {
	ID          string      `json:"id"`
	Kind        StepKind    `json:"kind"`
	Title       string      `json:"title"`
	Content     StepContent `json:"content"`
	Hints       []string    `json:"hints"`
	Explanation string      `json:"explanation,omitempty"`
}

// Question returns the step's question when the content is a question.
func (s LessonStep) Question() (*Question, bool) {
	qc, ok := s.Content.(QuestionContent)
	if !ok {
		return nil, false
	}
	return &qc.Question, true
}

// Questions returns every question the step asks, in order: the single
// question of a question step, or the parts of a multi-step problem.
func (s LessonStep) Questions() []Question {
	switch c := s.Content.(type) {
	case QuestionContent:
		return []Question{c.Question}
	case ProblemContent:
		return c.Parts
	}
	return nil
}

// ContentKind identifies the variant held by a StepContent.
type ContentKind string

const (
	ContentText     ContentKind = "text"
	ContentVideo    ContentKind = "video"
	ContentQuestion ContentKind = "question"
	ContentProblem  ContentKind = "multi_step_problem"
)

// StepContent is a closed sum type over step payloads.
type StepContent interface {
	ContentKind() ContentKind
	isStepContent()
}

// TextContent is a reading passage. Body may be markdown.
type TextContent struct {
	Body string `json:"body"`
	URL  string `json:"url,omitempty"`
}

// VideoContent points at a video resource.
type VideoContent struct {
	URL      string        `json:"url"`
	Duration time.Duration `json:"duration,omitempty"`
}

// QuestionContent wraps a single interactive question.
type QuestionContent struct {
	Question Question `json:"question"`
}

// ProblemContent is a worked problem broken into sub-questions.
type ProblemContent struct {
	Statement string     `json:"statement"`
	Parts     []Question `json:"parts"`
}

func (TextContent) ContentKind() ContentKind     { return ContentText }
func (VideoContent) ContentKind() ContentKind    { return ContentVideo }
func (QuestionContent) ContentKind() ContentKind { return ContentQuestion }
func (ProblemContent) ContentKind() ContentKind  { return ContentProblem }

func (TextContent) isStepContent()     {}
func (VideoContent) isStepContent()    {}
func (QuestionContent) isStepContent() {}
func (ProblemContent) isStepContent()  {}

type contentEnvelope struct {
	Kind ContentKind `json:"kind"`
	Data any         `json:"data"`
}

func (c TextContent) MarshalJSON() ([]byte, error) {
	type plain TextContent
	return json.Marshal(contentEnvelope{Kind: ContentText, Data: plain(c)})
}

func (c VideoContent) MarshalJSON() ([]byte, error) {
	type plain VideoContent
	return json.Marshal(contentEnvelope{Kind: ContentVideo, Data: plain(c)})
}

func (c QuestionContent) MarshalJSON() ([]byte, error) {
	type plain QuestionContent
	return json.Marshal(contentEnvelope{Kind: ContentQuestion, Data: plain(c)})
}

func (c ProblemContent) MarshalJSON() ([]byte, error) {
	type plain ProblemContent
	return json.Marshal(contentEnvelope{Kind: ContentProblem, Data: plain(c)})
}

// QuestionKind is the interaction style of a question.
type QuestionKind string

const (
	QuestionMultipleChoice QuestionKind = "multiple_choice"
	QuestionFillInBlank    QuestionKind = "fill_in_blank"
	QuestionDragAndDrop    QuestionKind = "drag_and_drop"
	QuestionGraphing       QuestionKind = "graphing"
	QuestionEquation       QuestionKind = "equation"
)

// Question is an interactive prompt with a validation rule.
type Question struct {
	ID     string       `json:"id"`
	Prompt string       `json:"prompt"`
	Kind   QuestionKind `json:"kind"`

	// CorrectAnswer is the canonical answer shown after feedback.
	CorrectAnswer AnswerValue `json:"correct_answer"`

	// Choices is populated only for multiple-choice questions.
	Choices []string `json:"choices,omitempty"`

	Rule     ValidationRule `json:"rule"`
	Feedback Feedback       `json:"feedback"`
	Points   int            `json:"points"`
}

// Feedback is the text shown around a learner's answer.
type Feedback struct {
	Correct     string `json:"correct"`
	Incorrect   string `json:"incorrect"`
	Hint        string `json:"hint,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// DefaultFeedback returns the generic feedback bundle used when a source
// does not provide one.
func DefaultFeedback() Feedback {
	return Feedback{
		Correct:   "Great job! That's correct.",
		Incorrect: "Not quite. Give it another try.",
	}
}
