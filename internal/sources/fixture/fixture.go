// Package fixture provides hand-authored demo lessons.
package fixture

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/sources"
)

// Name is the registry key of this adapter.
const Name = "fixture"

// DefaultSeed drives the generated practice step when none is configured.
const DefaultSeed uint64 = 42

// Adapter serves the literal demo lessons. The payload passed to Lessons is
// ignored.
type Adapter struct {
	seed uint64
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithSeed sets the seed of the generated practice questions.
func WithSeed(seed uint64) Option {
	return func(a *Adapter) { a.seed = seed }
}

// New creates a fixture adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{seed: DefaultSeed}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var _ sources.Adapter = (*Adapter)(nil)

func (a *Adapter) Name() string { return Name }

func (a *Adapter) Lessons([]byte) (sources.Result, error) {
	return sources.Result{Lessons: Lessons(a.seed)}, nil
}

// Lessons returns the demo lessons. The same seed always yields the same
// lessons.
func Lessons(seed uint64) []content.Lesson {
	return []content.Lesson{
		fractionsLesson(seed),
		waterCycleLesson(),
		linesLesson(),
	}
}

func fractionsLesson(seed uint64) content.Lesson {
	return content.Lesson{
		ID:                "fixture-fractions-101",
		Title:             "Understanding Fractions",
		Description:       "Learn what fractions are and how to compare them.",
		Subject:           "math",
		AgeBand:           content.BandG35,
		EstimatedDuration: 15 * time.Minute,
		Prerequisites:     []string{"Division basics"},
		LearningObjectives: []string{
			"Identify the numerator and denominator",
			"Compare fractions with the same denominator",
		},
		Steps: []content.LessonStep{
			{
				ID:    "fractions-intro",
				Kind:  content.StepIntroduction,
				Title: "What is a fraction?",
				Content: content.TextContent{
					Body: "A fraction names part of a whole. In 3/4, the 4 says the whole is split into four equal parts and the 3 says we have three of them.",
				},
				Hints: []string{},
			},
			{
				ID:      "fractions-video",
				Kind:    content.StepExample,
				Title:   "Slicing a pizza",
				Content: content.VideoContent{URL: "https://videos.learnpath.dev/fractions/pizza.mp4", Duration: 3 * time.Minute},
				Hints:   []string{},
			},
			{
				ID:    "fractions-half",
				Kind:  content.StepPractice,
				Title: "Find one half",
				Content: content.QuestionContent{Question: content.Question{
					ID:            "q-fractions-half",
					Prompt:        "Which fraction means one half?",
					Kind:          content.QuestionMultipleChoice,
					CorrectAnswer: content.ChoiceIndex(1),
					Choices:       []string{"1/3", "1/2", "2/3", "3/4"},
					Rule:          content.MustRule([]content.AnswerValue{content.ChoiceIndex(1)}),
					Feedback: content.Feedback{
						Correct:     "Yes! One of two equal parts is one half.",
						Incorrect:   "Look for the fraction with 2 on the bottom.",
						Hint:        "Half means two equal parts.",
						Explanation: "1/2 splits the whole into two equal parts and takes one.",
					},
					Points: 10,
				}},
				Hints:       []string{"Half means two equal parts."},
				Explanation: "The denominator 2 tells us there are two equal parts.",
			},
			{
				ID:    "fractions-compare",
				Kind:  content.StepPractice,
				Title: "Compare",
				Content: content.QuestionContent{Question: content.Question{
					ID:            "q-fractions-compare",
					Prompt:        "What is 3/8 + 2/8 as a decimal?",
					Kind:          content.QuestionFillInBlank,
					CorrectAnswer: content.Number(0.625),
					Rule:          content.MustRule([]content.AnswerValue{content.Number(0.625), content.Text("5/8")}, content.WithTolerance(0.001)),
					Feedback:      content.DefaultFeedback(),
					Points:        15,
				}},
				Hints: []string{"Add the numerators, keep the denominator.", "5 divided by 8 is 0.625."},
			},
			practiceStep(seed),
			{
				ID:    "fractions-check",
				Kind:  content.StepAssessment,
				Title: "Check your understanding",
				Content: content.QuestionContent{Question: content.Question{
					ID:            "q-fractions-check",
					Prompt:        "What do we call the bottom number of a fraction?",
					Kind:          content.QuestionFillInBlank,
					CorrectAnswer: content.Text("denominator"),
					Rule:          content.MustRule([]content.AnswerValue{content.Text("denominator")}),
					Feedback:      content.DefaultFeedback(),
					Points:        20,
				}},
				Hints: []string{"It starts with a d."},
			},
		},
	}
}

func waterCycleLesson() content.Lesson {
	return content.Lesson{
		ID:                 "fixture-water-cycle",
		Title:              "The Water Cycle",
		Description:        "Follow a raindrop from the ocean to the clouds and back.",
		Subject:            "science",
		AgeBand:            content.BandK2,
		EstimatedDuration:  10 * time.Minute,
		Prerequisites:      []string{},
		LearningObjectives: []string{"Name the stages of the water cycle"},
		Steps: []content.LessonStep{
			{
				ID:      "water-intro",
				Kind:    content.StepIntroduction,
				Title:   "Where does rain come from?",
				Content: content.TextContent{Body: "The sun warms water so it rises as vapor, cools into clouds, and falls again as rain."},
				Hints:   []string{},
			},
			{
				ID:    "water-order",
				Kind:  content.StepPractice,
				Title: "Put the stages in order",
				Content: content.QuestionContent{Question: content.Question{
					ID:            "q-water-order",
					Prompt:        "Drag the stages into order: condensation, precipitation, evaporation.",
					Kind:          content.QuestionDragAndDrop,
					CorrectAnswer: content.Text("evaporation,condensation,precipitation"),
					Rule: content.MustRule([]content.AnswerValue{
						content.Text("evaporation,condensation,precipitation"),
						content.Text("evaporation, condensation, precipitation"),
					}),
					Feedback: content.DefaultFeedback(),
					Points:   10,
				}},
				Hints: []string{"Water has to rise before it can fall."},
			},
		},
	}
}

func linesLesson() content.Lesson {
	return content.Lesson{
		ID:                 "fixture-lines",
		Title:              "Graphing Lines",
		Description:        "Plot points and write the equation of a line.",
		Subject:            "math",
		AgeBand:            content.BandG912,
		EstimatedDuration:  20 * time.Minute,
		Prerequisites:      []string{"Coordinate plane"},
		LearningObjectives: []string{"Plot a point", "Write y = mx + b from two points"},
		Steps: []content.LessonStep{
			{
				ID:      "lines-intro",
				Kind:    content.StepIntroduction,
				Title:   "Slope and intercept",
				Content: content.TextContent{Body: "Every straight line can be written as y = mx + b."},
				Hints:   []string{},
			},
			{
				ID:    "lines-plot",
				Kind:  content.StepPractice,
				Title: "Plot the intercept",
				Content: content.QuestionContent{Question: content.Question{
					ID:            "q-lines-plot",
					Prompt:        "Plot the y-intercept of y = 2x + 1.",
					Kind:          content.QuestionGraphing,
					CorrectAnswer: content.Coordinates{X: 0, Y: 1},
					Rule:          content.MustRule([]content.AnswerValue{content.Coordinates{X: 0, Y: 1}}, content.WithTolerance(0.1)),
					Feedback:      content.DefaultFeedback(),
					Points:        10,
				}},
				Hints: []string{"The intercept is where x = 0."},
			},
			{
				ID:    "lines-problem",
				Kind:  content.StepExample,
				Title: "From two points to an equation",
				Content: content.ProblemContent{
					Statement: "A line passes through (0, 1) and (2, 5).",
					Parts: []content.Question{
						{
							ID:            "q-lines-slope",
							Prompt:        "What is the slope?",
							Kind:          content.QuestionFillInBlank,
							CorrectAnswer: content.Number(2),
							Rule:          content.MustRule([]content.AnswerValue{content.Number(2)}),
							Feedback:      content.DefaultFeedback(),
							Points:        5,
						},
						{
							ID:            "q-lines-equation",
							Prompt:        "Write the equation of the line.",
							Kind:          content.QuestionEquation,
							CorrectAnswer: content.Equation("y=2x+1"),
							Rule:          content.MustRule([]content.AnswerValue{content.Equation("y=2x+1"), content.Equation("y=1+2x")}),
							Feedback:      content.DefaultFeedback(),
							Points:        5,
						},
					},
				},
				Hints: []string{"Slope is rise over run."},
			},
			{
				ID:    "lines-check",
				Kind:  content.StepAssessment,
				Title: "Name the form",
				Content: content.QuestionContent{Question: content.Question{
					ID:            "q-lines-check",
					Prompt:        "Write the slope-intercept equation of a line with slope 3 through the origin.",
					Kind:          content.QuestionEquation,
					CorrectAnswer: content.Equation("y=3x"),
					Rule:          content.MustRule([]content.AnswerValue{content.Equation("y=3x")}),
					Feedback:      content.DefaultFeedback(),
					Points:        20,
				}},
				Hints: []string{},
			},
		},
	}
}

// practiceStep generates an addition question from seed.
func practiceStep(seed uint64) content.LessonStep {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	den := 2 + r.IntN(7) // 2..8
	a := 1 + r.IntN(den-1)
	b := 1 + r.IntN(den-a)
	sum := a + b

	return content.LessonStep{
		ID:    "fractions-generated",
		Kind:  content.StepPractice,
		Title: "Add like fractions",
		Content: content.QuestionContent{Question: content.Question{
			ID:            "q-fractions-generated",
			Prompt:        fmt.Sprintf("What is %d/%d + %d/%d? Answer with the numerator over %d.", a, den, b, den, den),
			Kind:          content.QuestionFillInBlank,
			CorrectAnswer: content.Text(fmt.Sprintf("%d/%d", sum, den)),
			Rule:          content.MustRule([]content.AnswerValue{content.Text(fmt.Sprintf("%d/%d", sum, den))}),
			Feedback:      content.DefaultFeedback(),
			Points:        10,
		}},
		Hints: []string{"Keep the denominator and add the numerators."},
	}
}
