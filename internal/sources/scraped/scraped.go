// Package scraped maps scraped subject bundles (units of videos, articles,
// quizzes and Perseus exercises) onto lessons.
package scraped

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/sources"
)

// Name is the registry key of this adapter.
const Name = "scraped"

var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("learnpath/scraped"))

// Duration heuristic: 300s per lesson entry, 180s per exercise, plus 300s
// of overhead per unit.
const (
	secondsPerLesson   = 300
	secondsPerExercise = 180
	secondsOverhead    = 300
)

// EstimateDuration returns the deterministic duration estimate for a unit
// with the given number of lesson entries and exercises.
func EstimateDuration(lessons, exercises int) time.Duration {
	return time.Duration(secondsPerLesson*lessons+secondsPerExercise*exercises+secondsOverhead) * time.Second
}

// defaultPrerequisites is used when a unit and its lessons name none.
var defaultPrerequisites = map[string][]string{
	"math":    {"Basic arithmetic", "Number sense"},
	"science": {"Scientific method basics"},
	"reading": {"Phonics", "Vocabulary basics"},
	"ela":     {"Phonics", "Vocabulary basics"},
}

// DefaultPrerequisites returns the fallback prerequisite list for subject.
func DefaultPrerequisites(subject string) []string {
	return append([]string{}, defaultPrerequisites[strings.ToLower(strings.TrimSpace(subject))]...)
}

// PointsForDifficulty maps a scraped difficulty label onto question points.
func PointsForDifficulty(difficulty string) int {
	switch strings.ToLower(difficulty) {
	case "medium":
		return 15
	case "hard":
		return 20
	default:
		return 10
	}
}

// Adapter converts scraped bundles. Use New.
type Adapter struct {
	log *logger.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for skipped-item warnings.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// New creates a scraped-bundle adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{}
	for _, opt := range opts {
		opt(a)
	}
	a.log = logger.OrNop(a.log)
	return a
}

var _ sources.Adapter = (*Adapter)(nil)

func (a *Adapter) Name() string { return Name }

// Lessons decodes a Bundle payload and converts it.
func (a *Adapter) Lessons(data []byte) (sources.Result, error) {
	if err := sources.CheckSchema(Name, bundleSchema, data); err != nil {
		return sources.Result{}, err
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return sources.Result{}, sources.Invalid(Name, err)
	}
	return a.FromBundle(&b)
}

// FromBundle converts an already-decoded bundle, one lesson per unit.
func (a *Adapter) FromBundle(b *Bundle) (sources.Result, error) {
	if b == nil {
		return sources.Result{}, sources.NotFound(Name, errors.New("no bundle"))
	}
	if b.ID == "" || b.Subject == "" {
		return sources.Result{}, sources.Invalid(Name, errors.New("bundle is missing id or subject"))
	}

	report := sources.NewReport(Name, a.log.With("bundle", b.ID))
	band := content.AgeBandForGrades(b.Grades)

	lessons := make([]content.Lesson, 0, len(b.Units))
	for i, u := range b.Units {
		if u.ID == "" || u.Title == "" {
			report.Skipf(fmt.Sprintf("unit[%d]", i), "missing id or title")
			continue
		}
		lessons = append(lessons, a.buildLesson(b, u, band, report))
	}
	return report.Result(lessons), nil
}

// buildLesson orders steps as introduction, lesson entries in input order,
// then exercises in input order.
func (a *Adapter) buildLesson(b *Bundle, u Unit, band content.AgeBand, report *sources.Report) content.Lesson {
	description := u.Description
	if description == "" {
		description = b.Description
	}

	steps := []content.LessonStep{introStep(u, description)}
	seen := map[string]bool{steps[0].ID: true}
	add := func(item string, step content.LessonStep, err error) {
		if err != nil {
			report.Skip(item, err.Error())
			return
		}
		if seen[step.ID] {
			report.Skip(item, "duplicate id")
			return
		}
		seen[step.ID] = true
		steps = append(steps, step)
	}

	for i, le := range u.Lessons {
		step, err := lessonStep(le)
		add(itemName(u.ID, "lesson", i, le.ID), step, err)
	}
	for i, ex := range u.Exercises {
		step, err := exerciseStep(ex)
		add(itemName(u.ID, "exercise", i, ex.ID), step, err)
	}

	return content.Lesson{
		ID:                 u.ID,
		Title:              u.Title,
		Description:        description,
		Subject:            b.Subject,
		AgeBand:            band,
		EstimatedDuration:  EstimateDuration(len(u.Lessons), len(u.Exercises)),
		Prerequisites:      prerequisites(b.Subject, u),
		LearningObjectives: objectives(u),
		Steps:              steps,
	}
}

func introStep(u Unit, description string) content.LessonStep {
	body := description
	if body == "" {
		body = fmt.Sprintf("Welcome to %s.", u.Title)
	}
	return content.LessonStep{
		ID:      uuid.NewSHA1(namespace, []byte(u.ID+"#introduction")).String(),
		Kind:    content.StepIntroduction,
		Title:   u.Title,
		Content: content.TextContent{Body: body},
		Hints:   []string{},
	}
}

func lessonStep(le LessonEntry) (content.LessonStep, error) {
	if le.ID == "" || le.Title == "" {
		return content.LessonStep{}, errors.New("missing id or title")
	}
	step := content.LessonStep{ID: le.ID, Title: le.Title, Kind: content.StepExample, Hints: []string{}}

	kind := strings.ToLower(strings.TrimSpace(le.ContentKind))
	if kind == "lesson" {
		switch {
		case le.VideoURL != "":
			kind = "video"
		case le.ArticleContent != "":
			kind = "article"
		}
	}

	switch kind {
	case "video":
		if le.VideoURL == "" {
			return content.LessonStep{}, errors.New("video without url")
		}
		step.Content = content.VideoContent{
			URL:      le.VideoURL,
			Duration: time.Duration(le.Duration * float64(time.Second)),
		}
	case "article":
		if le.ArticleContent == "" {
			return content.LessonStep{}, errors.New("article without content")
		}
		step.Content = content.TextContent{Body: le.ArticleContent}
	case "quiz":
		q, hints, err := perseusQuestion(le.ID, le.Title, le.PerseusContent, le.Difficulty)
		if err != nil {
			return content.LessonStep{}, err
		}
		step.Kind = content.StepAssessment
		step.Content = content.QuestionContent{Question: q}
		step.Hints = hints
	default:
		return content.LessonStep{}, fmt.Errorf("unsupported content kind %q", le.ContentKind)
	}
	return step, nil
}

func exerciseStep(ex Exercise) (content.LessonStep, error) {
	if ex.ID == "" || ex.Title == "" {
		return content.LessonStep{}, errors.New("missing id or title")
	}
	q, perseusHints, err := perseusQuestion(ex.ID, ex.Title, ex.PerseusContent, ex.Difficulty)
	if err != nil {
		return content.LessonStep{}, err
	}

	hints := perseusHints
	if len(ex.Hints) > 0 {
		hints = append([]string(nil), ex.Hints...)
	}
	var explanation string
	if len(ex.Solutions) > 0 {
		explanation = ex.Solutions[0]
		q.Feedback.Explanation = explanation
	}
	if len(hints) > 0 {
		q.Feedback.Hint = hints[0]
	}

	return content.LessonStep{
		ID:          ex.ID,
		Kind:        content.StepPractice,
		Title:       ex.Title,
		Content:     content.QuestionContent{Question: q},
		Hints:       hints,
		Explanation: explanation,
	}, nil
}

func perseusQuestion(id, title, raw, difficulty string) (content.Question, []string, error) {
	item, err := parsePerseus(raw)
	if err != nil {
		return content.Question{}, nil, err
	}
	rule, err := content.NewValidationRule(item.Accepted, item.Opts...)
	if err != nil {
		return content.Question{}, nil, err
	}
	prompt := item.Prompt
	if prompt == "" {
		prompt = title
	}
	hints := item.Hints
	if hints == nil {
		hints = []string{}
	}
	return content.Question{
		ID:            id,
		Prompt:        prompt,
		Kind:          item.Kind,
		CorrectAnswer: item.Correct,
		Choices:       item.Choices,
		Rule:          rule,
		Feedback:      content.DefaultFeedback(),
		Points:        PointsForDifficulty(difficulty),
	}, hints, nil
}

// prerequisites prefers the unit's own list, then the union of its lesson
// entries' lists, then the subject default.
func prerequisites(subject string, u Unit) []string {
	if u.Prerequisites != nil {
		return append([]string{}, u.Prerequisites...)
	}
	var out []string
	seen := map[string]bool{}
	for _, le := range u.Lessons {
		for _, p := range le.Prerequisites {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	if len(out) > 0 {
		return out
	}
	return DefaultPrerequisites(subject)
}

// objectives lists the distinct exercise skills, or the lesson titles when
// no exercise names a skill.
func objectives(u Unit) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, ex := range u.Exercises {
		for _, s := range ex.Skills {
			if s != "" && !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, le := range u.Lessons {
		if le.Title != "" {
			out = append(out, le.Title)
		}
	}
	return out
}

func itemName(unitID, kind string, i int, id string) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("%s/%s[%d]", unitID, kind, i)
}
