// Package roster maps roster/syllabus component trees onto lessons.
package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/sources"
)

// Name is the registry key of this adapter.
const Name = "roster"

// namespace seeds deterministic IDs for synthesized steps.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("learnpath/roster"))

// Per-step duration estimates used when the source gives none.
const (
	introDuration    = 60 * time.Second
	textDuration     = 180 * time.Second
	videoDuration    = 300 * time.Second
	questionDuration = 60 * time.Second
)

// DefaultPoints is the point value of a QTI item that does not declare one.
const DefaultPoints = 10

// Adapter converts roster syllabi. The zero value is not usable; use New.
type Adapter struct {
	log *logger.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for skipped-item warnings.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// New creates a roster adapter.
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

// Lessons decodes a Syllabus payload and converts it.
func (a *Adapter) Lessons(data []byte) (sources.Result, error) {
	if err := sources.CheckSchema(Name, syllabusSchema, data); err != nil {
		return sources.Result{}, err
	}
	var syl Syllabus
	if err := json.Unmarshal(data, &syl); err != nil {
		return sources.Result{}, sources.Invalid(Name, err)
	}
	return a.FromSyllabus(&syl)
}

// FromSyllabus converts an already-decoded syllabus. One lesson is produced
// per top-level component, in input order.
func (a *Adapter) FromSyllabus(syl *Syllabus) (sources.Result, error) {
	if syl == nil || syl.Course == nil {
		return sources.Result{}, sources.NotFound(Name, errors.New("syllabus has no course"))
	}
	course := syl.Course
	if course.SourcedID == "" || course.Title == "" {
		return sources.Result{}, sources.Invalid(Name, errors.New("course is missing sourcedId or title"))
	}

	report := sources.NewReport(Name, a.log.With("course", course.SourcedID))
	band := content.AgeBandForGrades(course.Grades)
	subject := courseSubject(course)

	lessons := make([]content.Lesson, 0, len(course.Components))
	for i, comp := range sortedComponents(course.Components) {
		if comp.SourcedID == "" || comp.Title == "" {
			report.Skipf(fmt.Sprintf("component[%d]", i), "missing sourcedId or title")
			continue
		}
		lessons = append(lessons, a.buildLesson(course, comp, band, subject, report))
	}
	return report.Result(lessons), nil
}

func (a *Adapter) buildLesson(course *Course, comp Component, band content.AgeBand, subject string, report *sources.Report) content.Lesson {
	description := comp.Description
	if description == "" {
		description = course.Description
	}

	steps := []content.LessonStep{introStep(comp, description)}
	duration := introDuration
	seen := map[string]bool{steps[0].ID: true}
	questions := map[string]bool{}

	for _, cr := range collectResources(comp) {
		step, d, err := resourceStep(cr)
		if err != nil {
			report.Skip(itemName(cr), err.Error())
			continue
		}
		if seen[step.ID] {
			report.Skip(step.ID, "duplicate resource in component tree")
			continue
		}
		if qc, ok := step.Content.(content.QuestionContent); ok {
			// Item identifiers can repeat across resources; answers are
			// keyed by question id so each step needs its own.
			if questions[qc.Question.ID] {
				qc.Question.ID = step.ID + "/" + qc.Question.ID
				step.Content = qc
			}
			if questions[qc.Question.ID] {
				report.Skip(step.ID, "duplicate question id "+qc.Question.ID)
				continue
			}
			questions[qc.Question.ID] = true
		}
		seen[step.ID] = true
		steps = append(steps, step)
		duration += d
	}

	return content.Lesson{
		ID:                 comp.SourcedID,
		Title:              comp.Title,
		Description:        description,
		Subject:            subject,
		AgeBand:            band,
		EstimatedDuration:  duration,
		Prerequisites:      nonNil(comp.Prerequisites),
		LearningObjectives: objectives(comp),
		Steps:              steps,
	}
}

func introStep(comp Component, description string) content.LessonStep {
	body := description
	if body == "" {
		body = fmt.Sprintf("In this lesson you will work through %s.", comp.Title)
	}
	return content.LessonStep{
		ID:      uuid.NewSHA1(namespace, []byte(comp.SourcedID+"#introduction")).String(),
		Kind:    content.StepIntroduction,
		Title:   comp.Title,
		Content: content.TextContent{Body: body},
		Hints:   []string{},
	}
}

// collectResources walks the component and all nested sub-components in
// document order, using an explicit stack so arbitrarily deep trees cannot
// exhaust the goroutine stack.
func collectResources(root Component) []ComponentResource {
	var out []ComponentResource
	stack := []*Component{&root}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		out = append(out, sortedResources(c.Resources)...)

		children := sortedComponents(c.SubComponents)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, &children[i])
		}
	}
	return out
}

// resourceKind is the step content a resource maps to.
type resourceKind int

const (
	kindUnknown resourceKind = iota
	kindQuestion
	kindVideo
	kindText
)

func classify(md *Metadata) resourceKind {
	for _, tag := range []string{md.Type, md.SubType} {
		switch strings.ToLower(strings.TrimSpace(tag)) {
		case "qti":
			return kindQuestion
		case "video":
			return kindVideo
		case "article", "text":
			return kindText
		}
	}
	return kindUnknown
}

func resourceStep(cr ComponentResource) (content.LessonStep, time.Duration, error) {
	res := cr.Resource
	if res == nil {
		return content.LessonStep{}, 0, errors.New("missing resource")
	}
	if res.Metadata == nil {
		return content.LessonStep{}, 0, errors.New("missing metadata")
	}
	id := cr.SourcedID
	if id == "" {
		id = res.SourcedID
	}
	if id == "" {
		return content.LessonStep{}, 0, errors.New("missing sourcedId")
	}
	title := res.Title
	if title == "" {
		title = cr.Title
	}

	md := res.Metadata
	step := content.LessonStep{
		ID:          id,
		Title:       title,
		Hints:       nonNil(md.Hints),
		Explanation: md.Explanation,
	}

	switch classify(md) {
	case kindVideo:
		if md.URL == "" {
			return content.LessonStep{}, 0, errors.New("video without url")
		}
		d := seconds(md.Duration)
		step.Kind = content.StepExample
		step.Content = content.VideoContent{URL: md.URL, Duration: d}
		if d == 0 {
			d = videoDuration
		}
		return step, d, nil

	case kindText:
		if md.Text == "" && md.URL == "" {
			return content.LessonStep{}, 0, errors.New("article without text or url")
		}
		step.Kind = content.StepExample
		step.Content = content.TextContent{Body: md.Text, URL: md.URL}
		return step, textDuration, nil

	case kindQuestion:
		q, err := itemQuestion(id, title, md.Question)
		if err != nil {
			return content.LessonStep{}, 0, err
		}
		step.Kind = content.StepPractice
		if isAssessment(md.SubType) {
			step.Kind = content.StepAssessment
		}
		step.Content = content.QuestionContent{Question: q}
		return step, questionDuration, nil

	default:
		return content.LessonStep{}, 0, fmt.Errorf("unsupported resource type %q/%q", md.Type, md.SubType)
	}
}

// itemQuestion builds a question from an inline QTI item. The answer key
// decides the question kind: a choice index means multiple choice, a number
// or text list means fill-in-the-blank.
func itemQuestion(stepID, title string, item *Item) (content.Question, error) {
	if item == nil {
		return content.Question{}, errors.New("qti resource without inline item")
	}
	prompt := item.Prompt
	if prompt == "" {
		prompt = title
	}
	if prompt == "" {
		return content.Question{}, errors.New("qti item without prompt")
	}

	id := item.Identifier
	if id == "" {
		id = stepID
	}
	q := content.Question{
		ID:       id,
		Prompt:   prompt,
		Feedback: itemFeedback(item.Feedback),
		Points:   DefaultPoints,
	}
	if item.Points != nil && *item.Points >= 0 {
		q.Points = *item.Points
	}

	var accepted []content.AnswerValue
	switch {
	case item.CorrectChoice != nil:
		idx := *item.CorrectChoice
		if idx < 0 || idx >= len(item.Choices) {
			return content.Question{}, fmt.Errorf("correct choice %d out of range", idx)
		}
		q.Kind = content.QuestionMultipleChoice
		q.Choices = append([]string(nil), item.Choices...)
		q.CorrectAnswer = content.ChoiceIndex(idx)
		accepted = []content.AnswerValue{content.ChoiceIndex(idx)}
	case item.CorrectNumber != nil:
		q.Kind = content.QuestionFillInBlank
		q.CorrectAnswer = content.Number(*item.CorrectNumber)
		accepted = []content.AnswerValue{content.Number(*item.CorrectNumber)}
	case len(item.CorrectText) > 0:
		q.Kind = content.QuestionFillInBlank
		q.CorrectAnswer = content.Text(item.CorrectText[0])
		for _, t := range item.CorrectText {
			accepted = append(accepted, content.Text(t))
		}
	default:
		return content.Question{}, errors.New("qti item without answer key")
	}

	var opts []content.RuleOption
	if item.Tolerance != nil {
		opts = append(opts, content.WithTolerance(*item.Tolerance))
	}
	if item.CaseSensitive {
		opts = append(opts, content.CaseSensitive())
	}
	rule, err := content.NewValidationRule(accepted, opts...)
	if err != nil {
		return content.Question{}, err
	}
	q.Rule = rule
	return q, nil
}

func itemFeedback(fb *Feedback) content.Feedback {
	out := content.DefaultFeedback()
	if fb == nil {
		return out
	}
	if fb.Correct != "" {
		out.Correct = fb.Correct
	}
	if fb.Incorrect != "" {
		out.Incorrect = fb.Incorrect
	}
	out.Hint = fb.Hint
	out.Explanation = fb.Explanation
	return out
}

func isAssessment(subType string) bool {
	s := strings.ToLower(subType)
	return strings.Contains(s, "test") || strings.Contains(s, "quiz") || strings.Contains(s, "assessment")
}

func courseSubject(c *Course) string {
	for _, s := range c.Subjects {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return "general"
}

func objectives(comp Component) []string {
	if len(comp.LearningObjectives) > 0 {
		return append([]string(nil), comp.LearningObjectives...)
	}
	out := []string{}
	for _, sub := range sortedComponents(comp.SubComponents) {
		if sub.Title != "" {
			out = append(out, sub.Title)
		}
	}
	return out
}

func sortedComponents(in []Component) []Component {
	out := append([]Component(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

func sortedResources(in []ComponentResource) []ComponentResource {
	out := append([]ComponentResource(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

func itemName(cr ComponentResource) string {
	if cr.SourcedID != "" {
		return cr.SourcedID
	}
	if cr.Resource != nil && cr.Resource.SourcedID != "" {
		return cr.Resource.SourcedID
	}
	return "resource"
}

func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}
