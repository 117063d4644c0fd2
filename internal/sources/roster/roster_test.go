package roster

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/session"
	"github.com/abhisek/learnpath/internal/sources"
)

const syllabusJSON = `{
  "course": {
    "sourcedId": "course-fractions",
    "title": "Grade 4 Math",
    "description": "Fractions and decimals",
    "grades": ["05", "4"],
    "subjects": ["Math"],
    "components": [
      {
        "sourcedId": "unit-2",
        "title": "Comparing Fractions",
        "sortOrder": 2,
        "componentResources": [
          {
            "sourcedId": "cr-cmp-video",
            "resource": {
              "sourcedId": "r-cmp-video",
              "title": "Which is bigger?",
              "metadata": {"type": "video", "url": "https://cdn.example.com/cmp.mp4", "duration": 240}
            }
          }
        ]
      },
      {
        "sourcedId": "unit-1",
        "title": "What is a Fraction?",
        "description": "Parts of a whole.",
        "sortOrder": 1,
        "prerequisites": ["Division basics"],
        "componentResources": [
          {
            "sourcedId": "cr-article",
            "sortOrder": 1,
            "resource": {
              "sourcedId": "r-article",
              "title": "Reading fractions",
              "metadata": {"type": "Article", "text": "A fraction names part of a whole."}
            }
          },
          {
            "sourcedId": "cr-pdf",
            "sortOrder": 2,
            "resource": {
              "sourcedId": "r-pdf",
              "title": "Printable worksheet",
              "metadata": {"type": "worksheet", "subType": "pdf", "url": "https://cdn.example.com/w.pdf"}
            }
          }
        ],
        "subComponents": [
          {
            "sourcedId": "unit-1-quiz",
            "title": "Check your understanding",
            "componentResources": [
              {
                "sourcedId": "cr-q1",
                "resource": {
                  "sourcedId": "r-q1",
                  "title": "Half",
                  "metadata": {
                    "type": "interactive",
                    "subType": "qti",
                    "question": {
                      "prompt": "Which fraction is one half?",
                      "choices": ["1/3", "1/2", "2/3"],
                      "correctChoice": 1,
                      "points": 5
                    }
                  }
                }
              },
              {
                "sourcedId": "cr-q2",
                "resource": {
                  "sourcedId": "r-q2",
                  "title": "Decimal",
                  "metadata": {
                    "type": "qti",
                    "subType": "qti-test",
                    "question": {"prompt": "Write 1/4 as a decimal.", "correctNumber": 0.25}
                  }
                }
              }
            ]
          }
        ]
      }
    ]
  }
}`

func observedAdapter() (*Adapter, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	l := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	return New(WithLogger(l)), logs
}

func TestLessons_MapsTree(t *testing.T) {
	a, _ := observedAdapter()
	res, err := a.Lessons([]byte(syllabusJSON))
	require.NoError(t, err)
	require.Len(t, res.Lessons, 2)

	first := res.Lessons[0]
	assert.Equal(t, "unit-1", first.ID, "components are ordered by sortOrder")
	assert.Equal(t, "Math", first.Subject)
	assert.Equal(t, content.BandG35, first.AgeBand)
	assert.Equal(t, []string{"Division basics"}, first.Prerequisites)
	assert.Equal(t, []string{"Check your understanding"}, first.LearningObjectives)
	require.NoError(t, first.Validate())

	// intro + article + q1 + q2; the pdf worksheet is skipped.
	require.Len(t, first.Steps, 4)
	assert.Equal(t, content.StepIntroduction, first.Steps[0].Kind)
	assert.Equal(t, "Parts of a whole.", first.Steps[0].Content.(content.TextContent).Body)

	assert.Equal(t, "cr-article", first.Steps[1].ID)
	assert.IsType(t, content.TextContent{}, first.Steps[1].Content)

	q1, ok := first.Steps[2].Question()
	require.True(t, ok)
	assert.Equal(t, content.QuestionMultipleChoice, q1.Kind)
	assert.Equal(t, content.ChoiceIndex(1), q1.CorrectAnswer)
	assert.Equal(t, 5, q1.Points)
	assert.Equal(t, content.StepPractice, first.Steps[2].Kind)

	q2, ok := first.Steps[3].Question()
	require.True(t, ok)
	assert.Equal(t, content.Number(0.25), q2.CorrectAnswer)
	assert.Equal(t, DefaultPoints, q2.Points)
	assert.Equal(t, content.StepAssessment, first.Steps[3].Kind)

	wantDuration := introDuration + textDuration + 2*questionDuration
	assert.Equal(t, wantDuration, first.EstimatedDuration)

	second := res.Lessons[1]
	require.Len(t, second.Steps, 2)
	v := second.Steps[1].Content.(content.VideoContent)
	assert.Equal(t, 240*time.Second, v.Duration)
	assert.Equal(t, introDuration+240*time.Second, second.EstimatedDuration)
}

func TestLessons_UnrecognizedTypeSkipped(t *testing.T) {
	a, logs := observedAdapter()
	res, err := a.Lessons([]byte(syllabusJSON))
	require.NoError(t, err)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "cr-pdf", res.Skipped[0].Item)

	warnings := logs.FilterMessage("skipping item").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "cr-pdf", warnings[0].ContextMap()["item"])

	for _, s := range res.Lessons[0].Steps {
		assert.NotEqual(t, "cr-pdf", s.ID)
	}
}

func TestLessons_Idempotent(t *testing.T) {
	a := New()
	first, err := a.Lessons([]byte(syllabusJSON))
	require.NoError(t, err)
	second, err := a.Lessons([]byte(syllabusJSON))
	require.NoError(t, err)

	b1, err := json.Marshal(first.Lessons)
	require.NoError(t, err)
	b2, err := json.Marshal(second.Lessons)
	require.NoError(t, err)
	assert.JSONEq(t, string(b1), string(b2))
	assert.Equal(t, first.Lessons[0].Steps[0].ID, second.Lessons[0].Steps[0].ID)
}

func TestLessons_TopLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty payload", ``, sources.ErrSourceNotFound},
		{"no course", `{}`, sources.ErrSourceNotFound},
		{"null course", `{"course": null}`, sources.ErrSourceNotFound},
		{"malformed", `{"course": {`, sources.ErrInvalidContent},
		{"missing course id", `{"course": {"title": "x"}}`, sources.ErrInvalidContent},
		{"bad grades", `{"course": {"sourcedId": "c", "title": "x", "grades": [3]}}`, sources.ErrInvalidContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Lessons([]byte(tt.raw))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFromSyllabus_SkipsBrokenItems(t *testing.T) {
	syl := &Syllabus{Course: &Course{
		SourcedID: "c",
		Title:     "Course",
		Components: []Component{
			{Title: "no id"},
			{
				SourcedID: "u",
				Title:     "Unit",
				Resources: []ComponentResource{
					{SourcedID: "no-resource"},
					{SourcedID: "no-metadata", Resource: &Resource{SourcedID: "r"}},
					{SourcedID: "video-no-url", Resource: &Resource{Metadata: &Metadata{Type: "video"}}},
					{SourcedID: "qti-no-item", Resource: &Resource{Metadata: &Metadata{Type: "qti"}}},
					{SourcedID: "ok", Resource: &Resource{Title: "Read", Metadata: &Metadata{Type: "text", Text: "hello"}}},
				},
			},
		},
	}}
	res, err := New().FromSyllabus(syl)
	require.NoError(t, err)
	require.Len(t, res.Lessons, 1)
	assert.Len(t, res.Skipped, 5)
	require.Len(t, res.Lessons[0].Steps, 2)
	assert.Equal(t, "ok", res.Lessons[0].Steps[1].ID)
	assert.Equal(t, content.BandG912, res.Lessons[0].AgeBand, "no grades maps to oldest band")
	assert.Equal(t, "general", res.Lessons[0].Subject)
}

func TestFromSyllabus_RepeatedItemIdentifier(t *testing.T) {
	ten := 10
	qti := func(id string) ComponentResource {
		return ComponentResource{SourcedID: id, Resource: &Resource{Title: id, Metadata: &Metadata{
			Type: "qti",
			Question: &Item{
				Identifier:    "item-1",
				Prompt:        "Type four.",
				CorrectNumber: new(float64),
				Points:        &ten,
			},
		}}}
	}
	syl := &Syllabus{Course: &Course{
		SourcedID:  "c",
		Title:      "Course",
		Components: []Component{{SourcedID: "u", Title: "Unit", Resources: []ComponentResource{qti("cr-a"), qti("cr-b")}}},
	}}
	res, err := New().FromSyllabus(syl)
	require.NoError(t, err)
	require.Len(t, res.Lessons, 1)
	assert.Empty(t, res.Skipped)

	lesson := res.Lessons[0]
	require.NoError(t, lesson.Validate())
	require.Len(t, lesson.Steps, 3)
	first, _ := lesson.Steps[1].Question()
	second, _ := lesson.Steps[2].Question()
	assert.Equal(t, "item-1", first.ID)
	assert.Equal(t, "cr-b/item-1", second.ID)
	assert.Equal(t, 20, lesson.TotalPoints())

	sess := session.New()
	require.NoError(t, sess.Start(lesson))
	require.NoError(t, sess.Next())
	_, err = sess.Submit(content.Number(0))
	require.NoError(t, err)
	require.NoError(t, sess.Next())
	_, answered := sess.Answered(second.ID)
	assert.False(t, answered, "second item must need its own answer")
	_, err = sess.Submit(content.Number(0))
	require.NoError(t, err)

	r, err := sess.Complete()
	require.NoError(t, err)
	assert.Equal(t, 20, r.Score)
	assert.Equal(t, 20, r.TotalPossible)
}

func TestCollectResources_DeepTree(t *testing.T) {
	const depth = 50000
	root := Component{SourcedID: "root", Title: "Root"}
	cur := &root
	for i := 0; i < depth; i++ {
		cur.SubComponents = []Component{{
			SourcedID: fmt.Sprintf("c%d", i),
			Title:     "nested",
			Resources: []ComponentResource{{
				SourcedID: fmt.Sprintf("r%d", i),
				Resource:  &Resource{Title: "t", Metadata: &Metadata{Type: "text", Text: "x"}},
			}},
		}}
		cur = &cur.SubComponents[0]
	}

	got := collectResources(root)
	require.Len(t, got, depth)
	assert.Equal(t, "r0", got[0].SourcedID)
	assert.Equal(t, fmt.Sprintf("r%d", depth-1), got[depth-1].SourcedID)
}

func TestCollectResources_DocumentOrder(t *testing.T) {
	res := func(id string) ComponentResource { return ComponentResource{SourcedID: id} }
	root := Component{
		Resources: []ComponentResource{res("a")},
		SubComponents: []Component{
			{Resources: []ComponentResource{res("b")}, SubComponents: []Component{{Resources: []ComponentResource{res("c")}}}},
			{Resources: []ComponentResource{res("d")}},
		},
	}
	var ids []string
	for _, cr := range collectResources(root) {
		ids = append(ids, cr.SourcedID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}
