package fixture

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/answer"
)

func TestLessons_Valid(t *testing.T) {
	res, err := New().Lessons(nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Lessons)
	assert.Empty(t, res.Skipped)

	ids := map[string]bool{}
	for _, l := range res.Lessons {
		require.NoError(t, l.Validate(), l.ID)
		assert.False(t, ids[l.ID], "duplicate lesson %s", l.ID)
		ids[l.ID] = true
	}
}

func TestLessons_CorrectAnswersPass(t *testing.T) {
	for _, l := range Lessons(DefaultSeed) {
		for _, s := range l.Steps {
			q, ok := s.Question()
			if !ok {
				continue
			}
			assert.True(t, answer.CheckQuestion(q.CorrectAnswer, q), "%s/%s", l.ID, s.ID)
		}
	}
}

func TestLessons_SeedDeterminism(t *testing.T) {
	prompt := func(seed uint64) string {
		for _, s := range Lessons(seed)[0].Steps {
			if s.ID == "fractions-generated" {
				q, _ := s.Question()
				return q.Prompt
			}
		}
		t.Fatal("generated step missing")
		return ""
	}

	assert.Equal(t, prompt(7), prompt(7))

	distinct := map[string]bool{}
	for seed := uint64(0); seed < 32; seed++ {
		distinct[prompt(seed)] = true
	}
	assert.Greater(t, len(distinct), 1)
}

func TestWithSeed(t *testing.T) {
	a, err := New(WithSeed(3)).Lessons(nil)
	require.NoError(t, err)
	b, err := New(WithSeed(3)).Lessons([]byte("ignored"))
	require.NoError(t, err)
	assert.Equal(t, a.Lessons, b.Lessons)
	assert.Equal(t, Name, New().Name())
}

func TestLessons_JSONShape(t *testing.T) {
	for _, l := range Lessons(DefaultSeed) {
		assert.NotNil(t, l.Prerequisites, l.ID)
		assert.NotNil(t, l.LearningObjectives, l.ID)
		for _, s := range l.Steps {
			assert.NotNil(t, s.Hints, "%s/%s", l.ID, s.ID)
		}
	}

	b, err := json.Marshal(Lessons(DefaultSeed))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "null")
}
