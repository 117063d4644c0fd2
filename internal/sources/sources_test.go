package sources

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/content"
)

type stubAdapter struct{ name string }

func (s stubAdapter) Name() string { return s.name }
func (s stubAdapter) Lessons([]byte) (Result, error) {
	return Result{Lessons: []content.Lesson{{ID: s.name}}}, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(stubAdapter{"scraped"}, stubAdapter{"roster"})
	assert.Equal(t, []string{"roster", "scraped"}, r.Names())

	a, err := r.Lookup("roster")
	require.NoError(t, err)
	res, err := a.Lessons(nil)
	require.NoError(t, err)
	assert.Equal(t, "roster", res.Lessons[0].ID)

	_, err = r.Lookup("nope")
	assert.Error(t, err)
}

func TestErrorKinds(t *testing.T) {
	nf := NotFound("roster", errors.New("no course"))
	inv := Invalid("scraped", errors.New("bad json"))

	assert.True(t, errors.Is(nf, ErrSourceNotFound))
	assert.False(t, errors.Is(nf, ErrInvalidContent))
	assert.True(t, errors.Is(inv, ErrInvalidContent))

	wrapped := fmt.Errorf("import: %w", inv)
	assert.Equal(t, KindInvalidContent, KindOf(wrapped))
	assert.Equal(t, Kind(""), KindOf(errors.New("other")))
}

var testSchema = &Schema{
	Name: "test-object",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"id"},
		"properties": map[string]any{
			"id": map[string]any{"type": "string", "minLength": 1},
		},
	},
}

func TestCheckSchema(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"valid", `{"id":"x"}`, nil},
		{"empty", ``, ErrSourceNotFound},
		{"null", `null`, ErrSourceNotFound},
		{"malformed", `{"id":`, ErrInvalidContent},
		{"missing id", `{"title":"x"}`, ErrInvalidContent},
		{"wrong type", `{"id":3}`, ErrInvalidContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSchema("test", testSchema, []byte(tt.raw))
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReportCollectsSkips(t *testing.T) {
	r := NewReport("test", nil)
	r.Skip("a", "missing id")
	r.Skipf("b", "unknown type %q", "pdf")
	res := r.Result(nil)
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, Skip{Item: "b", Reason: `unknown type "pdf"`}, res.Skipped[1])
}
