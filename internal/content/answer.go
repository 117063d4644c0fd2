package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// AnswerKind identifies the variant held by an AnswerValue.
type AnswerKind string

const (
	AnswerText        AnswerKind = "text"
	AnswerNumber      AnswerKind = "number"
	AnswerChoiceIndex AnswerKind = "choice_index"
	AnswerCoordinates AnswerKind = "coordinates"
	AnswerEquation    AnswerKind = "equation"
)

// AnswerValue is a closed sum type over the answer representations a
// learner can submit. Only the types in this package implement it.
type AnswerValue interface {
	Kind() AnswerKind
	String() string
	isAnswerValue()
}

// Text is a free-form text answer.
type Text string

// Number is a numeric answer.
type Number float64

// ChoiceIndex is the zero-based index of a multiple-choice option.
type ChoiceIndex int

// Coordinates is a point answer for graphing questions.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Equation is an equation or expression answer, e.g. "y=2x+1".
type Equation string

func (Text) Kind() AnswerKind        { return AnswerText }
func (Number) Kind() AnswerKind      { return AnswerNumber }
func (ChoiceIndex) Kind() AnswerKind { return AnswerChoiceIndex }
func (Coordinates) Kind() AnswerKind { return AnswerCoordinates }
func (Equation) Kind() AnswerKind    { return AnswerEquation }

func (Text) isAnswerValue()        {}
func (Number) isAnswerValue()      {}
func (ChoiceIndex) isAnswerValue() {}
func (Coordinates) isAnswerValue() {}
func (Equation) isAnswerValue()    {}

func (t Text) String() string        { return string(t) }
func (n Number) String() string      { return fmt.Sprintf("%g", float64(n)) }
func (c ChoiceIndex) String() string { return fmt.Sprintf("choice #%d", int(c)) }
func (c Coordinates) String() string { return fmt.Sprintf("(%g, %g)", c.X, c.Y) }
func (e Equation) String() string    { return string(e) }

// Finite returns n, or 0 when n is NaN or infinite.
func (n Number) Finite() float64 {
	return Finite(float64(n))
}

// Finite coerces NaN and ±Inf to 0.
func Finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// answerEnvelope is the tagged JSON form of an AnswerValue.
type answerEnvelope struct {
	Kind  AnswerKind      `json:"kind"`
	Value json.RawMessage `json:"value"`
}

func marshalAnswer(kind AnswerKind, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(answerEnvelope{Kind: kind, Value: raw})
}

func (t Text) MarshalJSON() ([]byte, error)   { return marshalAnswer(AnswerText, string(t)) }
func (n Number) MarshalJSON() ([]byte, error) { return marshalAnswer(AnswerNumber, n.Finite()) }
func (c ChoiceIndex) MarshalJSON() ([]byte, error) {
	return marshalAnswer(AnswerChoiceIndex, int(c))
}
func (c Coordinates) MarshalJSON() ([]byte, error) {
	type point Coordinates
	return marshalAnswer(AnswerCoordinates, point(c))
}
func (e Equation) MarshalJSON() ([]byte, error) { return marshalAnswer(AnswerEquation, string(e)) }

// DecodeAnswer parses the tagged JSON form produced by an AnswerValue's
// MarshalJSON.
func DecodeAnswer(data []byte) (AnswerValue, error) {
	var env answerEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode answer: %w", err)
	}
	switch env.Kind {
	case AnswerText:
		var s string
		err := json.Unmarshal(env.Value, &s)
		return Text(s), err
	case AnswerNumber:
		var f float64
		err := json.Unmarshal(env.Value, &f)
		return Number(f), err
	case AnswerChoiceIndex:
		var i int
		err := json.Unmarshal(env.Value, &i)
		return ChoiceIndex(i), err
	case AnswerCoordinates:
		var c struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		}
		err := json.Unmarshal(env.Value, &c)
		return Coordinates{X: c.X, Y: c.Y}, err
	case AnswerEquation:
		var s string
		err := json.Unmarshal(env.Value, &s)
		return Equation(s), err
	default:
		return nil, fmt.Errorf("decode answer: unknown kind %q", env.Kind)
	}
}

// ErrEmptyRule is returned when a ValidationRule has no acceptable answers.
var ErrEmptyRule = errors.New("validation rule has no acceptable answers")

// DefaultTolerance is the numeric tolerance used when a rule does not set one.
const DefaultTolerance = 0.01

// ValidationRule is the acceptance policy for a question's answer.
type ValidationRule struct {
	// AcceptableAnswers holds every answer that counts as correct. Never empty
	// for a rule built with NewValidationRule.
	AcceptableAnswers []AnswerValue `json:"acceptable_answers"`

	// Tolerance applies only to number-vs-number comparisons. Nil means
	// DefaultTolerance.
	Tolerance *float64 `json:"tolerance,omitempty"`

	// CaseSensitive applies only to text comparisons.
	CaseSensitive bool `json:"case_sensitive"`
}

// RuleOption customizes a ValidationRule.
type RuleOption func(*ValidationRule)

// WithTolerance sets the numeric tolerance.
func WithTolerance(t float64) RuleOption {
	return func(r *ValidationRule) { r.Tolerance = &t }
}

// CaseSensitive makes text comparisons case sensitive.
func CaseSensitive() RuleOption {
	return func(r *ValidationRule) { r.CaseSensitive = true }
}

// NewValidationRule builds a rule accepting the given answers.
func NewValidationRule(answers []AnswerValue, opts ...RuleOption) (ValidationRule, error) {
	if len(answers) == 0 {
		return ValidationRule{}, ErrEmptyRule
	}
	r := ValidationRule{AcceptableAnswers: append([]AnswerValue(nil), answers...)}
	for _, opt := range opts {
		opt(&r)
	}
	return r, nil
}

// MustRule is NewValidationRule for literal fixtures; it panics on an empty
// answer list.
func MustRule(answers []AnswerValue, opts ...RuleOption) ValidationRule {
	r, err := NewValidationRule(answers, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// EffectiveTolerance returns the configured tolerance, falling back to
// DefaultTolerance when unset, negative or not finite.
func (r ValidationRule) EffectiveTolerance() float64 {
	if r.Tolerance == nil {
		return DefaultTolerance
	}
	t := *r.Tolerance
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return DefaultTolerance
	}
	return t
}

// Validate checks the rule's structural invariant.
func (r ValidationRule) Validate() error {
	if len(r.AcceptableAnswers) == 0 {
		return ErrEmptyRule
	}
	for i, a := range r.AcceptableAnswers {
		if a == nil {
			return fmt.Errorf("acceptable answer %d is nil", i)
		}
	}
	return nil
}
