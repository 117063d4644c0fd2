package answer

import (
	"math"
	"testing"

	"github.com/abhisek/learnpath/internal/content"
)

func rule(answers []content.AnswerValue, opts ...content.RuleOption) content.ValidationRule {
	return content.MustRule(answers, opts...)
}

func TestCheck_Text(t *testing.T) {
	insensitive := rule([]content.AnswerValue{content.Text("Paris")})
	sensitive := rule([]content.AnswerValue{content.Text("Paris")}, content.CaseSensitive())

	tests := []struct {
		input content.AnswerValue
		rule  content.ValidationRule
		want  bool
	}{
		{content.Text("Paris"), insensitive, true},
		{content.Text("paris"), insensitive, true},
		{content.Text("PARIS"), insensitive, true},
		{content.Text(" Paris"), insensitive, false},
		{content.Text("paris"), sensitive, false},
		{content.Text("Paris"), sensitive, true},
		{content.Text("London"), insensitive, false},
	}

	for _, tc := range tests {
		got := Check(tc.input, tc.rule)
		if got != tc.want {
			t.Errorf("Check(%q, caseSensitive=%v) = %v, want %v", tc.input, tc.rule.CaseSensitive, got, tc.want)
		}
	}
}

func TestCheck_NumberTolerance(t *testing.T) {
	def := rule([]content.AnswerValue{content.Number(3.5)})
	loose := rule([]content.AnswerValue{content.Number(3.5)}, content.WithTolerance(0.5))
	exact := rule([]content.AnswerValue{content.Number(3.5)}, content.WithTolerance(0))

	tests := []struct {
		name  string
		input float64
		rule  content.ValidationRule
		want  bool
	}{
		{"exact default", 3.5, def, true},
		{"within default", 3.505, def, true},
		{"outside default", 3.52, def, false},
		{"within loose", 3.9, loose, true},
		{"outside loose", 4.1, loose, false},
		{"zero tolerance exact", 3.5, exact, true},
		{"zero tolerance off", 3.5001, exact, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Check(content.Number(tc.input), tc.rule); got != tc.want {
				t.Errorf("Check(%v) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestCheck_ChoiceIndex(t *testing.T) {
	r := rule([]content.AnswerValue{content.ChoiceIndex(2)})
	if !Check(content.ChoiceIndex(2), r) {
		t.Error("expected choice 2 to match")
	}
	if Check(content.ChoiceIndex(1), r) {
		t.Error("expected choice 1 not to match")
	}
	if Check(content.Number(2), r) {
		t.Error("number must not match a choice index")
	}
}

// The text/number cross match ignores tolerance while number/number honors
// it. Both directions are covered so a change to either is visible.
func TestCheck_CrossTypeTextNumber(t *testing.T) {
	tol := rule([]content.AnswerValue{content.Number(5)}, content.WithTolerance(0.01))

	tests := []struct {
		name  string
		input content.AnswerValue
		rule  content.ValidationRule
		want  bool
	}{
		{"text five vs number five", content.Text("5"), tol, true},
		{"text decimal form", content.Text("5.0"), tol, true},
		{"text within tolerance still fails", content.Text("5.001"), tol, false},
		{"number within tolerance passes", content.Number(5.001), tol, true},
		{"text not numeric", content.Text("five"), tol, false},
		{"text with spaces", content.Text(" 5"), tol, false},
		{"number vs accepted text", content.Number(7), rule([]content.AnswerValue{content.Text("7")}), true},
		{"number near accepted text", content.Number(7.001), rule([]content.AnswerValue{content.Text("7")}), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Check(tc.input, tc.rule); got != tc.want {
				t.Errorf("Check(%v) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestCheck_OtherPairings(t *testing.T) {
	r := rule([]content.AnswerValue{content.Text("(1, 2)")})
	if Check(content.Coordinates{X: 1, Y: 2}, r) {
		t.Error("coordinates must not match text")
	}
	eq := rule([]content.AnswerValue{content.Equation("y = 2x + 1")})
	if Check(content.Text("y = 2x + 1"), eq) {
		t.Error("text must not match equation")
	}
	if !Check(content.Equation("y=2X+1"), eq) {
		t.Error("equation should match ignoring whitespace and case")
	}
	pt := rule([]content.AnswerValue{content.Coordinates{X: 1, Y: 2}})
	if !Check(content.Coordinates{X: 1.005, Y: 1.995}, pt) {
		t.Error("coordinates within tolerance should match")
	}
	if Check(content.Coordinates{X: 1.5, Y: 2}, pt) {
		t.Error("coordinates outside tolerance should not match")
	}
}

func TestCheck_AnyAcceptable(t *testing.T) {
	r := rule([]content.AnswerValue{content.Text("colour"), content.Text("color"), content.Number(0)})
	for _, in := range []content.AnswerValue{content.Text("Color"), content.Text("COLOUR"), content.Text("0")} {
		if !Check(in, r) {
			t.Errorf("Check(%v) = false, want true", in)
		}
	}
}

func TestCheck_Reflexive(t *testing.T) {
	answers := []content.AnswerValue{
		content.Text("Mixed Case"),
		content.Number(-12.75),
		content.Number(math.NaN()),
		content.ChoiceIndex(0),
		content.Coordinates{X: -3, Y: 4.5},
		content.Equation("a^2 + b^2 = c^2"),
	}
	for _, sensitive := range []bool{false, true} {
		r := content.ValidationRule{AcceptableAnswers: answers, CaseSensitive: sensitive}
		for _, a := range answers {
			if !Check(a, r) {
				t.Errorf("Check(%v) against own rule (caseSensitive=%v) = false", a, sensitive)
			}
		}
	}
}

func TestCheck_NilAndEmpty(t *testing.T) {
	if Check(nil, rule([]content.AnswerValue{content.Text("x")})) {
		t.Error("nil answer must not match")
	}
	if Check(content.Text("x"), content.ValidationRule{}) {
		t.Error("empty rule must not match")
	}
	if CheckQuestion(content.Text("x"), nil) {
		t.Error("nil question must not match")
	}
}
