// Package answer decides whether a submitted answer satisfies a question's
// validation rule.
package answer

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/abhisek/learnpath/internal/content"
)

// Check returns true if submitted matches any acceptable answer of rule.
//
// Matching rules:
//   - text vs text: equal, lowercased first unless the rule is case sensitive
//   - number vs number: |a-b| <= tolerance (default 0.01)
//   - choice vs choice: exact index equality
//   - text vs number, either order: the text must parse as a number equal to
//     the other value exactly; tolerance is not applied
//   - coordinates vs coordinates: both axes within tolerance
//   - equation vs equation: equal ignoring whitespace, case per the rule
//   - anything else: no match
//
// Non-finite numbers compare as 0.
func Check(submitted content.AnswerValue, rule content.ValidationRule) bool {
	if submitted == nil {
		return false
	}
	for _, accepted := range rule.AcceptableAnswers {
		if accepted != nil && matches(submitted, accepted, rule) {
			return true
		}
	}
	return false
}

// CheckQuestion validates submitted against the question's rule.
func CheckQuestion(submitted content.AnswerValue, q *content.Question) bool {
	if q == nil {
		return false
	}
	return Check(submitted, q.Rule)
}

func matches(submitted, accepted content.AnswerValue, rule content.ValidationRule) bool {
	switch s := submitted.(type) {
	case content.Text:
		switch a := accepted.(type) {
		case content.Text:
			return equalText(string(s), string(a), rule.CaseSensitive)
		case content.Number:
			return textEqualsNumber(string(s), a)
		}
	case content.Number:
		switch a := accepted.(type) {
		case content.Number:
			return math.Abs(s.Finite()-a.Finite()) <= rule.EffectiveTolerance()
		case content.Text:
			return textEqualsNumber(string(a), s)
		}
	case content.ChoiceIndex:
		if a, ok := accepted.(content.ChoiceIndex); ok {
			return s == a
		}
	case content.Coordinates:
		if a, ok := accepted.(content.Coordinates); ok {
			tol := rule.EffectiveTolerance()
			return math.Abs(content.Finite(s.X)-content.Finite(a.X)) <= tol &&
				math.Abs(content.Finite(s.Y)-content.Finite(a.Y)) <= tol
		}
	case content.Equation:
		if a, ok := accepted.(content.Equation); ok {
			return equalText(stripSpace(string(s)), stripSpace(string(a)), rule.CaseSensitive)
		}
	}
	return false
}

func equalText(a, b string, caseSensitive bool) bool {
	if !caseSensitive {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}
	return a == b
}

// textEqualsNumber is the cross-type match. Tolerance is deliberately not
// applied here; a text answer must name the number exactly.
func textEqualsNumber(text string, n content.Number) bool {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return false
	}
	return content.Finite(f) == n.Finite()
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
