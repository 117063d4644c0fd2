package scraped

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/abhisek/learnpath/internal/content"
)

// widgetPlaceholder matches Perseus widget markers like "[[☃ radio 1]]".
var widgetPlaceholder = regexp.MustCompile(`\[\[☃ [^\]]+\]\]`)

// perseusItem is the part of a Perseus payload the adapter understands.
type perseusItem struct {
	Prompt   string
	Kind     content.QuestionKind
	Choices  []string
	Correct  content.AnswerValue
	Accepted []content.AnswerValue
	Opts     []content.RuleOption
	Hints    []string
}

// parsePerseus extracts the first supported answer widget from a Perseus
// JSON document. Widgets are visited in document order.
func parsePerseus(raw string) (*perseusItem, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("empty perseus content")
	}
	if !gjson.Valid(raw) {
		return nil, errors.New("perseus content is not valid JSON")
	}
	doc := gjson.Parse(raw)

	item := &perseusItem{
		Prompt: cleanPrompt(doc.Get("question.content").String()),
	}
	doc.Get("hints.#.content").ForEach(func(_, v gjson.Result) bool {
		if h := strings.TrimSpace(v.String()); h != "" {
			item.Hints = append(item.Hints, h)
		}
		return true
	})

	var lastErr error
	found := false
	doc.Get("question.widgets").ForEach(func(name, w gjson.Result) bool {
		err := item.fromWidget(w)
		if err == nil {
			found = true
			return false
		}
		lastErr = fmt.Errorf("widget %q: %w", name.String(), err)
		return true
	})
	if !found {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, errors.New("no answer widget")
	}
	return item, nil
}

var errUnsupportedWidget = errors.New("unsupported widget")

func (p *perseusItem) fromWidget(w gjson.Result) error {
	opts := w.Get("options")
	switch w.Get("type").String() {
	case "numeric-input":
		var accepted []content.AnswerValue
		maxErr := 0.0
		opts.Get("answers").ForEach(func(_, a gjson.Result) bool {
			if a.Get("status").String() == "correct" && a.Get("value").Exists() {
				accepted = append(accepted, content.Number(a.Get("value").Float()))
				if e := a.Get("maxError").Float(); e > maxErr {
					maxErr = e
				}
			}
			return true
		})
		if len(accepted) == 0 {
			return errors.New("numeric-input without correct answer")
		}
		p.Kind = content.QuestionFillInBlank
		p.Correct = accepted[0]
		p.Accepted = accepted
		if maxErr > 0 {
			p.Opts = append(p.Opts, content.WithTolerance(maxErr))
		}
		return nil

	case "input-number":
		v := opts.Get("value")
		if !v.Exists() {
			return errors.New("input-number without value")
		}
		p.Kind = content.QuestionFillInBlank
		p.Correct = content.Number(v.Float())
		p.Accepted = []content.AnswerValue{p.Correct}
		if opts.Get("inexact").Bool() {
			if e := opts.Get("maxError").Float(); e > 0 {
				p.Opts = append(p.Opts, content.WithTolerance(e))
			}
		}
		return nil

	case "radio", "dropdown":
		var choices []string
		var accepted []content.AnswerValue
		opts.Get("choices").ForEach(func(i, c gjson.Result) bool {
			choices = append(choices, cleanPrompt(c.Get("content").String()))
			if c.Get("correct").Bool() {
				accepted = append(accepted, content.ChoiceIndex(len(choices)-1))
			}
			return true
		})
		if len(choices) == 0 || len(accepted) == 0 {
			return errors.New("choice widget without correct choice")
		}
		p.Kind = content.QuestionMultipleChoice
		p.Choices = choices
		p.Correct = accepted[0]
		p.Accepted = accepted
		return nil

	case "expression":
		var accepted []content.AnswerValue
		opts.Get("answerForms").ForEach(func(_, f gjson.Result) bool {
			if f.Get("considered").String() == "correct" && f.Get("value").String() != "" {
				accepted = append(accepted, content.Equation(f.Get("value").String()))
			}
			return true
		})
		if len(accepted) == 0 {
			return errors.New("expression without correct form")
		}
		p.Kind = content.QuestionEquation
		p.Correct = accepted[0]
		p.Accepted = accepted
		return nil
	}
	return errUnsupportedWidget
}

func cleanPrompt(s string) string {
	return strings.TrimSpace(widgetPlaceholder.ReplaceAllString(s, ""))
}
