package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/answer"
	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

var checkCmd = &cobra.Command{
	Use:   "check [content-file]",
	Short: "Check an answer against a question",
	Long: `Look up a question by ID in the imported lessons and check an answer
against its validation rule. Multiple-choice answers may be given as a letter
(a, b, ...) or a 1-based number; graphing answers as "x,y".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("question", "", "Question ID (required)")
	checkCmd.Flags().String("answer", "", "Answer to check (required)")
	_ = checkCmd.MarkFlagRequired("question")
	_ = checkCmd.MarkFlagRequired("answer")
}

func runCheck(cmd *cobra.Command, args []string) error {
	qid, _ := cmd.Flags().GetString("question")
	raw, _ := cmd.Flags().GetString("answer")

	d, err := loadDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.loadLessons(args)
	if err != nil {
		return err
	}
	q, ok := findQuestion(res.Lessons, qid)
	if !ok {
		return fmt.Errorf("question %q not found", qid)
	}

	v, err := parseCheckAnswer(q, raw)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fb := q.Feedback
	def := content.DefaultFeedback()
	if answer.CheckQuestion(v, &q) {
		fmt.Fprintln(out, lipgloss.NewStyle().Foreground(theme.Success).Render("✓ "+firstNonEmpty(fb.Correct, def.Correct)))
		fmt.Fprintf(out, "  +%d points\n", q.Points)
	} else {
		fmt.Fprintln(out, lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+firstNonEmpty(fb.Incorrect, def.Incorrect)))
		if q.CorrectAnswer != nil {
			fmt.Fprintf(out, "  Answer: %s\n", q.CorrectAnswer)
		}
	}
	if fb.Explanation != "" {
		fmt.Fprintln(out, "  "+fb.Explanation)
	}
	return nil
}

func findQuestion(lessons []content.Lesson, id string) (content.Question, bool) {
	for _, l := range lessons {
		for _, s := range l.Steps {
			for _, q := range s.Questions() {
				if q.ID == id {
					return q, true
				}
			}
		}
	}
	return content.Question{}, false
}

// parseCheckAnswer reads a choice as a letter or 1-based number and defers
// everything else to the player's input parsing.
func parseCheckAnswer(q content.Question, raw string) (content.AnswerValue, error) {
	if q.Kind != content.QuestionMultipleChoice {
		return components.ParseAnswer(q.Kind, raw)
	}

	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		return content.ChoiceIndex(s[0] - 'a'), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("choice must be a letter or a number from 1, got %q", raw)
	}
	return content.ChoiceIndex(n - 1), nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
