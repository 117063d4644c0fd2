package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/content"
	"github.com/abhisek/learnpath/internal/sources"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

var importCmd = &cobra.Command{
	Use:   "import [content-file]",
	Short: "Convert a content file into lessons and list them",
	Long: `Run the selected source adapter over a content file and print the
resulting lessons along with any items that were skipped.

Use --json to print the unified lessons instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("json", false, "Print lessons as JSON")
}

func runImport(cmd *cobra.Command, args []string) error {
	d, err := loadDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.loadLessons(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Lessons)
	}

	printLessons(out, res)

	// Adapters only emit valid lessons; anything else is a bug worth surfacing.
	for _, l := range res.Lessons {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("lesson %s: %w", l.ID, err)
		}
	}
	return nil
}

func printLessons(w io.Writer, res sources.Result) {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	warn := lipgloss.NewStyle().Foreground(theme.Accent)

	fmt.Fprintln(w, title.Render(fmt.Sprintf("%d lessons", len(res.Lessons))))
	for _, l := range res.Lessons {
		fmt.Fprintf(w, "  %s  %s\n", l.Title, dim.Render(l.ID))
		fmt.Fprintf(w, "    %s · %s · %d steps · %d points · ~%s\n",
			orDash(l.Subject), l.AgeBand.DisplayName(), len(l.Steps), l.TotalPoints(), l.EstimatedDuration)
		for i, s := range l.Steps {
			fmt.Fprintln(w, dim.Render(fmt.Sprintf("      %2d. [%s/%s] %s", i+1, s.Kind, s.Content.ContentKind(), stepLabel(s))))
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, warn.Render(fmt.Sprintf("%d skipped", len(res.Skipped))))
		for _, s := range res.Skipped {
			fmt.Fprintf(w, "  %s: %s\n", s.Item, s.Reason)
		}
	}
}

func stepLabel(s content.LessonStep) string {
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
