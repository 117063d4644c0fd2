package cmd

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		engine, err := d.engine(cmd)
		if err != nil {
			return err
		}
		printStats(cmd, engine.Profile(cmd.Context()))
		return nil
	},
}

func printStats(cmd *cobra.Command, p progress.UserProfile) {
	out := cmd.OutOrStdout()
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(16)

	fmt.Fprintln(out, title.Render(p.Username))

	into, span := progress.LevelProgress(p.TotalXP)
	bar := components.ProgressBar{Label: fmt.Sprintf("Lv %d", p.CurrentLevel), Value: into, Total: span, Width: 40}
	fmt.Fprintln(out, "  "+bar.View())

	row := func(k, v string) {
		fmt.Fprintf(out, "  %s%s\n", label.Render(k), v)
	}
	row("Total XP", fmt.Sprint(p.TotalXP))
	row("Streak", fmt.Sprintf("%d days (longest %d)", p.CurrentStreak, p.LongestStreak))
	row("Lessons", fmt.Sprint(p.LessonsCompleted))
	row("Average score", fmt.Sprintf("%.0f%%", p.AverageScore()*100))
	row("Study time", p.TotalStudyTime.Round(time.Second).String())
	if p.LastStudyDate != nil {
		row("Last studied", p.LastStudyDate.Format("Jan 02, 2006"))
	}

	if len(p.Achievements) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, title.Render("Achievements"))
	for _, a := range p.Achievements {
		fmt.Fprintf(out, "  %s %s  %s\n", a.Icon(), a.DisplayName(),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(a.Description()))
	}
}
