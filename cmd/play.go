package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/app"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

var playCmd = &cobra.Command{
	Use:   "play [content-file]",
	Short: "Open the lesson player",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().String("grade", "", "Grade used to pick the menu palette, e.g. K, 4, 11")
}

// runPlay loads lessons from the configured source and launches the TUI.
func runPlay(cmd *cobra.Command, args []string) error {
	d, err := loadDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.loadLessons(args)
	if err != nil {
		return err
	}
	engine, err := d.engine(cmd)
	if err != nil {
		return err
	}

	band := theme.DefaultBand
	if grade, _ := cmd.Flags().GetString("grade"); grade != "" {
		band = theme.BandForGrade(grade)
	}

	return app.Run(cmd.Context(), app.Options{
		Lessons: res.Lessons,
		Engine:  engine,
		Band:    band,
		Logger:  d.log,
	})
}
