package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "learnpath",
	Short: "Terminal lesson player",
	Long: `LearnPath plays lessons imported from course rosters, scraped course
bundles or the built-in demo set, and tracks XP, levels, streaks and
achievements for the learner.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEARNPATH_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/learnpath/config.yaml)")
	rootCmd.PersistentFlags().String("source", "", "Content source: roster, scraped or fixture (overrides config)")
	rootCmd.Flags().String("grade", "", "Grade used to pick the menu palette, e.g. K, 4, 11")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then store.path from config, then LEARNPATH_DB env var, then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
