package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/progress"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build and profile format versions",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "learnpath", version)
		fmt.Fprintln(out, "profile format", progress.FormatVersion)
	},
}
