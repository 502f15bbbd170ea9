package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath      string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "track",
	Short: "Weekly timetable with reminders",
	Long: `track - a weekly timetable that reminds you before sessions start

Sessions live on a seven-day grid, persist locally, and fire a snoozable
reminder a configurable number of minutes before they begin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to the interactive week view
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default ~/.config/track/timetable.db)")
}
