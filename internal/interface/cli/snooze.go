package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/trackhq/track/internal/core/models"
)

var snoozeCmd = &cobra.Command{
	Use:   "snooze <day> <id> [minutes]",
	Short: "Snooze a session's reminder",
	Long: `Suppress a session's reminder for a number of minutes; when the
snooze expires the reminder fires again. Minutes that are missing, zero,
or unparsable default to the configured snooze (5 minutes out of the box).

Example:
  track snooze monday 3fa8 10`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runSnooze,
}

func init() {
	rootCmd.AddCommand(snoozeCmd)
}

func runSnooze(cmd *cobra.Command, args []string) error {
	day, err := models.ParseDay(args[0])
	if err != nil {
		return err
	}

	cfg, st, repo, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	id, err := resolveID(repo, day, args[1])
	if err != nil {
		return err
	}

	minutes := cfg.DefaultSnoozeMin
	if len(args) == 3 {
		// Bad or non-positive input falls back to the default
		if n, err := strconv.Atoi(args[2]); err == nil && n > 0 {
			minutes = n
		}
	}

	if err := repo.Snooze(day, id, minutes); err != nil {
		return err
	}

	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	fmt.Printf("💤 Snoozed %s for %d minutes (until %s)\n",
		shortID(id), minutes, until.Format("15:04"))
	return nil
}
