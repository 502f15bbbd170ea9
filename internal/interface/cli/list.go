package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/trackhq/track/internal/core/models"
)

var listDay string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the week's sessions",
	Long: `List sessions for the whole week, or one day with --day.

Sessions print in start-time order with their short id, type icon, time
range, and reminder lead.

Examples:
  track list
  track list --day monday`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listDay, "day", "", "Only show one day")
}

func runList(cmd *cobra.Command, args []string) error {
	days := models.Week
	if listDay != "" {
		day, err := models.ParseDay(listDay)
		if err != nil {
			return err
		}
		days = []models.Day{day}
	}

	_, st, repo, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	dayStyle := lipgloss.NewStyle().Bold(true).Underline(true)
	now := time.Now()
	empty := true

	for _, day := range days {
		sessions := repo.Sessions(day)
		if len(sessions) == 0 && listDay == "" {
			continue
		}
		empty = false

		fmt.Println(dayStyle.Render(day.Title()))
		if len(sessions) == 0 {
			fmt.Println("  (no sessions)")
		}
		for _, s := range sessions {
			chip := lipgloss.NewStyle().
				Background(lipgloss.Color(models.Hex(s.Color))).
				Foreground(lipgloss.Color(models.ContrastColor(s.Color))).
				Padding(0, 1)
			line := fmt.Sprintf("%s %s  %s-%s", s.Type.Icon(), s.Title, s.Start, s.End)
			fmt.Printf("  %s  [%s]", chip.Render(line), shortID(s.ID))
			if s.Reminder > 0 {
				fmt.Printf("  ⏰ %dm", s.Reminder)
				if at, ok := s.NextTrigger(now); ok && !s.ReminderTriggered {
					fmt.Printf(" (fires %s)", humanize.Time(at))
				}
			}
			if s.Snoozed(now) {
				until := time.UnixMilli(s.SnoozeUntil)
				fmt.Printf("  💤 until %s", until.Format("15:04"))
			}
			fmt.Println()
		}
		fmt.Println()
	}

	if empty {
		fmt.Println("No sessions yet. Add one with: track add monday \"Standup\" --start 09:00")
	}
	return nil
}
