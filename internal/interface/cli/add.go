package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/trackhq/track/internal/core/models"
	"github.com/trackhq/track/internal/core/timetable"
	"github.com/trackhq/track/pkg/timeparse"
)

var (
	addStart    string
	addEnd      string
	addReminder int
	addType     string
	addColor    string
)

var addCmd = &cobra.Command{
	Use:   "add <day> <title>",
	Short: "Add a session to a day",
	Long: `Add a session to one of the seven weekdays.

Times accept HH:MM or natural language ("9am", "6:45 pm").

Examples:
  track add monday "Standup" --start 09:00 --end 09:15 --reminder 5 --type meeting
  track add fri Gym --start 6pm --end 7pm --reminder 30`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addStart, "start", "09:00", "Start time")
	addCmd.Flags().StringVar(&addEnd, "end", "10:00", "End time")
	addCmd.Flags().IntVar(&addReminder, "reminder", 0, "Minutes before start to remind (0 = no reminder)")
	addCmd.Flags().StringVar(&addType, "type", "personal", "Session type (study, meeting, personal)")
	addCmd.Flags().StringVar(&addColor, "color", "", "Display color, hex or rgb(r,g,b) (random when omitted)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	day, err := models.ParseDay(args[0])
	if err != nil {
		return err
	}

	now := time.Now()
	start, err := timeparse.TimeOfDay(addStart, now)
	if err != nil {
		return err
	}
	end, err := timeparse.TimeOfDay(addEnd, now)
	if err != nil {
		return err
	}

	_, st, repo, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	s, err := repo.Add(day, timetable.Draft{
		Title:    args[1],
		Start:    start,
		End:      end,
		Reminder: addReminder,
		Type:     models.SessionType(addType),
		Color:    addColor,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Added %s %s  %s-%s  %s [%s]\n",
		s.Type.Icon(), s.Title, s.Start, s.End, day.Title(), shortID(s.ID))
	if s.Reminder > 0 {
		fmt.Printf("  ⏰ reminds %d minutes before start\n", s.Reminder)
	}
	return nil
}
