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
	editTitle    string
	editStart    string
	editEnd      string
	editReminder int
	editType     string
	editColor    string
)

var editCmd = &cobra.Command{
	Use:   "edit <day> <id>",
	Short: "Edit a session's fields",
	Long: `Edit a session in place. Only the flags you pass change.

Changing --start or --reminder re-arms the reminder: it becomes eligible
to fire again and any pending snooze is dropped.

Examples:
  track edit monday 3fa8 --start 09:30
  track edit fri 9c01 --reminder 15 --title "Gym (leg day)"`,
	Args: cobra.ExactArgs(2),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&editStart, "start", "", "New start time")
	editCmd.Flags().StringVar(&editEnd, "end", "", "New end time")
	editCmd.Flags().IntVar(&editReminder, "reminder", -1, "New reminder lead in minutes (0 disables)")
	editCmd.Flags().StringVar(&editType, "type", "", "New type (study, meeting, personal)")
	editCmd.Flags().StringVar(&editColor, "color", "", "New color")
}

func runEdit(cmd *cobra.Command, args []string) error {
	day, err := models.ParseDay(args[0])
	if err != nil {
		return err
	}

	_, st, repo, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	id, err := resolveID(repo, day, args[1])
	if err != nil {
		return err
	}

	var patch timetable.Patch
	now := time.Now()
	if editTitle != "" {
		patch.Title = &editTitle
	}
	if editStart != "" {
		t, err := timeparse.TimeOfDay(editStart, now)
		if err != nil {
			return err
		}
		patch.Start = &t
	}
	if editEnd != "" {
		t, err := timeparse.TimeOfDay(editEnd, now)
		if err != nil {
			return err
		}
		patch.End = &t
	}
	if editReminder >= 0 {
		patch.Reminder = &editReminder
	}
	if editType != "" {
		t := models.SessionType(editType)
		patch.Type = &t
	}
	if editColor != "" {
		patch.Color = &editColor
	}

	s, err := repo.Update(day, id, patch)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Updated %s %s  %s-%s  %s [%s]\n",
		s.Type.Icon(), s.Title, s.Start, s.End, day.Title(), shortID(s.ID))
	return nil
}
