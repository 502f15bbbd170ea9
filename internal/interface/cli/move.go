package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackhq/track/internal/core/models"
)

var moveCmd = &cobra.Command{
	Use:   "move <from-day> <to-day> <id>",
	Short: "Move a session to another day",
	Long: `Move a session from one day to another. The session keeps its id,
trigger state, and any pending snooze.

Example:
  track move monday wednesday 3fa8`,
	Args: cobra.ExactArgs(3),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	from, err := models.ParseDay(args[0])
	if err != nil {
		return err
	}
	to, err := models.ParseDay(args[1])
	if err != nil {
		return err
	}

	_, st, repo, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	id, err := resolveID(repo, from, args[2])
	if err != nil {
		return err
	}
	if err := repo.Move(from, to, id); err != nil {
		return err
	}

	fmt.Printf("✓ Moved %s from %s to %s\n", shortID(id), from.Title(), to.Title())
	return nil
}
