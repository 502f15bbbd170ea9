package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackhq/track/internal/core/models"
)

var removeCmd = &cobra.Command{
	Use:     "remove <day> <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a session",
	Long: `Delete a session from a day. Removing an id that no longer exists
is not an error.

Example:
  track rm monday 3fa8`,
	Args: cobra.ExactArgs(2),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	day, err := models.ParseDay(args[0])
	if err != nil {
		return err
	}

	_, st, repo, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	// Prefix resolution failing just means it's already gone; removal of a
	// missing id is an explicit no-op.
	id, err := resolveID(repo, day, args[1])
	if err != nil {
		fmt.Printf("Nothing to remove under %s\n", day.Title())
		return nil
	}
	if err := repo.Remove(day, id); err != nil {
		return err
	}

	fmt.Printf("✓ Removed %s from %s\n", shortID(id), day.Title())
	return nil
}
