package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme [dark|light]",
	Short: "Show or set the color theme",
	Long: `The theme preference persists independently of the timetable and
applies to the interactive week view.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	_, st, _, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if len(args) == 0 {
		theme, err := st.LoadTheme()
		if err != nil {
			return err
		}
		if theme == "" {
			theme = "light (default)"
		}
		fmt.Printf("Theme: %s\n", theme)
		return nil
	}

	theme := args[0]
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("theme must be dark or light, got %q", theme)
	}
	if err := st.SaveTheme(theme); err != nil {
		return err
	}
	fmt.Printf("✓ Theme set to %s\n", theme)
	return nil
}
