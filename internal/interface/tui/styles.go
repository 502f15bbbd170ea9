package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the dark/light palette applied to the chrome. Session cards keep
// their own stored colors regardless of theme.
type Theme struct {
	Name      string
	Header    lipgloss.Style
	DayTitle  lipgloss.Style
	DayBox    lipgloss.Style
	Selected  lipgloss.Style
	Status    lipgloss.Style
	Help      lipgloss.Style
	ModalHint lipgloss.Style
}

func darkTheme() Theme {
	return Theme{
		Name: "dark",
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		DayTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("111")),
		DayBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("120")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		ModalHint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")),
	}
}

func lightTheme() Theme {
	return Theme{
		Name: "light",
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("161")),
		DayTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("25")),
		DayBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("250")).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("161")).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		ModalHint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
	}
}

func themeByName(name string) Theme {
	if name == "dark" {
		return darkTheme()
	}
	return lightTheme()
}
