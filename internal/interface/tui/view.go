package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/trackhq/track/internal/core/models"
	"github.com/trackhq/track/internal/core/reminder"
)

func (m Model) View() string {
	switch m.mode {
	case modalView:
		return m.modalRender()
	case promptView:
		return m.promptRender()
	default:
		return m.gridRender()
	}
}

func (m Model) gridRender() string {
	header := m.theme.Header.Render("track — weekly timetable") +
		m.theme.Help.Render(fmt.Sprintf("  (%s theme)", m.theme.Name))

	colWidth := 18
	if m.width > 0 {
		if w := m.width/len(models.Week) - 2; w > 12 {
			colWidth = w
		}
	}

	now := time.Now()
	cols := make([]string, 0, len(models.Week))
	for i, day := range models.Week {
		cols = append(cols, m.dayColumn(i, day, colWidth, now))
	}
	grid := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	help := m.theme.Help.Render(
		"←→/hl day · ↑↓/kj session · a add · e edit · d delete · s snooze · " +
			"H/L move · +/- resize · enter preview · y copy · t theme · q quit")

	parts := []string{header, "", grid}
	if m.status != "" {
		parts = append(parts, m.theme.Status.Render(m.status))
	}
	parts = append(parts, help)
	return strings.Join(parts, "\n")
}

func (m Model) dayColumn(idx int, day models.Day, width int, now time.Time) string {
	var b strings.Builder
	b.WriteString(m.theme.DayTitle.Render(day.Title()))
	b.WriteString("\n")

	sessions := m.week[day]
	if len(sessions) == 0 {
		b.WriteString(m.theme.Help.Render("—"))
	}
	for i, s := range sessions {
		card := lipgloss.NewStyle().
			Background(lipgloss.Color(models.Hex(s.Color))).
			Foreground(lipgloss.Color(models.ContrastColor(s.Color))).
			Width(width - 2).
			Padding(0, 1)

		line := fmt.Sprintf("%s %s\n%s-%s", s.Type.Icon(), s.Title, s.Start, s.End)
		if s.Reminder > 0 {
			line += fmt.Sprintf(" ⏰%dm", s.Reminder)
		}
		if s.Snoozed(now) {
			line += " 💤"
		}

		rendered := card.Render(line)
		if idx == m.dayIdx && i == m.selIdx {
			rendered = m.theme.Selected.Width(width).Render(line)
		}
		b.WriteString(rendered)
		b.WriteString("\n")
	}

	box := m.theme.DayBox
	if idx == m.dayIdx {
		box = box.BorderForeground(m.theme.Header.GetForeground())
	}
	return box.Width(width).Render(b.String())
}

func (m Model) modalRender() string {
	if m.modal == nil {
		return m.gridRender()
	}
	s := m.modal.Session

	title := "Reminder!"
	body := reminder.Message(m.cfg.ReminderTemplate, s)
	if m.modal.Preview {
		title = "Reminder (Test)"
		body = fmt.Sprintf("This is a test reminder for %q", s.Title)
	}

	content := fmt.Sprintf("%s %s\n\n%s\n%s - %s (%s)",
		s.Type.Icon(), title, body, s.Start, s.End, m.modal.Day.Title())

	hint := "\n\n" + m.theme.ModalHint.Render("(d)ismiss · (s)nooze")
	if m.modal.Preview {
		hint = "\n\n" + m.theme.ModalHint.Render("(d)ismiss")
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		Padding(1, 3).
		Background(lipgloss.Color(models.Hex(s.Color))).
		Foreground(lipgloss.Color(models.ContrastColor(s.Color))).
		Render(content + hint)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return modal
}

func (m Model) promptRender() string {
	if m.prompt == nil {
		return m.gridRender()
	}
	var b strings.Builder
	b.WriteString(m.theme.Header.Render(m.prompt.label()))
	b.WriteString("\n\n")
	b.WriteString(m.prompt.input.View())
	if m.prompt.errText != "" {
		b.WriteString("\n" + m.theme.Status.Render("⚠ "+m.prompt.errText))
	}
	b.WriteString("\n\n" + m.theme.Help.Render("enter accept · esc cancel"))

	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
