package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trackhq/track/internal/core/config"
	"github.com/trackhq/track/internal/core/models"
	"github.com/trackhq/track/internal/core/reminder"
	"github.com/trackhq/track/internal/core/sound"
	"github.com/trackhq/track/internal/core/store"
	"github.com/trackhq/track/internal/core/timetable"
)

type viewMode int

const (
	gridView viewMode = iota
	modalView
	promptView
)

// endStep is the resize quantum: growing or shrinking a session end time
// moves in 15-minute increments.
const endStep = 15

type Model struct {
	cfg   *config.Config
	st    *store.Store
	repo  *timetable.Repository
	sched *reminder.Scheduler
	sink  *collectSink

	theme  Theme
	mode   viewMode
	width  int
	height int

	// Selection: which day column and which session within it
	dayIdx int
	selIdx int
	week   map[models.Day][]models.Session

	modal  *firedReminder
	prompt *promptFlow
	status string
	err    error
}

func New(cfg *config.Config, st *store.Store, repo *timetable.Repository) Model {
	sink := &collectSink{player: &sound.Player{Dir: cfg.SoundsDir, Files: cfg.Sounds}}
	themeName, _ := st.LoadTheme()

	m := Model{
		cfg:   cfg,
		st:    st,
		repo:  repo,
		sched: reminder.New(repo, sink, cfg.PollInterval),
		sink:  sink,
		theme: themeByName(themeName),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	// Sweep once at startup so overdue snoozes surface immediately
	return m.tickNow()
}

func (m *Model) refresh() {
	week := make(map[models.Day][]models.Session, len(models.Week))
	for _, day := range models.Week {
		week[day] = m.repo.Sessions(day)
	}
	m.week = week
	m.clampSelection()
}

func (m *Model) clampSelection() {
	if m.dayIdx < 0 {
		m.dayIdx = 0
	}
	if m.dayIdx >= len(models.Week) {
		m.dayIdx = len(models.Week) - 1
	}
	n := len(m.week[m.day()])
	if m.selIdx >= n {
		m.selIdx = n - 1
	}
	if m.selIdx < 0 {
		m.selIdx = 0
	}
}

func (m Model) day() models.Day {
	return models.Week[m.dayIdx]
}

func (m Model) selected() *models.Session {
	sessions := m.week[m.day()]
	if len(sessions) == 0 || m.selIdx >= len(sessions) {
		return nil
	}
	s := sessions[m.selIdx]
	return &s
}

// tickNow runs one scheduler sweep off the update loop and reports what
// fired. The repository lock keeps the sweep atomic against edits.
func (m Model) tickNow() tea.Cmd {
	sched, sink := m.sched, m.sink
	return func() tea.Msg {
		if err := sched.Tick(time.Now()); err != nil {
			return errMsg{err}
		}
		return remindersFiredMsg{fired: sink.drain()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, m.tickNow()

	case remindersFiredMsg:
		m.refresh()
		if len(msg.fired) > 0 {
			// Last-wins per tick: each fire replaces the visible modal
			last := msg.fired[len(msg.fired)-1]
			m.modal = &last
			m.mode = modalView
		}
		return m, tick(m.sched.Interval())

	case errMsg:
		m.err = msg.err
		m.status = fmt.Sprintf("⚠ %v (edits may not persist)", msg.err)
		return m, tick(m.sched.Interval())

	case tea.KeyMsg:
		switch m.mode {
		case modalView:
			return m.updateModal(msg)
		case promptView:
			return m.updatePrompt(msg)
		default:
			return m.updateGrid(msg)
		}
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "left", "h":
		m.dayIdx--
		m.clampSelection()
	case "right", "l":
		m.dayIdx++
		m.clampSelection()
	case "up", "k":
		m.selIdx--
		m.clampSelection()
	case "down", "j":
		m.selIdx++
		m.clampSelection()

	case "shift+left", "H":
		return m.moveSelected(-1)
	case "shift+right", "L":
		return m.moveSelected(1)

	case "+", "=":
		return m.resizeSelected(endStep)
	case "-", "_":
		return m.resizeSelected(-endStep)

	case "a":
		m.prompt = newAddFlow(m.day())
		m.mode = promptView
		return m, m.prompt.focus()
	case "e":
		if s := m.selected(); s != nil {
			m.prompt = newEditFlow(m.day(), *s)
			m.mode = promptView
			return m, m.prompt.focus()
		}
	case "s":
		if s := m.selected(); s != nil {
			m.prompt = newSnoozeFlow(m.day(), s.ID, m.cfg.DefaultSnoozeMin)
			m.mode = promptView
			return m, m.prompt.focus()
		}
	case "d", "x":
		if s := m.selected(); s != nil {
			if err := m.repo.Remove(m.day(), s.ID); err != nil {
				m.status = fmt.Sprintf("⚠ %v", err)
			} else {
				m.status = fmt.Sprintf("Removed %q", s.Title)
			}
			m.refresh()
		}

	case "enter":
		// Preview the reminder modal without touching trigger state
		if s := m.selected(); s != nil {
			m.modal = &firedReminder{Day: m.day(), Session: *s, Preview: true}
			m.mode = modalView
		}

	case "y":
		if s := m.selected(); s != nil {
			line := fmt.Sprintf("%s %s %s-%s (%s)", s.Type.Icon(), s.Title, s.Start, s.End, m.day().Title())
			if err := clipboard.WriteAll(line); err != nil {
				m.status = "⚠ clipboard unavailable"
			} else {
				m.status = "Copied to clipboard"
			}
		}

	case "t":
		if m.theme.Name == "dark" {
			m.theme = lightTheme()
		} else {
			m.theme = darkTheme()
		}
		if err := m.st.SaveTheme(m.theme.Name); err != nil {
			m.status = fmt.Sprintf("⚠ theme not saved: %v", err)
		}

	case "r":
		m.refresh()
	}
	return m, nil
}

func (m Model) moveSelected(dir int) (tea.Model, tea.Cmd) {
	s := m.selected()
	if s == nil {
		return m, nil
	}
	target := m.dayIdx + dir
	if target < 0 || target >= len(models.Week) {
		return m, nil
	}
	if err := m.repo.Move(m.day(), models.Week[target], s.ID); err != nil {
		m.status = fmt.Sprintf("⚠ %v", err)
		return m, nil
	}
	m.dayIdx = target
	m.refresh()
	// Follow the moved session in its new column
	for i, moved := range m.week[m.day()] {
		if moved.ID == s.ID {
			m.selIdx = i
			break
		}
	}
	return m, nil
}

func (m Model) resizeSelected(deltaMin int) (tea.Model, tea.Cmd) {
	s := m.selected()
	if s == nil {
		return m, nil
	}
	end := s.End.AddMinutes(deltaMin)
	// End-only edit: the reminder stays armed exactly as it was
	if _, err := m.repo.Update(m.day(), s.ID, timetable.Patch{End: &end}); err != nil {
		m.status = fmt.Sprintf("⚠ %v", err)
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "d", "esc", "enter", "q":
		// Dismiss: the trigger flag stays set, nothing else changes
		m.modal = nil
		m.mode = gridView
	case "s":
		if m.modal != nil && !m.modal.Preview {
			m.prompt = newSnoozeFlow(m.modal.Day, m.modal.Session.ID, m.cfg.DefaultSnoozeMin)
			m.modal = nil
			m.mode = promptView
			return m, m.prompt.focus()
		}
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = nil
		m.mode = gridView
		return m, nil
	case "enter":
		done, err := m.prompt.submit()
		if err != nil {
			m.prompt.errText = err.Error()
			return m, nil
		}
		if !done {
			return m, m.prompt.focus()
		}
		if err := m.prompt.apply(m.repo); err != nil {
			m.status = fmt.Sprintf("⚠ %v", err)
		} else {
			m.status = m.prompt.doneStatus()
		}
		m.prompt = nil
		m.mode = gridView
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}
