package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trackhq/track/internal/core/models"
	"github.com/trackhq/track/internal/core/sound"
)

type tickMsg time.Time

type remindersFiredMsg struct {
	fired []firedReminder
}

type errMsg struct {
	err error
}

type firedReminder struct {
	Day     models.Day
	Session models.Session
	Preview bool
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// collectSink gathers fired reminders for the update loop to drain after
// each tick. Sound plays immediately; the visual side waits for the model
// so the modal renders inside the program.
type collectSink struct {
	mu     sync.Mutex
	fired  []firedReminder
	player *sound.Player
}

func (c *collectSink) Show(day models.Day, s models.Session) {
	c.mu.Lock()
	c.fired = append(c.fired, firedReminder{Day: day, Session: s})
	c.mu.Unlock()
}

func (c *collectSink) Play(t models.SessionType) {
	c.player.Play(t)
}

func (c *collectSink) drain() []firedReminder {
	c.mu.Lock()
	fired := c.fired
	c.fired = nil
	c.mu.Unlock()
	return fired
}
