package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trackhq/track/internal/core/models"
	"github.com/trackhq/track/internal/core/timetable"
	"github.com/trackhq/track/pkg/timeparse"
)

type flowKind int

const (
	flowAdd flowKind = iota
	flowEdit
	flowSnooze
)

// promptFlow walks the user through a sequence of single-line prompts.
// Input is collected one field at a time; esc abandons the whole flow.
type promptFlow struct {
	kind    flowKind
	day     models.Day
	id      string
	steps   []promptStep
	idx     int
	input   textinput.Model
	errText string

	draft     timetable.Draft
	patch     timetable.Patch
	snoozeMin int
}

type promptStep struct {
	label       string
	placeholder string
	set         func(f *promptFlow, val string) error
}

func newInput() textinput.Model {
	in := textinput.New()
	in.CharLimit = 64
	in.Width = 32
	return in
}

func newAddFlow(day models.Day) *promptFlow {
	f := &promptFlow{kind: flowAdd, day: day, input: newInput()}
	f.steps = []promptStep{
		{"Title", "Standup", func(f *promptFlow, v string) error {
			if v == "" {
				return fmt.Errorf("title is required")
			}
			f.draft.Title = v
			return nil
		}},
		{"Start (HH:MM)", "09:00", func(f *promptFlow, v string) error {
			return setTime(&f.draft.Start, v, "09:00")
		}},
		{"End (HH:MM)", "10:00", func(f *promptFlow, v string) error {
			return setTime(&f.draft.End, v, "10:00")
		}},
		{"Reminder minutes before (0 = none)", "10", func(f *promptFlow, v string) error {
			f.draft.Reminder = parseMinutes(v, 0)
			return nil
		}},
		{"Type (study, meeting, personal)", "personal", func(f *promptFlow, v string) error {
			f.draft.Type = models.SessionType(v)
			return nil
		}},
		{"Color (blank = random)", "rgb(120,180,240)", func(f *promptFlow, v string) error {
			f.draft.Color = v
			return nil
		}},
	}
	return f
}

func newEditFlow(day models.Day, s models.Session) *promptFlow {
	f := &promptFlow{kind: flowEdit, day: day, id: s.ID, input: newInput()}
	f.steps = []promptStep{
		{"Title", s.Title, func(f *promptFlow, v string) error {
			if v != "" {
				f.patch.Title = &v
			}
			return nil
		}},
		{"Start (blank = keep " + s.Start.String() + ")", s.Start.String(), func(f *promptFlow, v string) error {
			if v == "" {
				return nil
			}
			t, err := timeparse.TimeOfDay(v, time.Now())
			if err != nil {
				return err
			}
			f.patch.Start = &t
			return nil
		}},
		{"End (blank = keep " + s.End.String() + ")", s.End.String(), func(f *promptFlow, v string) error {
			if v == "" {
				return nil
			}
			t, err := timeparse.TimeOfDay(v, time.Now())
			if err != nil {
				return err
			}
			f.patch.End = &t
			return nil
		}},
		{fmt.Sprintf("Reminder minutes (blank = keep %d)", s.Reminder), strconv.Itoa(s.Reminder), func(f *promptFlow, v string) error {
			if v == "" {
				return nil
			}
			n := parseMinutes(v, s.Reminder)
			f.patch.Reminder = &n
			return nil
		}},
		{"Type (blank = keep " + string(s.Type) + ")", string(s.Type), func(f *promptFlow, v string) error {
			if v != "" {
				t := models.SessionType(v)
				f.patch.Type = &t
			}
			return nil
		}},
		{"Color (blank = keep)", s.Color, func(f *promptFlow, v string) error {
			if v != "" {
				f.patch.Color = &v
			}
			return nil
		}},
	}
	return f
}

func newSnoozeFlow(day models.Day, id string, defaultMin int) *promptFlow {
	f := &promptFlow{kind: flowSnooze, day: day, id: id, input: newInput()}
	f.steps = []promptStep{
		{fmt.Sprintf("Snooze minutes (blank = %d)", defaultMin), strconv.Itoa(defaultMin), func(f *promptFlow, v string) error {
			f.snoozeMin = parseMinutes(v, defaultMin)
			return nil
		}},
	}
	return f
}

func setTime(dst *models.TimeOfDay, v, fallback string) error {
	if v == "" {
		v = fallback
	}
	t, err := timeparse.TimeOfDay(v, time.Now())
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

// parseMinutes is lenient: unparsable or negative input falls back to the
// default. Zero passes through, it means "no reminder".
func parseMinutes(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func (f *promptFlow) focus() tea.Cmd {
	step := f.steps[f.idx]
	f.input.SetValue("")
	f.input.Placeholder = step.placeholder
	f.input.Focus()
	return textinput.Blink
}

// submit consumes the current input. done is true once every step has run.
func (f *promptFlow) submit() (done bool, err error) {
	if err := f.steps[f.idx].set(f, f.input.Value()); err != nil {
		return false, err
	}
	f.errText = ""
	f.idx++
	return f.idx >= len(f.steps), nil
}

func (f *promptFlow) apply(repo *timetable.Repository) error {
	switch f.kind {
	case flowAdd:
		_, err := repo.Add(f.day, f.draft)
		return err
	case flowEdit:
		_, err := repo.Update(f.day, f.id, f.patch)
		return err
	default:
		return repo.Snooze(f.day, f.id, f.snoozeMin)
	}
}

func (f *promptFlow) doneStatus() string {
	switch f.kind {
	case flowAdd:
		return fmt.Sprintf("Added %q to %s", f.draft.Title, f.day.Title())
	case flowEdit:
		return "Session updated"
	default:
		return fmt.Sprintf("Snoozed for %d minutes", f.snoozeMin)
	}
}

func (f *promptFlow) label() string {
	return f.steps[f.idx].label
}
