package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock hour and minute with no date or timezone
// component. It serializes as "HH:MM" to match the persisted document.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (also accepts "H:MM"). Anything with
// trailing text, like "6:45 pm", is rejected so callers can fall back to a
// natural-language parser.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: out of range", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Minutes returns the minute-of-day (hour*60 + minute).
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// AddMinutes returns the time-of-day m minutes later, wrapping at
// midnight. The resize gesture relies on the wrap.
func (t TimeOfDay) AddMinutes(m int) TimeOfDay {
	total := t.Minutes() + m
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
	}
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
