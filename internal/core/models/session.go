package models

import (
	"errors"
	"time"
)

// SessionType drives icon, sound selection, and modal animation. It is a
// small closed set plus a catch-all default; unknown values are kept as-is
// and treated as the default everywhere a capability is looked up.
type SessionType string

const (
	TypeStudy    SessionType = "study"
	TypeMeeting  SessionType = "meeting"
	TypePersonal SessionType = "personal"
)

// Icon returns the display glyph for the type.
func (t SessionType) Icon() string {
	switch t {
	case TypeStudy:
		return "🎓"
	case TypeMeeting:
		return "💼"
	case TypePersonal:
		return "❤️"
	default:
		return "🗓️"
	}
}

// Session is one scheduled event occupying a time range on one day.
type Session struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start TimeOfDay `json:"start"`
	// End is display-only; it is intentionally not validated against Start.
	End      TimeOfDay   `json:"end"`
	Reminder int         `json:"reminder"`
	Type     SessionType `json:"type"`
	Color    string      `json:"color"`
	// ReminderTriggered is true once the reminder has fired for the current
	// scheduled instance. Reset whenever Start or Reminder is edited, or a
	// snooze is requested.
	ReminderTriggered bool `json:"reminderTriggered"`
	// SnoozeUntil is epoch milliseconds; zero means not snoozed. While in
	// the future it suppresses firing; once reached, the next sweep fires
	// unconditionally and clears it.
	SnoozeUntil int64 `json:"snoozeUntil,omitempty"`
}

// Validate checks the fields a caller must supply.
func (s *Session) Validate() error {
	if s.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

// Snoozed reports whether the session is suppressed at now.
func (s *Session) Snoozed(now time.Time) bool {
	return s.SnoozeUntil != 0 && now.UnixMilli() < s.SnoozeUntil
}

// SnoozeExpired reports whether a pending snooze has come due at now.
func (s *Session) SnoozeExpired(now time.Time) bool {
	return s.SnoozeUntil != 0 && now.UnixMilli() >= s.SnoozeUntil
}

// TriggerMinute returns the minute-of-day at which the reminder should
// fire: start minus the reminder lead. May be negative when the lead
// crosses midnight; such a reminder never matches a wall clock and is
// silently unreachable.
func (s *Session) TriggerMinute() int {
	return s.Start.Minutes() - s.Reminder
}

// NextTrigger returns the next wall-clock instant, at or after now, whose
// minute-of-day equals the trigger minute. The model carries no date, so
// the window recurs daily. ok is false when no reminder is configured or
// the trigger minute is unreachable.
func (s *Session) NextTrigger(now time.Time) (time.Time, bool) {
	if s.Reminder <= 0 {
		return time.Time{}, false
	}
	target := s.TriggerMinute()
	if target < 0 {
		return time.Time{}, false
	}
	at := time.Date(now.Year(), now.Month(), now.Day(), target/60, target%60, 0, 0, now.Location())
	if at.Before(now.Truncate(time.Minute)) {
		at = at.AddDate(0, 0, 1)
	}
	return at, true
}
