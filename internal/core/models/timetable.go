package models

import "sort"

// Timetable is the root document: each of the seven day keys maps to that
// day's sessions. It is the sole persisted state; serialization is the JSON
// object {monday: [...], ..., sunday: [...]}.
type Timetable map[Day][]*Session

// NewTimetable returns a fresh empty document with all seven keys present,
// each mapped to an empty (non-nil) list so it serializes as [].
func NewTimetable() Timetable {
	tt := make(Timetable, len(Week))
	for _, d := range Week {
		tt[d] = []*Session{}
	}
	return tt
}

// Normalize drops unknown day keys and fills in missing ones, so a loaded
// document always has exactly the seven weekday lists.
func (tt Timetable) Normalize() {
	for d := range tt {
		if !d.Valid() {
			delete(tt, d)
		}
	}
	for _, d := range Week {
		if tt[d] == nil {
			tt[d] = []*Session{}
		}
	}
}

// Find returns the session with the given id under day, or nil.
func (tt Timetable) Find(day Day, id string) *Session {
	for _, s := range tt[day] {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// SortDay orders a day's sessions by start time. Ordering is a display
// concern; storage keeps insertion order.
func SortDay(sessions []*Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Start.Minutes() < sessions[j].Start.Minutes()
	})
}
