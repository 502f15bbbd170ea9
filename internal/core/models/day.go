package models

import (
	"fmt"
	"strings"
)

// Day is one of the seven fixed weekday keys of the timetable document.
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// Week lists the days in display order. Iteration over the timetable always
// follows this order so sweeps and rendering are deterministic.
var Week = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDay normalizes user input ("Mon", "monday", "MONDAY") to a Day.
func ParseDay(s string) (Day, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	for _, d := range Week {
		if in == string(d) || (len(in) >= 3 && strings.HasPrefix(string(d), in)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%q is not a weekday", s)
}

// Valid reports whether d is one of the seven recognized keys.
func (d Day) Valid() bool {
	for _, day := range Week {
		if d == day {
			return true
		}
	}
	return false
}

// Title returns the capitalized display name ("Monday").
func (d Day) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}
