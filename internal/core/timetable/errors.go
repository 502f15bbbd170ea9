package timetable

import "errors"

var (
	// ErrInvalidDay means a day key outside the seven recognized weekdays.
	// Trusted UI paths never produce it; fail loudly when it shows up.
	ErrInvalidDay = errors.New("invalid day")

	// ErrNotFound means the id has no session under the given day, usually
	// an edit racing with an earlier delete.
	ErrNotFound = errors.New("session not found")
)
