// Package timeparse turns user time input into a wall-clock time of day.
// It accepts the canonical "HH:MM" form first and falls back to natural
// language ("9am", "6:45 pm") via the when parser.
package timeparse

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/trackhq/track/internal/core/models"
)

var parser *when.Parser

func init() {
	parser = when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)
}

// TimeOfDay parses input relative to now. The date portion of any natural
// language match is discarded; sessions carry only an hour and minute.
func TimeOfDay(input string, now time.Time) (models.TimeOfDay, error) {
	if t, err := models.ParseTimeOfDay(input); err == nil {
		return t, nil
	}

	result, err := parser.Parse(input, now)
	if err != nil || result == nil {
		return models.TimeOfDay{}, fmt.Errorf("cannot understand time %q", input)
	}
	return models.TimeOfDay{Hour: result.Time.Hour(), Minute: result.Time.Minute()}, nil
}
