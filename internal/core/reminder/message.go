package reminder

import (
	"fmt"

	"github.com/cbroglie/mustache"

	"github.com/trackhq/track/internal/core/models"
)

// Message renders the reminder body from a mustache template. The template
// sees title, start, end, reminder, and type. A broken template falls back
// to a plain sentence rather than suppressing the notification.
func Message(template string, s models.Session) string {
	data := map[string]interface{}{
		"title":    s.Title,
		"start":    s.Start.String(),
		"end":      s.End.String(),
		"reminder": s.Reminder,
		"type":     string(s.Type),
	}
	body, err := mustache.Render(template, data)
	if err != nil || body == "" {
		return fmt.Sprintf("%s starts in %d minutes!", s.Title, s.Reminder)
	}
	return body
}
