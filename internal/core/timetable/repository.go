package timetable

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trackhq/track/internal/core/models"
	"github.com/trackhq/track/internal/core/store"
)

// Repository owns the in-memory timetable document and is the only
// component that mutates it. Every mutating operation applies the change
// in memory, persists the whole document exactly once, then notifies the
// render callback. A mutex makes each operation atomic with respect to the
// reminder sweep running in its own goroutine.
type Repository struct {
	mu       sync.Mutex
	store    *store.Store
	doc      models.Timetable
	now      func() time.Time
	onChange func()
}

// Draft carries the caller-supplied fields for a new session. Zero-value
// fields get repository defaults.
type Draft struct {
	Title    string
	Start    models.TimeOfDay
	End      models.TimeOfDay
	Reminder int
	Type     models.SessionType
	Color    string
}

// Patch carries field changes for Update; nil pointers leave the field
// untouched.
type Patch struct {
	Title    *string
	Start    *models.TimeOfDay
	End      *models.TimeOfDay
	Reminder *int
	Type     *models.SessionType
	Color    *string
}

// New loads the persisted document (or a fresh one) and wraps it.
func New(st *store.Store) (*Repository, error) {
	doc, err := st.LoadTimetable()
	if err != nil {
		return nil, err
	}
	return &Repository{store: st, doc: doc, now: time.Now}, nil
}

// SetClock overrides the time source, for tests.
func (r *Repository) SetClock(now func() time.Time) {
	r.now = now
}

// OnChange registers a callback invoked after every persisted mutation so
// the presentation layer can refresh. The callback runs outside the lock.
func (r *Repository) OnChange(fn func()) {
	r.onChange = fn
}

// Reload replaces the in-memory document with the persisted one. Used by
// the watch daemon when another process writes the store.
func (r *Repository) Reload() error {
	doc, err := r.store.LoadTimetable()
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.doc = doc
	r.mu.Unlock()
	return nil
}

// Add fills in defaults, appends the session to day's list, and persists.
func (r *Repository) Add(day models.Day, draft Draft) (*models.Session, error) {
	if !day.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}

	s := &models.Session{
		ID:       uuid.NewString(),
		Title:    draft.Title,
		Start:    draft.Start,
		End:      draft.End,
		Reminder: draft.Reminder,
		Type:     draft.Type,
		Color:    draft.Color,
	}
	if s.Type == "" {
		s.Type = models.TypePersonal
	}
	if s.Color == "" {
		s.Color = models.RandomColor()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.doc[day] = append(r.doc[day], s)
	err := r.store.SaveTimetable(r.doc)
	snap := *s
	r.mu.Unlock()

	if err != nil {
		return nil, err
	}
	r.notify()
	return &snap, nil
}

// Update applies the patch to the session with id under day. Any change to
// Start or Reminder re-arms the reminder: ReminderTriggered resets and a
// pending snooze is cleared, so the edited session can trigger again.
func (r *Repository) Update(day models.Day, id string, patch Patch) (*models.Session, error) {
	if !day.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}

	r.mu.Lock()
	s := r.doc.Find(day, id)
	if s == nil {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s under %s", ErrNotFound, id, day)
	}

	// Re-arm on any edit touching Start or Reminder, even to the same
	// value; an edited session must always be eligible to trigger again.
	rearm := patch.Start != nil || patch.Reminder != nil
	if patch.Title != nil && *patch.Title != "" {
		s.Title = *patch.Title
	}
	if patch.Start != nil {
		s.Start = *patch.Start
	}
	if patch.End != nil {
		s.End = *patch.End
	}
	if patch.Reminder != nil {
		s.Reminder = *patch.Reminder
	}
	if patch.Type != nil {
		s.Type = *patch.Type
	}
	if patch.Color != nil && *patch.Color != "" {
		s.Color = *patch.Color
	}
	if rearm {
		s.ReminderTriggered = false
		s.SnoozeUntil = 0
	}

	err := r.store.SaveTimetable(r.doc)
	snap := *s
	r.mu.Unlock()

	if err != nil {
		return nil, err
	}
	r.notify()
	return &snap, nil
}

// Move atomically removes the session from one day and appends it to
// another, preserving ID, ReminderTriggered, and SnoozeUntil. A same-day
// move is a no-op that still persists and re-renders, matching a drag that
// ends where it started.
func (r *Repository) Move(from, to models.Day, id string) error {
	if !from.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDay, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDay, to)
	}

	r.mu.Lock()
	s := r.doc.Find(from, id)
	if s == nil {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s under %s", ErrNotFound, id, from)
	}
	if from != to {
		r.doc[from] = removeByID(r.doc[from], id)
		r.doc[to] = append(r.doc[to], s)
	}
	err := r.store.SaveTimetable(r.doc)
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.notify()
	return nil
}

// Remove deletes the session. Removing an id that does not exist is not an
// error; the operation is idempotent.
func (r *Repository) Remove(day models.Day, id string) error {
	if !day.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}

	r.mu.Lock()
	r.doc[day] = removeByID(r.doc[day], id)
	err := r.store.SaveTimetable(r.doc)
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.notify()
	return nil
}

// Snooze suppresses the session's reminder until now+minutes and clears
// ReminderTriggered so the deferred fire is allowed through. Non-positive
// minutes default to 5.
func (r *Repository) Snooze(day models.Day, id string, minutes int) error {
	if !day.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	if minutes <= 0 {
		minutes = 5
	}

	r.mu.Lock()
	s := r.doc.Find(day, id)
	if s == nil {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s under %s", ErrNotFound, id, day)
	}
	s.SnoozeUntil = r.now().Add(time.Duration(minutes) * time.Minute).UnixMilli()
	s.ReminderTriggered = false
	err := r.store.SaveTimetable(r.doc)
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.notify()
	return nil
}

// Sessions returns copies of a day's sessions, sorted by start time for
// display. Callers cannot reach the live document through the result.
func (r *Repository) Sessions(day models.Day) []models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sorted := make([]*models.Session, len(r.doc[day]))
	copy(sorted, r.doc[day])
	models.SortDay(sorted)
	out := make([]models.Session, len(sorted))
	for i, s := range sorted {
		out[i] = *s
	}
	return out
}

// Sweep runs fn over every session in day-then-list order under the
// repository lock. When any call reports a change, the document is
// persisted once after the sweep. The reminder scheduler uses this to
// apply its trigger state machine atomically against concurrent edits.
func (r *Repository) Sweep(fn func(day models.Day, s *models.Session) bool) error {
	r.mu.Lock()
	changed := false
	for _, day := range models.Week {
		for _, s := range r.doc[day] {
			if fn(day, s) {
				changed = true
			}
		}
	}
	var err error
	if changed {
		err = r.store.SaveTimetable(r.doc)
	}
	r.mu.Unlock()

	if changed && err == nil {
		r.notify()
	}
	return err
}

func (r *Repository) notify() {
	if r.onChange != nil {
		r.onChange()
	}
}

func removeByID(list []*models.Session, id string) []*models.Session {
	out := list[:0]
	for _, s := range list {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
