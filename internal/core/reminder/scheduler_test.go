package reminder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/trackhq/track/internal/core/models"
	"github.com/trackhq/track/internal/core/store"
	"github.com/trackhq/track/internal/core/timetable"
)

type recordingSink struct {
	shown  []models.Session
	played []models.SessionType
}

func (r *recordingSink) Show(day models.Day, s models.Session) {
	r.shown = append(r.shown, s)
}

func (r *recordingSink) Play(t models.SessionType) {
	r.played = append(r.played, t)
}

func newFixture(t *testing.T) (*timetable.Repository, *store.Store, *recordingSink, *Scheduler) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "timetable.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })

	repo, err := timetable.New(st)
	if err != nil {
		t.Fatal(err)
	}
	sink := &recordingSink{}
	return repo, st, sink, New(repo, sink, DefaultInterval)
}

// at builds a wall clock instant on an arbitrary fixed date; only the
// minute-of-day matters to the trigger logic.
func at(hour, min, sec int) time.Time {
	return time.Date(2026, 1, 5, hour, min, sec, 0, time.Local)
}

func addSession(t *testing.T, repo *timetable.Repository, draft timetable.Draft) *models.Session {
	t.Helper()
	s, err := repo.Add(models.Monday, draft)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFireOnExactTriggerMinute(t *testing.T) {
	repo, st, sink, sched := newFixture(t)
	addSession(t, repo, timetable.Draft{
		Title:    "Standup",
		Start:    models.TimeOfDay{Hour: 9},
		Reminder: 10,
	})

	// 08:50 is start minus reminder: fire
	if err := sched.Tick(at(8, 50, 0)); err != nil {
		t.Fatal(err)
	}
	if len(sink.shown) != 1 {
		t.Fatalf("shown = %d, want 1", len(sink.shown))
	}
	if len(sink.played) != 1 {
		t.Fatalf("played = %d, want 1", len(sink.played))
	}

	// Second tick within the same minute: already triggered, no re-fire
	if err := sched.Tick(at(8, 50, 45)); err != nil {
		t.Fatal(err)
	}
	if len(sink.shown) != 1 {
		t.Errorf("same-minute re-tick fired again: shown = %d", len(sink.shown))
	}

	// Next minute: equality no longer holds
	if err := sched.Tick(at(8, 51, 0)); err != nil {
		t.Fatal(err)
	}
	if len(sink.shown) != 1 {
		t.Errorf("tick past the window fired: shown = %d", len(sink.shown))
	}

	// The trigger flag is durable
	tt, err := st.LoadTimetable()
	if err != nil {
		t.Fatal(err)
	}
	if !tt[models.Monday][0].ReminderTriggered {
		t.Error("ReminderTriggered not persisted after firing")
	}
}

func TestNoFireBeforeOrAfterWindow(t *testing.T) {
	repo, _, sink, sched := newFixture(t)
	addSession(t, repo, timetable.Draft{
		Title:    "Standup",
		Start:    models.TimeOfDay{Hour: 9},
		Reminder: 10,
	})

	for _, tick := range []time.Time{at(8, 49, 0), at(8, 51, 0), at(9, 0, 0)} {
		if err := sched.Tick(tick); err != nil {
			t.Fatal(err)
		}
	}
	if len(sink.shown) != 0 {
		t.Errorf("fired outside the trigger minute: shown = %d", len(sink.shown))
	}
}

func TestNoReminderConfigured(t *testing.T) {
	repo, _, sink, sched := newFixture(t)
	addSession(t, repo, timetable.Draft{
		Title: "No lead",
		Start: models.TimeOfDay{Hour: 9},
	})

	if err := sched.Tick(at(9, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if len(sink.shown) != 0 {
		t.Error("session without a reminder fired")
	}
}

func TestSnoozeSuppressesThenForcesFire(t *testing.T) {
	repo, st, sink, sched := newFixture(t)
	s := addSession(t, repo, timetable.Draft{
		Title:    "Standup",
		Start:    models.TimeOfDay{Hour: 9},
		Reminder: 10,
	})

	// Snoozed at 08:50 for 5 minutes
	repo.SetClock(func() time.Time { return at(8, 50, 0) })
	if err := repo.Snooze(models.Monday, s.ID, 5); err != nil {
		t.Fatal(err)
	}

	// Before expiry: suppressed, even through the normal trigger minute
	for _, tick := range []time.Time{at(8, 50, 15), at(8, 52, 0), at(8, 54, 59)} {
		if err := sched.Tick(tick); err != nil {
			t.Fatal(err)
		}
	}
	if len(sink.shown) != 0 {
		t.Fatalf("fired while snoozed: shown = %d", len(sink.shown))
	}

	// At expiry: fires exactly once and clears the snooze
	if err := sched.Tick(at(8, 55, 0)); err != nil {
		t.Fatal(err)
	}
	if len(sink.shown) != 1 {
		t.Fatalf("snooze expiry shown = %d, want 1", len(sink.shown))
	}

	tt, err := st.LoadTimetable()
	if err != nil {
		t.Fatal(err)
	}
	got := tt[models.Monday][0]
	if got.SnoozeUntil != 0 {
		t.Error("SnoozeUntil not cleared after the forced fire")
	}
	if !got.ReminderTriggered {
		t.Error("ReminderTriggered not set after the forced fire")
	}

	// And not again
	if err := sched.Tick(at(8, 56, 0)); err != nil {
		t.Fatal(err)
	}
	if len(sink.shown) != 1 {
		t.Errorf("re-fired after snooze resolution: shown = %d", len(sink.shown))
	}
}

func TestSnoozeExpiryFiresEvenWithoutReminder(t *testing.T) {
	repo, _, sink, sched := newFixture(t)
	s := addSession(t, repo, timetable.Draft{
		Title: "Lead-less",
		Start: models.TimeOfDay{Hour: 9},
	})

	repo.SetClock(func() time.Time { return at(8, 0, 0) })
	if err := repo.Snooze(models.Monday, s.ID, 5); err != nil {
		t.Fatal(err)
	}

	// The expiry branch fires unconditionally: the user asked to be
	// re-notified, reminder lead or not
	if err := sched.Tick(at(8, 5, 0)); err != nil {
		t.Fatal(err)
	}
	if len(sink.shown) != 1 {
		t.Errorf("snooze expiry without reminder lead: shown = %d, want 1", len(sink.shown))
	}
}

func TestEditRearmsAndFiresAgain(t *testing.T) {
	repo, _, sink, sched := newFixture(t)
	s := addSession(t, repo, timetable.Draft{
		Title:    "Standup",
		Start:    models.TimeOfDay{Hour: 9},
		Reminder: 10,
	})

	if err := sched.Tick(at(8, 50, 0)); err != nil {
		t.Fatal(err)
	}
	if len(sink.shown) != 1 {
		t.Fatal("setup fire did not happen")
	}

	// Push the start an hour later; the reminder re-arms
	start := models.TimeOfDay{Hour: 10}
	if _, err := repo.Update(models.Monday, s.ID, timetable.Patch{Start: &start}); err != nil {
		t.Fatal(err)
	}

	if err := sched.Tick(at(9, 50, 0)); err != nil {
		t.Fatal(err)
	}
	if len(sink.shown) != 2 {
		t.Errorf("edited session did not re-fire: shown = %d, want 2", len(sink.shown))
	}
}

func TestMultipleSessionsSameTick(t *testing.T) {
	repo, _, sink, sched := newFixture(t)
	addSession(t, repo, timetable.Draft{Title: "A", Start: models.TimeOfDay{Hour: 9}, Reminder: 10})
	if _, err := repo.Add(models.Tuesday, timetable.Draft{Title: "B", Start: models.TimeOfDay{Hour: 9}, Reminder: 10}); err != nil {
		t.Fatal(err)
	}

	if err := sched.Tick(at(8, 50, 0)); err != nil {
		t.Fatal(err)
	}
	// Both fire, in day order; the sink decides presentation policy
	if len(sink.shown) != 2 {
		t.Fatalf("shown = %d, want 2", len(sink.shown))
	}
	if sink.shown[0].Title != "A" || sink.shown[1].Title != "B" {
		t.Errorf("fire order = %s,%s, want A,B", sink.shown[0].Title, sink.shown[1].Title)
	}
}

func TestIntervalClamping(t *testing.T) {
	repo, _, sink, _ := newFixture(t)

	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, DefaultInterval},
		{time.Second, MinInterval},
		{time.Hour, MaxInterval},
		{30 * time.Second, 30 * time.Second},
	}
	for _, tt := range tests {
		if got := New(repo, sink, tt.in).Interval(); got != tt.want {
			t.Errorf("New(interval=%s).Interval() = %s, want %s", tt.in, got, tt.want)
		}
	}
}
