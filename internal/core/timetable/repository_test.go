package timetable

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/trackhq/track/internal/core/models"
	"github.com/trackhq/track/internal/core/store"
)

func newTestRepo(t *testing.T) (*Repository, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "timetable.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	repo, err := New(st)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return repo, st
}

func TestAddDefaultsAndPersists(t *testing.T) {
	repo, st := newTestRepo(t)

	s, err := repo.Add(models.Monday, Draft{
		Title: "Standup",
		Start: models.TimeOfDay{Hour: 9, Minute: 0},
		End:   models.TimeOfDay{Hour: 9, Minute: 15},
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if s.ID == "" {
		t.Error("Add() did not assign an id")
	}
	if s.Type != models.TypePersonal {
		t.Errorf("default type = %q, want personal", s.Type)
	}
	if s.Color == "" {
		t.Error("Add() did not assign a color")
	}
	if s.ReminderTriggered {
		t.Error("new session must start untriggered")
	}

	// Durable immediately: a fresh load sees exactly one new session
	tt, err := st.LoadTimetable()
	if err != nil {
		t.Fatal(err)
	}
	if len(tt[models.Monday]) != 1 || tt[models.Monday][0].ID != s.ID {
		t.Errorf("persisted monday = %+v, want the one added session", tt[models.Monday])
	}
}

func TestAddInvalidDay(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Add(models.Day("someday"), Draft{Title: "x"})
	if !errors.Is(err, ErrInvalidDay) {
		t.Errorf("Add(someday) error = %v, want ErrInvalidDay", err)
	}
}

func TestAddUniqueIDs(t *testing.T) {
	repo, _ := newTestRepo(t)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		s, err := repo.Add(models.Tuesday, Draft{Title: "t"})
		if err != nil {
			t.Fatal(err)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate id %s", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestUpdateRearmsOnStartChange(t *testing.T) {
	repo, _ := newTestRepo(t)

	s, err := repo.Add(models.Monday, Draft{Title: "Standup", Start: models.TimeOfDay{Hour: 9}, Reminder: 5})
	if err != nil {
		t.Fatal(err)
	}

	// Simulate a fired, then snoozed session
	if err := repo.Snooze(models.Monday, s.ID, 10); err != nil {
		t.Fatal(err)
	}
	markTriggered(t, repo, models.Monday, s.ID)

	start := models.TimeOfDay{Hour: 10}
	updated, err := repo.Update(models.Monday, s.ID, Patch{Start: &start})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ReminderTriggered {
		t.Error("start edit must reset ReminderTriggered")
	}
	if updated.SnoozeUntil != 0 {
		t.Error("start edit must clear SnoozeUntil")
	}
}

func TestUpdateRearmsOnReminderChange(t *testing.T) {
	repo, _ := newTestRepo(t)

	s, _ := repo.Add(models.Monday, Draft{Title: "x", Reminder: 5})
	markTriggered(t, repo, models.Monday, s.ID)

	rem := 15
	updated, err := repo.Update(models.Monday, s.ID, Patch{Reminder: &rem})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ReminderTriggered {
		t.Error("reminder edit must reset ReminderTriggered")
	}
}

func TestUpdateEndDoesNotRearm(t *testing.T) {
	repo, _ := newTestRepo(t)

	s, _ := repo.Add(models.Monday, Draft{Title: "x", Reminder: 5})
	markTriggered(t, repo, models.Monday, s.ID)

	// A resize gesture touches only the end time
	end := models.TimeOfDay{Hour: 11, Minute: 15}
	updated, err := repo.Update(models.Monday, s.ID, Patch{End: &end})
	if err != nil {
		t.Fatal(err)
	}
	if !updated.ReminderTriggered {
		t.Error("end-only edit must not reset ReminderTriggered")
	}
	if updated.End != end {
		t.Errorf("End = %v, want %v", updated.End, end)
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Update(models.Monday, "nope", Patch{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMoveRoundTripPreservesState(t *testing.T) {
	repo, _ := newTestRepo(t)

	s, _ := repo.Add(models.Monday, Draft{Title: "x", Reminder: 5})
	if err := repo.Snooze(models.Monday, s.ID, 10); err != nil {
		t.Fatal(err)
	}
	before := findSession(t, repo, models.Monday, s.ID)

	if err := repo.Move(models.Monday, models.Wednesday, s.ID); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if len(repo.Sessions(models.Monday)) != 0 {
		t.Error("session still present under source day")
	}
	if err := repo.Move(models.Wednesday, models.Monday, s.ID); err != nil {
		t.Fatal(err)
	}

	after := findSession(t, repo, models.Monday, s.ID)
	if after.ID != before.ID ||
		after.ReminderTriggered != before.ReminderTriggered ||
		after.SnoozeUntil != before.SnoozeUntil {
		t.Errorf("round trip changed state: before=%+v after=%+v", before, after)
	}
}

func TestMoveSameDay(t *testing.T) {
	repo, _ := newTestRepo(t)

	s, _ := repo.Add(models.Monday, Draft{Title: "x"})
	if err := repo.Move(models.Monday, models.Monday, s.ID); err != nil {
		t.Fatalf("same-day Move() error = %v", err)
	}
	if len(repo.Sessions(models.Monday)) != 1 {
		t.Error("same-day move lost or duplicated the session")
	}
}

func TestRemoveIdempotent(t *testing.T) {
	repo, _ := newTestRepo(t)

	s, _ := repo.Add(models.Monday, Draft{Title: "x"})
	if err := repo.Remove(models.Monday, s.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := repo.Remove(models.Monday, s.ID); err != nil {
		t.Errorf("second Remove() error = %v, want nil", err)
	}
	if err := repo.Remove(models.Monday, "never-existed"); err != nil {
		t.Errorf("Remove(missing) error = %v, want nil", err)
	}
}

func TestSnoozeDefaultsMinutes(t *testing.T) {
	repo, _ := newTestRepo(t)

	base := time.Date(2026, 1, 5, 8, 50, 0, 0, time.Local)
	repo.SetClock(func() time.Time { return base })

	s, _ := repo.Add(models.Monday, Draft{Title: "x", Reminder: 5})
	markTriggered(t, repo, models.Monday, s.ID)

	if err := repo.Snooze(models.Monday, s.ID, 0); err != nil {
		t.Fatal(err)
	}
	got := findSession(t, repo, models.Monday, s.ID)
	want := base.Add(5 * time.Minute).UnixMilli()
	if got.SnoozeUntil != want {
		t.Errorf("SnoozeUntil = %d, want %d (default 5 minutes)", got.SnoozeUntil, want)
	}
	if got.ReminderTriggered {
		t.Error("snooze must clear ReminderTriggered")
	}
}

func TestOnChangeFiresPerMutation(t *testing.T) {
	repo, _ := newTestRepo(t)

	calls := 0
	repo.OnChange(func() { calls++ })

	s, _ := repo.Add(models.Monday, Draft{Title: "x"})
	_ = repo.Remove(models.Monday, s.ID)

	if calls != 2 {
		t.Errorf("onChange calls = %d, want 2", calls)
	}
}

// End to end: empty timetable, one add, durable result.
func TestAddScenario(t *testing.T) {
	repo, st := newTestRepo(t)

	s, err := repo.Add(models.Monday, Draft{
		Title:    "Standup",
		Start:    models.TimeOfDay{Hour: 9},
		End:      models.TimeOfDay{Hour: 9, Minute: 15},
		Reminder: 5,
		Type:     models.TypeMeeting,
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.ID == "" || s.Color == "" || s.ReminderTriggered {
		t.Errorf("defaults not applied: %+v", s)
	}

	tt, err := st.LoadTimetable()
	if err != nil {
		t.Fatal(err)
	}
	if len(tt[models.Monday]) != 1 {
		t.Fatalf("monday has %d sessions, want 1", len(tt[models.Monday]))
	}
	for _, day := range models.Week {
		if day != models.Monday && len(tt[day]) != 0 {
			t.Errorf("%s unexpectedly has sessions", day)
		}
	}
}

func markTriggered(t *testing.T, repo *Repository, day models.Day, id string) {
	t.Helper()
	err := repo.Sweep(func(d models.Day, s *models.Session) bool {
		if d == day && s.ID == id {
			s.ReminderTriggered = true
			return true
		}
		return false
	})
	if err != nil {
		t.Fatal(err)
	}
}

func findSession(t *testing.T, repo *Repository, day models.Day, id string) models.Session {
	t.Helper()
	for _, s := range repo.Sessions(day) {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("session %s not found under %s", id, day)
	return models.Session{}
}
