package reminder

import (
	"context"
	"log"
	"time"

	"github.com/trackhq/track/internal/core/models"
	"github.com/trackhq/track/internal/core/timetable"
)

// Sink receives notification events from the scheduler. It owns the UI and
// audio; the scheduler only decides when to fire. Play failures must not
// interrupt the visual path, so Play has no error to return here.
type Sink interface {
	// Show surfaces a reminder for the session. When several sessions fire
	// on the same tick, Show is called for each in sweep order and the sink
	// decides its own policy; the bundled sinks keep the last one visible.
	Show(day models.Day, s models.Session)
	// Play makes the notification sound for the session type, best-effort.
	Play(t models.SessionType)
}

// Default polling interval and the bounds configuration is clamped to.
// Anything above a minute risks polling past a trigger minute entirely.
const (
	DefaultInterval = 15 * time.Second
	MinInterval     = 5 * time.Second
	MaxInterval     = 5 * time.Minute
)

// Scheduler is the polling state machine: each tick it sweeps every
// session, applies the trigger/snooze rules, and emits events to the sink.
type Scheduler struct {
	repo     *timetable.Repository
	sink     Sink
	interval time.Duration
	now      func() time.Time
}

// New builds a scheduler. A zero or out-of-range interval is clamped.
func New(repo *timetable.Repository, sink Sink, interval time.Duration) *Scheduler {
	if interval == 0 {
		interval = DefaultInterval
	}
	if interval < MinInterval {
		interval = MinInterval
	}
	if interval > MaxInterval {
		interval = MaxInterval
	}
	return &Scheduler{repo: repo, sink: sink, interval: interval, now: time.Now}
}

// SetClock overrides the time source, for tests.
func (sc *Scheduler) SetClock(now func() time.Time) {
	sc.now = now
}

// Interval returns the effective polling interval.
func (sc *Scheduler) Interval() time.Duration {
	return sc.interval
}

type fired struct {
	day models.Day
	s   models.Session
}

// Tick evaluates every session once against now. State changes are applied
// and persisted under the repository lock; sink calls happen after, so a
// slow modal cannot stall a concurrent edit.
//
// Per session, in order:
//  1. snoozed with time remaining: skip.
//  2. snooze expired: clear it, fire, mark triggered. This branch fires
//     unconditionally, even when already triggered or no reminder lead is
//     configured, because the user explicitly asked to be re-notified.
//  3. no reminder configured: skip.
//  4. already triggered this instance: skip until edited or snoozed.
//  5. fire on exact minute equality: minute-of-day == start − lead. The
//     equality test only matches during one wall-clock minute; step 4 keeps
//     it at most once while polling runs several times within that minute.
//     A minute skipped entirely (suspend, clock change) silently misses
//     that day's reminder; there is no catch-up window.
func (sc *Scheduler) Tick(now time.Time) error {
	currentMinutes := now.Hour()*60 + now.Minute()

	var due []fired
	err := sc.repo.Sweep(func(day models.Day, s *models.Session) bool {
		if s.Snoozed(now) {
			return false
		}
		if s.SnoozeExpired(now) {
			s.SnoozeUntil = 0
			s.ReminderTriggered = true
			due = append(due, fired{day, *s})
			return true
		}
		if s.Reminder <= 0 {
			return false
		}
		if s.ReminderTriggered {
			return false
		}
		if currentMinutes == s.TriggerMinute() {
			s.ReminderTriggered = true
			due = append(due, fired{day, *s})
			return true
		}
		return false
	})
	if err != nil {
		return err
	}

	for _, f := range due {
		sc.sink.Show(f.day, f.s)
		sc.sink.Play(f.s.Type)
	}
	return nil
}

// Run polls until the context is cancelled: one immediate tick, then one
// per interval. Tick errors (persistence trouble) are logged and the loop
// keeps going; the worst case is an un-persisted trigger flag, which at
// most repeats a reminder after restart.
func (sc *Scheduler) Run(ctx context.Context) error {
	if err := sc.Tick(sc.now()); err != nil {
		log.Printf("reminder sweep failed: %v", err)
	}

	ticker := time.NewTicker(sc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := sc.Tick(sc.now()); err != nil {
				log.Printf("reminder sweep failed: %v", err)
			}
		}
	}
}
