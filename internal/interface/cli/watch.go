package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/trackhq/track/internal/core/models"
	"github.com/trackhq/track/internal/core/reminder"
	"github.com/trackhq/track/internal/core/sound"
	"github.com/trackhq/track/internal/core/timetable"
)

var watchInterval string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the reminder loop in the foreground",
	Long: `Poll the timetable and surface reminders as they come due.

The watcher reloads the document whenever another track invocation writes
the store, so edits made while it runs are picked up. Respond to a
reminder from another terminal:
  track snooze <day> <id> [minutes]

Ctrl-C stops the watcher.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchInterval, "interval", "", "Polling interval (e.g. 15s, 1m); overrides config")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, st, repo, err := openRepository()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	interval := cfg.PollInterval
	if watchInterval != "" {
		d, err := time.ParseDuration(watchInterval)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", watchInterval, err)
		}
		interval = d
	}

	sink := &bannerSink{
		template: cfg.ReminderTemplate,
		player:   &sound.Player{Dir: cfg.SoundsDir, Files: cfg.Sounds},
	}
	sched := reminder.New(repo, sink, interval)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(filepath.Dir(st.Path())); err != nil {
		return fmt.Errorf("failed to watch store directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Watching timetable (%s, every %s)", st.Path(), sched.Interval())
	go reloadOnChange(ctx, watcher, repo, st.Path())

	err = sched.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Printf("Watcher stopped")
		return nil
	}
	return err
}

// reloadOnChange reloads the in-memory document when the store file is
// written. Our own saves trigger events too; reloading what we just wrote
// is harmless, so no self-filtering is attempted.
func reloadOnChange(ctx context.Context, watcher *fsnotify.Watcher, repo *timetable.Repository, path string) {
	base := filepath.Base(path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := repo.Reload(); err != nil {
				log.Printf("Failed to reload timetable: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// bannerSink renders reminders as styled terminal banners. It is the
// headless notification sink; dismissal is implicit (the trigger flag is
// already set) and snoozing happens via the snooze command.
type bannerSink struct {
	template string
	player   *sound.Player
}

func (b *bannerSink) Show(day models.Day, s models.Session) {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Background(lipgloss.Color(models.Hex(s.Color))).
		Foreground(lipgloss.Color(models.ContrastColor(s.Color)))

	body := reminder.Message(b.template, s)
	banner := fmt.Sprintf("%s Reminder!  %s\n%s - %s (%s)\nsnooze: track snooze %s %s",
		s.Type.Icon(), body, s.Start, s.End, day.Title(), day, shortID(s.ID))
	fmt.Println(style.Render(banner))
}

func (b *bannerSink) Play(t models.SessionType) {
	b.player.Play(t)
}
