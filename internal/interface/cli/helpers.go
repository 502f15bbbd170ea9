package cli

import (
	"fmt"
	"strings"

	"github.com/trackhq/track/internal/core/config"
	"github.com/trackhq/track/internal/core/models"
	"github.com/trackhq/track/internal/core/store"
	"github.com/trackhq/track/internal/core/timetable"
)

// openRepository wires config, store, and repository for a command. The
// caller closes the store.
func openRepository() (*config.Config, *store.Store, *timetable.Repository, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	repo, err := timetable.New(st)
	if err != nil {
		_ = st.Close()
		return nil, nil, nil, err
	}
	return cfg, st, repo, nil
}

// resolveID expands a unique id prefix to the full session id under day,
// so users can type the short id shown by `track list`.
func resolveID(repo *timetable.Repository, day models.Day, prefix string) (string, error) {
	var match string
	for _, s := range repo.Sessions(day) {
		if s.ID == prefix {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("id %q is ambiguous under %s", prefix, day)
			}
			match = s.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no session with id %q under %s", prefix, day)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
