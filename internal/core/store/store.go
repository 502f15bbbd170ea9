package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/trackhq/track/internal/core/models"
)

// Document keys. The timetable and the theme preference are independent
// records; neither save touches the other.
const (
	timetableKey = "track_timetable_v1"
	themeKey     = "track_theme_v1"
)

// Store persists the timetable document and the theme scalar in a small
// key-value table. Every save is a full overwrite of the record; there are
// no partial or merge semantics.
type Store struct {
	conn *sql.DB
	path string
}

// Open creates the database file (and parent directory) if needed and
// initializes the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL so a watch daemon can read while a CLI invocation writes
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1) // SQLite only supports one writer
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	s := &Store{conn: conn, path: path}
	if err := s.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.conn.Exec(`
	CREATE TABLE IF NOT EXISTS documents (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the database file path, for file watchers.
func (s *Store) Path() string {
	return s.path
}

// LoadTimetable returns the saved document, or a fresh empty one when none
// exists or the stored value is corrupt. A corrupt record is replaced on
// the next save, never propagated.
func (s *Store) LoadTimetable() (models.Timetable, error) {
	var raw string
	err := s.conn.QueryRow(`SELECT value FROM documents WHERE key = ?`, timetableKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return models.NewTimetable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load timetable: %w", err)
	}

	var tt models.Timetable
	if err := json.Unmarshal([]byte(raw), &tt); err != nil {
		log.Printf("Stored timetable is corrupt, starting fresh: %v", err)
		return models.NewTimetable(), nil
	}
	tt.Normalize()
	return tt, nil
}

// SaveTimetable serializes the whole document and overwrites the prior
// record. Errors propagate so the caller can warn that the edit may not
// survive a restart; in-memory state stays authoritative.
func (s *Store) SaveTimetable(tt models.Timetable) error {
	raw, err := json.Marshal(tt)
	if err != nil {
		return fmt.Errorf("failed to serialize timetable: %w", err)
	}
	return s.put(timetableKey, string(raw))
}

// LoadTheme returns the saved theme preference ("dark" or "light"), or the
// empty string when never set.
func (s *Store) LoadTheme() (string, error) {
	var theme string
	err := s.conn.QueryRow(`SELECT value FROM documents WHERE key = ?`, themeKey).Scan(&theme)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load theme: %w", err)
	}
	return theme, nil
}

// SaveTheme persists the theme preference, independent of the timetable.
func (s *Store) SaveTheme(theme string) error {
	return s.put(themeKey, theme)
}

func (s *Store) put(key, value string) error {
	_, err := s.conn.Exec(`
		INSERT INTO documents (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
