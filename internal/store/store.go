// Package store persists alert episodes and the last-known weather so the
// watchface has history across restarts. Raw heart-rate samples are never
// persisted; the sample window is rebuilt from the live signal.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoWeather is returned when no cached weather observation exists.
var ErrNoWeather = errors.New("no cached weather")

// ErrEpisodeNotFound is returned when an episode doesn't exist.
var ErrEpisodeNotFound = errors.New("episode not found")

// Store is the application's data access layer.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at ~/.potsface/data.db, creating it if
// necessary.
func Open() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return OpenPath(filepath.Join(home, ".potsface", "data.db"))
}

// OpenPath opens the SQLite database at an explicit path.
func OpenPath(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs all database migrations.
func migrate(db *sql.DB) error {
	migrations := []string{
		// Alert episodes: one row per Idle -> Alerting -> Idle cycle
		`CREATE TABLE IF NOT EXISTS alert_episodes (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			cleared_at TEXT,
			peak_spread INTEGER NOT NULL,
			peak_bpm INTEGER NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_episodes_started ON alert_episodes(started_at)`,

		// Last-known weather (singleton row)
		`CREATE TABLE IF NOT EXISTS weather_cache (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			temp_c INTEGER NOT NULL,
			conditions TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

// timeFormat is how timestamps are stored.
const timeFormat = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeFormat, s)
}
