package store

import (
	"database/sql"
	"errors"
	"time"
)

// Weather is the cached last-known observation, shown until the first
// fresh fetch succeeds after startup.
type Weather struct {
	TempC      int
	Conditions string
	FetchedAt  time.Time
}

// SaveWeather upserts the singleton weather row.
func (s *Store) SaveWeather(w Weather) error {
	_, err := s.db.Exec(`
		INSERT INTO weather_cache (id, temp_c, conditions, fetched_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			temp_c = excluded.temp_c,
			conditions = excluded.conditions,
			fetched_at = excluded.fetched_at
	`, w.TempC, w.Conditions, formatTime(w.FetchedAt))
	return err
}

// GetWeather returns the cached observation, or ErrNoWeather if none has
// ever been saved.
func (s *Store) GetWeather() (*Weather, error) {
	row := s.db.QueryRow(`
		SELECT temp_c, conditions, fetched_at FROM weather_cache WHERE id = 1
	`)

	var (
		w       Weather
		fetched string
	)
	err := row.Scan(&w.TempC, &w.Conditions, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoWeather
	}
	if err != nil {
		return nil, err
	}

	w.FetchedAt, err = parseTime(fetched)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
