package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Episode is one recorded alert cycle. ClearedAt is nil while the alert is
// still active (or if the process died before it cleared).
type Episode struct {
	ID         string
	StartedAt  time.Time
	ClearedAt  *time.Time
	PeakSpread int
	PeakBPM    int
}

// StartEpisode records a new alert entry and returns its ID.
func (s *Store) StartEpisode(startedAt time.Time, spread, bpm int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO alert_episodes (id, started_at, peak_spread, peak_bpm)
		VALUES (?, ?, ?, ?)
	`, id, formatTime(startedAt), spread, bpm)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateEpisodePeaks raises the stored peaks if this tick's values exceed
// them. Lower values leave the row untouched.
func (s *Store) UpdateEpisodePeaks(id string, spread, bpm int) error {
	result, err := s.db.Exec(`
		UPDATE alert_episodes
		SET peak_spread = MAX(peak_spread, ?),
			peak_bpm = MAX(peak_bpm, ?)
		WHERE id = ?
	`, spread, bpm, id)
	if err != nil {
		return err
	}
	return checkFound(result)
}

// ClearEpisode marks an episode as cleared.
func (s *Store) ClearEpisode(id string, clearedAt time.Time) error {
	result, err := s.db.Exec(`
		UPDATE alert_episodes SET cleared_at = ? WHERE id = ?
	`, formatTime(clearedAt), id)
	if err != nil {
		return err
	}
	return checkFound(result)
}

// RecentEpisodes returns the most recent episodes, newest first.
func (s *Store) RecentEpisodes(limit int) ([]Episode, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, cleared_at, peak_spread, peak_bpm
		FROM alert_episodes
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var (
			e       Episode
			started string
			cleared sql.NullString
		)
		if err := rows.Scan(&e.ID, &started, &cleared, &e.PeakSpread, &e.PeakBPM); err != nil {
			return nil, err
		}

		e.StartedAt, err = parseTime(started)
		if err != nil {
			return nil, err
		}
		if cleared.Valid {
			t, err := parseTime(cleared.String)
			if err != nil {
				return nil, err
			}
			e.ClearedAt = &t
		}

		episodes = append(episodes, e)
	}
	return episodes, rows.Err()
}

func checkFound(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrEpisodeNotFound
	}
	return nil
}

// IsNotFound reports whether err is the missing-episode sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEpisodeNotFound)
}
