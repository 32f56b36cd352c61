package provider

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/minaret/minaret/pkg/azanlib"
)

const schema = `
CREATE TABLE IF NOT EXISTS timetable (
	date    TEXT NOT NULL,
	prayer  TEXT NOT NULL,
	time    TEXT NOT NULL,
	enabled INTEGER NOT NULL DEFAULT 1,
	PRIMARY KEY (date, prayer)
);
CREATE TABLE IF NOT EXISTS play_log (
	date      TEXT NOT NULL,
	prayer    TEXT NOT NULL,
	played_at TEXT NOT NULL,
	PRIMARY KEY (date, prayer)
);`

// Store persists fetched timetables and the daily play log in SQLite so a
// restarted daemon neither loses today's played set nor goes dark when the
// provider is unreachable.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and if needed creates) the store at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open timetable store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init timetable store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTable replaces the cached rows for the table's date.
func (s *Store) SaveTable(t *azanlib.TimeTable) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save timetable: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM timetable WHERE date = ?`, t.Date); err != nil {
		return fmt.Errorf("save timetable: %w", err)
	}
	for _, ev := range t.Events {
		enabled := 0
		if ev.Enabled {
			enabled = 1
		}
		_, err := tx.Exec(
			`INSERT INTO timetable (date, prayer, time, enabled) VALUES (?, ?, ?, ?)`,
			t.Date, string(ev.Name), ev.Time.Format(time.RFC3339), enabled,
		)
		if err != nil {
			return fmt.Errorf("save timetable: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save timetable: %w", err)
	}
	return nil
}

// Table loads the cached timetable for date, if one exists. Times are
// rebound into loc.
func (s *Store) Table(date string, loc *time.Location) (*azanlib.TimeTable, bool, error) {
	rows, err := s.db.Query(
		`SELECT prayer, time, enabled FROM timetable WHERE date = ?`, date,
	)
	if err != nil {
		return nil, false, fmt.Errorf("load timetable: %w", err)
	}
	defer rows.Close()

	var events []azanlib.Event
	for rows.Next() {
		var (
			prayer  string
			raw     string
			enabled int
		)
		if err := rows.Scan(&prayer, &raw, &enabled); err != nil {
			return nil, false, fmt.Errorf("load timetable: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, false, fmt.Errorf("load timetable: bad time %q: %w", raw, err)
		}
		events = append(events, azanlib.Event{
			Name:    azanlib.PrayerName(prayer),
			Time:    azanlib.Rebind(ts, loc),
			Enabled: enabled != 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("load timetable: %w", err)
	}
	if len(events) == 0 {
		return nil, false, nil
	}

	t := azanlib.NewTimeTable(date, events)
	t.SortEvents()
	return t, true, nil
}

// RecordPlayed implements azanlib.PlayLog. Re-recording the same prayer on
// the same date is a no-op, matching the played-set semantics.
func (s *Store) RecordPlayed(date string, name azanlib.PrayerName, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO play_log (date, prayer, played_at) VALUES (?, ?, ?)`,
		date, string(name), at.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record play: %w", err)
	}
	return nil
}

// PlayedOn returns the persisted played set for date.
func (s *Store) PlayedOn(date string) (map[azanlib.PrayerName]time.Time, error) {
	rows, err := s.db.Query(
		`SELECT prayer, played_at FROM play_log WHERE date = ?`, date,
	)
	if err != nil {
		return nil, fmt.Errorf("load play log: %w", err)
	}
	defer rows.Close()

	played := make(map[azanlib.PrayerName]time.Time)
	for rows.Next() {
		var prayer, raw string
		if err := rows.Scan(&prayer, &raw); err != nil {
			return nil, fmt.Errorf("load play log: %w", err)
		}
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("load play log: bad time %q: %w", raw, err)
		}
		played[azanlib.PrayerName(prayer)] = at
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load play log: %w", err)
	}
	return played, nil
}

var _ azanlib.PlayLog = (*Store)(nil)
