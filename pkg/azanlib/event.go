package azanlib

import (
	"strings"
	"time"
)

// PrayerName identifies one entry of the daily timetable.
type PrayerName string

const (
	Fajr    PrayerName = "fajr"
	Dhuhr   PrayerName = "dhuhr"
	Asr     PrayerName = "asr"
	Maghrib PrayerName = "maghrib"
	Isha    PrayerName = "isha"

	// Test is a synthetic prayer used for manual trigger checks.
	// It never participates in the played set, so it is always repeatable.
	Test PrayerName = "test"
)

// CanonicalPrayers lists the five real prayers in nominal day order.
var CanonicalPrayers = []PrayerName{Fajr, Dhuhr, Asr, Maghrib, Isha}

// Valid reports whether n is one of the known prayer names, including Test.
func (n PrayerName) Valid() bool {
	switch n {
	case Fajr, Dhuhr, Asr, Maghrib, Isha, Test:
		return true
	}
	return false
}

// Real reports whether n is an actual prayer rather than the synthetic Test.
func (n PrayerName) Real() bool {
	return n.Valid() && n != Test
}

// ParsePrayerName validates a user-supplied prayer name. Matching is
// case-insensitive.
func ParsePrayerName(s string) (PrayerName, error) {
	n := PrayerName(strings.ToLower(s))
	if !n.Valid() {
		return "", ErrUnknownPrayer
	}
	return n, nil
}

// Event is one named occurrence in the daily timetable.
type Event struct {
	Name PrayerName `json:"name"`

	// Time is the nominal civil time supplied by the provider. It is read
	// as a wall-clock value: before any comparison the scheduler rebinds
	// it to its own location (see TimeTable.Next).
	Time time.Time `json:"time"`

	Enabled bool `json:"enabled"`
}
