package azanlib

import (
	"sort"
	"time"
)

// DateLayout is the layout of the TimeTable.Date field.
const DateLayout = "2006-01-02"

// TimeTable holds one day's ordered event list and its played set.
// The provider is expected to deliver events chronologically, but nothing
// here relies on it: Next scans the whole list for the minimum qualifying
// target time.
//
// A TimeTable is replaced wholesale on refresh and rollover; the only
// in-place mutation is adding to the played set via MarkPlayed.
type TimeTable struct {
	Date   string                   `json:"date"`
	Events []Event                  `json:"events"`
	Played map[PrayerName]time.Time `json:"played"`
}

// NewTimeTable builds a table for the given local date.
func NewTimeTable(date string, events []Event) *TimeTable {
	return &TimeTable{
		Date:   date,
		Events: events,
		Played: make(map[PrayerName]time.Time),
	}
}

// IsPlayed reports whether name has fired today.
func (t *TimeTable) IsPlayed(name PrayerName) bool {
	_, ok := t.Played[name]
	return ok
}

// MarkPlayed records name as fired at the given instant. Once added a name
// is never removed before the table itself is replaced.
func (t *TimeTable) MarkPlayed(name PrayerName, at time.Time) {
	if t.Played == nil {
		t.Played = make(map[PrayerName]time.Time)
	}
	if _, ok := t.Played[name]; !ok {
		t.Played[name] = at
	}
}

// PlayedNames returns the played set in nominal prayer order.
func (t *TimeTable) PlayedNames() []PrayerName {
	names := make([]PrayerName, 0, len(t.Played))
	for _, n := range CanonicalPrayers {
		if t.IsPlayed(n) {
			names = append(names, n)
		}
	}
	return names
}

// Next selects the earliest enabled, unplayed event whose offset-adjusted
// target time lies strictly after now. The target is scheduled_time - offset;
// a positive offset calls the azan ahead of the nominal time, a negative one
// after it. Events whose target has already passed are skipped, not fired
// late.
//
// The scan does not assume Events is sorted: it picks the minimum qualifying
// target across the whole list.
func (t *TimeTable) Next(now time.Time, offset time.Duration, loc *time.Location) (Event, time.Time, bool) {
	var (
		best   Event
		bestAt time.Time
		found  bool
	)
	for _, ev := range t.Events {
		if !ev.Enabled || !ev.Name.Real() {
			continue
		}
		if t.IsPlayed(ev.Name) {
			continue
		}
		target := Rebind(ev.Time, loc).Add(-offset)
		if !target.After(now) {
			continue
		}
		if !found || target.Before(bestAt) {
			best, bestAt, found = ev, target, true
		}
	}
	return best, bestAt, found
}

// Clone returns a deep copy suitable for handing out as a snapshot.
func (t *TimeTable) Clone() *TimeTable {
	c := &TimeTable{
		Date:   t.Date,
		Events: make([]Event, len(t.Events)),
		Played: make(map[PrayerName]time.Time, len(t.Played)),
	}
	copy(c.Events, t.Events)
	for n, at := range t.Played {
		c.Played[n] = at
	}
	return c
}

// SortEvents orders the event list chronologically in place. Providers call
// this after assembly so consumers see the documented ordering.
func (t *TimeTable) SortEvents() {
	sort.Slice(t.Events, func(i, j int) bool {
		return t.Events[i].Time.Before(t.Events[j].Time)
	})
}

// Rebind reinterprets the wall-clock reading of ts in loc. Provider times
// arrive as civil readings that may carry a foreign or placeholder zone;
// comparing them against now without pinning them to the scheduler's zone
// would silently mis-fire across zones.
func Rebind(ts time.Time, loc *time.Location) time.Time {
	if ts.Location() == loc {
		return ts
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond(), loc)
}
