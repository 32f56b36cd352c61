package azanlib

import (
	"testing"
	"time"
)

func mkEvent(name PrayerName, hour, min int, enabled bool, loc *time.Location) Event {
	return Event{
		Name:    name,
		Time:    time.Date(2026, time.March, 10, hour, min, 0, 0, loc),
		Enabled: enabled,
	}
}

func TestTimeTable_NextPicksEarliestEligible(t *testing.T) {
	loc := time.UTC
	tbl := NewTimeTable("2026-03-10", []Event{
		mkEvent(Fajr, 5, 0, true, loc),
		mkEvent(Dhuhr, 12, 0, true, loc),
	})
	now := time.Date(2026, time.March, 10, 4, 0, 0, 0, loc)

	ev, target, ok := tbl.Next(now, 10*time.Minute, loc)
	if !ok {
		t.Fatal("expected a next event")
	}
	if ev.Name != Fajr {
		t.Fatalf("expected Fajr, got %s", ev.Name)
	}
	want := time.Date(2026, time.March, 10, 4, 50, 0, 0, loc)
	if !target.Equal(want) {
		t.Fatalf("expected target %s, got %s", want, target)
	}
}

func TestTimeTable_NextSkipsPlayed(t *testing.T) {
	loc := time.UTC
	tbl := NewTimeTable("2026-03-10", []Event{
		mkEvent(Fajr, 5, 0, true, loc),
		mkEvent(Dhuhr, 12, 0, true, loc),
	})
	tbl.MarkPlayed(Fajr, time.Date(2026, time.March, 10, 4, 50, 0, 0, loc))
	now := time.Date(2026, time.March, 10, 4, 0, 0, 0, loc)

	ev, target, ok := tbl.Next(now, 10*time.Minute, loc)
	if !ok || ev.Name != Dhuhr {
		t.Fatalf("expected Dhuhr, got %v ok=%v", ev.Name, ok)
	}
	want := time.Date(2026, time.March, 10, 11, 50, 0, 0, loc)
	if !target.Equal(want) {
		t.Fatalf("expected target %s, got %s", want, target)
	}
}

func TestTimeTable_NextSkipsDisabled(t *testing.T) {
	loc := time.UTC
	tbl := NewTimeTable("2026-03-10", []Event{
		mkEvent(Fajr, 5, 0, false, loc),
		mkEvent(Dhuhr, 12, 0, true, loc),
	})
	now := time.Date(2026, time.March, 10, 4, 0, 0, 0, loc)

	ev, _, ok := tbl.Next(now, 0, loc)
	if !ok || ev.Name != Dhuhr {
		t.Fatalf("expected Dhuhr, got %v ok=%v", ev.Name, ok)
	}
}

func TestTimeTable_NextDoesNotAssumeSortedInput(t *testing.T) {
	loc := time.UTC
	// Provider delivered the list out of order; the scan must still pick
	// the minimum qualifying target, not the first match.
	tbl := NewTimeTable("2026-03-10", []Event{
		mkEvent(Isha, 20, 0, true, loc),
		mkEvent(Dhuhr, 12, 0, true, loc),
		mkEvent(Fajr, 5, 0, true, loc),
	})
	now := time.Date(2026, time.March, 10, 4, 0, 0, 0, loc)

	ev, _, ok := tbl.Next(now, 0, loc)
	if !ok || ev.Name != Fajr {
		t.Fatalf("expected Fajr from unsorted table, got %v ok=%v", ev.Name, ok)
	}
}

func TestTimeTable_NextEmptyList(t *testing.T) {
	tbl := NewTimeTable("2026-03-10", nil)
	if _, _, ok := tbl.Next(time.Now(), 0, time.UTC); ok {
		t.Fatal("expected no next event for empty table")
	}
}

func TestTimeTable_NextAllPast(t *testing.T) {
	loc := time.UTC
	tbl := NewTimeTable("2026-03-10", []Event{
		mkEvent(Fajr, 5, 0, true, loc),
	})
	now := time.Date(2026, time.March, 10, 23, 0, 0, 0, loc)
	if _, _, ok := tbl.Next(now, 0, loc); ok {
		t.Fatal("expected no next event after all have passed")
	}
}

func TestTimeTable_NegativeOffsetCallsAfterNominal(t *testing.T) {
	loc := time.UTC
	tbl := NewTimeTable("2026-03-10", []Event{
		mkEvent(Fajr, 5, 0, true, loc),
	})
	now := time.Date(2026, time.March, 10, 4, 0, 0, 0, loc)

	_, target, ok := tbl.Next(now, -10*time.Minute, loc)
	if !ok {
		t.Fatal("expected a next event")
	}
	want := time.Date(2026, time.March, 10, 5, 10, 0, 0, loc)
	if !target.Equal(want) {
		t.Fatalf("expected target %s, got %s", want, target)
	}
}

func TestTimeTable_OffsetPushingTargetPastSkipsEvent(t *testing.T) {
	loc := time.UTC
	tbl := NewTimeTable("2026-03-10", []Event{
		mkEvent(Fajr, 5, 0, true, loc),
		mkEvent(Dhuhr, 12, 0, true, loc),
	})
	// 04:55 with a 10 minute offset puts Fajr's target in the past.
	now := time.Date(2026, time.March, 10, 4, 55, 0, 0, loc)

	ev, _, ok := tbl.Next(now, 10*time.Minute, loc)
	if !ok || ev.Name != Dhuhr {
		t.Fatalf("expected Fajr to be skipped as already-past, got %v ok=%v", ev.Name, ok)
	}
}

func TestRebind_PinsWallClockToSchedulerZone(t *testing.T) {
	east := time.FixedZone("E", 3*3600)
	foreign := time.FixedZone("F", 0)

	ts := time.Date(2026, time.March, 10, 5, 0, 0, 0, foreign)
	got := Rebind(ts, east)
	want := time.Date(2026, time.March, 10, 5, 0, 0, 0, east)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	// Same wall clock reading, different instant.
	if got.Equal(ts) {
		t.Fatal("rebinding should change the instant for a foreign zone")
	}
}

func TestTimeTable_MarkPlayedKeepsFirstInstant(t *testing.T) {
	tbl := NewTimeTable("2026-03-10", nil)
	first := time.Date(2026, time.March, 10, 5, 0, 0, 0, time.UTC)
	tbl.MarkPlayed(Fajr, first)
	tbl.MarkPlayed(Fajr, first.Add(time.Hour))
	if got := tbl.Played[Fajr]; !got.Equal(first) {
		t.Fatalf("expected first play instant to stick, got %s", got)
	}
}

func TestTimeTable_SortEvents(t *testing.T) {
	loc := time.UTC
	tbl := NewTimeTable("2026-03-10", []Event{
		mkEvent(Isha, 20, 0, true, loc),
		mkEvent(Fajr, 5, 0, true, loc),
		mkEvent(Dhuhr, 12, 0, true, loc),
	})
	tbl.SortEvents()
	want := []PrayerName{Fajr, Dhuhr, Isha}
	for i, n := range want {
		if tbl.Events[i].Name != n {
			t.Fatalf("position %d: expected %s, got %s", i, n, tbl.Events[i].Name)
		}
	}
}
