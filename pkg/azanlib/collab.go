package azanlib

import (
	"context"
	"time"
)

// AudioRef points at a playable audio asset: the daemon-served URL handed
// to the playback sink plus the backing file for local inspection.
type AudioRef struct {
	Prayer PrayerName `json:"prayer"`
	File   string     `json:"file"`
	URL    string     `json:"url"`
}

// TimeTableProvider supplies today's timetable. Implementations may fetch
// over the network; a failed fetch leaves the schedule on its previous
// table until the next natural wake-up.
type TimeTableProvider interface {
	TodayTable(ctx context.Context) (*TimeTable, error)
}

// AudioProvider resolves a prayer to its audio asset. It is a pure lookup
// with no side effects visible to the scheduler; ErrAudioUnavailable means
// the trigger logs and returns without entering the playing state.
type AudioProvider interface {
	Resolve(name PrayerName) (*AudioRef, error)
}

// PlaybackSink issues the actual play/stop calls against the target device.
// Both calls may be slow; their latency never delays claim bookkeeping, and
// re-scheduling happens strictly after they resolve.
type PlaybackSink interface {
	Play(ctx context.Context, ref *AudioRef) error
	Stop(ctx context.Context) error
}

// PlayLog persists dedup claims so the played set survives daemon restarts
// and mid-day table replacements. Optional; a nil PlayLog keeps the set
// in-memory only.
type PlayLog interface {
	RecordPlayed(date string, name PrayerName, at time.Time) error
}
