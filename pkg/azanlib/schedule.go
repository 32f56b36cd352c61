package azanlib

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/adhocore/gronx"
	"github.com/google/uuid"

	"github.com/minaret/minaret/pkg/logger"
)

// DefaultResetTimeout bounds how long the playing state may persist without
// an explicit stop.
const DefaultResetTimeout = 5 * time.Minute

// rolloverExpr is the daily boundary at which the timetable is refreshed
// and the played set logically resets: one minute past local midnight.
const rolloverExpr = "1 0 * * *"

// TokenRollover is the wake token of a day-boundary refresh, as opposed to
// a wake bound to a specific prayer (see TokenPlay).
const TokenRollover = "rollover"

// TokenPlay builds the wake token for a prayer-bound wake-up.
func TokenPlay(name PrayerName) string { return "play:" + string(name) }

// ScheduleConfig assembles a Schedule's collaborators and tunables.
type ScheduleConfig struct {
	Provider TimeTableProvider
	Audio    AudioProvider
	Sink     PlaybackSink

	// Offset is subtracted from every nominal event time to derive the
	// actual trigger instant. Positive calls the azan early.
	Offset time.Duration

	// Location is the scheduler's civil zone; provider times are rebound
	// into it before any comparison. Defaults to time.Local.
	Location *time.Location

	// ResetTimeout bounds the playing state. Defaults to DefaultResetTimeout.
	ResetTimeout time.Duration

	// Clock defaults to SystemClock.
	Clock Clock

	// Log defaults to a NopLogger.
	Log logger.Logger

	// PlayLog, if set, persists dedup claims across restarts.
	PlayLog PlayLog
}

type armedTimer struct {
	timer Timer
	token string
	at    time.Time
	seq   uint64
}

// Schedule is one independent azan schedule instance. It exclusively owns
// its timetable, offset, playback status and the two timer handles; all
// mutation is serialized behind one mutex so the dedup claim is atomic with
// respect to every trigger path.
type Schedule struct {
	id  string
	cfg ScheduleConfig
	loc *time.Location
	log logger.Logger

	mu     sync.Mutex
	table  *TimeTable
	status PlaybackStatus
	wake   *armedTimer
	reset  *armedTimer
	seq    uint64
	closed bool
	notify func(StateUpdate)
}

// NewSchedule validates cfg and builds an idle, unarmed schedule instance.
// Call Start to fetch the first table and arm the first wake-up.
func NewSchedule(cfg ScheduleConfig) (*Schedule, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("new schedule: nil timetable provider")
	}
	if cfg.Audio == nil {
		return nil, fmt.Errorf("new schedule: nil audio provider")
	}
	if cfg.Sink == nil {
		return nil, fmt.Errorf("new schedule: nil playback sink")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = DefaultResetTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.Log == nil {
		cfg.Log = logger.NewNopLogger()
	}
	return &Schedule{
		id:  uuid.NewString(),
		cfg: cfg,
		loc: cfg.Location,
		log: cfg.Log,
	}, nil
}

// ID returns the opaque instance identifier.
func (s *Schedule) ID() string { return s.id }

// Offset returns the configured trigger offset.
func (s *Schedule) Offset() time.Duration { return s.cfg.Offset }

// SetNotifier registers the playback transition callback. Register before
// Start; the callback runs outside the schedule lock.
func (s *Schedule) SetNotifier(f func(StateUpdate)) {
	s.mu.Lock()
	s.notify = f
	s.mu.Unlock()
}

// Start performs the initial timetable fetch and arms the first wake-up.
// A provider failure is returned but leaves a rollover wake armed, so the
// instance keeps ticking and retries at the day boundary.
func (s *Schedule) Start(ctx context.Context) error {
	s.log.Info("starting azan schedule %s (offset %s, reset timeout %s)",
		s.id, s.cfg.Offset, s.cfg.ResetTimeout)
	return s.Refresh(ctx)
}

// Close cancels all armed timers. The instance fires nothing afterwards.
func (s *Schedule) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cancelWakeLocked()
	s.cancelResetLocked()
}

// Status returns the current playback status.
func (s *Schedule) Status() PlaybackStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// NextWake reports the single armed wake-up, if any: its instant and its
// identity token (TokenRollover or TokenPlay(name)).
func (s *Schedule) NextWake() (at time.Time, token string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wake == nil {
		return time.Time{}, "", false
	}
	return s.wake.at, s.wake.token, true
}

// Table returns a snapshot of the current timetable, or nil before the
// first successful refresh.
func (s *Schedule) Table() *TimeTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table == nil {
		return nil
	}
	return s.table.Clone()
}

// Trigger runs the full playback path for name: dedup claim, audio lookup,
// state transition, sink dispatch, and re-scheduling. Real prayers fire at
// most once per day; Test is always repeatable and never claims.
//
// The claim is recorded before the sink call and is not rolled back on
// failure: a failed attempt still counts as attempted, so the same prayer
// is not retried the same day.
func (s *Schedule) Trigger(ctx context.Context, name PrayerName) (err error) {
	if !name.Valid() {
		return ErrUnknownPrayer
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if name.Real() {
		if s.table == nil {
			s.scheduleNextLocked()
			s.mu.Unlock()
			return ErrNoTimeTable
		}
		if !s.tryClaimLocked(name) {
			s.log.Info("prayer %s already played today, skipping duplicate", name)
			s.scheduleNextLocked()
			s.mu.Unlock()
			return ErrAlreadyPlayed
		}
	}

	ref, aerr := s.cfg.Audio.Resolve(name)
	if aerr != nil {
		// The claim, if any, stays consumed.
		s.log.Warning("no audio available for %s: %v", name, aerr)
		s.scheduleNextLocked()
		s.mu.Unlock()
		return fmt.Errorf("resolve audio for %s: %w", name, ErrAudioUnavailable)
	}

	upd := s.setPlayingLocked(name)
	s.mu.Unlock()
	s.emit(upd)

	s.log.Info("playing azan for %s: %s", name, ref.URL)
	if perr := s.cfg.Sink.Play(ctx, ref); perr != nil {
		s.log.Error("playback failed for %s: %v", name, perr)
		s.mu.Lock()
		if s.status.Playing && s.status.Prayer == name {
			upd := s.toIdleLocked()
			s.mu.Unlock()
			s.emit(upd)
		} else {
			s.mu.Unlock()
		}
		err = fmt.Errorf("play %s: %w", name, ErrSinkFailure)
	}

	// Re-arm strictly after the sink call resolved, so the armed wake-up
	// always reflects the up-to-date played set.
	s.mu.Lock()
	s.scheduleNextLocked()
	s.mu.Unlock()
	return err
}

// StopPlayback performs an explicit stop: reset timer cancelled, status
// idle, sink stop issued. The armed wake-up timer is left untouched.
// Returns the status that was current before the stop.
func (s *Schedule) StopPlayback(ctx context.Context) (PlaybackStatus, error) {
	s.mu.Lock()
	was := s.status
	var upd *StateUpdate
	if s.status.Playing {
		u := s.toIdleLocked()
		upd = &u
	} else {
		s.cancelResetLocked()
	}
	s.mu.Unlock()
	if upd != nil {
		s.emit(*upd)
	}

	if err := s.cfg.Sink.Stop(ctx); err != nil {
		s.log.Error("failed to stop playback: %v", err)
		return was, fmt.Errorf("stop playback: %w", ErrSinkFailure)
	}
	if was.Playing {
		s.log.Info("stopped azan playback for %s", was.Prayer)
	}
	return was, nil
}

// Refresh replaces the timetable wholesale from the provider and re-arms.
// On provider failure the previous table is retained and the schedule still
// re-arms, so one bad fetch never stops the instance from ticking.
func (s *Schedule) Refresh(ctx context.Context) error {
	table, err := s.cfg.Provider.TodayTable(ctx)
	if err != nil {
		s.log.Warning("timetable refresh failed, keeping previous table: %v", err)
		s.mu.Lock()
		s.scheduleNextLocked()
		s.mu.Unlock()
		return fmt.Errorf("refresh timetable: %w", ErrProviderFailure)
	}

	s.mu.Lock()
	s.table = table
	s.scheduleNextLocked()
	s.mu.Unlock()
	s.log.Info("timetable loaded for %s (%d events, %d already played)",
		table.Date, len(table.Events), len(table.Played))
	return nil
}

// tryClaimLocked is the dedup guard: atomically checks membership in the
// played set and marks the prayer if absent. Test never claims.
func (s *Schedule) tryClaimLocked(name PrayerName) bool {
	if name == Test {
		return true
	}
	if s.table.IsPlayed(name) {
		return false
	}
	now := s.cfg.Clock.Now().In(s.loc)
	s.table.MarkPlayed(name, now)
	if s.cfg.PlayLog != nil {
		if err := s.cfg.PlayLog.RecordPlayed(s.table.Date, name, now); err != nil {
			s.log.Warning("failed to persist play record for %s: %v", name, err)
		}
	}
	return true
}

// scheduleNextLocked cancels any armed wake-up and arms exactly one new
// one: either the earliest eligible event's trigger instant, or the day
// rollover when nothing remains today.
func (s *Schedule) scheduleNextLocked() {
	if s.closed {
		return
	}
	s.cancelWakeLocked()
	now := s.cfg.Clock.Now().In(s.loc)

	if s.table != nil {
		if ev, target, ok := s.table.Next(now, s.cfg.Offset, s.loc); ok {
			s.seq++
			seq, name := s.seq, ev.Name
			s.wake = &armedTimer{token: TokenPlay(name), at: target, seq: seq}
			s.wake.timer = s.cfg.Clock.AfterFunc(target.Sub(now), func() {
				s.onWake(seq, name)
			})
			s.log.Info("scheduled %s azan at %s (offset %s)",
				name, target.Format("15:04:05"), s.cfg.Offset)
			return
		}
	}

	next := s.rolloverAfter(now)
	s.seq++
	seq := s.seq
	s.wake = &armedTimer{token: TokenRollover, at: next, seq: seq}
	s.wake.timer = s.cfg.Clock.AfterFunc(next.Sub(now), func() {
		s.onRollover(seq)
	})
	s.log.Info("no more azans today, scheduled refresh at %s", next.Format("2006-01-02 15:04"))
}

func (s *Schedule) cancelWakeLocked() {
	if s.wake != nil {
		s.wake.timer.Stop()
		s.wake = nil
	}
}

// rolloverAfter computes the next daily boundary strictly after now.
func (s *Schedule) rolloverAfter(now time.Time) time.Time {
	next, err := gronx.NextTickAfter(rolloverExpr, now, false)
	if err != nil {
		// Unreachable for a constant expression, but never leave the
		// instance unarmed.
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 1, 0, 0, s.loc).AddDate(0, 0, 1)
	}
	return next
}

// onWake fires the wake-up bound to a specific prayer. The sequence guard
// makes a superseded timer a no-op; the dedup claim inside Trigger closes
// the race with concurrent manual triggers for the same prayer.
func (s *Schedule) onWake(seq uint64, name PrayerName) {
	s.mu.Lock()
	if s.closed || s.wake == nil || s.wake.seq != seq {
		s.mu.Unlock()
		return
	}
	s.wake = nil
	s.mu.Unlock()

	s.log.Info("scheduler triggered: %s", name)
	if err := s.Trigger(context.Background(), name); err != nil {
		s.log.Warning("scheduled trigger for %s: %v", name, err)
	}
}

// onRollover fires the day-boundary wake-up: refresh the table (which also
// re-arms, success or failure).
func (s *Schedule) onRollover(seq uint64) {
	s.mu.Lock()
	if s.closed || s.wake == nil || s.wake.seq != seq {
		s.mu.Unlock()
		return
	}
	s.wake = nil
	s.mu.Unlock()

	s.log.Info("day rollover, refreshing timetable")
	_ = s.Refresh(context.Background())
}

func (s *Schedule) emit(u StateUpdate) {
	s.mu.Lock()
	notify := s.notify
	s.mu.Unlock()
	if notify != nil {
		notify(u)
	}
}
