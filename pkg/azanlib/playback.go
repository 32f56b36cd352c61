package azanlib

import "time"

// PlaybackStatus is the observable playback state of a schedule instance:
// idle, or playing one named prayer since a given instant.
type PlaybackStatus struct {
	Playing bool       `json:"playing"`
	Prayer  PrayerName `json:"prayer,omitempty"`
	Since   time.Time  `json:"since,omitempty"`
}

// StateUpdate is delivered to the registered notifier on every playback
// transition so outer layers can broadcast status changes.
type StateUpdate struct {
	Playing bool       `json:"playing"`
	Prayer  PrayerName `json:"prayer,omitempty"`
	At      time.Time  `json:"at"`
}

// setPlayingLocked transitions to Playing(name) and re-arms the reset timer.
// A playback issued while another is in flight simply overwrites the status;
// the superseded reset timer becomes a no-op through its sequence guard.
func (s *Schedule) setPlayingLocked(name PrayerName) StateUpdate {
	now := s.cfg.Clock.Now().In(s.loc)
	s.status = PlaybackStatus{Playing: true, Prayer: name, Since: now}
	s.armResetLocked(name)
	return StateUpdate{Playing: true, Prayer: name, At: now}
}

// toIdleLocked cancels the reset timer and returns to Idle.
func (s *Schedule) toIdleLocked() StateUpdate {
	s.cancelResetLocked()
	s.status = PlaybackStatus{}
	return StateUpdate{At: s.cfg.Clock.Now().In(s.loc)}
}

// armResetLocked arms the single playback-reset timer, cancelling any
// previous one first.
func (s *Schedule) armResetLocked(name PrayerName) {
	s.cancelResetLocked()
	s.seq++
	seq := s.seq
	at := s.cfg.Clock.Now().In(s.loc).Add(s.cfg.ResetTimeout)
	s.reset = &armedTimer{token: string(name), at: at, seq: seq}
	s.reset.timer = s.cfg.Clock.AfterFunc(s.cfg.ResetTimeout, func() {
		s.onReset(seq, name)
	})
}

func (s *Schedule) cancelResetLocked() {
	if s.reset != nil {
		s.reset.timer.Stop()
		s.reset = nil
	}
}

// onReset fires when a playback ran out its timeout without an explicit
// stop. Stale timers, or timers bound to a superseded prayer, do nothing.
func (s *Schedule) onReset(seq uint64, name PrayerName) {
	s.mu.Lock()
	if s.closed || s.reset == nil || s.reset.seq != seq {
		s.mu.Unlock()
		return
	}
	s.reset = nil
	if !s.status.Playing || s.status.Prayer != name {
		s.mu.Unlock()
		return
	}
	s.status = PlaybackStatus{}
	upd := StateUpdate{At: s.cfg.Clock.Now().In(s.loc)}
	s.mu.Unlock()

	s.log.Info("playback state reset for %s after %s timeout", name, s.cfg.ResetTimeout)
	s.emit(upd)
}
