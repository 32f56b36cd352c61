package common

import "time"

type TriggerParams struct {
	Prayer string `json:"prayer"`
}

type TriggerResponse struct {
	Prayer   string    `json:"prayer"`
	Audio    string    `json:"audio,omitempty"`
	IssuedAt time.Time `json:"issued_at"`
}

type StopResponse struct {
	WasPlaying bool   `json:"was_playing"`
	Prayer     string `json:"prayer,omitempty"`
}

type EventInfo struct {
	Name    string    `json:"name"`
	Time    time.Time `json:"time"`
	Enabled bool      `json:"enabled"`
	Played  bool      `json:"played"`
}

type RefreshResponse struct {
	Date   string      `json:"date"`
	Events []EventInfo `json:"events"`
}

type StatusResponse struct {
	Playing    bool        `json:"playing"`
	Prayer     string      `json:"prayer,omitempty"`
	Since      time.Time   `json:"since,omitempty"`
	NextPrayer string      `json:"next_prayer,omitempty"`
	NextAt     time.Time   `json:"next_at,omitempty"`
	Date       string      `json:"date,omitempty"`
	Events     []EventInfo `json:"events,omitempty"`
}

// StateUpdate is broadcast to attached clients on every playback transition.
type StateUpdate struct {
	Playing bool      `json:"playing"`
	Prayer  string    `json:"prayer,omitempty"`
	At      time.Time `json:"at"`
}

type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"build_type,omitempty"`
}
