package azanlib

import "errors"

var (
	ErrUnknownPrayer    = errors.New("unknown prayer name")
	ErrAlreadyPlayed    = errors.New("prayer has already been played today")
	ErrNoTimeTable      = errors.New("no timetable is loaded")
	ErrAudioUnavailable = errors.New("no audio available for prayer")
	ErrSinkFailure      = errors.New("playback sink call failed")
	ErrProviderFailure  = errors.New("timetable provider unavailable")
	ErrClosed           = errors.New("schedule is closed")
)
