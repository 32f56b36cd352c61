// Package azanlib implements the azan scheduling core: the daily prayer
// timetable, the single-wake-up scheduler with an adjustable lead/lag
// offset, the playback state machine with its bounded auto-reset, and the
// at-most-once-per-day dedup claim that guards every playback dispatch.
//
// A Schedule owns all of its mutable state behind one mutex; timer callbacks
// carry identity tokens so a cancelled timer that already fired is a no-op.
// External collaborators (timetable provider, audio lookup, playback sink)
// are capability interfaces injected at construction.
package azanlib
