// internal/playback/state.go
package playback

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// Mode defines how the queue position moves when a track ends or the
// user skips.
type Mode int

const (
	// ModeSequential plays tracks in order and stops at the end.
	ModeSequential Mode = iota
	// ModeRepeatOne replays the current track indefinitely.
	ModeRepeatOne
	// ModeRepeatAll wraps to the first track after the last.
	ModeRepeatAll
	// ModeShuffle plays a randomized order and wraps like ModeRepeatAll.
	ModeShuffle
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "Sequential"
	case ModeRepeatOne:
		return "Repeat One"
	case ModeRepeatAll:
		return "Repeat All"
	case ModeShuffle:
		return "Shuffle"
	default:
		return "Unknown"
	}
}

// Wraps returns true if the mode loops past the queue boundaries.
func (m Mode) Wraps() bool {
	return m == ModeRepeatAll || m == ModeShuffle
}
