package playback

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when the current track changes.
//
// Emitted by:
//   - LoadQueue/PlayAt: when a track starts playing
//   - Next/Previous and end-of-media advancement
//   - Stop: with a nil Current, meaning nothing is selected
//
// Skipped unplayable tracks never emit TrackChange; only the track that
// actually starts does.
type TrackChange struct {
	Previous *Track
	Current  *Track
	Index    int // queue index of Current, -1 if none
}

// QueueChange is emitted when the queue order or contents change.
type QueueChange struct {
	TrackIDs []int64
	Index    int
}

// ModeChange is emitted when the playback mode changes.
type ModeChange struct {
	Mode Mode
}

// ErrorEvent is emitted when a track cannot be played. Errors are
// informational: the controller has already skipped ahead or stopped.
type ErrorEvent struct {
	TrackID int64  // offending track, 0 if not tied to one
	Path    string // track path if known
	Message string
}
