package playback

import "time"

// Track is a resolved queue entry: a library track ID plus the metadata
// needed to play and display it.
type Track struct {
	ID       int64
	Path     string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
}

// TrackStore resolves track IDs to playable paths and display metadata.
// It is read-only from the controller's perspective.
type TrackStore interface {
	Resolve(id int64) (*Track, error)
}
