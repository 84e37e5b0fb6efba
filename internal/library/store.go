package library

import (
	"github.com/bowling220/YTune/internal/playback"
)

// Resolve implements playback.TrackStore, mapping a library row to the
// playback track shape.
func (l *Library) Resolve(id int64) (*playback.Track, error) {
	t, err := l.TrackByID(id)
	if err != nil {
		return nil, err
	}
	return &playback.Track{
		ID:       t.ID,
		Path:     t.Path,
		Title:    t.Title,
		Artist:   t.Artist,
		Album:    t.Album,
		Duration: t.Duration,
	}, nil
}

var _ playback.TrackStore = (*Library)(nil)
