package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bowling220/YTune/internal/tags"
)

func TestResolve(t *testing.T) {
	l := openTestLibrary(t)

	id, _, err := l.AddTrack(&tags.FileInfo{
		Tag: tags.Tag{
			Path:   "/music/song.mp3",
			Title:  "Song",
			Artist: "Artist",
			Album:  "Album",
		},
		Duration: 4 * time.Minute,
	}, 1000)
	require.NoError(t, err)

	track, err := l.Resolve(id)
	require.NoError(t, err)
	assert.Equal(t, id, track.ID)
	assert.Equal(t, "/music/song.mp3", track.Path)
	assert.Equal(t, "Song", track.Title)
	assert.Equal(t, "Artist", track.Artist)
	assert.Equal(t, "Album", track.Album)
	assert.Equal(t, 4*time.Minute, track.Duration)
}

func TestResolve_Unknown(t *testing.T) {
	l := openTestLibrary(t)

	_, err := l.Resolve(12345)
	assert.Error(t, err)
}
