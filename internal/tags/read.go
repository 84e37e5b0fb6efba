package tags

import (
	"os"
	"strconv"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Read reads tag metadata from a music file. Missing title and artist
// fall back to parsing the file name, so a tagless download still shows
// up with something sensible.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		// dhowden/tag chokes on some UTF-16 ID3 tags and ffmpeg-created
		// files; TagLib handles those.
		return readWithTaglib(path)
	}

	track, _ := m.Track()
	t := &Tag{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		Album:       m.Album(),
		Genre:       m.Genre(),
		TrackNumber: track,
		Year:        m.Year(),
	}
	t.fillFromFilename()
	return t, nil
}

// ReadWithAudio reads both tag metadata and audio stream properties.
// Tag failures are tolerated; an unreadable audio stream is not.
func ReadWithAudio(path string) (*FileInfo, error) {
	t, err := Read(path)
	if err != nil {
		t = &Tag{Path: path}
		t.fillFromFilename()
	}

	duration, sampleRate, err := readAudioInfo(path)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		Tag:        *t,
		Duration:   duration,
		SampleRate: sampleRate,
	}, nil
}

// readWithTaglib reads metadata using TagLib as fallback.
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	t := &Tag{
		Path:        path,
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		Album:       tags.get(taglib.Album),
		Genre:       tags.get(taglib.Genre),
		TrackNumber: tags.getInt(taglib.TrackNumber),
	}
	if date := tags.get(taglib.Date, "YEAR"); len(date) >= 4 {
		t.Year, _ = strconv.Atoi(date[:4])
	}
	t.fillFromFilename()
	return t, nil
}

// fillFromFilename fills empty title and artist from the file name.
func (t *Tag) fillFromFilename() {
	if t.Title != "" && t.Artist != "" {
		return
	}
	artist, title := ParseFilename(t.Path)
	if t.Title == "" {
		t.Title = title
	}
	if t.Artist == "" {
		t.Artist = artist
	}
}
