// Package tags reads and writes music file metadata. It consolidates
// tag handling for the MP3, FLAC and Ogg files the library scanner and
// the downloader deal with.
package tags

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOGG  = ".ogg"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// Tag contains the tag metadata the library stores per track.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	Genre       string
	TrackNumber int
	Year        int
}

// FileInfo combines tag metadata with audio stream properties.
type FileInfo struct {
	Tag
	Duration   time.Duration
	SampleRate int
}

// IsMusicFile returns true if the path has a supported music file extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtOGG:
		return true
	}
	return false
}

// ParseFilename derives artist and title from a file name of the form
// "Artist - Title.ext". Without a separator the whole stem becomes the
// title and the artist is left empty.
func ParseFilename(path string) (artist, title string) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if before, after, found := strings.Cut(stem, " - "); found {
		artist = strings.TrimSpace(before)
		title = strings.TrimSpace(after)
		if title != "" {
			return artist, title
		}
	}
	return "", strings.TrimSpace(stem)
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// getInt returns the first value for the key as an integer. Values in
// "N/M" form yield N.
func (t taglibTags) getInt(key string) int {
	s := t.get(key)
	if s == "" {
		return 0
	}
	if idx := strings.Index(s, "/"); idx > 0 {
		s = s[:idx]
	}
	n, _ := strconv.Atoi(s)
	return n
}
