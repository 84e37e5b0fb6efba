package library

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	dbutil "github.com/bowling220/YTune/internal/db"
	"github.com/bowling220/YTune/internal/tags"
)

// Track is a library track row.
type Track struct {
	ID          int64
	Path        string
	Title       string
	Artist      string
	Album       string
	Genre       string
	TrackNumber int
	Year        int
	Duration    time.Duration
	AddedAt     time.Time
}

const trackColumns = `id, path, title, artist, album, genre, track_number, year, duration_ms, added_at`

func scanTrack(row interface{ Scan(...any) error }) (*Track, error) {
	var t Track
	var genre sql.NullString
	var trackNumber, year sql.NullInt64
	var durationMS, addedAt int64

	err := row.Scan(&t.ID, &t.Path, &t.Title, &t.Artist, &t.Album,
		&genre, &trackNumber, &year, &durationMS, &addedAt)
	if err != nil {
		return nil, err
	}

	t.Genre = dbutil.NullStringValue(genre)
	t.TrackNumber = int(dbutil.NullInt64Value(trackNumber))
	t.Year = int(dbutil.NullInt64Value(year))
	t.Duration = time.Duration(durationMS) * time.Millisecond
	t.AddedAt = time.Unix(addedAt, 0)
	return &t, nil
}

// AllTracks returns all tracks ordered for display.
func (l *Library) AllTracks() ([]Track, error) {
	return l.queryTracks(`
		SELECT ` + trackColumns + ` FROM tracks
		ORDER BY artist COLLATE NOCASE, album COLLATE NOCASE, track_number, title COLLATE NOCASE
	`)
}

// SearchTracks returns tracks whose title, artist or album contains the
// query, case-insensitively.
func (l *Library) SearchTracks(query string) ([]Track, error) {
	pattern := "%" + escapeLike(query) + "%"
	return l.queryTracks(`
		SELECT `+trackColumns+` FROM tracks
		WHERE title LIKE ? ESCAPE '\' OR artist LIKE ? ESCAPE '\' OR album LIKE ? ESCAPE '\'
		ORDER BY artist COLLATE NOCASE, album COLLATE NOCASE, track_number, title COLLATE NOCASE
	`, pattern, pattern, pattern)
}

// TrackByID returns a single track, or sql.ErrNoRows if absent.
func (l *Library) TrackByID(id int64) (*Track, error) {
	row := l.db.QueryRow(`SELECT `+trackColumns+` FROM tracks WHERE id = ?`, id)
	return scanTrack(row)
}

// TracksByIDs returns the tracks for the given IDs in the given order.
// Unknown IDs are silently omitted.
func (l *Library) TracksByIDs(ids []int64) ([]Track, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	found, err := l.queryTracks(`SELECT `+trackColumns+` FROM tracks WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]Track, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	tracks := make([]Track, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			tracks = append(tracks, t)
		}
	}
	return tracks, nil
}

// TrackCount returns the number of tracks in the library.
func (l *Library) TrackCount() (int, error) {
	var count int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM tracks`).Scan(&count)
	return count, err
}

// AddTrack inserts or updates a track from file metadata. It returns
// the track ID and whether the row was newly created.
func (l *Library) AddTrack(info *tags.FileInfo, mtime int64) (int64, bool, error) {
	now := time.Now().Unix()

	var existingID int64
	err := l.db.QueryRow(`SELECT id FROM tracks WHERE path = ?`, info.Path).Scan(&existingID)
	switch {
	case err == nil:
		_, err = l.db.Exec(`
			UPDATE tracks
			SET mtime = ?, title = ?, artist = ?, album = ?, genre = ?,
				track_number = ?, year = ?, duration_ms = ?, updated_at = ?
			WHERE id = ?
		`, mtime, info.Title, info.Artist, info.Album, info.Genre,
			info.TrackNumber, info.Year, info.Duration.Milliseconds(), now, existingID)
		if err != nil {
			return 0, false, fmt.Errorf("update track %s: %w", info.Path, err)
		}
		return existingID, false, nil

	case errors.Is(err, sql.ErrNoRows):
		res, err := l.db.Exec(`
			INSERT INTO tracks (path, mtime, title, artist, album, genre,
				track_number, year, duration_ms, added_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, info.Path, mtime, info.Title, info.Artist, info.Album, info.Genre,
			info.TrackNumber, info.Year, info.Duration.Milliseconds(), now, now)
		if err != nil {
			return 0, false, fmt.Errorf("insert track %s: %w", info.Path, err)
		}
		id, err := res.LastInsertId()
		return id, true, err

	default:
		return 0, false, err
	}
}

// RemoveTrackByPath deletes a track row. Playlist references cascade.
func (l *Library) RemoveTrackByPath(path string) error {
	_, err := l.db.Exec(`DELETE FROM tracks WHERE path = ?`, path)
	return err
}

// existingMtimes returns path -> mtime for every track, used by the
// scanner to skip unchanged files.
func (l *Library) existingMtimes() (map[string]int64, error) {
	rows, err := l.db.Query(`SELECT path, mtime FROM tracks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mtimes := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		mtimes[path] = mtime
	}
	return mtimes, rows.Err()
}

func (l *Library) queryTracks(query string, args ...any) ([]Track, error) {
	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, *t)
	}
	return tracks, rows.Err()
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
