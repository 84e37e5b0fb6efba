package library

import (
	"database/sql"
	"fmt"
	"time"

	dbutil "github.com/bowling220/YTune/internal/db"
)

// Playlist is a named, ordered list of library tracks.
type Playlist struct {
	ID         int64
	Name       string
	CreatedAt  time.Time
	TrackCount int
}

// Playlists returns all playlists ordered by name.
func (l *Library) Playlists() ([]Playlist, error) {
	rows, err := l.db.Query(`
		SELECT p.id, p.name, p.created_at, COUNT(pt.id)
		FROM playlists p
		LEFT JOIN playlist_tracks pt ON pt.playlist_id = p.id
		GROUP BY p.id
		ORDER BY p.name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []Playlist
	for rows.Next() {
		var p Playlist
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.Name, &createdAt, &p.TrackCount); err != nil {
			return nil, err
		}
		p.CreatedAt = time.Unix(createdAt, 0)
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

// CreatePlaylist creates an empty playlist and returns its ID. Names
// are unique; creating a duplicate fails.
func (l *Library) CreatePlaylist(name string) (int64, error) {
	res, err := l.db.Exec(`INSERT INTO playlists (name, created_at) VALUES (?, ?)`,
		name, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("create playlist %q: %w", name, err)
	}
	return res.LastInsertId()
}

// RenamePlaylist changes a playlist's name.
func (l *Library) RenamePlaylist(id int64, name string) error {
	_, err := l.db.Exec(`UPDATE playlists SET name = ? WHERE id = ?`, name, id)
	return err
}

// DeletePlaylist removes a playlist and its track references.
func (l *Library) DeletePlaylist(id int64) error {
	return dbutil.WithTx(l.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM playlist_tracks WHERE playlist_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM playlists WHERE id = ?`, id)
		return err
	})
}

// AddToPlaylist appends a track to the end of a playlist. The same
// track may appear more than once.
func (l *Library) AddToPlaylist(playlistID, trackID int64) error {
	return dbutil.WithTx(l.db, func(tx *sql.Tx) error {
		var next int
		err := tx.QueryRow(`
			SELECT COALESCE(MAX(position) + 1, 0) FROM playlist_tracks WHERE playlist_id = ?
		`, playlistID).Scan(&next)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO playlist_tracks (playlist_id, position, track_id) VALUES (?, ?, ?)
		`, playlistID, next, trackID)
		return err
	})
}

// RemoveFromPlaylist removes the entry at the given position and closes
// the gap.
func (l *Library) RemoveFromPlaylist(playlistID int64, position int) error {
	return dbutil.WithTx(l.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			DELETE FROM playlist_tracks WHERE playlist_id = ? AND position = ?
		`, playlistID, position)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("no track at position %d", position)
		}
		_, err = tx.Exec(`
			UPDATE playlist_tracks SET position = position - 1
			WHERE playlist_id = ? AND position > ?
		`, playlistID, position)
		return err
	})
}

// PlaylistTrackIDs returns the playlist's track IDs in order.
func (l *Library) PlaylistTrackIDs(playlistID int64) ([]int64, error) {
	rows, err := l.db.Query(`
		SELECT track_id FROM playlist_tracks WHERE playlist_id = ? ORDER BY position
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PlaylistTracks returns the playlist's tracks in order.
func (l *Library) PlaylistTracks(playlistID int64) ([]Track, error) {
	ids, err := l.PlaylistTrackIDs(playlistID)
	if err != nil {
		return nil, err
	}
	return l.TracksByIDs(ids)
}
