package library

import (
	"database/sql"
	"errors"

	dbutil "github.com/bowling220/YTune/internal/db"
)

// QueueState is the persisted play queue, restored on startup.
type QueueState struct {
	TrackIDs    []int64 // play order
	OriginalIDs []int64 // caller-supplied order, kept for leaving shuffle
	Index       int
	Mode        int
	Volume      int
}

// SaveQueueState replaces the stored queue.
func (l *Library) SaveQueueState(state QueueState) error {
	originalPos := originalPositions(state.TrackIDs, state.OriginalIDs)

	return dbutil.WithTx(l.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM queue_tracks`); err != nil {
			return err
		}

		_, err := tx.Exec(`
			INSERT INTO queue_state (id, current_index, mode, volume)
			VALUES (1, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_index = excluded.current_index,
				mode = excluded.mode,
				volume = excluded.volume
		`, state.Index, state.Mode, state.Volume)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO queue_tracks (position, track_id, original_position) VALUES (?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, id := range state.TrackIDs {
			if _, err := stmt.Exec(i, id, originalPos[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadQueueState returns the stored queue, or an empty state with
// default volume if none was saved.
func (l *Library) LoadQueueState() (*QueueState, error) {
	state := &QueueState{Index: -1, Volume: 100}

	row := l.db.QueryRow(`SELECT current_index, mode, volume FROM queue_state WHERE id = 1`)
	err := row.Scan(&state.Index, &state.Mode, &state.Volume)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := l.db.Query(`SELECT track_id, original_position FROM queue_tracks ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type entry struct {
		id          int64
		originalPos int
	}
	var entries []entry
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.id, &e.originalPos); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	state.TrackIDs = make([]int64, len(entries))
	state.OriginalIDs = make([]int64, len(entries))
	for i, e := range entries {
		state.TrackIDs[i] = e.id
		pos := e.originalPos
		if pos < 0 || pos >= len(entries) {
			pos = i
		}
		state.OriginalIDs[pos] = e.id
	}
	return state, nil
}

// originalPositions maps each play-order index to the index the same
// track occupies in the original order. Duplicate IDs are matched in
// order of appearance.
func originalPositions(queue, original []int64) []int {
	used := make([]bool, len(original))
	positions := make([]int, len(queue))
	for i, id := range queue {
		positions[i] = i
		for j, orig := range original {
			if !used[j] && orig == id {
				used[j] = true
				positions[i] = j
				break
			}
		}
	}
	return positions
}
